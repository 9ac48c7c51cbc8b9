package dto

import (
	"time"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
)

// CreateTicketRequest payload for web intake.
type CreateTicketRequest struct {
	BrandID     string `json:"brand_id"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

// TransitionRequest payload.
type TransitionRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// AssignRequest payload.
type AssignRequest struct {
	AssigneeID string `json:"assignee_id"`
}

// AddResponseRequest payload.
type AddResponseRequest struct {
	Message string `json:"message"`
}

// RateTicketRequest payload.
type RateTicketRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

// TicketSummary response.
type TicketSummary struct {
	ID            string               `json:"id"`
	BrandID       string               `json:"brand_id"`
	Channel       domain.TicketChannel `json:"channel"`
	Category      string               `json:"category"`
	Status        domain.TicketStatus  `json:"status"`
	Urgency       domain.TicketUrgency `json:"urgency"`
	Urgent        bool                 `json:"urgent"`
	AssignedTo    *string              `json:"assigned_to,omitempty"`
	Rating        *int                 `json:"rating,omitempty"`
	ResolvedAt    *time.Time           `json:"resolved_at,omitempty"`
	ChargeApplied bool                 `json:"charge_applied"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info with thread and audit trail.
type TicketDetailResponse struct {
	TicketSummary
	Description         string                   `json:"description"`
	SentimentScore      float64                  `json:"sentiment_score"`
	ResolutionTimeHours *float64                 `json:"resolution_time_hours,omitempty"`
	RatingComment       *string                  `json:"rating_comment,omitempty"`
	IsPublic            bool                     `json:"is_public"`
	ViewCount           int                      `json:"view_count"`
	Responses           []TicketResponseResponse `json:"responses"`
	Logs                []TicketLogResponse      `json:"logs"`
}

// TicketResponseResponse represents a thread message.
type TicketResponseResponse struct {
	ID          string    `json:"id"`
	UserID      *string   `json:"user_id,omitempty"`
	Message     string    `json:"message"`
	IsFromBrand bool      `json:"is_from_brand"`
	CreatedAt   time.Time `json:"created_at"`
}

// TicketLogResponse represents an audit trail entry.
type TicketLogResponse struct {
	ID        string                 `json:"id"`
	Action    domain.TicketLogAction `json:"action"`
	Details   string                 `json:"details"`
	CreatedAt time.Time              `json:"created_at"`
}

// PublicComplaintResponse is the anonymized public listing item.
type PublicComplaintResponse struct {
	ID             string    `json:"id"`
	BrandName      string    `json:"brand_name"`
	Description    string    `json:"description"`
	DaysUnresolved int       `json:"days_unresolved"`
	Views          int       `json:"views"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
}
