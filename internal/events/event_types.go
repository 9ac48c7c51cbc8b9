package events

import (
	"time"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketResponseAdded EventType = "ticket_response_added"
	EventTicketRated         EventType = "ticket_rated"
	EventTicketFollowUpDue   EventType = "ticket_follow_up_due"
	EventChargeFailed        EventType = "charge_failed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID *string     `json:"user_id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
	System bool        `json:"system,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	BrandID   string      `json:"brand_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Channel       domain.TicketChannel `json:"channel"`
	Category      string               `json:"category"`
	Urgency       domain.TicketUrgency `json:"urgency"`
	ChargeApplied bool                 `json:"charge_applied"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssigneeID string `json:"assignee_id"`
}

// TicketResponseAddedPayload payload.
type TicketResponseAddedPayload struct {
	ResponseID     string `json:"response_id"`
	IsFromBrand    bool   `json:"is_from_brand"`
	MessagePreview string `json:"message_preview"`
}

// TicketRatedPayload payload.
type TicketRatedPayload struct {
	Rating int `json:"rating"`
}

// TicketFollowUpDuePayload payload.
type TicketFollowUpDuePayload struct {
	ResolvedAt time.Time `json:"resolved_at"`
}

// ChargeFailedPayload records a ticket whose intake fee could not be
// collected; such tickets carry charge_applied=false for reconciliation.
type ChargeFailedPayload struct {
	Reason string `json:"reason"`
	Amount string `json:"amount"`
}
