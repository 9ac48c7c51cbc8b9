package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusAssigned   TicketStatus = "assigned"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
)

// TicketChannel identifies the intake channel.
type TicketChannel string

const (
	ChannelChat  TicketChannel = "chat"
	ChannelVoice TicketChannel = "voice"
	ChannelWeb   TicketChannel = "web"
	ChannelEmail TicketChannel = "email"
)

// TicketUrgency is an ordinal urgency level.
type TicketUrgency string

const (
	UrgencyLow      TicketUrgency = "low"
	UrgencyMedium   TicketUrgency = "medium"
	UrgencyHigh     TicketUrgency = "high"
	UrgencyCritical TicketUrgency = "critical"
)

// Rank orders urgency levels; higher means more urgent. Unknown values
// rank as medium.
func (u TicketUrgency) Rank() int {
	switch u {
	case UrgencyLow:
		return 0
	case UrgencyHigh:
		return 2
	case UrgencyCritical:
		return 3
	default:
		return 1
	}
}

// Ticket is the aggregate for a tracked complaint. Invariants enforced by
// the lifecycle engine: ResolvedAt is set iff Status == resolved; Rating
// and RatedAt are set only on resolved tickets; ChargeApplied flips to
// true at most once and is never reversed, even across a reopen.
type Ticket struct {
	ID                  string
	BrandID             string
	UserID              *string
	Channel             TicketChannel
	Description         string
	Category            string
	Status              TicketStatus
	Urgency             TicketUrgency
	SentimentScore      float64
	AbuseLevel          int
	AssignedTo          *string
	Rating              *int
	RatingComment       *string
	RatedAt             *time.Time
	ResolvedAt          *time.Time
	ResolutionTimeHours *float64
	IsPublic            bool
	ViewCount           int
	ChargeApplied       bool
	ChargeAmount        *decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TicketResponse is an append-only message in a ticket thread.
type TicketResponse struct {
	ID          string
	TicketID    string
	UserID      *string
	Message     string
	IsFromBrand bool
	CreatedAt   time.Time
}

// TicketLogAction captures what a log entry records.
type TicketLogAction string

const (
	LogActionCreated      TicketLogAction = "created"
	LogActionStatusChange TicketLogAction = "status_change"
	LogActionAssignment   TicketLogAction = "assignment"
	LogActionResponse     TicketLogAction = "response"
	LogActionRating       TicketLogAction = "rating"
)

// TicketLog is an immutable audit trail entry for a ticket.
type TicketLog struct {
	ID        string
	TicketID  string
	UserID    *string
	Action    TicketLogAction
	Details   string
	CreatedAt time.Time
}
