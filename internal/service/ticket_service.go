package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bafa2024/complaint-hub-beta/internal/classifier"
	"github.com/bafa2024/complaint-hub-beta/internal/clock"
	"github.com/bafa2024/complaint-hub-beta/internal/config"
	"github.com/bafa2024/complaint-hub-beta/internal/domain"
	"github.com/bafa2024/complaint-hub-beta/internal/events"
	"github.com/bafa2024/complaint-hub-beta/internal/repository"
	"github.com/bafa2024/complaint-hub-beta/internal/scheduler"
	apperrors "github.com/bafa2024/complaint-hub-beta/pkg/util/errorutil"
)

// Actor identifies who is invoking a lifecycle operation.
type Actor struct {
	UserID  string
	Role    domain.Role
	BrandID *string
}

// IntakeInput describes a complaint arriving from any channel.
type IntakeInput struct {
	BrandID     string
	UserID      *string
	Channel     domain.TicketChannel
	Description string
	IsPublic    bool
}

// TicketListFilter describes ticket listing parameters.
type TicketListFilter struct {
	Statuses    []domain.TicketStatus
	Category    *string
	Channel     *domain.TicketChannel
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// PublicComplaint is the anonymized shape disclosed on the public
// listing. It carries no user identity and a bounded description.
type PublicComplaint struct {
	ID             string
	BrandName      string
	Description    string
	DaysUnresolved int
	Views          int
	Location       string
	CreatedAt      time.Time
}

// TicketService enforces the ticket state machine, SLA derivation and
// rating rules, charges brands through the ledger on intake, and hands
// follow-up work to the scheduler. Mutations on one ticket serialize
// behind a per-ticket mutex; classifier and notification calls happen
// outside any lock.
type TicketService struct {
	tickets    repository.TicketRepository
	responses  repository.TicketResponseRepository
	logs       repository.TicketLogRepository
	brands     repository.BrandRepository
	users      repository.UserRepository
	ledger     *LedgerService
	classify   classifier.Classifier
	sched      scheduler.Scheduler
	dispatcher events.Dispatcher
	clk        clock.Clock
	logger     *zap.Logger

	perTicketFee      decimal.Decimal
	maxPageSize       int
	classifierTimeout time.Duration
	followUpDelay     time.Duration

	locks *keyedMutex
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	ResponseRepo repository.TicketResponseRepository
	LogRepo      repository.TicketLogRepository
	BrandRepo    repository.BrandRepository
	UserRepo     repository.UserRepository
	Ledger       *LedgerService
	Classifier   classifier.Classifier
	Scheduler    scheduler.Scheduler
	Dispatcher   events.Dispatcher
	Clock        clock.Clock
	Logger       *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(cfg config.Config, deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.System()
	}
	return &TicketService{
		tickets:           deps.TicketRepo,
		responses:         deps.ResponseRepo,
		logs:              deps.LogRepo,
		brands:            deps.BrandRepo,
		users:             deps.UserRepo,
		ledger:            deps.Ledger,
		classify:          deps.Classifier,
		sched:             deps.Scheduler,
		dispatcher:        deps.Dispatcher,
		clk:               clk,
		logger:            logger,
		perTicketFee:      cfg.Billing.PerTicketFee,
		maxPageSize:       cfg.Billing.MaxPageSize,
		classifierTimeout: cfg.Classifier.Timeout(),
		followUpDelay:     cfg.Scheduler.FollowUpDelay(),
		locks:             newKeyedMutex(),
	}
}

// Rating bounds accepted by Rate.
const (
	minRating = 1
	maxRating = 5
)

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusNew:        {domain.TicketStatusAssigned, domain.TicketStatusInProgress, domain.TicketStatusResolved},
	domain.TicketStatusAssigned:   {domain.TicketStatusInProgress, domain.TicketStatusResolved},
	domain.TicketStatusInProgress: {domain.TicketStatusResolved},
	// The only backward edge: an explicit reopen.
	domain.TicketStatusResolved: {domain.TicketStatusNew},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Intake creates a ticket from raw complaint text. Classification is
// bounded by a timeout and degrades to a fallback; the intake fee charge
// is attempted but never blocks ticket creation; a charge failure
// leaves the ticket flagged charge_applied=false for reconciliation.
func (s *TicketService) Intake(ctx context.Context, input IntakeInput) (*domain.Ticket, error) {
	brand, err := s.brands.GetByID(ctx, input.BrandID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("brand", map[string]any{"brand_id": input.BrandID})
		}
		return nil, apperrors.NewStorageError(err)
	}
	if !brand.Active {
		return nil, apperrors.NewNotFound("brand", map[string]any{"brand_id": input.BrandID})
	}

	// External call first, outside any lock.
	classification := s.classifyWithFallback(ctx, input.Description)

	ticket := &domain.Ticket{
		BrandID:        input.BrandID,
		UserID:         input.UserID,
		Channel:        input.Channel,
		Description:    input.Description,
		Category:       classification.Category,
		Status:         domain.TicketStatusNew,
		Urgency:        classification.Urgency,
		SentimentScore: classification.Sentiment,
		AbuseLevel:     classification.AbuseLevel,
		IsPublic:       input.IsPublic,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	s.appendLog(ctx, ticket.ID, input.UserID, domain.LogActionCreated,
		fmt.Sprintf("ticket created via %s", input.Channel))

	s.applyIntakeCharge(ctx, ticket)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		BrandID:  ticket.BrandID,
		Actor:    actorEventMeta(input.UserID),
		Payload: events.TicketCreatedPayload{
			Channel:       ticket.Channel,
			Category:      ticket.Category,
			Urgency:       ticket.Urgency,
			ChargeApplied: ticket.ChargeApplied,
		},
	})
	return ticket, nil
}

// classifyWithFallback bounds the classifier call and substitutes the
// fallback classification on any failure or timeout. Intake never
// surfaces a classifier error.
func (s *TicketService) classifyWithFallback(ctx context.Context, text string) classifier.Classification {
	cctx, cancel := context.WithTimeout(ctx, s.classifierTimeout)
	defer cancel()

	result, err := s.classify.Classify(cctx, text)
	if err != nil {
		s.logger.Warn("classifier unavailable, using fallback", zap.Error(err))
		return classifier.Fallback()
	}
	return result
}

// applyIntakeCharge attempts the per-ticket fee. Billing failure is
// non-fatal to the user-facing flow.
func (s *TicketService) applyIntakeCharge(ctx context.Context, ticket *domain.Ticket) {
	if s.ledger == nil || s.perTicketFee.LessThanOrEqual(decimal.Zero) {
		return
	}
	ticketID := ticket.ID
	txn, err := s.ledger.Charge(ctx, ticket.BrandID, s.perTicketFee, &ticketID, "intake fee")
	if err != nil {
		s.logger.Warn("intake charge failed; ticket flagged for reconciliation",
			zap.String("ticket_id", ticket.ID),
			zap.String("brand_id", ticket.BrandID),
			zap.Error(err))
		s.publishEvent(ctx, events.Event{
			Type:     events.EventChargeFailed,
			TicketID: ticket.ID,
			BrandID:  ticket.BrandID,
			Actor:    events.Actor{System: true},
			Payload: events.ChargeFailedPayload{
				Reason: apperrors.ToDomainError(err).Code,
				Amount: s.perTicketFee.String(),
			},
		})
		return
	}

	fee := s.perTicketFee
	ticket.ChargeApplied = true
	ticket.ChargeAmount = &fee
	if err := s.tickets.Update(ctx, ticket); err != nil {
		// The ledger transaction stands; the flag is reconciled from the
		// transaction log.
		s.logger.Error("failed to mark ticket charged",
			zap.String("ticket_id", ticket.ID),
			zap.String("transaction_id", txn.ID),
			zap.Error(err))
	}
}

// Transition moves a ticket along the state machine. Only the owning
// brand's staff or an administrator may transition; illegal edges fail
// with INVALID_TRANSITION. Scheduling and notification run after the
// per-ticket lock is released.
func (s *TicketService) Transition(ctx context.Context, actor Actor, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	ticket, oldStatus, followUpAt, err := s.applyTransition(ctx, actor, ticketID, newStatus)
	if err != nil {
		return nil, err
	}

	if followUpAt != nil {
		s.scheduleFollowUp(ctx, ticket, *followUpAt)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		BrandID:  ticket.BrandID,
		Actor:    events.Actor{UserID: &actor.UserID, Role: actor.Role},
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// applyTransition performs the validated status change under the
// per-ticket lock and returns what the caller needs for side effects.
func (s *TicketService) applyTransition(ctx context.Context, actor Actor, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, domain.TicketStatus, *time.Time, error) {
	unlock := s.locks.lock(ticketID)
	defer unlock()

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, "", nil, err
	}
	if err := s.authorizeBrandAction(actor, ticket); err != nil {
		return nil, "", nil, err
	}
	if !isValidTransition(ticket.Status, newStatus) {
		return nil, "", nil, apperrors.NewInvalidTransition(string(ticket.Status), string(newStatus))
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus

	var followUpAt *time.Time
	switch newStatus {
	case domain.TicketStatusResolved:
		now := s.clk.Now()
		hours := now.Sub(ticket.CreatedAt).Hours()
		ticket.ResolvedAt = &now
		ticket.ResolutionTimeHours = &hours
		at := now.Add(s.followUpDelay)
		followUpAt = &at
	case domain.TicketStatusNew:
		// Reopen clears resolution and rating state. The intake charge is
		// never reversed.
		ticket.ResolvedAt = nil
		ticket.ResolutionTimeHours = nil
		ticket.Rating = nil
		ticket.RatingComment = nil
		ticket.RatedAt = nil
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, "", nil, apperrors.NewStorageError(err)
	}
	s.appendLog(ctx, ticket.ID, &actor.UserID, domain.LogActionStatusChange,
		fmt.Sprintf("status changed from %s to %s", oldStatus, newStatus))
	return ticket, oldStatus, followUpAt, nil
}

// Assign sets the handling agent; a new ticket moves to assigned.
func (s *TicketService) Assign(ctx context.Context, actor Actor, ticketID, assigneeID string) (*domain.Ticket, error) {
	ticket, err := s.applyAssign(ctx, actor, ticketID, assigneeID)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		BrandID:  ticket.BrandID,
		Actor:    events.Actor{UserID: &actor.UserID, Role: actor.Role},
		Payload:  events.TicketAssignedPayload{AssigneeID: assigneeID},
	})
	return ticket, nil
}

func (s *TicketService) applyAssign(ctx context.Context, actor Actor, ticketID, assigneeID string) (*domain.Ticket, error) {
	unlock := s.locks.lock(ticketID)
	defer unlock()

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeBrandAction(actor, ticket); err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusResolved {
		return nil, apperrors.NewInvalidTransition(string(ticket.Status), string(domain.TicketStatusAssigned))
	}

	ticket.AssignedTo = &assigneeID
	if ticket.Status == domain.TicketStatusNew {
		ticket.Status = domain.TicketStatusAssigned
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	s.appendLog(ctx, ticket.ID, &actor.UserID, domain.LogActionAssignment,
		fmt.Sprintf("assigned to %s", assigneeID))
	return ticket, nil
}

// AddResponse appends a message to the ticket thread. Status is
// unchanged; the ticket owner is notified fire-and-forget after the
// lock is released.
func (s *TicketService) AddResponse(ctx context.Context, actor Actor, ticketID, message string) (*domain.TicketResponse, error) {
	ticket, resp, err := s.applyResponse(ctx, actor, ticketID, message)
	if err != nil {
		return nil, err
	}

	userID := actor.UserID
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketResponseAdded,
		TicketID: ticket.ID,
		BrandID:  ticket.BrandID,
		Actor:    events.Actor{UserID: &userID, Role: actor.Role},
		Payload: events.TicketResponseAddedPayload{
			ResponseID:     resp.ID,
			IsFromBrand:    resp.IsFromBrand,
			MessagePreview: stringPreview(message, 100),
		},
	})
	return resp, nil
}

func (s *TicketService) applyResponse(ctx context.Context, actor Actor, ticketID, message string) (*domain.Ticket, *domain.TicketResponse, error) {
	unlock := s.locks.lock(ticketID)
	defer unlock()

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.authorizeParticipant(actor, ticket); err != nil {
		return nil, nil, err
	}

	isFromBrand := actor.Role == domain.RoleBrand || actor.Role == domain.RoleAdmin
	userID := actor.UserID
	resp := &domain.TicketResponse{
		TicketID:    ticket.ID,
		UserID:      &userID,
		Message:     message,
		IsFromBrand: isFromBrand,
	}
	if err := s.responses.Create(ctx, resp); err != nil {
		return nil, nil, apperrors.NewStorageError(err)
	}
	s.appendLog(ctx, ticket.ID, &userID, domain.LogActionResponse, "response added")
	return ticket, resp, nil
}

// Rate records the complainant's rating of a resolution. Legal only on a
// resolved ticket, only by the ticket's own user, only once.
func (s *TicketService) Rate(ctx context.Context, actor Actor, ticketID string, rating int, comment *string) (*domain.Ticket, error) {
	if rating < minRating || rating > maxRating {
		return nil, apperrors.NewInvalidRating(
			fmt.Sprintf("rating must be between %d and %d", minRating, maxRating))
	}

	ticket, err := s.applyRating(ctx, actor, ticketID, rating, comment)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketRated,
		TicketID: ticket.ID,
		BrandID:  ticket.BrandID,
		Actor:    events.Actor{UserID: &actor.UserID, Role: actor.Role},
		Payload:  events.TicketRatedPayload{Rating: rating},
	})
	return ticket, nil
}

func (s *TicketService) applyRating(ctx context.Context, actor Actor, ticketID string, rating int, comment *string) (*domain.Ticket, error) {
	unlock := s.locks.lock(ticketID)
	defer unlock()

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.UserID == nil || *ticket.UserID != actor.UserID {
		return nil, apperrors.NewForbidden("only the ticket's own user may rate it")
	}
	if ticket.Status != domain.TicketStatusResolved {
		return nil, apperrors.NewNotResolved("only resolved tickets can be rated")
	}
	if ticket.Rating != nil {
		return nil, apperrors.NewAlreadyRated("ticket has already been rated")
	}

	now := s.clk.Now()
	ticket.Rating = &rating
	ticket.RatingComment = comment
	ticket.RatedAt = &now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	s.appendLog(ctx, ticket.ID, &actor.UserID, domain.LogActionRating,
		fmt.Sprintf("rated %d", rating))
	return ticket, nil
}

// GetTicket returns a ticket with its thread and audit trail for an
// authorized viewer.
func (s *TicketService) GetTicket(ctx context.Context, actor Actor, ticketID string) (*domain.Ticket, []domain.TicketResponse, []domain.TicketLog, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := s.authorizeParticipant(actor, ticket); err != nil {
		return nil, nil, nil, err
	}
	responses, err := s.responses.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, nil, apperrors.NewStorageError(err)
	}
	logs, err := s.logs.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, nil, apperrors.NewStorageError(err)
	}
	return ticket, responses, logs, nil
}

// ListTickets returns tickets visible to the actor: users see their own,
// brand staff see their brand's, admins see any brand via filter.
func (s *TicketService) ListTickets(ctx context.Context, actor Actor, brandID *string, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		Statuses:    filter.Statuses,
		Category:    filter.Category,
		Channel:     filter.Channel,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       s.clampLimit(filter.Limit),
		Offset:      filter.Offset,
	}
	switch actor.Role {
	case domain.RoleUser:
		userID := actor.UserID
		repoFilter.UserID = &userID
	case domain.RoleBrand:
		if actor.BrandID == nil {
			return nil, apperrors.NewForbidden("brand staff without a brand")
		}
		repoFilter.BrandID = actor.BrandID
	case domain.RoleAdmin:
		repoFilter.BrandID = brandID
	default:
		return nil, apperrors.NewForbidden("unknown role")
	}

	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return tickets, nil
}

// ListPublicComplaints returns anonymized complaints that have been
// public and unresolved past the disclosure age.
func (s *TicketService) ListPublicComplaints(ctx context.Context, limit, offset int) ([]PublicComplaint, error) {
	now := s.clk.Now()
	cutoff := now.Add(-publicDisclosureAge)
	category := "complaint"
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Category:     &category,
		Unresolved:   true,
		PublicOnly:   true,
		CreatedUntil: &cutoff,
		Limit:        s.clampLimit(limit),
		Offset:       offset,
	})
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	// The filter above is a storage-side pushdown of the same predicate;
	// eligibility is still decided here so the two cannot drift.
	complaints := make([]PublicComplaint, 0, len(tickets))
	for i := range tickets {
		if !EligibleForPublic(&tickets[i], now) {
			continue
		}
		complaints = append(complaints, s.anonymize(ctx, &tickets[i], now))
		if err := s.tickets.IncrementViewCount(ctx, tickets[i].ID); err != nil {
			s.logger.Warn("view count update failed", zap.String("ticket_id", tickets[i].ID), zap.Error(err))
		}
	}
	return complaints, nil
}

// anonymize strips user identity, bounds the description and substitutes
// the complainant's city or the default locale.
func (s *TicketService) anonymize(ctx context.Context, ticket *domain.Ticket, now time.Time) PublicComplaint {
	brandName := ""
	if brand, err := s.brands.GetByID(ctx, ticket.BrandID); err == nil {
		brandName = brand.Name
	}
	location := defaultLocale
	if ticket.UserID != nil {
		if user, err := s.users.GetByID(ctx, *ticket.UserID); err == nil && user.City != nil && *user.City != "" {
			location = *user.City
		}
	}
	return PublicComplaint{
		ID:             ticket.ID,
		BrandName:      brandName,
		Description:    truncateDescription(ticket.Description),
		DaysUnresolved: int(now.Sub(ticket.CreatedAt).Hours() / 24),
		Views:          ticket.ViewCount,
		Location:       location,
		CreatedAt:      ticket.CreatedAt,
	}
}

// Urgent reports the derived urgent flag for a ticket at the service's
// current time.
func (s *TicketService) Urgent(ticket *domain.Ticket) bool {
	return IsUrgent(ticket, s.clk.Now())
}

func (s *TicketService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.NewStorageError(err)
	}
	return ticket, nil
}

// authorizeBrandAction permits the owning brand's staff or an admin.
func (s *TicketService) authorizeBrandAction(actor Actor, ticket *domain.Ticket) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if actor.Role == domain.RoleBrand && actor.BrandID != nil && *actor.BrandID == ticket.BrandID {
		return nil
	}
	return apperrors.NewForbidden("not authorized for this brand's tickets")
}

// authorizeParticipant additionally permits the ticket's own user.
func (s *TicketService) authorizeParticipant(actor Actor, ticket *domain.Ticket) error {
	if actor.Role == domain.RoleUser {
		if ticket.UserID != nil && *ticket.UserID == actor.UserID {
			return nil
		}
		return apperrors.NewForbidden("not your ticket")
	}
	return s.authorizeBrandAction(actor, ticket)
}

// scheduleFollowUp enqueues the post-resolution follow-up. The engine
// only requests it; execution belongs to the worker.
func (s *TicketService) scheduleFollowUp(ctx context.Context, ticket *domain.Ticket, runAt time.Time) {
	if s.sched == nil {
		return
	}
	action := scheduler.Action{
		ID:    uuid.NewString(),
		Type:  scheduler.ActionFollowUpCall,
		RunAt: runAt,
		Payload: map[string]string{
			"ticket_id": ticket.ID,
			"brand_id":  ticket.BrandID,
		},
	}
	if err := s.sched.Schedule(ctx, action); err != nil {
		s.logger.Warn("failed to schedule follow-up",
			zap.String("ticket_id", ticket.ID),
			zap.Error(err))
	}
}

func (s *TicketService) appendLog(ctx context.Context, ticketID string, userID *string, action domain.TicketLogAction, details string) {
	entry := &domain.TicketLog{
		TicketID: ticketID,
		UserID:   userID,
		Action:   action,
		Details:  details,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to append ticket log",
			zap.String("ticket_id", ticketID),
			zap.Error(err))
	}
}

func (s *TicketService) clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if s.maxPageSize > 0 && limit > s.maxPageSize {
		return s.maxPageSize
	}
	return limit
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clk.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorEventMeta(userID *string) events.Actor {
	if userID == nil {
		return events.Actor{System: true}
	}
	return events.Actor{UserID: userID, Role: domain.RoleUser}
}

func stringPreview(body string, max int) string {
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
