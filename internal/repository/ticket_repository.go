package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
)

// TicketFilter captures listing parameters.
type TicketFilter struct {
	BrandID      *string
	UserID       *string
	Statuses     []domain.TicketStatus
	Category     *string
	Channel      *domain.TicketChannel
	Unresolved   bool
	PublicOnly   bool
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	CreatedUntil *time.Time
	Limit        int
	Offset       int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	// ListForAnalytics returns the full snapshot for a brand and optional
	// window, unpaginated, for single-pass aggregation.
	ListForAnalytics(ctx context.Context, brandID string, from, to *time.Time) ([]domain.Ticket, error)
	IncrementViewCount(ctx context.Context, id string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, brand_id, user_id, channel, description, category, status, urgency,
               sentiment_score, abuse_level, assigned_to, rating, rating_comment, rated_at,
               resolved_at, resolution_time_hours, is_public, view_count, charge_applied,
               charge_amount, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (brand_id, user_id, channel, description, category, status, urgency,
            sentiment_score, abuse_level, is_public)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, view_count, charge_applied, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.BrandID,
		ticket.UserID,
		ticket.Channel,
		ticket.Description,
		ticket.Category,
		ticket.Status,
		ticket.Urgency,
		ticket.SentimentScore,
		ticket.AbuseLevel,
		ticket.IsPublic,
	).Scan(&ticket.ID, &ticket.ViewCount, &ticket.ChargeApplied, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, urgency=$2, category=$3, assigned_to=$4,
            rating=$5, rating_comment=$6, rated_at=$7,
            resolved_at=$8, resolution_time_hours=$9,
            is_public=$10, charge_applied=$11, charge_amount=$12, updated_at=NOW()
        WHERE id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Status,
		ticket.Urgency,
		ticket.Category,
		ticket.AssignedTo,
		ticket.Rating,
		ticket.RatingComment,
		ticket.RatedAt,
		ticket.ResolvedAt,
		ticket.ResolutionTimeHours,
		ticket.IsPublic,
		ticket.ChargeApplied,
		ticket.ChargeAmount,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(ticketFields(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.BrandID != nil {
		args = append(args, *filter.BrandID)
		clauses = append(clauses, fmt.Sprintf("brand_id=$%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Channel != nil {
		args = append(args, *filter.Channel)
		clauses = append(clauses, fmt.Sprintf("channel=$%d", len(args)))
	}
	if filter.Unresolved {
		args = append(args, domain.TicketStatusResolved)
		clauses = append(clauses, fmt.Sprintf("status != $%d", len(args)))
	}
	if filter.PublicOnly {
		clauses = append(clauses, "is_public = TRUE")
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.CreatedUntil != nil {
		args = append(args, *filter.CreatedUntil)
		clauses = append(clauses, fmt.Sprintf("created_at < $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListForAnalytics(ctx context.Context, brandID string, from, to *time.Time) ([]domain.Ticket, error) {
	clauses := []string{"brand_id=$1"}
	args := []any{brandID}
	if from != nil {
		args = append(args, *from)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at ASC`,
		ticketColumns, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE tickets SET view_count = view_count + 1 WHERE id=$1`, id)
	return err
}

func ticketFields(t *domain.Ticket) []any {
	return []any{
		&t.ID,
		&t.BrandID,
		&t.UserID,
		&t.Channel,
		&t.Description,
		&t.Category,
		&t.Status,
		&t.Urgency,
		&t.SentimentScore,
		&t.AbuseLevel,
		&t.AssignedTo,
		&t.Rating,
		&t.RatingComment,
		&t.RatedAt,
		&t.ResolvedAt,
		&t.ResolutionTimeHours,
		&t.IsPublic,
		&t.ViewCount,
		&t.ChargeApplied,
		&t.ChargeAmount,
		&t.CreatedAt,
		&t.UpdatedAt,
	}
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(ticketFields(&ticket)...); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
