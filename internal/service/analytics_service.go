package service

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bafa2024/complaint-hub-beta/internal/clock"
	"github.com/bafa2024/complaint-hub-beta/internal/domain"
	"github.com/bafa2024/complaint-hub-beta/internal/repository"
	apperrors "github.com/bafa2024/complaint-hub-beta/pkg/util/errorutil"
)

// RatingSummary separates "no ratings yet" from "rated zero on average".
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// BrandReport aggregates a brand's tickets over a reporting window.
type BrandReport struct {
	BrandID             string          `json:"brand_id"`
	From                *time.Time      `json:"from,omitempty"`
	To                  *time.Time      `json:"to,omitempty"`
	TotalTickets        int             `json:"total_tickets"`
	ByStatus            map[string]int  `json:"by_status"`
	ByCategory          map[string]int  `json:"by_category"`
	ByChannel           map[string]int  `json:"by_channel"`
	ResolvedCount       int             `json:"resolved_count"`
	ResolutionRate      float64         `json:"resolution_rate"`
	AvgResolutionHours  float64         `json:"avg_resolution_hours"`
	Rating              RatingSummary   `json:"rating"`
	UrgentCount         int             `json:"urgent_count"`
	ChargeFailedTickets int             `json:"charge_failed_tickets"`
	TotalChargesApplied decimal.Decimal `json:"total_charges_applied"`
}

// BrandDashboard is the operational snapshot a brand's staff lands on.
type BrandDashboard struct {
	BrandID       string          `json:"brand_id"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
	TotalTickets  int             `json:"total_tickets"`
	NewTickets    int             `json:"new_tickets"`
	OpenTickets   int             `json:"open_tickets"`
	UrgentTickets []domain.Ticket `json:"urgent_tickets"`
}

const dashboardUrgentLimit = 10

// AnalyticsService computes brand-level aggregates. Every report is a
// single pass over the ticket set; nothing is precomputed or cached.
type AnalyticsService struct {
	tickets repository.TicketRepository
	brands  repository.BrandRepository
	clk     clock.Clock
	logger  *zap.Logger
}

// AnalyticsDependencies bundles collaborators for the analytics service.
type AnalyticsDependencies struct {
	TicketRepo repository.TicketRepository
	BrandRepo  repository.BrandRepository
	Clock      clock.Clock
	Logger     *zap.Logger
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(deps AnalyticsDependencies) *AnalyticsService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.System()
	}
	return &AnalyticsService{
		tickets: deps.TicketRepo,
		brands:  deps.BrandRepo,
		clk:     clk,
		logger:  logger,
	}
}

// Report aggregates the brand's tickets within [from, to]. Nil bounds
// are open. An empty window yields a zero report, never an error.
func (s *AnalyticsService) Report(ctx context.Context, brandID string, from, to *time.Time) (*BrandReport, error) {
	if _, err := s.brands.GetByID(ctx, brandID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("brand", map[string]any{"brand_id": brandID})
		}
		return nil, apperrors.NewStorageError(err)
	}
	tickets, err := s.tickets.ListForAnalytics(ctx, brandID, from, to)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	now := s.clk.Now()
	report := &BrandReport{
		BrandID:             brandID,
		From:                from,
		To:                  to,
		ByStatus:            map[string]int{},
		ByCategory:          map[string]int{},
		ByChannel:           map[string]int{},
		TotalChargesApplied: decimal.Zero,
	}

	var resolutionHoursSum float64
	var ratingSum int
	for i := range tickets {
		t := &tickets[i]
		report.TotalTickets++
		report.ByStatus[string(t.Status)]++
		report.ByCategory[t.Category]++
		report.ByChannel[string(t.Channel)]++

		if t.Status == domain.TicketStatusResolved {
			report.ResolvedCount++
			if t.ResolutionTimeHours != nil {
				resolutionHoursSum += *t.ResolutionTimeHours
			}
		}
		if t.Rating != nil {
			ratingSum += *t.Rating
			report.Rating.Count++
		}
		if IsUrgent(t, now) {
			report.UrgentCount++
		}
		if t.ChargeApplied {
			if t.ChargeAmount != nil {
				report.TotalChargesApplied = report.TotalChargesApplied.Add(*t.ChargeAmount)
			}
		} else {
			report.ChargeFailedTickets++
		}
	}

	if report.TotalTickets > 0 {
		report.ResolutionRate = float64(report.ResolvedCount) / float64(report.TotalTickets)
	}
	if report.ResolvedCount > 0 {
		report.AvgResolutionHours = resolutionHoursSum / float64(report.ResolvedCount)
	}
	if report.Rating.Count > 0 {
		report.Rating.Average = float64(ratingSum) / float64(report.Rating.Count)
	}
	return report, nil
}

// Dashboard returns the brand's live operational snapshot: counts of new
// and open tickets plus the most urgent unresolved tickets, ordered by
// urgency rank then age.
func (s *AnalyticsService) Dashboard(ctx context.Context, brandID string) (*BrandDashboard, error) {
	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("brand", map[string]any{"brand_id": brandID})
		}
		return nil, apperrors.NewStorageError(err)
	}
	tickets, err := s.tickets.ListForAnalytics(ctx, brandID, nil, nil)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	now := s.clk.Now()
	dashboard := &BrandDashboard{
		BrandID:       brandID,
		CreditBalance: brand.CreditBalance,
	}
	var urgent []domain.Ticket
	for i := range tickets {
		t := &tickets[i]
		dashboard.TotalTickets++
		switch t.Status {
		case domain.TicketStatusNew:
			dashboard.NewTickets++
			dashboard.OpenTickets++
		case domain.TicketStatusAssigned, domain.TicketStatusInProgress:
			dashboard.OpenTickets++
		}
		if IsUrgent(t, now) {
			urgent = append(urgent, *t)
		}
	}
	sort.Slice(urgent, func(i, j int) bool {
		if urgent[i].Urgency.Rank() != urgent[j].Urgency.Rank() {
			return urgent[i].Urgency.Rank() > urgent[j].Urgency.Rank()
		}
		return urgent[i].CreatedAt.Before(urgent[j].CreatedAt)
	})
	if len(urgent) > dashboardUrgentLimit {
		urgent = urgent[:dashboardUrgentLimit]
	}
	dashboard.UrgentTickets = urgent
	return dashboard, nil
}
