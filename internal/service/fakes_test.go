package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
	"github.com/bafa2024/complaint-hub-beta/internal/events"
	"github.com/bafa2024/complaint-hub-beta/internal/repository"
)

// In-memory repositories backing the service tests. They mirror the
// Postgres implementations closely enough for lifecycle semantics:
// reads return snapshots, writes replace stored state.

type memStore struct {
	mu      sync.Mutex
	now     func() time.Time
	brands  map[string]domain.Brand
	users   map[string]domain.User
	tickets map[string]domain.Ticket
	order   []string
	resps   []domain.TicketResponse
	logs    []domain.TicketLog
	txns    []domain.CreditTransaction
	seq     int

	failApply bool
}

func newMemStore(now func() time.Time) *memStore {
	if now == nil {
		now = time.Now
	}
	return &memStore{
		now:     now,
		brands:  make(map[string]domain.Brand),
		users:   make(map[string]domain.User),
		tickets: make(map[string]domain.Ticket),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return prefix + "-" + strconv.Itoa(s.seq)
}

func (s *memStore) addBrand(name string, balance decimal.Decimal) domain.Brand {
	s.mu.Lock()
	defer s.mu.Unlock()
	brand := domain.Brand{
		ID:            s.nextID("brand"),
		Name:          name,
		Email:         name + "@example.com",
		CreditBalance: balance,
		Active:        true,
		CreatedAt:     s.now(),
		UpdatedAt:     s.now(),
	}
	s.brands[brand.ID] = brand
	return brand
}

func (s *memStore) addUser(name string, role domain.Role, brandID *string, city *string) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := domain.User{
		ID:        s.nextID("user"),
		Name:      name,
		Email:     name + "@example.com",
		Role:      role,
		BrandID:   brandID,
		City:      city,
		Active:    true,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	s.users[user.ID] = user
	return user
}

// brandRepo

type memBrandRepo struct{ store *memStore }

func (r *memBrandRepo) Create(_ context.Context, brand *domain.Brand) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	brand.ID = r.store.nextID("brand")
	brand.CreatedAt = r.store.now()
	brand.UpdatedAt = brand.CreatedAt
	r.store.brands[brand.ID] = *brand
	return nil
}

func (r *memBrandRepo) Update(_ context.Context, brand *domain.Brand) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.brands[brand.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.store.brands[brand.ID] = *brand
	return nil
}

func (r *memBrandRepo) GetByID(_ context.Context, id string) (*domain.Brand, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	brand, ok := r.store.brands[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := brand
	return &out, nil
}

func (r *memBrandRepo) GetByEmail(_ context.Context, email string) (*domain.Brand, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, brand := range r.store.brands {
		if brand.Email == email {
			out := brand
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memBrandRepo) SetActive(_ context.Context, id string, active bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	brand, ok := r.store.brands[id]
	if !ok {
		return pgx.ErrNoRows
	}
	brand.Active = active
	r.store.brands[id] = brand
	return nil
}

// ledgerRepo

type memLedgerRepo struct{ store *memStore }

func (r *memLedgerRepo) ApplyTransaction(_ context.Context, txn *domain.CreditTransaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failApply {
		return errors.New("storage unavailable")
	}
	brand, ok := r.store.brands[txn.BrandID]
	if !ok {
		return pgx.ErrNoRows
	}
	brand.CreditBalance = txn.BalanceAfter
	brand.CreditsUpdatedAt = r.store.now()
	r.store.brands[txn.BrandID] = brand

	txn.ID = r.store.nextID("txn")
	txn.CreatedAt = r.store.now()
	r.store.txns = append(r.store.txns, *txn)
	return nil
}

func (r *memLedgerRepo) Balance(_ context.Context, brandID string) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	brand, ok := r.store.brands[brandID]
	if !ok {
		return decimal.Zero, pgx.ErrNoRows
	}
	return brand.CreditBalance, nil
}

func (r *memLedgerRepo) ListByBrand(_ context.Context, brandID string, limit, offset int) ([]domain.CreditTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.CreditTransaction
	for i := len(r.store.txns) - 1; i >= 0; i-- {
		if r.store.txns[i].BrandID == brandID {
			out = append(out, r.store.txns[i])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ticketRepo

type memTicketRepo struct{ store *memStore }

func (r *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ticket.ID = r.store.nextID("ticket")
	ticket.CreatedAt = r.store.now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.store.tickets[ticket.ID] = *ticket
	r.store.order = append(r.store.order, ticket.ID)
	return nil
}

func (r *memTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = r.store.now()
	r.store.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ticket, ok := r.store.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := ticket
	return &out, nil
}

func (r *memTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []domain.Ticket
	for _, id := range r.store.order {
		t := r.store.tickets[id]
		if !ticketMatches(&t, filter) {
			continue
		}
		matched = append(matched, t)
	}
	// Newest first, as the SQL ORDER BY does.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func ticketMatches(t *domain.Ticket, filter repository.TicketFilter) bool {
	if filter.BrandID != nil && t.BrandID != *filter.BrandID {
		return false
	}
	if filter.UserID != nil && (t.UserID == nil || *t.UserID != *filter.UserID) {
		return false
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if t.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Category != nil && t.Category != *filter.Category {
		return false
	}
	if filter.Channel != nil && t.Channel != *filter.Channel {
		return false
	}
	if filter.Unresolved && t.Status == domain.TicketStatusResolved {
		return false
	}
	if filter.PublicOnly && !t.IsPublic {
		return false
	}
	if filter.CreatedFrom != nil && t.CreatedAt.Before(*filter.CreatedFrom) {
		return false
	}
	if filter.CreatedTo != nil && t.CreatedAt.After(*filter.CreatedTo) {
		return false
	}
	if filter.CreatedUntil != nil && !t.CreatedAt.Before(*filter.CreatedUntil) {
		return false
	}
	return true
}

func (r *memTicketRepo) ListForAnalytics(_ context.Context, brandID string, from, to *time.Time) ([]domain.Ticket, error) {
	return r.ListWithFilter(context.Background(), repository.TicketFilter{
		BrandID:     &brandID,
		CreatedFrom: from,
		CreatedTo:   to,
	})
}

func (r *memTicketRepo) IncrementViewCount(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ticket, ok := r.store.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.ViewCount++
	r.store.tickets[id] = ticket
	return nil
}

// responseRepo

type memResponseRepo struct{ store *memStore }

func (r *memResponseRepo) Create(_ context.Context, resp *domain.TicketResponse) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	resp.ID = r.store.nextID("resp")
	resp.CreatedAt = r.store.now()
	r.store.resps = append(r.store.resps, *resp)
	return nil
}

func (r *memResponseRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketResponse, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.TicketResponse
	for _, resp := range r.store.resps {
		if resp.TicketID == ticketID {
			out = append(out, resp)
		}
	}
	return out, nil
}

// logRepo

type memLogRepo struct{ store *memStore }

func (r *memLogRepo) Create(_ context.Context, entry *domain.TicketLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	entry.ID = r.store.nextID("log")
	entry.CreatedAt = r.store.now()
	r.store.logs = append(r.store.logs, *entry)
	return nil
}

func (r *memLogRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketLog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.TicketLog
	for _, entry := range r.store.logs {
		if entry.TicketID == ticketID {
			out = append(out, entry)
		}
	}
	return out, nil
}

// userRepo

type memUserRepo struct{ store *memStore }

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user.ID = r.store.nextID("user")
	user.CreatedAt = r.store.now()
	user.UpdatedAt = user.CreatedAt
	r.store.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.store.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := user
	return &out, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email == email {
			out := user
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// captureDispatcher records published events for assertions.

type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) ofType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}
