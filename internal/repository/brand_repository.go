package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
)

// BrandRepository encapsulates brand persistence. It deliberately has no
// balance mutator: credit_balance is written only through the ledger.
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	Update(ctx context.Context, brand *domain.Brand) error
	GetByID(ctx context.Context, id string) (*domain.Brand, error)
	GetByEmail(ctx context.Context, email string) (*domain.Brand, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type brandRepository struct {
	pool *pgxpool.Pool
}

// NewBrandRepository returns a Postgres-backed implementation.
func NewBrandRepository(pool *pgxpool.Pool) BrandRepository {
	return &brandRepository{pool: pool}
}

func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	const query = `
        INSERT INTO brands (name, email, support_email, phone_number, credit_balance, auto_routing_enabled, routing_rules, active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, credits_updated_at, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		brand.Name,
		brand.Email,
		brand.SupportEmail,
		brand.PhoneNumber,
		brand.CreditBalance,
		brand.AutoRoutingEnabled,
		brand.RoutingRules,
		brand.Active,
	).Scan(&brand.ID, &brand.CreditsUpdatedAt, &brand.CreatedAt, &brand.UpdatedAt)
}

func (r *brandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	const query = `
        UPDATE brands SET name=$1, email=$2, support_email=$3, phone_number=$4,
            auto_routing_enabled=$5, routing_rules=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		brand.Name,
		brand.Email,
		brand.SupportEmail,
		brand.PhoneNumber,
		brand.AutoRoutingEnabled,
		brand.RoutingRules,
		brand.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *brandRepository) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	const query = brandSelect + ` WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *brandRepository) GetByEmail(ctx context.Context, email string) (*domain.Brand, error) {
	const query = brandSelect + ` WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *brandRepository) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE brands SET active=$1, updated_at=NOW() WHERE id=$2`, active, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const brandSelect = `
        SELECT id, name, email, support_email, phone_number, credit_balance, credits_updated_at,
               auto_routing_enabled, routing_rules, active, created_at, updated_at
        FROM brands`

func (r *brandRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Brand, error) {
	var brand domain.Brand
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&brand.ID,
		&brand.Name,
		&brand.Email,
		&brand.SupportEmail,
		&brand.PhoneNumber,
		&brand.CreditBalance,
		&brand.CreditsUpdatedAt,
		&brand.AutoRoutingEnabled,
		&brand.RoutingRules,
		&brand.Active,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &brand, nil
}
