package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
	"github.com/bafa2024/complaint-hub-beta/internal/repository"
	apperrors "github.com/bafa2024/complaint-hub-beta/pkg/util/errorutil"
)

// LedgerService owns brand credit balances. Charges and credits against
// one brand are serialized behind a per-brand mutex, so two concurrent
// charges against a balance sufficient for only one yield exactly one
// success. The balance update and transaction append behind each call
// commit as one unit.
type LedgerService struct {
	brands repository.BrandRepository
	ledger repository.LedgerRepository
	logger *zap.Logger
	locks  *keyedMutex
}

// LedgerDependencies bundles repositories for the ledger service.
type LedgerDependencies struct {
	BrandRepo  repository.BrandRepository
	LedgerRepo repository.LedgerRepository
	Logger     *zap.Logger
}

// NewLedgerService constructs the service.
func NewLedgerService(deps LedgerDependencies) *LedgerService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{
		brands: deps.BrandRepo,
		ledger: deps.LedgerRepo,
		logger: logger,
		locks:  newKeyedMutex(),
	}
}

// Charge debits amount from the brand's balance and appends a debit
// transaction. No overdraft: a charge exceeding the balance fails with
// INSUFFICIENT_FUNDS and leaves no observable side effect.
func (s *LedgerService) Charge(ctx context.Context, brandID string, amount decimal.Decimal, ticketID *string, description string) (*domain.CreditTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewInvalidAmount("charge amount must be positive")
	}

	unlock := s.locks.lock(brandID)
	defer unlock()

	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("brand", map[string]any{"brand_id": brandID})
		}
		return nil, apperrors.NewStorageError(err)
	}

	if amount.GreaterThan(brand.CreditBalance) {
		return nil, apperrors.NewInsufficientFunds("insufficient credit balance", map[string]any{
			"balance":  brand.CreditBalance.String(),
			"required": amount.String(),
		})
	}

	txn := &domain.CreditTransaction{
		BrandID:      brandID,
		Amount:       amount.Neg(),
		Type:         domain.TransactionTypeDebit,
		TicketID:     ticketID,
		Description:  description,
		BalanceAfter: brand.CreditBalance.Sub(amount),
	}
	if err := s.ledger.ApplyTransaction(ctx, txn); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.logger.Info("brand charged",
		zap.String("brand_id", brandID),
		zap.String("amount", amount.String()),
		zap.String("balance_after", txn.BalanceAfter.String()))
	return txn, nil
}

// Credit adds funds to the brand's balance, e.g. a top-up.
func (s *LedgerService) Credit(ctx context.Context, brandID string, amount decimal.Decimal, description string) (*domain.CreditTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewInvalidAmount("credit amount must be positive")
	}

	unlock := s.locks.lock(brandID)
	defer unlock()

	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("brand", map[string]any{"brand_id": brandID})
		}
		return nil, apperrors.NewStorageError(err)
	}

	txn := &domain.CreditTransaction{
		BrandID:      brandID,
		Amount:       amount,
		Type:         domain.TransactionTypeCredit,
		Description:  description,
		BalanceAfter: brand.CreditBalance.Add(amount),
	}
	if err := s.ledger.ApplyTransaction(ctx, txn); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.logger.Info("brand credited",
		zap.String("brand_id", brandID),
		zap.String("amount", amount.String()),
		zap.String("balance_after", txn.BalanceAfter.String()))
	return txn, nil
}

// Balance returns the balance reflected by the latest committed
// transaction.
func (s *LedgerService) Balance(ctx context.Context, brandID string) (decimal.Decimal, error) {
	balance, err := s.ledger.Balance(ctx, brandID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Zero, apperrors.NewNotFound("brand", map[string]any{"brand_id": brandID})
		}
		return decimal.Zero, apperrors.NewStorageError(err)
	}
	return balance, nil
}

// ListTransactions returns the brand's transaction history, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context, brandID string, limit, offset int) ([]domain.CreditTransaction, error) {
	txns, err := s.ledger.ListByBrand(ctx, brandID, limit, offset)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return txns, nil
}
