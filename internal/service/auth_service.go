package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bafa2024/complaint-hub-beta/internal/auth"
	"github.com/bafa2024/complaint-hub-beta/internal/config"
	"github.com/bafa2024/complaint-hub-beta/internal/domain"
	"github.com/bafa2024/complaint-hub-beta/internal/repository"
	apperrors "github.com/bafa2024/complaint-hub-beta/pkg/util/errorutil"
)

// RegisterUserInput holds end-user signup fields.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
	City     *string
}

// RegisterBrandInput holds brand signup fields. Signing up a brand
// creates the brand record plus its first brand-role account.
type RegisterBrandInput struct {
	BrandName     string
	BrandEmail    string
	SupportEmail  *string
	PhoneNumber   *string
	AdminName     string
	AdminEmail    string
	AdminPassword string
	InitialCredit decimal.Decimal
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	brands     repository.BrandRepository
	ledger     *LedgerService
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	BrandRepo repository.BrandRepository
	Ledger    *LedgerService
	Logger    *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		brands:     deps.BrandRepo,
		ledger:     deps.Ledger,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// RegisterUser creates a new end-user account and returns a signed token.
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, apperrors.NewStorageError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		City:         input.City,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.NewStorageError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role, nil)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// RegisterBrand creates a brand together with its first brand account
// and optionally seeds the credit ledger with an opening balance.
func (s *AuthService) RegisterBrand(ctx context.Context, input RegisterBrandInput) (*domain.Brand, *domain.User, string, time.Time, error) {
	if _, err := s.brands.GetByEmail(ctx, input.BrandEmail); err == nil {
		return nil, nil, "", time.Time{}, apperrors.NewConflict("brand email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, nil, "", time.Time{}, apperrors.NewStorageError(err)
	}
	if _, err := s.users.GetByEmail(ctx, input.AdminEmail); err == nil {
		return nil, nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, nil, "", time.Time{}, apperrors.NewStorageError(err)
	}

	brand := &domain.Brand{
		Name:          input.BrandName,
		Email:         input.BrandEmail,
		SupportEmail:  input.SupportEmail,
		PhoneNumber:   input.PhoneNumber,
		CreditBalance: decimal.Zero,
		Active:        true,
	}
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, nil, "", time.Time{}, apperrors.NewStorageError(err)
	}

	hash, err := auth.HashPassword(input.AdminPassword, s.bcryptCost)
	if err != nil {
		return nil, nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	brandID := brand.ID
	user := &domain.User{
		Name:         input.AdminName,
		Email:        input.AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleBrand,
		BrandID:      &brandID,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, "", time.Time{}, apperrors.NewStorageError(err)
	}

	if s.ledger != nil && input.InitialCredit.GreaterThan(decimal.Zero) {
		if _, err := s.ledger.Credit(ctx, brand.ID, input.InitialCredit, "opening balance"); err != nil {
			s.logger.Warn("failed to seed opening balance",
				zap.String("brand_id", brand.ID),
				zap.Error(err))
		} else {
			brand.CreditBalance = input.InitialCredit
		}
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role, user.BrandID)
	if err != nil {
		return nil, nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return brand, user, token, exp, nil
}

// Login authenticates any account by email and returns a role-bearing token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewStorageError(err)
	}
	if !user.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("account disabled")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role, user.BrandID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
