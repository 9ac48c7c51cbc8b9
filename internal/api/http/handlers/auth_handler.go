package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/bafa2024/complaint-hub-beta/internal/api/dto"
	"github.com/bafa2024/complaint-hub-beta/internal/domain"
	"github.com/bafa2024/complaint-hub-beta/internal/service"
	apperrors "github.com/bafa2024/complaint-hub-beta/pkg/util/errorutil"
)

// AuthHandler manages registration and login endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// RegisterUser POST /auth/users/register.
func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		return apperrors.NewValidationError("name, email and password (min 8 chars) required", nil)
	}

	user, token, exp, err := h.service.RegisterUser(c.Context(), service.RegisterUserInput{
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Password: req.Password,
		Phone:    req.Phone,
		City:     req.City,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      userResponse(user),
	}})
}

// RegisterBrand POST /auth/brands/register.
func (h *AuthHandler) RegisterBrand(c *fiber.Ctx) error {
	var req dto.RegisterBrandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BrandName == "" || req.BrandEmail == "" || req.AdminName == "" || req.AdminEmail == "" || len(req.AdminPassword) < 8 {
		return apperrors.NewValidationError("brand and admin account fields required", nil)
	}
	initialCredit := decimal.Zero
	if req.InitialCredit != "" {
		parsed, err := decimal.NewFromString(req.InitialCredit)
		if err != nil || parsed.IsNegative() {
			return apperrors.NewValidationError("initial_credit must be a non-negative number", nil)
		}
		initialCredit = parsed
	}

	brand, user, token, exp, err := h.service.RegisterBrand(c.Context(), service.RegisterBrandInput{
		BrandName:     req.BrandName,
		BrandEmail:    strings.ToLower(req.BrandEmail),
		SupportEmail:  req.SupportEmail,
		PhoneNumber:   req.PhoneNumber,
		AdminName:     req.AdminName,
		AdminEmail:    strings.ToLower(req.AdminEmail),
		AdminPassword: req.AdminPassword,
		InitialCredit: initialCredit,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"brand": brandResponse(brand),
		"auth": dto.AuthResponse{
			Token:     token,
			ExpiresAt: exp,
			User:      userResponse(user),
		},
	}})
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}
	user, token, exp, err := h.service.Login(c.Context(), strings.ToLower(req.Email), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      userResponse(user),
	}})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		BrandID: user.BrandID,
		City:    user.City,
	}
}

func brandResponse(brand *domain.Brand) dto.BrandResponse {
	return dto.BrandResponse{
		ID:            brand.ID,
		Name:          brand.Name,
		Email:         brand.Email,
		SupportEmail:  brand.SupportEmail,
		PhoneNumber:   brand.PhoneNumber,
		CreditBalance: brand.CreditBalance.String(),
		Active:        brand.Active,
		CreatedAt:     brand.CreatedAt,
	}
}
