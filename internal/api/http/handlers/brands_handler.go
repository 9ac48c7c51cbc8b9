package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/bafa2024/complaint-hub-beta/internal/api/dto"
	"github.com/bafa2024/complaint-hub-beta/internal/auth"
	"github.com/bafa2024/complaint-hub-beta/internal/domain"
	"github.com/bafa2024/complaint-hub-beta/internal/service"
	apperrors "github.com/bafa2024/complaint-hub-beta/pkg/util/errorutil"
)

// BrandsHandler manages brand-facing dashboard, analytics and credit
// ledger endpoints.
type BrandsHandler struct {
	analytics *service.AnalyticsService
	ledger    *service.LedgerService
	currency  string
}

// NewBrandsHandler constructs handler.
func NewBrandsHandler(analytics *service.AnalyticsService, ledger *service.LedgerService, currency string) *BrandsHandler {
	return &BrandsHandler{analytics: analytics, ledger: ledger, currency: currency}
}

// Dashboard GET /brands/:id/dashboard.
func (h *BrandsHandler) Dashboard(c *fiber.Ctx) error {
	brandID, err := h.authorizeBrand(c)
	if err != nil {
		return err
	}
	dashboard, err := h.analytics.Dashboard(c.Context(), brandID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dashboard})
}

// Report GET /brands/:id/analytics.
func (h *BrandsHandler) Report(c *fiber.Ctx) error {
	brandID, err := h.authorizeBrand(c)
	if err != nil {
		return err
	}
	from := parseTime(c.Query("from"))
	to := parseTime(c.Query("to"))
	report, err := h.analytics.Report(c.Context(), brandID, from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

// Balance GET /brands/:id/credits.
func (h *BrandsHandler) Balance(c *fiber.Ctx) error {
	brandID, err := h.authorizeBrand(c)
	if err != nil {
		return err
	}
	balance, err := h.ledger.Balance(c.Context(), brandID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BalanceResponse{
		BrandID:  brandID,
		Balance:  balance.String(),
		Currency: h.currency,
	}})
}

// TopUp POST /brands/:id/credits.
func (h *BrandsHandler) TopUp(c *fiber.Ctx) error {
	brandID, err := h.authorizeBrand(c)
	if err != nil {
		return err
	}
	var req dto.TopUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return apperrors.NewValidationError("amount must be a number", nil)
	}
	description := req.Description
	if description == "" {
		description = "credit top-up"
	}
	txn, err := h.ledger.Credit(c.Context(), brandID, amount, description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": transactionResponse(txn)})
}

// Transactions GET /brands/:id/credits/transactions.
func (h *BrandsHandler) Transactions(c *fiber.Ctx) error {
	brandID, err := h.authorizeBrand(c)
	if err != nil {
		return err
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	txns, err := h.ledger.ListTransactions(c.Context(), brandID, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, transactionResponse(&txns[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// authorizeBrand resolves the :id parameter and checks the principal may
// act for that brand.
func (h *BrandsHandler) authorizeBrand(c *fiber.Ctx) (string, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return "", apperrors.NewUnauthorized("authentication required")
	}
	brandID := c.Params("id")
	if brandID == "" {
		return "", apperrors.NewValidationError("brand id required", nil)
	}
	if principal.Role == domain.RoleAdmin {
		return brandID, nil
	}
	if principal.Role == domain.RoleBrand && principal.BrandID != nil && *principal.BrandID == brandID {
		return brandID, nil
	}
	return "", apperrors.NewForbidden("not authorized for this brand")
}

func transactionResponse(txn *domain.CreditTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:           txn.ID,
		Amount:       txn.Amount.String(),
		Type:         txn.Type,
		TicketID:     txn.TicketID,
		Description:  txn.Description,
		BalanceAfter: txn.BalanceAfter.String(),
		CreatedAt:    txn.CreatedAt,
	}
}
