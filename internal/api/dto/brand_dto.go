package dto

import (
	"time"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
)

// RegisterBrandRequest payload. Signing up a brand also creates its
// first brand-role account.
type RegisterBrandRequest struct {
	BrandName     string  `json:"brand_name"`
	BrandEmail    string  `json:"brand_email"`
	SupportEmail  *string `json:"support_email,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	AdminName     string  `json:"admin_name"`
	AdminEmail    string  `json:"admin_email"`
	AdminPassword string  `json:"admin_password"`
	InitialCredit string  `json:"initial_credit,omitempty"`
}

// BrandResponse describes a brand.
type BrandResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	SupportEmail  *string   `json:"support_email,omitempty"`
	PhoneNumber   *string   `json:"phone_number,omitempty"`
	CreditBalance string    `json:"credit_balance"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// TopUpRequest payload for adding credits.
type TopUpRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

// TransactionResponse describes a ledger entry.
type TransactionResponse struct {
	ID           string                 `json:"id"`
	Amount       string                 `json:"amount"`
	Type         domain.TransactionType `json:"type"`
	TicketID     *string                `json:"ticket_id,omitempty"`
	Description  string                 `json:"description"`
	BalanceAfter string                 `json:"balance_after"`
	CreatedAt    time.Time              `json:"created_at"`
}

// BalanceResponse reports the current ledger balance.
type BalanceResponse struct {
	BrandID  string `json:"brand_id"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}
