package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Brand is the aggregate for companies receiving complaints. Its
// CreditBalance is owned by the ledger: only a ledger transaction may
// change it, and the stored value always equals the balance_after of
// the brand's most recent transaction.
type Brand struct {
	ID                 string
	Name               string
	Email              string
	SupportEmail       *string
	PhoneNumber        *string
	CreditBalance      decimal.Decimal
	CreditsUpdatedAt   time.Time
	AutoRoutingEnabled bool
	RoutingRules       *string
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
