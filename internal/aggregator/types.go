package aggregator

import (
	"github.com/shopspring/decimal"

	"github.com/ArowuTest/paymethods-config-backend/internal/fields"
	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/scoped"
)

// ConfigRow is a transaction config denormalized with its provider and method
type ConfigRow struct {
	ProviderID   string
	ProviderCode string
	ProviderName string
	MethodID     string

	CurrencyIso3             string
	Type                     models.TransactionType
	MinAmount                decimal.Decimal
	MaxAmount                decimal.Decimal
	Period                   int
	Order                    int
	IsEnabled                bool
	PaymentAccountRequired   bool
	IsRequestDetailsRequired bool
}

// FieldLookup returns the field rows attached to an entity for a transaction type
type FieldLookup func(entityID string, entityType models.EntityType, txType models.TransactionType) []fields.Row

// RecordLookup returns the scoped records (credentials or bank accounts) of a provider
type RecordLookup func(providerID string) []scoped.Record

// Input is everything one aggregation needs
type Input struct {
	Country   string
	Authority string
	Rows      []ConfigRow

	Fields       FieldLookup
	Credentials  RecordLookup
	BankAccounts RecordLookup
}

// DepositSettings are the deposit limits and fields of a provider
type DepositSettings struct {
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
	Enabled bool            `json:"enabled"`
	Fields  []fields.Field  `json:"fields"`
}

// PayoutSettings are the payout limits and fields of a provider
type PayoutSettings struct {
	Min                    decimal.Decimal `json:"min"`
	Max                    decimal.Decimal `json:"max"`
	Enabled                bool            `json:"enabled"`
	Order                  int             `json:"order"`
	PaymentAccountRequired bool            `json:"paymentAccountRequired"`
	Fields                 []fields.Field  `json:"fields"`
}

// RefundSettings are the refund rules of a provider
type RefundSettings struct {
	Order                        int             `json:"order"`
	Enabled                      bool            `json:"enabled"`
	MinRefundableAmountThreshold decimal.Decimal `json:"minRefundableAmountThreshold"`
	MaxRefundablePeriodInDays    int             `json:"maxRefundablePeriodInDays"`
	IsRequestDetailsRequired     bool            `json:"isRequestDetailsRequired"`
}

// ProviderConfig is one provider inside a currency bucket
type ProviderConfig struct {
	Code        string                 `json:"code"`
	Name        string                 `json:"name"`
	StpSettings map[string]interface{} `json:"stpSettings"`
	Credentials scoped.Payload         `json:"credentials"`
	Accounts    []scoped.Payload       `json:"accounts"`
	Fields      []fields.Field         `json:"fields"`

	// not tracked yet, always zero
	ApprovalRate          float64 `json:"approvalRate"`
	AverageProcessingTime float64 `json:"averageProcessingTime"`

	Deposit *DepositSettings `json:"deposit,omitempty"`
	Payout  *PayoutSettings  `json:"payout,omitempty"`
	Refund  *RefundSettings  `json:"refund,omitempty"`
}

// CurrencyConfig is one currency bucket of the read API
type CurrencyConfig struct {
	Currency  string           `json:"currency"`
	Providers []ProviderConfig `json:"providers"`
}
