package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionConfig holds limits and switches for one provider method, currency and type
type TransactionConfig struct {
	ID                       primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	ProviderMethodID         primitive.ObjectID   `bson:"providerMethodId" json:"providerMethodId"`
	CurrencyIso3             string               `bson:"currencyIso3,omitempty" json:"currencyIso3,omitempty"`
	Type                     TransactionType      `bson:"type" json:"type"`
	MinAmount                primitive.Decimal128 `bson:"minAmount" json:"minAmount"`
	MaxAmount                primitive.Decimal128 `bson:"maxAmount" json:"maxAmount"`
	Period                   int                  `bson:"period" json:"period"`
	Order                    int                  `bson:"order" json:"order"`
	IsEnabled                bool                 `bson:"isEnabled" json:"isEnabled"`
	PaymentAccountRequired   bool                 `bson:"paymentAccountRequired" json:"paymentAccountRequired"`
	IsRequestDetailsRequired bool                 `bson:"isRequestDetailsRequired" json:"isRequestDetailsRequired"`
	CreatedAt                time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt                time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// TransactionConfigRow is a TransactionConfig joined with its method and provider
type TransactionConfigRow struct {
	TransactionConfig `bson:",inline"`
	ProviderID        primitive.ObjectID `bson:"providerId"`
	ProviderCode      string             `bson:"providerCode"`
	ProviderName      string             `bson:"providerName"`
	MethodCode        string             `bson:"methodCode"`

	// Copied from the method; empty means available everywhere
	MethodCountryAuthorities []CountryAuthority `bson:"methodCountryAuthorities,omitempty"`
}
