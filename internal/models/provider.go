package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provider represents a payment provider (PSP)
type Provider struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code      string             `bson:"code" json:"code"`
	Name      string             `bson:"name" json:"name"`
	IsEnabled bool               `bson:"isEnabled" json:"isEnabled"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProviderMethod represents one payment method offered through a provider
type ProviderMethod struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProviderID primitive.ObjectID `bson:"providerId" json:"providerId"`
	Code       string             `bson:"code" json:"code"`
	Name       string             `bson:"name" json:"name"`
	// Empty means the method is available in every country/authority
	CountryAuthorities []CountryAuthority `bson:"countryAuthorities,omitempty" json:"countryAuthorities,omitempty"`
	IsEnabled          bool               `bson:"isEnabled" json:"isEnabled"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
