package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScopedRecord is a credential or bank account scoped by authority, country and currency.
// Empty parameters act as wildcards.
type ScopedRecord struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	ProviderID primitive.ObjectID     `bson:"providerId" json:"providerId"`
	Authority  string                 `bson:"authority,omitempty" json:"authority,omitempty"`
	Country    string                 `bson:"country,omitempty" json:"country,omitempty"`
	Currency   string                 `bson:"currency,omitempty" json:"currency,omitempty"`
	Payload    map[string]interface{} `bson:"payload" json:"payload"`
	CreatedAt  time.Time              `bson:"createdAt" json:"createdAt"`
}
