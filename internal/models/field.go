package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field is a stored field definition. Options are embedded.
type Field struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EntityID        primitive.ObjectID `bson:"entityId" json:"entityId"`
	EntityType      EntityType         `bson:"entityType" json:"entityType"`
	Key             string             `bson:"key" json:"key"`
	Name            *string            `bson:"name,omitempty" json:"name,omitempty"`
	DefaultValue    *string            `bson:"defaultValue,omitempty" json:"defaultValue,omitempty"`
	Type            string             `bson:"type" json:"type"`
	TransactionType TransactionType    `bson:"transactionType" json:"transactionType"`
	IsMandatory     bool               `bson:"isMandatory" json:"isMandatory"`
	IsEnabled       bool               `bson:"isEnabled" json:"isEnabled"`
	Pattern         string             `bson:"pattern" json:"pattern"`
	Country         string             `bson:"country" json:"country"`
	Authority       string             `bson:"authority" json:"authority"`
	CurrencyIso3    string             `bson:"currencyIso3" json:"currencyIso3"`
	Options         []FieldOption      `bson:"options,omitempty" json:"options,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FieldOption is one selectable value of a field
type FieldOption struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key       string             `bson:"key" json:"key"`
	Value     string             `bson:"value" json:"value"`
	IsEnabled bool               `bson:"isEnabled" json:"isEnabled"`
}
