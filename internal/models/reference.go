package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Currency is a known ISO 4217 currency
type Currency struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Iso3 string             `bson:"iso3" json:"iso3"`
	Name string             `bson:"name,omitempty" json:"name,omitempty"`
}

// CountryAuthority pairs a country with the regulating authority licensing it.
// Either side may be empty.
type CountryAuthority struct {
	Country   string `bson:"country,omitempty" json:"country,omitempty" yaml:"country,omitempty"`
	Authority string `bson:"authority,omitempty" json:"authority,omitempty" yaml:"authority,omitempty"`
}
