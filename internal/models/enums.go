package models

// TransactionType is the kind of money movement a field or config applies to
type TransactionType string

const (
	TransactionTypeDeposit TransactionType = "deposit"
	TransactionTypePayout  TransactionType = "payout"
	TransactionTypeRefund  TransactionType = "refund"
)

// TransactionTypes lists every supported transaction type
var TransactionTypes = []TransactionType{
	TransactionTypeDeposit,
	TransactionTypePayout,
	TransactionTypeRefund,
}

// Valid reports whether t is one of the supported transaction types
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypePayout, TransactionTypeRefund:
		return true
	}
	return false
}

// EntityType is the scope a field is attached to
type EntityType string

const (
	EntityTypeProvider       EntityType = "PROVIDER"
	EntityTypeProviderMethod EntityType = "PROVIDER_METHOD"
)

// DefaultFieldPattern replaces an empty field pattern
const DefaultFieldPattern = ".+"

// MaxAllowedFields caps the number of field rows a single write may expand into
const MaxAllowedFields = 35000
