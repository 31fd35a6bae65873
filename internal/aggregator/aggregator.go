// Package aggregator builds the currency -> providers configuration tree returned
// by the read API from flat transaction-config rows.
package aggregator

import (
	"fmt"

	"github.com/ArowuTest/paymethods-config-backend/internal/fields"
	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/scoped"
)

type bucket struct {
	currency  string
	codes     []string
	providers map[string]*ProviderConfig
}

type builder struct {
	in      Input
	order   []string
	buckets map[string]*bucket
}

// Aggregate walks rows once, in order. Rows without a currency are skipped
// before their type is looked at; each other row fills the settings slot of its type on the provider entry of
// its currency bucket, replacing an earlier slot of the same type.
func Aggregate(in Input) ([]CurrencyConfig, error) {
	b := &builder{in: in, buckets: make(map[string]*bucket)}

	for _, row := range in.Rows {
		if row.CurrencyIso3 == "" {
			continue
		}
		if !row.Type.Valid() {
			return nil, fmt.Errorf("unknown config type %q", row.Type)
		}

		entry := b.provider(row)
		switch row.Type {
		case models.TransactionTypeDeposit:
			entry.Deposit = &DepositSettings{
				Min:     row.MinAmount,
				Max:     row.MaxAmount,
				Enabled: row.IsEnabled,
				Fields:  b.fields(row),
			}
		case models.TransactionTypePayout:
			entry.Payout = &PayoutSettings{
				Min:                    row.MinAmount,
				Max:                    row.MaxAmount,
				Enabled:                row.IsEnabled,
				Order:                  row.Order,
				PaymentAccountRequired: row.PaymentAccountRequired,
				Fields:                 b.fields(row),
			}
		case models.TransactionTypeRefund:
			entry.Refund = &RefundSettings{
				Order:                        row.Order,
				Enabled:                      row.IsEnabled,
				MinRefundableAmountThreshold: row.MinAmount,
				MaxRefundablePeriodInDays:    row.Period,
				IsRequestDetailsRequired:     row.IsRequestDetailsRequired,
			}
		}
	}

	return b.list(), nil
}

// provider finds or creates the entry for row's provider in row's currency bucket
func (b *builder) provider(row ConfigRow) *ProviderConfig {
	bk, ok := b.buckets[row.CurrencyIso3]
	if !ok {
		bk = &bucket{currency: row.CurrencyIso3, providers: make(map[string]*ProviderConfig)}
		b.buckets[row.CurrencyIso3] = bk
		b.order = append(b.order, row.CurrencyIso3)
	}

	entry, ok := bk.providers[row.ProviderCode]
	if !ok {
		entry = b.newProvider(row)
		bk.providers[row.ProviderCode] = entry
		bk.codes = append(bk.codes, row.ProviderCode)
	}
	return entry
}

func (b *builder) newProvider(row ConfigRow) *ProviderConfig {
	scope := scoped.Parameters{
		Authority: b.in.Authority,
		Country:   b.in.Country,
		Currency:  row.CurrencyIso3,
	}

	entry := &ProviderConfig{
		Code:        row.ProviderCode,
		Name:        row.ProviderName,
		StpSettings: map[string]interface{}{},
		Credentials: scoped.Payload{},
		Accounts:    []scoped.Payload{},
		Fields:      []fields.Field{},
	}

	if b.in.Credentials != nil {
		if best, ok := scoped.Best(b.in.Credentials(row.ProviderID), scope); ok && best.Payload != nil {
			entry.Credentials = best.Payload
		}
	}
	if b.in.BankAccounts != nil {
		for _, r := range scoped.BestTier(b.in.BankAccounts(row.ProviderID), scope) {
			entry.Accounts = append(entry.Accounts, r.Payload)
		}
	}
	return entry
}

// fields resolves method fields over provider fields for the row's currency
func (b *builder) fields(row ConfigRow) []fields.Field {
	if b.in.Fields == nil {
		return []fields.Field{}
	}
	specific := b.in.Fields(row.MethodID, models.EntityTypeProviderMethod, row.Type)
	common := b.in.Fields(row.ProviderID, models.EntityTypeProvider, row.Type)
	return fields.Resolve(specific, common, row.CurrencyIso3)
}

func (b *builder) list() []CurrencyConfig {
	out := make([]CurrencyConfig, 0, len(b.order))
	for _, cur := range b.order {
		bk := b.buckets[cur]
		cc := CurrencyConfig{Currency: cur, Providers: make([]ProviderConfig, 0, len(bk.codes))}
		for _, code := range bk.codes {
			cc.Providers = append(cc.Providers, *bk.providers[code])
		}
		out = append(out, cc)
	}
	return out
}
