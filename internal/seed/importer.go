// Package seed loads reference data and admin accounts from CSV exports.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/repositories"
	"github.com/ArowuTest/paymethods-config-backend/pkg/authz"
)

// Result summarises one import run
type Result struct {
	TotalRows int      `json:"totalRows"`
	Created   int      `json:"created"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}

func (r *Result) fail(row int, format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf("Row %d: %s", row, fmt.Sprintf(format, args...)))
}

// Importer writes CSV rows through the repositories
type Importer struct {
	referenceRepo repositories.ReferenceRepository
	adminRepo     repositories.AdminUserRepository
	hashCost      int
	log           *logrus.Logger
}

// NewImporter creates a new Importer
func NewImporter(
	referenceRepo repositories.ReferenceRepository,
	adminRepo repositories.AdminUserRepository,
	log *logrus.Logger,
) *Importer {
	return &Importer{
		referenceRepo: referenceRepo,
		adminRepo:     adminRepo,
		hashCost:      bcrypt.DefaultCost,
		log:           log,
	}
}

// ImportCurrencies reads an "ISO3,Name" sheet
func (i *Importer) ImportCurrencies(ctx context.Context, r io.Reader) (*Result, error) {
	return i.importRows(ctx, r, []column{
		{names: []string{"ISO3", "Currency", "Code"}, required: true},
		{names: []string{"Name", "Description"}},
	}, func(ctx context.Context, row int, values []string, res *Result) (bool, error) {
		iso3 := strings.ToUpper(values[0])
		if len(iso3) != 3 {
			res.fail(row, "invalid currency code %q", values[0])
			return false, nil
		}
		return i.referenceRepo.UpsertCurrency(ctx, &models.Currency{Iso3: iso3, Name: values[1]})
	})
}

// ImportCountryAuthorities reads a "Country,Authority" sheet. Either column may be blank.
func (i *Importer) ImportCountryAuthorities(ctx context.Context, r io.Reader) (*Result, error) {
	return i.importRows(ctx, r, []column{
		{names: []string{"Country", "Country Code"}, required: true},
		{names: []string{"Authority", "Regulator"}, required: true},
	}, func(ctx context.Context, row int, values []string, res *Result) (bool, error) {
		pair := models.CountryAuthority{
			Country:   strings.ToUpper(values[0]),
			Authority: strings.ToUpper(values[1]),
		}
		if pair.Country == "" && pair.Authority == "" {
			res.fail(row, "country and authority are both empty")
			return false, nil
		}
		return i.referenceRepo.UpsertCountryAuthority(ctx, pair)
	})
}

// ImportAdminUsers reads an "Email,Password,Role" sheet. Existing accounts are left untouched.
func (i *Importer) ImportAdminUsers(ctx context.Context, r io.Reader) (*Result, error) {
	return i.importRows(ctx, r, []column{
		{names: []string{"Email", "Username"}, required: true},
		{names: []string{"Password"}, required: true},
		{names: []string{"Role"}},
	}, func(ctx context.Context, row int, values []string, res *Result) (bool, error) {
		email, password, role := strings.ToLower(values[0]), values[1], strings.ToLower(values[2])
		if email == "" || password == "" {
			res.fail(row, "email and password are required")
			return false, nil
		}
		if role == "" {
			role = authz.RoleViewer
		}
		if role != authz.RoleAdmin && role != authz.RoleViewer {
			res.fail(row, "unknown role %q", values[2])
			return false, nil
		}

		_, err := i.adminRepo.FindByEmail(ctx, email)
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return false, err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), i.hashCost)
		if err != nil {
			return false, fmt.Errorf("hash password: %w", err)
		}
		if _, err := i.adminRepo.Create(ctx, &models.AdminUser{Email: email, Password: string(hash), Role: role}); err != nil {
			return false, err
		}
		return true, nil
	})
}

type column struct {
	names    []string
	required bool
}

// rowFunc stores one row and reports whether it created a record.
// Row-level problems go to res; a returned error aborts the import.
type rowFunc func(ctx context.Context, row int, values []string, res *Result) (bool, error)

func (i *Importer) importRows(ctx context.Context, r io.Reader, columns []column, store rowFunc) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	indices := make([]int, len(columns))
	for n, col := range columns {
		indices[n] = findColumnIndex(header, col.names)
		if indices[n] == -1 && col.required {
			return nil, fmt.Errorf("%s column not found in CSV", col.names[0])
		}
	}

	res := &Result{Errors: []string{}}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		res.TotalRows++
		if err != nil {
			res.fail(res.TotalRows, "%v", err)
			continue
		}

		values := make([]string, len(columns))
		for n, idx := range indices {
			if idx >= 0 && idx < len(record) {
				values[n] = strings.TrimSpace(record[idx])
			}
		}

		failures := len(res.Errors)
		created, err := store(ctx, res.TotalRows, values, res)
		if err != nil {
			return res, err
		}
		switch {
		case created:
			res.Created++
		case len(res.Errors) == failures:
			res.Skipped++
		}
	}

	i.log.WithFields(logrus.Fields{
		"rows":    res.TotalRows,
		"created": res.Created,
		"skipped": res.Skipped,
		"errors":  len(res.Errors),
	}).Info("CSV import finished")
	return res, nil
}

// findColumnIndex finds the first header matching any of the names, ignoring case
func findColumnIndex(header []string, names []string) int {
	for i, h := range header {
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return -1
}
