package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/paymethods-config-backend/internal/logger"
	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/repositories"
	"github.com/ArowuTest/paymethods-config-backend/internal/seed"
)

type stubReference struct {
	currencies []string
}

func (s *stubReference) ListCurrencies(context.Context) ([]*models.Currency, error) { return nil, nil }

func (s *stubReference) ListCountryAuthorities(context.Context) ([]models.CountryAuthority, error) {
	return nil, nil
}

func (s *stubReference) UpsertCurrency(_ context.Context, c *models.Currency) (bool, error) {
	s.currencies = append(s.currencies, c.Iso3)
	return true, nil
}

func (s *stubReference) UpsertCountryAuthority(context.Context, models.CountryAuthority) (bool, error) {
	return true, nil
}

type stubAdmins struct{}

func (stubAdmins) Create(_ context.Context, u *models.AdminUser) (*models.AdminUser, error) {
	return u, nil
}

func (stubAdmins) FindByEmail(context.Context, string) (*models.AdminUser, error) {
	return nil, repositories.ErrNotFound
}

func (stubAdmins) FindByID(context.Context, primitive.ObjectID) (*models.AdminUser, error) {
	return nil, repositories.ErrNotFound
}

func TestSeedCurrencies(t *testing.T) {
	ref := &stubReference{}
	released := false
	var target seedTarget
	open := func(_ context.Context, got seedTarget) (*seed.Importer, func(), error) {
		target = got
		return seed.NewImporter(ref, stubAdmins{}, logger.Discard()), func() { released = true }, nil
	}

	cmd := newSeedCmd(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("ISO3,Name\nusd,US Dollar\nxx,bad\n"))
	cmd.SetArgs([]string{"currencies"})
	require.NoError(t, cmd.Execute())

	var res seed.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 2, res.TotalRows)
	assert.Equal(t, 1, res.Created)
	assert.Len(t, res.Errors, 1)
	assert.Equal(t, []string{"USD"}, ref.currencies)
	assert.True(t, released)
	assert.Equal(t, seedTarget{EnsureIndexes: true}, target)
}

func TestSeed_TargetFlags(t *testing.T) {
	t.Setenv("CONFIGCTL_DATABASE", "staging")
	t.Setenv("CONFIGCTL_ENSURE_INDEXES", "false")

	var target seedTarget
	open := func(_ context.Context, got seedTarget) (*seed.Importer, func(), error) {
		target = got
		return nil, nil, errors.New("stop")
	}

	t.Run("environment defaults", func(t *testing.T) {
		cmd := newSeedCmd(open)
		cmd.SetIn(strings.NewReader("ISO3\nUSD\n"))
		cmd.SetArgs([]string{"currencies"})
		require.Error(t, cmd.Execute())
		assert.Equal(t, seedTarget{Database: "staging"}, target)
	})

	t.Run("flags win", func(t *testing.T) {
		cmd := newSeedCmd(open)
		cmd.SetIn(strings.NewReader("ISO3\nUSD\n"))
		cmd.SetArgs([]string{"currencies", "--database", "local", "--ensure-indexes"})
		require.Error(t, cmd.Execute())
		assert.Equal(t, seedTarget{Database: "local", EnsureIndexes: true}, target)
	})
}

func TestSeed_OpenFailure(t *testing.T) {
	open := func(context.Context, seedTarget) (*seed.Importer, func(), error) {
		return nil, nil, errors.New("no database")
	}

	cmd := newSeedCmd(open)
	cmd.SetIn(strings.NewReader("ISO3\nUSD\n"))
	cmd.SetArgs([]string{"admins"})
	assert.EqualError(t, cmd.Execute(), "no database")
}
