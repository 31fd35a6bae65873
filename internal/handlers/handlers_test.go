package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/paymethods-config-backend/internal/aggregator"
	"github.com/ArowuTest/paymethods-config-backend/internal/apperrors"
	"github.com/ArowuTest/paymethods-config-backend/internal/fields"
	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/scoped"
	"github.com/ArowuTest/paymethods-config-backend/internal/services"
	"github.com/ArowuTest/paymethods-config-backend/internal/upsert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthService struct{ err error }

func (f *fakeAuthService) Login(_ context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.LoginResponse{Token: "tok-" + req.Email, ExpiresAt: time.Unix(0, 0).UTC()}, nil
}

type fakeConfigService struct{ got services.ConfigQuery }

func (f *fakeConfigService) GetConfigs(_ context.Context, q services.ConfigQuery) ([]aggregator.CurrencyConfig, error) {
	f.got = q
	return []aggregator.CurrencyConfig{{Currency: "USD", Providers: []aggregator.ProviderConfig{}}}, nil
}

type fakeFieldService struct {
	payload *upsert.Payload
	err     error
}

func (f *fakeFieldService) GetProviderFields(context.Context, string, services.FieldScope) ([]fields.EntityFieldList, error) {
	return []fields.EntityFieldList{}, f.err
}

func (f *fakeFieldService) UpsertFields(_ context.Context, _, _ string, p *upsert.Payload) (int, error) {
	f.payload = p
	if f.err != nil {
		return 0, f.err
	}
	return len(p.Common), nil
}

type fakeScopedService struct{ groups []scoped.RecordGroup }

func (f *fakeScopedService) Get(context.Context, string) ([]scoped.RecordGroup, error) {
	return f.groups, nil
}

func (f *fakeScopedService) Replace(_ context.Context, _ string, groups []scoped.RecordGroup) ([]scoped.RecordGroup, error) {
	f.groups = groups
	return groups, nil
}

type fakeReorderService struct {
	ids []string
	err error
}

func (f *fakeReorderService) Reorder(_ context.Context, _ string, _ models.TransactionType, ids []string) error {
	f.ids = ids
	return f.err
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"conflict", apperrors.NewConflict("Parameters contain duplicates").WithMeta("parameters", "{}"), http.StatusConflict, "Parameters contain duplicates"},
		{"max fields", apperrors.NewMaxAllowedFieldsExceeded("Max allowed fields count exceeded"), http.StatusRequestEntityTooLarge, "Max allowed fields count exceeded"},
		{"untyped", errors.New("socket closed"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { respondError(c, tt.err) })

			w := serve(r, http.MethodGet, "/", "")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.msg, decode(t, w)["error"])
		})
	}

	t.Run("meta", func(t *testing.T) {
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			respondError(c, apperrors.NewNotFound("Currency not found").WithMeta("currency", "JPY"))
		})
		body := decode(t, serve(r, http.MethodGet, "/", ""))
		assert.Equal(t, map[string]interface{}{"currency": "JPY"}, body["meta"])
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		r := gin.New()
		r.POST("/login", NewAuthHandler(&fakeAuthService{}).Login)
		w := serve(r, http.MethodPost, "/login", `{"email":"ops@example.com","password":"x"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "tok-ops@example.com", decode(t, w)["token"])
	})

	t.Run("bad body", func(t *testing.T) {
		r := gin.New()
		r.POST("/login", NewAuthHandler(&fakeAuthService{}).Login)
		w := serve(r, http.MethodPost, "/login", `{"email":"not-an-email"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		r := gin.New()
		r.POST("/login", NewAuthHandler(&fakeAuthService{err: services.ErrInvalidCredentials}).Login)
		w := serve(r, http.MethodPost, "/login", `{"email":"ops@example.com","password":"x"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestConfigHandler_GetConfigs(t *testing.T) {
	svc := &fakeConfigService{}
	r := gin.New()
	r.GET("/configs", NewConfigHandler(svc).GetConfigs)

	w := serve(r, http.MethodGet, "/configs?country=GB&authority=FCA&currency=usd", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.ConfigQuery{Country: "GB", Authority: "FCA", Currency: "usd"}, svc.got)
	assert.JSONEq(t, `[{"currency":"USD","providers":[]}]`, w.Body.String())
}

func TestFieldHandler_UpsertFields(t *testing.T) {
	const path = "/providers/acme/methods/m1/fields"
	body := `{"common":[{"key":"merchant","defaultValue":"m","type":"hidden","transactionType":"deposit"}],"specific":[]}`

	t.Run("ok", func(t *testing.T) {
		svc := &fakeFieldService{}
		r := gin.New()
		r.PUT("/providers/:code/methods/:methodId/fields", NewFieldHandler(svc).UpsertFields)

		w := serve(r, http.MethodPut, path, body)
		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, svc.payload)
		assert.Equal(t, "merchant", svc.payload.Common[0].Key)
		assert.Equal(t, float64(1), decode(t, w)["fields"])
	})

	t.Run("too many fields", func(t *testing.T) {
		svc := &fakeFieldService{err: apperrors.NewMaxAllowedFieldsExceeded("Max allowed fields count exceeded")}
		r := gin.New()
		r.PUT("/providers/:code/methods/:methodId/fields", NewFieldHandler(svc).UpsertFields)

		w := serve(r, http.MethodPut, path, body)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		r := gin.New()
		r.PUT("/providers/:code/methods/:methodId/fields", NewFieldHandler(&fakeFieldService{}).UpsertFields)

		w := serve(r, http.MethodPut, path, `{"common":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestScopedRecordHandler_Replace(t *testing.T) {
	svc := &fakeScopedService{}
	r := gin.New()
	r.PUT("/providers/:code/credentials", NewScopedRecordHandler(svc).Replace)

	w := serve(r, http.MethodPut, "/providers/acme/credentials", `[{"parameters":{},"payload":{"k":"v"}}]`)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.groups, 1)
	assert.True(t, svc.groups[0].Parameters.IsUnconditional())
	assert.JSONEq(t, `{"data":[{"parameters":{},"payload":{"k":"v"}}]}`, w.Body.String())
}

func TestReorderHandler(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := &fakeReorderService{}
		r := gin.New()
		r.PUT("/providers/:code/method-order", NewReorderHandler(svc).Reorder)

		w := serve(r, http.MethodPut, "/providers/acme/method-order", `{"type":"payout","methodIds":["a","b"]}`)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, []string{"a", "b"}, svc.ids)
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeReorderService{err: apperrors.NewConflict("Methods list does not match provider methods")}
		r := gin.New()
		r.PUT("/providers/:code/method-order", NewReorderHandler(svc).Reorder)

		w := serve(r, http.MethodPut, "/providers/acme/method-order", `{"type":"payout","methodIds":["a"]}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing type", func(t *testing.T) {
		r := gin.New()
		r.PUT("/providers/:code/method-order", NewReorderHandler(&fakeReorderService{}).Reorder)

		w := serve(r, http.MethodPut, "/providers/acme/method-order", `{"methodIds":["a"]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthHandler(t *testing.T) {
	r := gin.New()
	r.GET("/ok", NewHealthHandler(fakePinger{}).Health)
	r.GET("/down", NewHealthHandler(fakePinger{err: errors.New("no primary")}).Health)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ok", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "/down", "").Code)
}
