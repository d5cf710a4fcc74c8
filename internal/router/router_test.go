package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v83"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/go-ecommerce-backend/config"
	"github.com/oksasatya/go-ecommerce-backend/internal/container"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
	"github.com/oksasatya/go-ecommerce-backend/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type memUsers struct {
	mu    sync.Mutex
	byKey map[string]entity.User
	err   error
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byKey[u.Email]; ok {
		return repository.ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	m.byKey[u.Email] = *u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byKey[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type memProducts struct {
	items []entity.Product
	err   error
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	if m.err != nil {
		return m.err
	}
	p.ID = primitive.NewObjectID()
	m.items = append(m.items, *p)
	return nil
}

func (m *memProducts) List(context.Context) ([]entity.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]entity.Product{}, m.items...), nil
}

type stubSessions struct {
	calls  int
	params *stripe.CheckoutSessionCreateParams
	err    error
}

func (s *stubSessions) Create(_ context.Context, p *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error) {
	s.calls++
	s.params = p
	if s.err != nil {
		return nil, s.err
	}
	return &stripe.CheckoutSession{ID: "cs_test_abc"}, nil
}

type testApp struct {
	engine   *gin.Engine
	users    *memUsers
	products *memProducts
	sessions *stubSessions
}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *testApp {
	t.Helper()
	cfg := &config.Config{
		AppName:             "shop",
		Env:                 "test",
		StripeCurrency:      "cad",
		StripeShippingRate:  "shr_test",
		FrontendURL:         "http://localhost:3000",
		ProductCacheTTL:     time.Hour,
		DebugMetricsEnabled: true,
	}
	for _, m := range mutate {
		m(cfg)
	}
	app := &testApp{
		users:    &memUsers{byKey: map[string]entity.User{}},
		products: &memProducts{},
		sessions: &stubSessions{},
	}
	c := &container.Container{
		Config:   cfg,
		Logger:   helpers.NewDiscardLogger(),
		Users:    app.users,
		Products: app.products,
		Sessions: app.sessions,
	}

	app.engine = gin.New()
	reg := NewRegistry(app.engine, cfg.APIPrefix)
	InitModules(reg, c)
	reg.RegisterAll()
	return app
}

func (a *testApp) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func signupBody(email string) map[string]any {
	return map[string]any{
		"firstName":       "Ada",
		"lastName":        "Lovelace",
		"email":           email,
		"password":        "s3cret-pass",
		"confirmPassword": "s3cret-pass",
		"image":           "",
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w, _ := app.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Server is running", w.Body.String())
}

func TestSignup(t *testing.T) {
	app := newTestApp(t)

	w, body := app.do(t, http.MethodPost, "/signup", signupBody("ada@example.com"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Successfully signed up", body["message"])
	assert.Equal(t, true, body["alert"])

	stored, ok := app.users.byKey["ada@example.com"]
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", stored.Email)

	w, body = app.do(t, http.MethodPost, "/signup", signupBody("ada@example.com"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Email ID is already registered", body["message"])
	assert.Equal(t, false, body["alert"])
	assert.Len(t, app.users.byKey, 1)
}

func TestSignup_Invalid(t *testing.T) {
	app := newTestApp(t)

	b := signupBody("not-an-email")
	b["confirmPassword"] = "different"
	w, body := app.do(t, http.MethodPost, "/signup", b)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid payload", body["message"])
	assert.Equal(t, false, body["alert"])
	details, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "confirmPassword")
	assert.Empty(t, app.users.byKey)

	w, _ = app.do(t, http.MethodPost, "/signup", "{broken")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignup_StoreOutage(t *testing.T) {
	app := newTestApp(t)
	app.users.err = errors.New("no reachable servers")

	w, body := app.do(t, http.MethodPost, "/signup", signupBody("ada@example.com"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error signing up", body["message"])
	assert.Equal(t, false, body["alert"])
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	w, _ := app.do(t, http.MethodPost, "/signup", signupBody("ada@example.com"))
	require.Equal(t, http.StatusOK, w.Code)

	w, body := app.do(t, http.MethodPost, "/login", map[string]any{"email": "ada@example.com", "password": "s3cret-pass"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successfully", body["message"])
	assert.Equal(t, true, body["alert"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", data["email"])
	assert.Equal(t, "Ada", data["firstName"])
	assert.NotEmpty(t, data["_id"])
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "confirmPassword")

	w, body = app.do(t, http.MethodPost, "/login", map[string]any{"email": "ada@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Invalid email or password", body["message"])
	assert.Equal(t, false, body["alert"])
	assert.NotContains(t, body, "data")
}

func TestLogin_UnknownEmail(t *testing.T) {
	app := newTestApp(t)
	w, body := app.do(t, http.MethodPost, "/login", map[string]any{"email": "ghost@example.com", "password": "whatever"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Email is not available, please sign up", body["message"])
	assert.Equal(t, false, body["alert"])
	assert.NotContains(t, body, "data")
}

func TestLogin_StoreOutage(t *testing.T) {
	app := newTestApp(t)
	app.users.err = errors.New("timeout")
	w, body := app.do(t, http.MethodPost, "/login", map[string]any{"email": "ada@example.com", "password": "whatever"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error logging in", body["message"])
}

func TestProducts_UploadThenList(t *testing.T) {
	app := newTestApp(t)
	product := map[string]any{"name": "Widget", "category": "tools", "image": "https://img/w.png", "price": 10, "description": "a widget"}

	w, body := app.do(t, http.MethodPost, "/uploadProduct", product)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"message": "Uploaded successfully"}, body)

	req := httptest.NewRequest(http.MethodGet, "/product", nil)
	rec := httptest.NewRecorder()
	app.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Widget", list[0]["name"])
	assert.Equal(t, 10.0, list[0]["price"])
	assert.NotEmpty(t, list[0]["_id"])
}

func TestProducts_EmptyListIsArray(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/product", nil)
	rec := httptest.NewRecorder()
	app.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestProducts_Errors(t *testing.T) {
	app := newTestApp(t)

	w, _ := app.do(t, http.MethodPost, "/uploadProduct", map[string]any{"name": "Widget", "category": "tools", "price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, app.products.items)

	app.products.err = errors.New("down")
	w, body := app.do(t, http.MethodPost, "/uploadProduct", map[string]any{"name": "Widget", "category": "tools", "price": 1})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error uploading product", body["message"])

	w, body = app.do(t, http.MethodGet, "/product", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error fetching products", body["message"])
}

func TestCheckout(t *testing.T) {
	app := newTestApp(t)

	w, body := app.do(t, http.MethodPost, "/create-checkout-session", []map[string]any{{"name": "Widget", "price": 10, "qty": 2}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cs_test_abc", body["sessionId"])

	require.Equal(t, 1, app.sessions.calls)
	p := app.sessions.params
	require.Len(t, p.LineItems, 1)
	assert.Equal(t, int64(1000), *p.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, int64(2), *p.LineItems[0].Quantity)
	assert.Equal(t, "http://localhost:3000/success", *p.SuccessURL)
	assert.Equal(t, "http://localhost:3000/cancel", *p.CancelURL)
}

func TestCheckout_EmptyCart(t *testing.T) {
	app := newTestApp(t)
	w, body := app.do(t, http.MethodPost, "/create-checkout-session", "[]")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["alert"])
	assert.Zero(t, app.sessions.calls)
}

func TestCheckout_InvalidItem(t *testing.T) {
	app := newTestApp(t)
	w, body := app.do(t, http.MethodPost, "/create-checkout-session", []map[string]any{
		{"name": "Widget", "price": 10, "qty": 1},
		{"name": "", "price": 5, "qty": 0},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	details, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "[1].name")
	assert.Contains(t, details, "[1].qty")
	assert.Zero(t, app.sessions.calls)
}

func TestCheckout_PriceAboveGatewayLimit(t *testing.T) {
	app := newTestApp(t)
	w, body := app.do(t, http.MethodPost, "/create-checkout-session", []map[string]any{
		{"name": "Yacht", "price": 1.8446744073709552e17, "qty": 1},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	details, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "must be at most 999999.99", details["[0].price"])
	assert.Zero(t, app.sessions.calls)
}

func TestCheckout_GatewayFailure(t *testing.T) {
	app := newTestApp(t)
	app.sessions.err = errors.New("api_key invalid")
	w, body := app.do(t, http.MethodPost, "/create-checkout-session", []map[string]any{{"name": "Widget", "price": 10, "qty": 1}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"message": "Failed to create checkout session"}, body)
}

func TestDebugVars(t *testing.T) {
	app := newTestApp(t)
	w, body := app.do(t, http.MethodGet, "/debug/vars", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "signups")
	assert.Contains(t, body, "checkout_sessions")

	off := newTestApp(t, func(c *config.Config) { c.DebugMetricsEnabled = false })
	w, _ = off.do(t, http.MethodGet, "/debug/vars", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIPrefix(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) { c.APIPrefix = "/api" })
	w, _ := app.do(t, http.MethodGet, "/api/product", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = app.do(t, http.MethodGet, "/product", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
