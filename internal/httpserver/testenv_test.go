package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ndthang/minimart/internal/config"
	"github.com/ndthang/minimart/internal/hash"
	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/tokens"
)

var testSecret = []byte("test-secret")

// recordedEvent is what the stub producer captured for assertions.
type recordedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) PublishEvent(_ context.Context, topic, key string, event map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *eventRecorder) topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Topic)
	}
	return out
}

type testEnv struct {
	e      *echo.Echo
	db     *gorm.DB
	events *eventRecorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	events := &eventRecorder{}
	e := echo.New()
	Register(e, &Deps{DB: db, JWTSecret: testSecret, Events: events})

	return &testEnv{e: e, db: db, events: events}
}

func (env *testEnv) seedUser(t *testing.T, username string, role models.Role) string {
	t.Helper()
	pw, err := hash.HashPassword("password")
	require.NoError(t, err)
	require.NoError(t, env.db.Create(&models.User{
		Username:     username,
		PasswordHash: pw,
		Role:         role,
		Status:       models.StatusActive,
	}).Error)

	token, err := tokens.SignAccessToken(username, role, testSecret)
	require.NoError(t, err)
	return token
}

func (env *testEnv) seedSupplier(t *testing.T, code string) {
	t.Helper()
	require.NoError(t, env.db.Create(&models.Supplier{
		Code:    code,
		Name:    "supplier " + code,
		Phone:   "0123456789",
		Email:   code + "@example.com",
		Address: "somewhere",
		Status:  models.StatusActive,
	}).Error)
}

func (env *testEnv) seedProduct(t *testing.T, code string, qty int, price float64, status string) {
	t.Helper()
	require.NoError(t, env.db.Create(&models.Product{
		Code:          code,
		Name:          "product " + code,
		Category:      "misc",
		SupplierID:    "SUP-1",
		SellPrice:     price,
		ImportPrice:   price / 2,
		TotalQuantity: qty,
		Status:        status,
	}).Error)
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, code int) string {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	msg, ok := body["error"].(string)
	require.True(t, ok, "expected an error body, got %s", rec.Body.String())
	return msg
}
