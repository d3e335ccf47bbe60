package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndthang/minimart/internal/models"
)

func orderPayload(productCode string, qty int) map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"product_id": productCode, "name": "whatever", "price": 1, "quantity": qty},
		},
		"shipping_address": map[string]any{
			"receiver_name": "Alice",
			"phone":         "0123456789",
			"full_address":  "1 Main St",
		},
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedSupplier(t, "SUP-1")
	env.seedProduct(t, "P-1", 10, 25.5, models.StatusActive)
	userToken := env.seedUser(t, "alice", models.RoleUser)
	adminToken := env.seedUser(t, "root", models.RoleAdmin)

	rec := env.do(t, http.MethodPut, "/orders", "", orderPayload("P-1", 2))
	requireError(t, rec, http.StatusUnauthorized)

	// ordering is a customer action, admins don't place orders
	rec = env.do(t, http.MethodPut, "/orders", adminToken, orderPayload("P-1", 2))
	requireError(t, rec, http.StatusForbidden)

	rec = env.do(t, http.MethodPut, "/orders", userToken, orderPayload("P-1", 2))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Contains(t, body, "success")
	order := body["order"].(map[string]any)
	require.Equal(t, "alice", order["user_id"])
	require.EqualValues(t, 51, order["price"])
	require.Equal(t, "cod", order["payment_method"])

	rec = env.do(t, http.MethodPut, "/orders", userToken, orderPayload("P-1", 100))
	msg := requireError(t, rec, http.StatusBadRequest)
	require.Contains(t, msg, "has only 8 in stock, you requested 100")

	require.Contains(t, env.events.topics(), "order_events")
}

func TestListOrdersEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedSupplier(t, "SUP-1")
	env.seedProduct(t, "P-1", 100, 10, models.StatusActive)
	aliceToken := env.seedUser(t, "alice", models.RoleUser)
	bobToken := env.seedUser(t, "bob", models.RoleUser)
	adminToken := env.seedUser(t, "root", models.RoleAdmin)

	rec := env.do(t, http.MethodPut, "/orders", aliceToken, orderPayload("P-1", 1))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPut, "/orders", bobToken, orderPayload("P-1", 1))
	require.Equal(t, http.StatusCreated, rec.Code)

	// customer_id from the query string is ignored for plain users
	rec = env.do(t, http.MethodGet, "/orders?customer_id=bob", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.EqualValues(t, 1, body["count"])
	order := body["orders"].([]any)[0].(map[string]any)
	require.Equal(t, "alice", order["user_id"])

	rec = env.do(t, http.MethodGet, "/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 2, decodeBody(t, rec)["count"])
}

func TestOrderStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedSupplier(t, "SUP-1")
	env.seedProduct(t, "P-1", 100, 10, models.StatusActive)
	userToken := env.seedUser(t, "alice", models.RoleUser)
	adminToken := env.seedUser(t, "root", models.RoleAdmin)

	rec := env.do(t, http.MethodPut, "/orders", userToken, orderPayload("P-1", 1))
	require.Equal(t, http.StatusCreated, rec.Code)
	orderID := decodeBody(t, rec)["order"].(map[string]any)["order_id"].(string)

	rec = env.do(t, http.MethodPatch, "/orders/"+orderID, userToken, map[string]any{"order_status": "success"})
	requireError(t, rec, http.StatusForbidden)

	rec = env.do(t, http.MethodPatch, "/orders/"+orderID, adminToken, map[string]any{"order_status": "success"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// no-op flip still succeeds
	rec = env.do(t, http.MethodPatch, "/orders/"+orderID, adminToken, map[string]any{"order_status": "success"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPatch, "/orders/"+orderID, adminToken, map[string]any{"order_status": "shipped"})
	requireError(t, rec, http.StatusBadRequest)

	rec = env.do(t, http.MethodPatch, "/orders/"+orderID, adminToken, map[string]any{})
	requireError(t, rec, http.StatusBadRequest)

	rec = env.do(t, http.MethodPatch, "/orders/ORD-MISSING", adminToken, map[string]any{"order_status": "success"})
	requireError(t, rec, http.StatusNotFound)
}
