package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndthang/minimart/internal/models"
)

func TestCartFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedSupplier(t, "SUP-1")
	env.seedProduct(t, "P-1", 10, 12.5, models.StatusActive)
	token := env.seedUser(t, "alice", models.RoleUser)

	rec := env.do(t, http.MethodGet, "/cart", "", nil)
	requireError(t, rec, http.StatusUnauthorized)

	// first GET lazily creates an empty cart
	rec = env.do(t, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, "alice", body["username"])
	require.EqualValues(t, 0, body["total_items"])

	item := map[string]any{
		"product_id":   "P-1",
		"product_name": "product P-1",
		"price":        12.5,
		"quantity":     2,
	}
	rec = env.do(t, http.MethodPut, "/cart", token, item)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body = decodeBody(t, rec)
	require.EqualValues(t, 2, body["total_items"])
	require.EqualValues(t, 25, body["total_price"])

	// same product again merges into one line
	rec = env.do(t, http.MethodPut, "/cart", token, item)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	require.Len(t, body["items"].([]any), 1)
	require.EqualValues(t, 4, body["total_items"])

	rec = env.do(t, http.MethodPatch, "/cart/P-1", token, map[string]any{"quantity": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1, decodeBody(t, rec)["total_items"])

	rec = env.do(t, http.MethodDelete, "/cart/P-1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 0, decodeBody(t, rec)["total_items"])

	rec = env.do(t, http.MethodDelete, "/cart/P-1", token, nil)
	requireError(t, rec, http.StatusNotFound)
}

func TestCartRejectsUnknownOrDepletedProducts(t *testing.T) {
	env := newTestEnv(t)
	env.seedSupplier(t, "SUP-1")
	env.seedProduct(t, "P-0", 0, 10, models.StatusActive)
	token := env.seedUser(t, "alice", models.RoleUser)

	rec := env.do(t, http.MethodPut, "/cart", token, map[string]any{
		"product_id": "MISSING", "product_name": "x", "price": 1, "quantity": 1,
	})
	requireError(t, rec, http.StatusNotFound)

	rec = env.do(t, http.MethodPut, "/cart", token, map[string]any{
		"product_id": "P-0", "product_name": "x", "price": 1, "quantity": 1,
	})
	msg := requireError(t, rec, http.StatusBadRequest)
	require.Contains(t, msg, "out of stock")
}
