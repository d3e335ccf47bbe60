package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndthang/minimart/internal/models"
)

func TestListSuppliersProjection(t *testing.T) {
	env := newTestEnv(t)
	env.seedSupplier(t, "SUP-1")
	adminToken := env.seedUser(t, "root", models.RoleAdmin)

	rec := env.do(t, http.MethodGet, "/suppliers", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.EqualValues(t, 1, body["count"])
	first := body["suppliers"].([]any)[0].(map[string]any)
	require.Equal(t, "SUP-1", first["code"])
	require.NotContains(t, first, "address")

	rec = env.do(t, http.MethodGet, "/suppliers", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	first = decodeBody(t, rec)["suppliers"].([]any)[0].(map[string]any)
	require.Contains(t, first, "address")
}

func TestSupplierLifecycle(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.seedUser(t, "root", models.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/suppliers", adminToken, map[string]any{
		"code":    "SUP-1",
		"name":    "acme",
		"phone":   "0123456789",
		"email":   "acme@example.com",
		"address": "1 Main St",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env.seedProduct(t, "P-1", 5, 10, models.StatusActive)

	// delete refused while active
	rec = env.do(t, http.MethodDelete, "/suppliers/SUP-1", adminToken, nil)
	requireError(t, rec, http.StatusBadRequest)

	rec = env.do(t, http.MethodPatch, "/suppliers/inactive/SUP-1", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// and refused while a product still references it
	rec = env.do(t, http.MethodDelete, "/suppliers/SUP-1", adminToken, nil)
	msg := requireError(t, rec, http.StatusBadRequest)
	require.Contains(t, msg, "associated products")

	require.NoError(t, env.db.Where("code = ?", "P-1").Delete(&models.Product{}).Error)

	rec = env.do(t, http.MethodDelete, "/suppliers/SUP-1", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestBatchEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.seedSupplier(t, "SUP-1")
	env.seedProduct(t, "P-1", 10, 10, models.StatusActive)
	adminToken := env.seedUser(t, "root", models.RoleAdmin)
	userToken := env.seedUser(t, "alice", models.RoleUser)

	payload := map[string]any{
		"batch_code":   "B-1",
		"product_id":   "P-1",
		"import_price": 5,
		"quantity":     100,
	}

	rec := env.do(t, http.MethodPost, "/batches", userToken, payload)
	requireError(t, rec, http.StatusForbidden)

	rec = env.do(t, http.MethodPost, "/batches", adminToken, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/batches?product_id=P-1", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1, decodeBody(t, rec)["count"])

	rec = env.do(t, http.MethodPatch, "/batches/B-1", adminToken, map[string]any{"quantity": 40})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodDelete, "/batches/B-1", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
