package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/transport"
)

func TestCreateBatch(t *testing.T) {
	r := newTestRepo(t)
	seedSupplier(t, r, "SUP-1")
	seedProduct(t, r, "P-1", 10, 10)
	svc := &BatchService{Repo: r}
	ctx := context.Background()

	batch, err := svc.CreateBatch(ctx, transport.CreateBatchRequest{
		BatchCode:       "B-1",
		ProductID:       "P-1",
		ManufactureDate: "2026-01-15T00:00:00Z",
		ExpiryDate:      "2027-01-15T00:00:00Z",
		ImportPrice:     5,
		Quantity:        100,
	})
	require.NoError(t, err)
	require.Equal(t, models.BatchStatusAvailable, batch.Status)
	require.Equal(t, 2026, batch.ManufactureDate.Year())

	_, err = svc.CreateBatch(ctx, transport.CreateBatchRequest{BatchCode: "B-1", ProductID: "P-1"})
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreateBatch(ctx, transport.CreateBatchRequest{BatchCode: "B-2", ProductID: "MISSING"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateBatch(ctx, transport.CreateBatchRequest{
		BatchCode: "B-3", ProductID: "P-1", ImportDate: "15/01/2026",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPatchBatch(t *testing.T) {
	r := newTestRepo(t)
	seedSupplier(t, r, "SUP-1")
	seedProduct(t, r, "P-1", 10, 10)
	svc := &BatchService{Repo: r}
	ctx := context.Background()

	_, err := svc.CreateBatch(ctx, transport.CreateBatchRequest{
		BatchCode: "B-1", ProductID: "P-1", Quantity: 100,
	})
	require.NoError(t, err)

	qty := 40
	status := models.BatchStatusUnavailable
	batch, err := svc.PatchBatch(ctx, "B-1", transport.PatchBatchRequest{Quantity: &qty, Status: &status})
	require.NoError(t, err)
	require.Equal(t, 40, batch.Quantity)
	require.Equal(t, models.BatchStatusUnavailable, batch.Status)

	_, err = svc.PatchBatch(ctx, "B-1", transport.PatchBatchRequest{})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.PatchBatch(ctx, "B-MISSING", transport.PatchBatchRequest{Quantity: &qty})
	require.ErrorIs(t, err, ErrNotFound)
}
