package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndthang/minimart/internal/middleware/auth"
	"github.com/ndthang/minimart/internal/service"
	"github.com/ndthang/minimart/internal/transport"
	"github.com/ndthang/minimart/internal/util"
)

type BatchHandler struct {
	Batches *service.BatchService
	Events  EventPublisher
}

func (h *BatchHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	f := transport.BatchFilter{
		BatchCode: c.QueryParam("batch_code"),
		ProductID: c.QueryParam("product_id"),
		Status:    c.QueryParam("status"),
		Start:     util.ParseIntDefault(c.QueryParam("start"), -1),
		Num:       util.ParseIntDefault(c.QueryParam("num"), -1),
	}
	batches, err := h.Batches.ListBatches(ctx, f)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"batches": batches, "count": len(batches)})
}

func (h *BatchHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.CreateBatchRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	batch, err := h.Batches.CreateBatch(ctx, req)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "product_events", batch.BatchCode, map[string]any{
		"type":       "batch_created",
		"batch_code": batch.BatchCode,
		"product_id": batch.ProductID,
		"user":       auth.Username(c),
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"success": fmt.Sprintf("batch '%s' created", batch.BatchCode),
		"data":    batch,
	})
}

func (h *BatchHandler) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	batchCode := c.Param("batch_code")

	var req transport.PatchBatchRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	batch, err := h.Batches.PatchBatch(ctx, batchCode, req)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "product_events", batch.BatchCode, map[string]any{
		"type":       "batch_updated",
		"batch_code": batch.BatchCode,
		"user":       auth.Username(c),
	})
	return c.JSON(http.StatusOK, echo.Map{
		"success": fmt.Sprintf("batch '%s' updated", batch.BatchCode),
		"data":    batch,
	})
}

func (h *BatchHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	batchCode := c.Param("batch_code")

	batch, err := h.Batches.DeleteBatch(ctx, batchCode)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "product_events", batch.BatchCode, map[string]any{
		"type":       "batch_deleted",
		"batch_code": batch.BatchCode,
		"user":       auth.Username(c),
	})
	return c.JSON(http.StatusOK, echo.Map{
		"success": fmt.Sprintf("batch '%s' deleted", batch.BatchCode),
	})
}
