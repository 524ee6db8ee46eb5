package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"sleuth/internal/queue"
	"sleuth/internal/server/middleware"
	"sleuth/pkg/logger"
	"sleuth/pkg/store"
	graphstorage "sleuth/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

// SynthesizeHandler queues a rebuild of the ranked path set for an
// investigation. The rebuild itself runs in the worker.
func SynthesizeHandler(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	storageClient, err := graphstorage.NewInvestigationDBStorageWithConnection(ctx, app.DBConn, app.AiClient)
	if err != nil {
		logger.Error("Failed to create storage client", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	if _, err := storageClient.GetInvestigation(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Investigation not found"})
		}
		logger.Error("Failed to get investigation", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	queueData := queue.QueueSynthesizeMsg{
		Message:         "Synthesis requested",
		InvestigationID: id,
	}
	msgBytes, err := json.Marshal(queueData)
	if err != nil {
		logger.Error("Failed to marshal synthesize message", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if err := queue.PublishFIFO(app.Queue, queue.SynthesizeQueue, msgBytes); err != nil {
		logger.Error("Failed to publish synthesize message", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusAccepted, map[string]string{"message": "Synthesis queued"})
}
