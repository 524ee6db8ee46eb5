package routes

import (
	"errors"
	"net/http"

	"sleuth/internal/server/middleware"
	"sleuth/internal/storage"
	"sleuth/pkg/logger"
	"sleuth/pkg/store"
	graphstorage "sleuth/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

// DeleteInvestigationHandler removes an investigation, its graph, its paths
// and its uploaded article files. Database rows go first; a leftover S3
// folder is only logged since the pointer to it is already gone.
func DeleteInvestigationHandler(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	storageClient, err := graphstorage.NewInvestigationDBStorageWithConnection(ctx, app.DBConn, app.AiClient)
	if err != nil {
		logger.Error("Failed to create storage client", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	if err := storageClient.DeleteInvestigation(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Investigation not found"})
		}
		logger.Error("Failed to delete investigation", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	if err := storage.DeleteFolder(ctx, app.S3, storage.InvestigationPrefix(id)); err != nil {
		logger.Warn("Failed to delete investigation files", "id", id, "err", err)
	}

	logger.Info("Deleted investigation", "id", id)

	return c.JSON(http.StatusOK, map[string]string{"message": "Investigation deleted"})
}
