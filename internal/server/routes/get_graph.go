package routes

import (
	"errors"
	"net/http"

	"sleuth/internal/server/middleware"
	"sleuth/pkg/logger"
	"sleuth/pkg/store"
	graphstorage "sleuth/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

func GetGraphHandler(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	storageClient, err := graphstorage.NewInvestigationDBStorageWithConnection(ctx, app.DBConn, app.AiClient)
	if err != nil {
		logger.Error("Failed to create storage client", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	g, err := storageClient.GetGraph(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Investigation not found"})
		}
		logger.Error("Failed to get graph", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, g)
}
