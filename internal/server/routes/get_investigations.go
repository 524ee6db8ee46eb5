package routes

import (
	"errors"
	"net/http"

	"sleuth/internal/server/middleware"
	serverutil "sleuth/internal/server/util"
	"sleuth/pkg/logger"
	"sleuth/pkg/store"
	graphstorage "sleuth/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

func GetInvestigationsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	storageClient, err := graphstorage.NewInvestigationDBStorageWithConnection(ctx, app.DBConn, app.AiClient)
	if err != nil {
		logger.Error("Failed to create storage client", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	investigations, err := storageClient.ListInvestigations(ctx)
	if err != nil {
		logger.Error("Failed to list investigations", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"investigations": investigations,
	})
}

func GetInvestigationHandler(c echo.Context) error {
	type investigationResponse struct {
		Investigation *store.Investigation          `json:"investigation"`
		Articles      []store.ArticleRecord         `json:"articles"`
		Progress      serverutil.ExtractionProgress `json:"progress"`
	}

	id := c.Param("id")
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	storageClient, err := graphstorage.NewInvestigationDBStorageWithConnection(ctx, app.DBConn, app.AiClient)
	if err != nil {
		logger.Error("Failed to create storage client", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	investigation, err := storageClient.GetInvestigation(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Investigation not found"})
		}
		logger.Error("Failed to get investigation", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	articles, err := storageClient.ListArticles(ctx, id)
	if err != nil {
		logger.Error("Failed to list articles", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, investigationResponse{
		Investigation: investigation,
		Articles:      articles,
		Progress:      serverutil.ProgressFromArticles(articles),
	})
}
