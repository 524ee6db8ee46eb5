package routes

import (
	"errors"
	"net/http"

	"sleuth/internal/server/middleware"
	"sleuth/pkg/common"
	"sleuth/pkg/logger"
	"sleuth/pkg/store"
	graphstorage "sleuth/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

// GetPathsHandler returns the ranked path set of an investigation. Paths can
// be filtered by status through the optional "status" query parameter.
func GetPathsHandler(c echo.Context) error {
	id := c.Param("id")
	statusFilter := c.QueryParam("status")
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	switch statusFilter {
	case "", string(common.PathStatusActive), string(common.PathStatusWeak), string(common.PathStatusDead):
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status filter"})
	}

	storageClient, err := graphstorage.NewInvestigationDBStorageWithConnection(ctx, app.DBConn, app.AiClient)
	if err != nil {
		logger.Error("Failed to create storage client", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	paths, err := storageClient.GetPaths(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Investigation not found"})
		}
		logger.Error("Failed to get paths", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	if statusFilter != "" {
		filtered := make([]common.Path, 0, len(paths))
		for _, p := range paths {
			if string(p.Status) == statusFilter {
				filtered = append(filtered, p)
			}
		}
		paths = filtered
	}

	return c.JSON(http.StatusOK, map[string]any{
		"paths": paths,
	})
}
