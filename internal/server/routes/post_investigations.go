package routes

import (
	"net/http"

	"sleuth/internal/server/middleware"
	"sleuth/pkg/logger"
	"sleuth/pkg/store"
	graphstorage "sleuth/pkg/store/pgx"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// CreateInvestigationHandler creates a new empty investigation. Articles are
// attached afterwards through the article routes.
func CreateInvestigationHandler(c echo.Context) error {
	type createInvestigationBody struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}

	type createInvestigationResponse struct {
		Message       string               `json:"message"`
		Investigation *store.Investigation `json:"investigation,omitempty"`
	}

	data := new(createInvestigationBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createInvestigationResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createInvestigationResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	storageClient, err := graphstorage.NewInvestigationDBStorageWithConnection(ctx, app.DBConn, app.AiClient)
	if err != nil {
		logger.Error("Failed to create storage client", "err", err)
		return c.JSON(http.StatusInternalServerError, createInvestigationResponse{
			Message: "Internal server error",
		})
	}

	investigation, err := storageClient.CreateInvestigation(ctx, data.Name, data.Description)
	if err != nil {
		logger.Error("Failed to create investigation", "err", err)
		return c.JSON(http.StatusInternalServerError, createInvestigationResponse{
			Message: "Internal server error",
		})
	}

	logger.Info("Created investigation", "id", investigation.ID, "name", investigation.Name)

	return c.JSON(http.StatusCreated, createInvestigationResponse{
		Message:       "Investigation created",
		Investigation: investigation,
	})
}
