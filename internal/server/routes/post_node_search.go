package routes

import (
	"errors"
	"net/http"

	"sleuth/internal/server/middleware"
	"sleuth/pkg/common"
	"sleuth/pkg/logger"
	"sleuth/pkg/store"
	graphstorage "sleuth/pkg/store/pgx"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// SearchNodesHandler finds evidence nodes whose labels are semantically close
// to a free-text query, using the stored node embeddings.
func SearchNodesHandler(c echo.Context) error {
	type searchNodesBody struct {
		Query string `json:"query" validate:"required"`
		TopK  int32  `json:"top_k"`
	}

	type searchNodesResponse struct {
		Message string        `json:"message,omitempty"`
		Nodes   []common.Node `json:"nodes,omitempty"`
	}

	id := c.Param("id")
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	data := new(searchNodesBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, searchNodesResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, searchNodesResponse{
			Message: "Invalid request body",
		})
	}
	topK := data.TopK
	if topK <= 0 {
		topK = 10
	}

	embedding, err := app.AiClient.GenerateEmbedding(ctx, []byte(data.Query))
	if err != nil {
		logger.Error("Failed to embed search query", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, searchNodesResponse{
			Message: "Internal server error",
		})
	}

	storageClient, err := graphstorage.NewInvestigationDBStorageWithConnection(ctx, app.DBConn, app.AiClient)
	if err != nil {
		logger.Error("Failed to create storage client", "err", err)
		return c.JSON(http.StatusInternalServerError, searchNodesResponse{
			Message: "Internal server error",
		})
	}

	nodeIDs, err := storageClient.FindSimilarNodes(ctx, id, embedding, topK)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, searchNodesResponse{
				Message: "Investigation not found",
			})
		}
		logger.Error("Failed to search nodes", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, searchNodesResponse{
			Message: "Internal server error",
		})
	}

	g, err := storageClient.GetGraph(ctx, id)
	if err != nil {
		logger.Error("Failed to get graph", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, searchNodesResponse{
			Message: "Internal server error",
		})
	}

	byID := make(map[string]common.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}
	nodes := make([]common.Node, 0, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		if n, ok := byID[nodeID]; ok {
			nodes = append(nodes, n)
		}
	}

	return c.JSON(http.StatusOK, searchNodesResponse{
		Nodes: nodes,
	})
}
