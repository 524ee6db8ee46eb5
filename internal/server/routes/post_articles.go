package routes

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"sleuth/internal/queue"
	"sleuth/internal/server/middleware"
	"sleuth/internal/storage"
	"sleuth/pkg/logger"
	"sleuth/pkg/store"
	graphstorage "sleuth/pkg/store/pgx"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// AddArticlesHandler attaches articles to an investigation. Uploaded files go
// to object storage and become stored articles; URLs become web articles that
// are fetched by the worker. One extract message is published per article.
func AddArticlesHandler(c echo.Context) error {
	type addArticlesBody struct {
		URLs []string `json:"urls" form:"urls"`
	}

	type addArticlesResponse struct {
		Message  string                `json:"message"`
		Articles []store.ArticleRecord `json:"articles,omitempty"`
	}

	id := c.Param("id")
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	data := new(addArticlesBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, addArticlesResponse{
			Message: "Invalid request body",
		})
	}

	var uploads []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		uploads = form.File["files"]
	}

	if len(data.URLs) == 0 && len(uploads) == 0 {
		return c.JSON(http.StatusBadRequest, addArticlesResponse{
			Message: "No articles provided",
		})
	}

	storageClient, err := graphstorage.NewInvestigationDBStorageWithConnection(ctx, app.DBConn, app.AiClient)
	if err != nil {
		logger.Error("Failed to create storage client", "err", err)
		return c.JSON(http.StatusInternalServerError, addArticlesResponse{
			Message: "Internal server error",
		})
	}

	if _, err := storageClient.GetInvestigation(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, addArticlesResponse{
				Message: "Investigation not found",
			})
		}
		logger.Error("Failed to get investigation", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, addArticlesResponse{
			Message: "Internal server error",
		})
	}

	articles := make([]store.ArticleRecord, 0, len(data.URLs)+len(uploads))

	for _, rawURL := range data.URLs {
		url := strings.TrimSpace(rawURL)
		if url == "" {
			continue
		}
		record, err := storageClient.SaveArticle(ctx, store.ArticleRecord{
			InvestigationID: id,
			Location:        url,
			Kind:            store.ArticleKindWeb,
		})
		if err != nil {
			logger.Error("Failed to save web article", "id", id, "url", url, "err", err)
			return c.JSON(http.StatusInternalServerError, addArticlesResponse{
				Message: "Internal server error",
			})
		}
		articles = append(articles, *record)
	}

	for _, upload := range uploads {
		fileID, err := gonanoid.New()
		if err != nil {
			logger.Error("Failed to generate file id", "err", err)
			return c.JSON(http.StatusInternalServerError, addArticlesResponse{
				Message: "Internal server error",
			})
		}

		src, err := upload.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, addArticlesResponse{
				Message: "Invalid file upload",
			})
		}

		key := storage.ArticleKey(id, fileID)
		_, err = storage.PutFile(ctx, app.S3, key, upload.Filename, src)
		src.Close()
		if err != nil {
			logger.Error("Failed to upload article file", "id", id, "file", upload.Filename, "err", err)
			return c.JSON(http.StatusInternalServerError, addArticlesResponse{
				Message: "Internal server error",
			})
		}

		record, err := storageClient.SaveArticle(ctx, store.ArticleRecord{
			InvestigationID: id,
			Location:        key,
			SourceName:      upload.Filename,
			Kind:            store.ArticleKindStored,
		})
		if err != nil {
			logger.Error("Failed to save stored article", "id", id, "file", upload.Filename, "err", err)
			return c.JSON(http.StatusInternalServerError, addArticlesResponse{
				Message: "Internal server error",
			})
		}
		articles = append(articles, *record)
	}

	for _, article := range articles {
		queueData := queue.QueueExtractMsg{
			Message:         "Extract article",
			InvestigationID: id,
			ArticleID:       article.ID,
			Location:        article.Location,
			SourceName:      article.SourceName,
			Kind:            article.Kind,
		}
		msgBytes, err := json.Marshal(queueData)
		if err != nil {
			logger.Error("Failed to marshal extract message", "article_id", article.ID, "err", err)
			continue
		}
		if err := queue.PublishFIFO(app.Queue, queue.ExtractQueue, msgBytes); err != nil {
			logger.Error("Failed to publish extract message", "article_id", article.ID, "err", err)
		}
	}

	return c.JSON(http.StatusCreated, addArticlesResponse{
		Message:  "Articles queued for extraction",
		Articles: articles,
	})
}
