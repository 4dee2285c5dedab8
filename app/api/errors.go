package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/techpulse/blog-api/app/database"
	"github.com/techpulse/blog-api/app/guid"
)

// operationTimeout bounds each locate/update call. A timeout means the
// caller gave up waiting, not that the storage operation was aborted.
const operationTimeout = 25 * time.Second

func ok(c *gin.Context, payload gin.H) {
	response := gin.H{"success": true}
	for k, v := range payload {
		response[k] = v
	}
	c.JSON(http.StatusOK, response)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// failFromErr maps an error to the most specific response kind. Details
// of unexpected errors are logged server-side only.
func failFromErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, guid.ErrEmptyGUID):
		fail(c, http.StatusBadRequest, "guid is required")
	case errors.Is(err, database.ErrNotFound):
		fail(c, http.StatusNotFound, "document not found")
	case errors.Is(err, context.DeadlineExceeded):
		fail(c, http.StatusRequestTimeout, "operation timed out")
	default:
		slog.Error("Request failed", "path", c.FullPath(), "error", err)
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}
