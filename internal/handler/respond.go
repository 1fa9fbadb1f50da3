package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mahmoud-sadrian/Bsc-project/internal/apperr"
	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
)

// respondError writes the error envelope for err. Storage detail is only
// shown outside release mode; the status code is the same either way.
func respondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Printf("❌ Unhandled error on %s: %v", c.Request.URL.RequestURI(), err)
		appErr = apperr.Storage("Internal server error", err)
	}

	msg := appErr.Message
	if appErr.Kind == apperr.KindStorage {
		log.Printf("❌ %v", appErr)
		if gin.Mode() != gin.ReleaseMode {
			msg = appErr.Error()
		}
	}

	c.JSON(appErr.Kind.Status(), model.ErrorResponse{Error: msg})
}

func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, model.ErrorResponse{Error: msgEndpointNotFound})
}

// deviceIDParam reads ?device_id. Anything unparseable becomes 0, which
// matches no device and so takes the ordinary not-found path.
func deviceIDParam(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Query("device_id"), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
