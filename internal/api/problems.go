package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fintrack/internal/apperr"
	"fintrack/internal/middleware"
)

// Problem is the error body shape shared by every endpoint.
type Problem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Detail string              `json:"detail"`
	Errors map[string][]string `json:"errors,omitempty"` // Field name -> messages
}

// respondError translates a service error into the matching HTTP status and
// problem body. Anything that is not a typed application error becomes a
// generic 500; the full error is only logged server-side.
func respondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status, typ, title := mapCode(appErr.Code)
		c.JSON(status, Problem{
			Type:   typ,
			Title:  title,
			Status: status,
			Detail: appErr.Message,
			Errors: appErr.Fields,
		})
		return
	}
	logrus.WithFields(logrus.Fields{
		"path":  c.FullPath(),
		"error": err.Error(),
	}).Error("Unhandled error")
	c.JSON(http.StatusInternalServerError, Problem{
		Type:   "internal",
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
		Detail: "an unexpected error occurred",
	})
}

// mapCode resolves an app error code to its HTTP representation.
func mapCode(code apperr.Code) (int, string, string) {
	switch code {
	case apperr.CodeNotFound:
		return http.StatusNotFound, "not-found", "Not Found"
	case apperr.CodeConflict:
		return http.StatusConflict, "conflict", "Conflict"
	case apperr.CodeValidation:
		return http.StatusBadRequest, "validation", "Validation Failed"
	case apperr.CodeUnauthorized:
		return http.StatusUnauthorized, "unauthorized", "Unauthorized"
	default:
		return http.StatusInternalServerError, "internal", "Internal Server Error"
	}
}

// badBody reports an unreadable or malformed JSON request body.
func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, Problem{
		Type:   "validation",
		Title:  "Validation Failed",
		Status: http.StatusBadRequest,
		Detail: "invalid request body",
	})
}

// currentUser pulls the authenticated user id set by the JWT middleware.
func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Problem{
			Type:   "unauthorized",
			Title:  "Unauthorized",
			Status: http.StatusUnauthorized,
			Detail: "authentication required",
		})
		return 0, false
	}
	return userID, true
}

// pathID parses a numeric path parameter; an unparsable id behaves like a
// missing resource.
func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		c.JSON(http.StatusNotFound, Problem{
			Type:   "not-found",
			Title:  "Not Found",
			Status: http.StatusNotFound,
			Detail: "resource not found",
		})
		return 0, false
	}
	return uint(v), true
}

// queryInt reads an integer query parameter, falling back on parse failure.
func queryInt(c *gin.Context, name string, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}
