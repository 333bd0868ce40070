package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// Handler serves the item and team routes.
type Handler struct {
	store  types.Store
	logger *zap.Logger
}

// NewHandler returns a Handler over store.
func NewHandler(store types.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Health reports whether the store answers.
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// detail writes the error body used by every failing route.
func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

// fail maps a store error to a response. entity names the resource in the
// 404 message ("Item", "Team").
func (h *Handler) fail(c *gin.Context, entity string, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		detail(c, http.StatusNotFound, entity+" not found")
	case errors.Is(err, types.ErrTeamNotFound):
		detail(c, http.StatusUnprocessableEntity, "Team not found")
	case errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidDate),
		errors.Is(err, types.ErrInvalidPage):
		detail(c, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("store error",
			zap.String("entity", entity),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		detail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// bindJSON decodes the body into dst, answering 422 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

// pathID parses the :id path parameter, answering 422 if it is not an
// integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, fmt.Sprintf("invalid id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

// queryPage reads offset and limit, defaulting to 0 and 100.
func queryPage(c *gin.Context) (types.Page, bool) {
	page := types.DefaultPage()
	var err error
	if v, ok := c.GetQuery("offset"); ok {
		if page.Offset, err = strconv.Atoi(v); err != nil {
			detail(c, http.StatusUnprocessableEntity, fmt.Sprintf("invalid offset %q", v))
			return types.Page{}, false
		}
	}
	if v, ok := c.GetQuery("limit"); ok {
		if page.Limit, err = strconv.Atoi(v); err != nil {
			detail(c, http.StatusUnprocessableEntity, fmt.Sprintf("invalid limit %q", v))
			return types.Page{}, false
		}
	}
	page, err = page.Normalize()
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return types.Page{}, false
	}
	return page, true
}

// commit commits the request's session; false means a response was written.
func (h *Handler) commit(c *gin.Context, entity string) bool {
	if err := sessionFrom(c).Commit(); err != nil {
		h.fail(c, entity, err)
		return false
	}
	return true
}
