package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

const itemEntity = "Item"

// CreateItem handles POST /items/.
func (h *Handler) CreateItem(c *gin.Context) {
	var in types.ItemCreate
	if !bindJSON(c, &in) {
		return
	}
	item, err := sessionFrom(c).Items().Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, itemEntity, err)
		return
	}
	if !h.commit(c, itemEntity) {
		return
	}
	c.JSON(http.StatusOK, item)
}

// ListItems handles GET /items/.
func (h *Handler) ListItems(c *gin.Context) {
	page, ok := queryPage(c)
	if !ok {
		return
	}
	items, err := sessionFrom(c).Items().List(c.Request.Context(), page)
	if err != nil {
		h.fail(c, itemEntity, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListUrgentItems handles GET /items/urgent/?date=YYYY-MM-DD: items due on
// or before date.
func (h *Handler) ListUrgentItems(c *gin.Context) {
	raw, ok := c.GetQuery("date")
	if !ok {
		detail(c, http.StatusUnprocessableEntity, "date is required")
		return
	}
	date, err := types.ParseDate(raw)
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	page, ok := queryPage(c)
	if !ok {
		return
	}
	items, err := sessionFrom(c).Items().ListUrgent(c.Request.Context(), date, page)
	if err != nil {
		h.fail(c, itemEntity, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem handles GET /items/:id and embeds the owning team.
func (h *Handler) GetItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	sess := sessionFrom(c)

	item, err := sess.Items().Get(ctx, id)
	if err != nil {
		h.fail(c, itemEntity, err)
		return
	}

	out := types.ItemWithTeam{Item: *item}
	if item.TeamID != nil {
		team, err := sess.Teams().Get(ctx, *item.TeamID)
		switch {
		case err == nil:
			out.Team = team
		case !errors.Is(err, types.ErrNotFound):
			h.fail(c, itemEntity, err)
			return
		}
	}
	c.JSON(http.StatusOK, out)
}

// UpdateItem handles PATCH /items/:id.
func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch types.ItemUpdate
	if !bindJSON(c, &patch) {
		return
	}
	item, err := sessionFrom(c).Items().Update(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, itemEntity, err)
		return
	}
	if !h.commit(c, itemEntity) {
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /items/:id.
func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := sessionFrom(c).Items().Delete(c.Request.Context(), id); err != nil {
		h.fail(c, itemEntity, err)
		return
	}
	if !h.commit(c, itemEntity) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
