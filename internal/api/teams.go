package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

const teamEntity = "Team"

// CreateTeam handles POST /teams/.
func (h *Handler) CreateTeam(c *gin.Context) {
	var in types.TeamCreate
	if !bindJSON(c, &in) {
		return
	}
	team, err := sessionFrom(c).Teams().Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, teamEntity, err)
		return
	}
	if !h.commit(c, teamEntity) {
		return
	}
	c.JSON(http.StatusOK, team)
}

// ListTeams handles GET /teams/.
func (h *Handler) ListTeams(c *gin.Context) {
	page, ok := queryPage(c)
	if !ok {
		return
	}
	teams, err := sessionFrom(c).Teams().List(c.Request.Context(), page)
	if err != nil {
		h.fail(c, teamEntity, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// GetTeam handles GET /teams/:id and embeds the team's items.
func (h *Handler) GetTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	sess := sessionFrom(c)

	team, err := sess.Teams().Get(ctx, id)
	if err != nil {
		h.fail(c, teamEntity, err)
		return
	}
	items, err := sess.Items().ListByTeam(ctx, id)
	if err != nil {
		h.fail(c, teamEntity, err)
		return
	}
	c.JSON(http.StatusOK, types.TeamWithItems{Team: *team, Items: items})
}

// UpdateTeam handles PATCH /teams/:id.
func (h *Handler) UpdateTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch types.TeamUpdate
	if !bindJSON(c, &patch) {
		return
	}
	team, err := sessionFrom(c).Teams().Update(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, teamEntity, err)
		return
	}
	if !h.commit(c, teamEntity) {
		return
	}
	c.JSON(http.StatusOK, team)
}

// DeleteTeam handles DELETE /teams/:id. The team's items stay, with their
// team_id cleared.
func (h *Handler) DeleteTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := sessionFrom(c).Teams().Delete(c.Request.Context(), id); err != nil {
		h.fail(c, teamEntity, err)
		return
	}
	if !h.commit(c, teamEntity) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
