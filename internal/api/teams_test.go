package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

func TestCreateTeam(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/teams/", map[string]any{"name": "Avengers", "headquarters": "Stark Tower"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decode[map[string]any](t, w)
	assert.Equal(t, "Avengers", data["name"])
	assert.Equal(t, "Stark Tower", data["headquarters"])
	assert.NotNil(t, data["id"])
}

func TestCreateTeamValidation(t *testing.T) {
	r := newTestRouter(t)

	for _, body := range []any{
		map[string]any{"name": "Avengers"},
		map[string]any{"headquarters": "Stark Tower"},
		map[string]any{"name": nil, "headquarters": "Stark Tower"},
		`[]`,
	} {
		w := do(t, r, http.MethodPost, "/teams/", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	}
}

func TestCreateTeamEmptyStrings(t *testing.T) {
	r := newTestRouter(t)

	team := createTeam(t, r, "", "")
	assert.Equal(t, types.Team{ID: team.ID}, team)

	w := do(t, r, http.MethodGet, fmt.Sprintf("/teams/%d", team.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, team, decode[types.TeamWithItems](t, w).Team)
}

func TestListTeams(t *testing.T) {
	r := newTestRouter(t)

	a := createTeam(t, r, "Avengers", "Stark Tower")
	b := createTeam(t, r, "X-Men", "Mansion")

	got := decode[[]types.Team](t, do(t, r, http.MethodGet, "/teams/", nil))
	assert.Equal(t, []types.Team{a, b}, got)

	got = decode[[]types.Team](t, do(t, r, http.MethodGet, "/teams/?offset=1", nil))
	assert.Equal(t, []types.Team{b}, got)

	got = decode[[]types.Team](t, do(t, r, http.MethodGet, "/teams/?limit=0", nil))
	assert.Empty(t, got)
}

func TestGetTeamEmbedsItems(t *testing.T) {
	r := newTestRouter(t)

	team := createTeam(t, r, "Avengers", "Stark Tower")
	first := createItem(t, r, map[string]any{"description": "a", "owner": "o", "progress": "p", "team_id": team.ID})
	createItem(t, r, map[string]any{"description": "unowned", "owner": "o", "progress": "p"})
	second := createItem(t, r, map[string]any{"description": "b", "owner": "o", "progress": "p", "team_id": team.ID})

	w := do(t, r, http.MethodGet, fmt.Sprintf("/teams/%d", team.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[types.TeamWithItems](t, w)
	assert.Equal(t, team, got.Team)
	assert.Equal(t, []types.Item{first, second}, got.Items)
}

func TestGetTeamWithoutItems(t *testing.T) {
	r := newTestRouter(t)
	team := createTeam(t, r, "Avengers", "Stark Tower")

	w := do(t, r, http.MethodGet, fmt.Sprintf("/teams/%d", team.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id": %d, "name": "Avengers", "headquarters": "Stark Tower", "items": []}`, team.ID), w.Body.String())
}

func TestUpdateTeamPartial(t *testing.T) {
	r := newTestRouter(t)
	team := createTeam(t, r, "Avengers", "Stark Tower")

	w := do(t, r, http.MethodPatch, fmt.Sprintf("/teams/%d", team.ID), map[string]any{"headquarters": "Avengers Compound"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[types.Team](t, w)
	assert.Equal(t, types.Team{ID: team.ID, Name: "Avengers", Headquarters: "Avengers Compound"}, got)

	w = do(t, r, http.MethodPatch, fmt.Sprintf("/teams/%d", team.ID), `{"name": null}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// Deleting a team keeps its items and clears their team_id.
func TestDeleteTeamDetachesItems(t *testing.T) {
	r := newTestRouter(t)

	team := createTeam(t, r, "Avengers", "Stark Tower")
	item := createItem(t, r, map[string]any{"description": "a", "owner": "o", "progress": "p", "team_id": team.ID})

	w := do(t, r, http.MethodDelete, fmt.Sprintf("/teams/%d", team.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, fmt.Sprintf("/teams/%d", team.ID), nil).Code)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/items/%d", item.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[types.ItemWithTeam](t, w)
	assert.Nil(t, got.TeamID)
	assert.Nil(t, got.Team)
}

func TestTeamNotFound(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		method string
		body   any
	}{
		{method: http.MethodGet},
		{method: http.MethodPatch, body: map[string]any{"name": "x"}},
		{method: http.MethodDelete},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := do(t, r, tt.method, "/teams/99999", tt.body)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"detail": "Team not found"}`, w.Body.String())
		})
	}
}
