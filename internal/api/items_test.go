package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

func TestCreateItem(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/items/", map[string]any{
		"description": "test item",
		"owner":       "test user",
		"deadline":    "2022-07-20",
		"progress":    "In progress",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decode[map[string]any](t, w)
	assert.Equal(t, "test item", data["description"])
	assert.Equal(t, "test user", data["owner"])
	assert.Equal(t, "2022-07-20", data["deadline"])
	assert.Equal(t, "In progress", data["progress"])
	assert.Nil(t, data["priority"])
	assert.Nil(t, data["team_id"])
	assert.NotNil(t, data["id"])
}

func TestCreateItemValidation(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		body any
	}{
		{name: "missing owner", body: map[string]any{"description": "d", "progress": "p"}},
		{name: "missing description", body: map[string]any{"owner": "o", "progress": "p"}},
		{name: "missing progress", body: map[string]any{"description": "d", "owner": "o"}},
		{name: "wrong priority type", body: map[string]any{"description": "d", "owner": "o", "progress": "p", "priority": "high"}},
		{name: "bad deadline", body: map[string]any{"description": "d", "owner": "o", "progress": "p", "deadline": "tomorrow"}},
		{name: "null owner", body: map[string]any{"description": "d", "owner": nil, "progress": "p"}},
		{name: "null deadline", body: map[string]any{"description": "d", "owner": "o", "progress": "p", "deadline": nil}},
		{name: "malformed json", body: `{"description": `},
		{name: "unknown team", body: map[string]any{"description": "d", "owner": "o", "progress": "p", "team_id": 99999}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/items/", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			assert.Contains(t, decode[map[string]any](t, w), "detail")
		})
	}

	list := decode[[]types.Item](t, do(t, r, http.MethodGet, "/items/", nil))
	assert.Empty(t, list, "rejected payloads store nothing")
}

func TestCreateItemEmptyStrings(t *testing.T) {
	r := newTestRouter(t)

	created := createItem(t, r, map[string]any{"description": "", "owner": "o", "progress": ""})
	assert.Equal(t, "", created.Description)
	assert.Equal(t, "", created.Progress)

	got := decode[types.ItemWithTeam](t, do(t, r, http.MethodGet, fmt.Sprintf("/items/%d", created.ID), nil))
	assert.Equal(t, created, got.Item)
}

func TestGetItemRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	created := createItem(t, r, map[string]any{
		"description": "test item", "owner": "test user", "progress": "In progress",
	})

	w := do(t, r, http.MethodGet, fmt.Sprintf("/items/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[types.ItemWithTeam](t, w)
	assert.Equal(t, created, got.Item)
	assert.Nil(t, got.Team)

	raw := decode[map[string]any](t, w)
	assert.Contains(t, raw, "team")
	assert.Nil(t, raw["team"])
}

func TestGetItemEmbedsTeam(t *testing.T) {
	r := newTestRouter(t)

	team := createTeam(t, r, "Avengers", "Stark Tower")
	item := createItem(t, r, map[string]any{
		"description": "assemble", "owner": "cap", "progress": "todo", "team_id": team.ID,
	})

	got := decode[types.ItemWithTeam](t, do(t, r, http.MethodGet, fmt.Sprintf("/items/%d", item.ID), nil))
	require.NotNil(t, got.Team)
	assert.Equal(t, team, *got.Team)
	require.NotNil(t, got.TeamID)
	assert.Equal(t, team.ID, *got.TeamID)
}

func TestListItemsPagination(t *testing.T) {
	r := newTestRouter(t)

	var ids []int64
	for i := 0; i < 5; i++ {
		it := createItem(t, r, map[string]any{
			"description": fmt.Sprintf("item %d", i), "owner": "o", "progress": "p",
		})
		ids = append(ids, it.ID)
	}

	tests := []struct {
		name    string
		query   string
		wantIDs []int64
	}{
		{name: "defaults", query: "", wantIDs: ids},
		{name: "limit zero is empty", query: "?limit=0", wantIDs: []int64{}},
		{name: "offset and limit", query: "?offset=1&limit=2", wantIDs: ids[1:3]},
		{name: "limit above max is capped", query: "?limit=1000", wantIDs: ids},
		{name: "offset past end", query: "?offset=50", wantIDs: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodGet, "/items/"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			got := decode[[]types.Item](t, w)
			gotIDs := []int64{}
			for _, it := range got {
				gotIDs = append(gotIDs, it.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestListItemsEmptyIsArray(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/items/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListItemsRejectsBadQuery(t *testing.T) {
	r := newTestRouter(t)
	for _, q := range []string{"?offset=-1", "?limit=-5", "?limit=ten", "?offset=x"} {
		w := do(t, r, http.MethodGet, "/items/"+q, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, q)
	}
}

func TestListUrgentItems(t *testing.T) {
	r := newTestRouter(t)

	for desc, deadline := range map[string]string{
		"before":     "2022-07-19",
		"on":         "2022-07-20",
		"after":      "2022-07-21",
		"much later": "2023-01-01",
	} {
		createItem(t, r, map[string]any{
			"description": desc, "owner": "o", "progress": "p", "deadline": deadline,
		})
	}

	w := do(t, r, http.MethodGet, "/items/urgent/?date=2022-07-20", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cutoff := types.NewDate(2022, time.July, 20)
	var descs []string
	for _, it := range decode[[]types.Item](t, w) {
		assert.False(t, it.Deadline.After(cutoff.Time), "deadline %s after cutoff", it.Deadline)
		descs = append(descs, it.Description)
	}
	assert.ElementsMatch(t, []string{"before", "on"}, descs)

	w = do(t, r, http.MethodGet, "/items/urgent/?date=2022-07-20&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]types.Item](t, w), 1)
}

func TestListUrgentItemsRequiresDate(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodGet, "/items/urgent/", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodGet, "/items/urgent/?date=07/20/2022", nil).Code)
}

func TestUpdateItemPartial(t *testing.T) {
	r := newTestRouter(t)

	team := createTeam(t, r, "Avengers", "Stark Tower")
	created := createItem(t, r, map[string]any{
		"description": "assemble",
		"priority":    2,
		"owner":       "cap",
		"deadline":    "2022-07-20",
		"progress":    "In progress",
		"team_id":     team.ID,
	})

	w := do(t, r, http.MethodPatch, fmt.Sprintf("/items/%d", created.ID), map[string]any{"progress": "done"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	want := created
	want.Progress = "done"
	assert.Equal(t, want, decode[types.Item](t, w))

	stored := decode[types.ItemWithTeam](t, do(t, r, http.MethodGet, fmt.Sprintf("/items/%d", created.ID), nil))
	assert.Equal(t, want, stored.Item, "change is committed")
}

func TestUpdateItemClearsNullableFields(t *testing.T) {
	r := newTestRouter(t)

	team := createTeam(t, r, "Avengers", "Stark Tower")
	created := createItem(t, r, map[string]any{
		"description": "d", "owner": "o", "progress": "p", "priority": 1, "team_id": team.ID,
	})

	w := do(t, r, http.MethodPatch, fmt.Sprintf("/items/%d", created.ID), `{"priority": null, "team_id": null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[types.Item](t, w)
	assert.Nil(t, got.Priority)
	assert.Nil(t, got.TeamID)
	assert.Equal(t, created.Description, got.Description)
}

func TestUpdateItemRejects(t *testing.T) {
	r := newTestRouter(t)
	created := createItem(t, r, map[string]any{"description": "d", "owner": "o", "progress": "p"})
	path := fmt.Sprintf("/items/%d", created.ID)

	tests := []struct {
		name string
		body any
	}{
		{name: "null on required field", body: `{"owner": null}`},
		{name: "bad deadline", body: `{"deadline": "soon"}`},
		{name: "unknown team", body: `{"team_id": 99999}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPatch, path, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		})
	}

	got := decode[types.ItemWithTeam](t, do(t, r, http.MethodGet, path, nil))
	assert.Equal(t, created, got.Item, "rejected updates change nothing")
}

func TestDeleteItem(t *testing.T) {
	r := newTestRouter(t)
	created := createItem(t, r, map[string]any{"description": "d", "owner": "o", "progress": "p"})
	path := fmt.Sprintf("/items/%d", created.ID)

	w := do(t, r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, path, nil).Code)
}

func TestItemNotFound(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		method string
		body   any
	}{
		{method: http.MethodGet},
		{method: http.MethodPatch, body: map[string]any{"progress": "done"}},
		{method: http.MethodDelete},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := do(t, r, tt.method, "/items/99999", tt.body)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"detail": "Item not found"}`, w.Body.String())
		})
	}
}

func TestItemInvalidID(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/items/abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
