package querystate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadalnaib/project-board/internal/listing"
)

func TestSetFilter_SetsAndClears(t *testing.T) {
	state := New("/projects", nil)

	state, intent := state.SetFilter("status", "completed")
	assert.Equal(t, "/projects?status=completed", intent.URL)
	assert.Equal(t, listing.QueryParams{"status": "completed"}, intent.Params)
	assert.True(t, intent.Replace)
	assert.True(t, intent.PreserveScroll)
	assert.True(t, intent.PreserveState)

	state, intent = state.SetFilter("status", "   ")
	assert.Equal(t, "/projects", intent.URL)
	assert.Empty(t, state.Params())
}

func TestSetFilter_DropsPageAndKeepsOtherKeys(t *testing.T) {
	state, err := ParseURL("/projects?page=3&sort_field=name&sort_direction=desc")
	require.NoError(t, err)

	_, intent := state.SetFilter("name", "alpha")
	assert.Equal(t, "/projects?name=alpha&sort_direction=desc&sort_field=name", intent.URL)
}

func TestSetFilter_PassesUnknownKeysThrough(t *testing.T) {
	state, intent := New("/tasks", nil).SetFilter("colour", "blue")
	assert.Equal(t, "blue", state.Get("colour"))
	assert.Equal(t, "/tasks?colour=blue", intent.URL)
}

func TestSetFilter_DoesNotMutateReceiver(t *testing.T) {
	original := New("/projects", listing.QueryParams{"status": "pending"})
	_, _ = original.SetFilter("status", "completed")
	assert.Equal(t, "pending", original.Get("status"))
}

func TestToggleSort(t *testing.T) {
	tests := []struct {
		name    string
		start   listing.QueryParams
		field   string
		wantURL string
	}{
		{
			name:    "new field starts ascending",
			start:   nil,
			field:   "name",
			wantURL: "/projects?sort_direction=asc&sort_field=name",
		},
		{
			name:    "same field flips to desc",
			start:   listing.QueryParams{"sort_field": "name", "sort_direction": "asc"},
			field:   "name",
			wantURL: "/projects?sort_direction=desc&sort_field=name",
		},
		{
			name:    "same field flips back to asc",
			start:   listing.QueryParams{"sort_field": "name", "sort_direction": "desc"},
			field:   "name",
			wantURL: "/projects?sort_direction=asc&sort_field=name",
		},
		{
			name:    "switching field resets to asc",
			start:   listing.QueryParams{"sort_field": "name", "sort_direction": "desc"},
			field:   "due_date",
			wantURL: "/projects?sort_direction=asc&sort_field=due_date",
		},
		{
			name:    "missing direction reads as asc and flips to desc",
			start:   listing.QueryParams{"sort_field": "name"},
			field:   "name",
			wantURL: "/projects?sort_direction=desc&sort_field=name",
		},
		{
			name:    "upper case direction flips",
			start:   listing.QueryParams{"sort_field": "name", "sort_direction": "ASC"},
			field:   "name",
			wantURL: "/projects?sort_direction=desc&sort_field=name",
		},
		{
			name:    "upper case desc flips to asc",
			start:   listing.QueryParams{"sort_field": "name", "sort_direction": "DESC"},
			field:   "name",
			wantURL: "/projects?sort_direction=asc&sort_field=name",
		},
		{
			name:    "garbage direction flips to asc",
			start:   listing.QueryParams{"sort_field": "name", "sort_direction": "sideways"},
			field:   "name",
			wantURL: "/projects?sort_direction=asc&sort_field=name",
		},
		{
			name:    "filters survive and page resets",
			start:   listing.QueryParams{"status": "completed", "page": "4"},
			field:   "status",
			wantURL: "/projects?sort_direction=asc&sort_field=status&status=completed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, intent := New("/projects", tt.start).ToggleSort(tt.field)
			assert.Equal(t, tt.wantURL, intent.URL)
			assert.True(t, intent.Replace)
		})
	}
}

func TestToggleSort_SecondClickDescends(t *testing.T) {
	start := New("/projects", listing.QueryParams{"sort_field": "created_at", "sort_direction": "desc"})

	once, _ := start.ToggleSort("name")
	twice, _ := once.ToggleSort("name")

	assert.Equal(t, "asc", once.Get(listing.ParamSortDirection))
	assert.Equal(t, "desc", twice.Get(listing.ParamSortDirection))
	assert.Equal(t, "name", twice.SortField())
}

func TestCommit_OnlyOnConfirmingGestures(t *testing.T) {
	state := New("/projects", nil)

	same, _, ok := state.Commit("name", "Alp", GestureKeystroke)
	assert.False(t, ok)
	assert.True(t, same.Equal(state))

	for _, gesture := range []Gesture{GestureEnter, GestureBlur} {
		next, intent, ok := state.Commit("name", "Alpha", gesture)
		require.True(t, ok, gesture.String())
		assert.Equal(t, "Alpha", next.Get("name"))
		assert.Equal(t, "/projects?name=Alpha", intent.URL)
	}
}

func TestGoTo_PushesHistoryAndAdoptsLinkQuery(t *testing.T) {
	state := New("/projects", listing.QueryParams{"status": "completed"})

	next, intent, err := state.GoTo("/projects?page=2&status=completed")
	require.NoError(t, err)

	assert.False(t, intent.Replace)
	assert.True(t, intent.PreserveScroll)
	assert.Equal(t, 2, next.Page())
	assert.Equal(t, "completed", next.Get("status"))
}

func TestGoTo_AbsoluteURLKeepsPathOnly(t *testing.T) {
	next, intent, err := New("/projects", nil).GoTo("http://localhost:8080/projects?page=3")
	require.NoError(t, err)
	assert.Equal(t, "/projects", next.Path())
	assert.Equal(t, "/projects?page=3", intent.URL)
}

func TestGoTo_RelativeQueryKeepsCurrentPath(t *testing.T) {
	next, _, err := New("/tasks", nil).GoTo("?page=2")
	require.NoError(t, err)
	assert.Equal(t, "/tasks?page=2", next.URL())
}

func TestParseURL_RoundTrip(t *testing.T) {
	raw := "/tasks?priority=high&sort_direction=desc&sort_field=due_date&title=write+docs"
	state, err := ParseURL(raw)
	require.NoError(t, err)

	assert.Equal(t, raw, state.URL())
	assert.Equal(t, "write docs", state.Get("title"))

	again, err := ParseURL(state.URL())
	require.NoError(t, err)
	assert.True(t, again.Equal(state))
}

func TestParseURL_DropsEmptyValues(t *testing.T) {
	state, err := ParseURL("/projects?name=&status=pending")
	require.NoError(t, err)
	assert.Equal(t, listing.QueryParams{"status": "pending"}, state.Params())
}

func TestPage_DefaultsToOne(t *testing.T) {
	assert.Equal(t, 1, New("/projects", nil).Page())
	assert.Equal(t, 1, New("/projects", listing.QueryParams{"page": "x"}).Page())
}

func TestSync_AdoptsServerMapping(t *testing.T) {
	state := New("/projects", listing.QueryParams{"name": "al"})
	synced := state.Sync(listing.QueryParams{"name": "al", "page": "2"})
	assert.Equal(t, "/projects?name=al&page=2", synced.URL())
}

func TestReload_ReplacesWithCurrentURL(t *testing.T) {
	state := New("/tasks", listing.QueryParams{"priority": "low", "page": "3"})
	intent := state.Reload()
	assert.Equal(t, "/tasks?page=3&priority=low", intent.URL)
	assert.True(t, intent.Replace)
}
