package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRouteConflicts(t *testing.T) {
	conflicts := FindRouteConflicts(AppRoutes())

	require.Len(t, conflicts, 1)
	assert.Equal(t, "/draft-details/:id", conflicts[0].Path)
	assert.Equal(t, []string{"DraftDetails", "AgentDraftDetails"}, conflicts[0].Views)
}

func TestFindRouteConflicts_SameViewIsNotConflict(t *testing.T) {
	routes := []Route{{Path: "/a", View: "Home"}, {Path: "/a", View: "Home"}}

	assert.Empty(t, FindRouteConflicts(routes))
}

func TestResolveRoute(t *testing.T) {
	routes := AppRoutes()

	resolved, err := ResolveRoute(routes, "/card/42")
	require.NoError(t, err)
	assert.Equal(t, "CardDetails", resolved.Route.View)
	assert.Equal(t, map[string]string{"cardId": "42"}, resolved.Params)

	resolved, err = ResolveRoute(routes, "/favorites/")
	require.NoError(t, err)
	assert.Equal(t, "Favourite", resolved.Route.View)

	resolved, err = ResolveRoute(routes, "")
	require.NoError(t, err)
	assert.Equal(t, "Home", resolved.Route.View)

	resolved, err = ResolveRoute(routes, "/nowhere/at/all")
	require.NoError(t, err)
	assert.Equal(t, "/", resolved.Route.RedirectTo)

	_, err = ResolveRoute(routes, "/draft-details/7")
	assert.ErrorIs(t, err, ErrRouteConflict)
}

func TestResolveRoute_NoCatchAll(t *testing.T) {
	_, err := ResolveRoute([]Route{{Path: "/", View: "Home"}}, "/x")

	assert.ErrorIs(t, err, ErrNotFound)
}
