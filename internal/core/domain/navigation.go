package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Route - маршрут клиентского приложения и экран, который он открывает
type Route struct {
	Path       string
	View       string
	RedirectTo string
}

// RouteConflict - путь, на который претендуют несколько экранов
type RouteConflict struct {
	Path  string
	Views []string
}

// ResolvedRoute - результат сопоставления пути с таблицей
type ResolvedRoute struct {
	Route  Route
	Params map[string]string
}

const catchAllPath = "*"

// AppRoutes - таблица маршрутов в порядке объявления
func AppRoutes() []Route {
	return []Route{
		{Path: "/", View: "Home"},
		{Path: "/home", View: "Home"},
		{Path: "/search", View: "Search"},
		{Path: "/ads", View: "SecondComponent"},
		{Path: "/profile", View: "Profile"},
		{Path: "/favorites", View: "Favourite"},
		{Path: "/card/:cardId", View: "CardDetails"},
		{Path: "/agentPub/:id", View: "AgentCard"},
		{Path: "/draft-details/:id", View: "DraftDetails"},
		{Path: "/dashboard", View: "Dashboard"},
		{Path: "/draft", View: "Draft"},
		{Path: "/owner-draft", View: "Draft"},
		{Path: "/agent-draft", View: "AgentDraft"},
		{Path: "/analytics", View: "Dashboard"},
		{Path: "/agents-list", View: "AllAgents"},
		{Path: "/draft-details/:id", View: "AgentDraftDetails"},
		{Path: "/main", View: "FirstComponent"},
		{Path: "/main-2", View: "SecondComponent"},
		{Path: catchAllPath, RedirectTo: "/"},
	}
}

// FindRouteConflicts возвращает пути, объявленные для разных экранов. Порядок - по пути.
func FindRouteConflicts(routes []Route) []RouteConflict {
	byPath := make(map[string][]string)
	for _, r := range routes {
		views := byPath[r.Path]
		if !containsString(views, r.View) {
			byPath[r.Path] = append(views, r.View)
		}
	}

	conflicts := make([]RouteConflict, 0)
	for path, views := range byPath {
		if len(views) > 1 {
			conflicts = append(conflicts, RouteConflict{Path: path, Views: views})
		}
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Path < conflicts[j].Path })
	return conflicts
}

// ResolveRoute сопоставляет конкретный путь с таблицей.
// Если путь подходит под шаблон с несколькими экранами, возвращается ErrRouteConflict.
func ResolveRoute(routes []Route, path string) (ResolvedRoute, error) {
	if path == "" {
		path = "/"
	}
	conflicts := FindRouteConflicts(routes)

	var catchAll *Route
	for i := range routes {
		r := routes[i]
		if r.Path == catchAllPath {
			if catchAll == nil {
				catchAll = &routes[i]
			}
			continue
		}
		params, ok := matchPattern(r.Path, path)
		if !ok {
			continue
		}
		for _, c := range conflicts {
			if c.Path == r.Path {
				return ResolvedRoute{}, fmt.Errorf("%w: %s (%s)", ErrRouteConflict, r.Path, strings.Join(c.Views, ", "))
			}
		}
		return ResolvedRoute{Route: r, Params: params}, nil
	}

	if catchAll != nil {
		return ResolvedRoute{Route: *catchAll, Params: map[string]string{}}, nil
	}
	return ResolvedRoute{}, fmt.Errorf("%w: no route for %q", ErrNotFound, path)
}

func matchPattern(pattern, path string) (map[string]string, bool) {
	patternParts := splitPath(pattern)
	pathParts := splitPath(path)
	if len(patternParts) != len(pathParts) {
		return nil, false
	}
	params := make(map[string]string)
	for i, part := range patternParts {
		if name, ok := strings.CutPrefix(part, ":"); ok {
			if pathParts[i] == "" {
				return nil, false
			}
			params[name] = pathParts[i]
			continue
		}
		if part != pathParts[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "/")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
