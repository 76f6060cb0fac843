package text2kv

import "strings"

// RouteKind identifies what a normalized path resolves to.
type RouteKind int

const (
	// RouteObject is a generic object name served by TextService.
	RouteObject RouteKind = iota
	// RouteConfig is the HTML config view.
	RouteConfig
	// RouteScriptBat is the Windows updater download.
	RouteScriptBat
	// RouteScriptSh is the POSIX shell updater download.
	RouteScriptSh
)

// Reserved paths, relative to the server root.
const (
	PathConfig    = "config"
	PathScriptBat = "config/update.bat"
	PathScriptSh  = "config/update.sh"
)

func (k RouteKind) String() string {
	switch k {
	case RouteConfig:
		return "config"
	case RouteScriptBat:
		return "script_bat"
	case RouteScriptSh:
		return "script_sh"
	default:
		return "object"
	}
}

// Route is the resolved target of a request.
type Route struct {
	Kind RouteKind
	// Name is the case-folded object name. It is set for every kind.
	Name string
}

// NormalizeName strips the leading slash from a request path and lower-cases it.
func NormalizeName(path string) string {
	return strings.ToLower(strings.TrimPrefix(path, "/"))
}

// Resolve maps a request path to a Route. The token's own path resolves to
// the config view regardless of letter case.
func Resolve(path, token string) Route {
	name := NormalizeName(path)

	switch {
	case name == PathConfig, strings.EqualFold(name, token):
		return Route{Kind: RouteConfig, Name: name}
	case name == PathScriptBat:
		return Route{Kind: RouteScriptBat, Name: name}
	case name == PathScriptSh:
		return Route{Kind: RouteScriptSh, Name: name}
	default:
		return Route{Kind: RouteObject, Name: name}
	}
}
