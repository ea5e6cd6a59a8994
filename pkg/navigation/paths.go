package navigation

import (
	"net/url"
	"strings"
)

func normalizeBase(base string) string {
	base = strings.TrimSpace(base)
	if base == "" || base == "/" {
		return "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return strings.TrimRight(base, "/")
}

// normalizePath drops a single trailing slash so /login and /login/ resolve
// identically. The root path is preserved and an empty path stays empty.
func normalizePath(path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func stripQuery(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i]
	}
	return path
}

func joinBase(base, path string) string {
	if base == "/" {
		return path
	}
	if path == "/" {
		return base + "/"
	}
	return base + path
}

func paramName(segment string) (string, bool) {
	if len(segment) > 2 && strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
		return segment[1 : len(segment)-1], true
	}
	return "", false
}

func hasParams(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if _, ok := paramName(seg); ok {
			return true
		}
	}
	return false
}

// pathShape erases parameter names so that patterns differing only in
// placeholder names compare equal.
func pathShape(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if _, ok := paramName(seg); ok {
			segments[i] = "{}"
		}
	}
	return strings.Join(segments, "/")
}

// matchPattern reports whether path satisfies pattern and returns the
// decoded parameter values.
func matchPattern(pattern, path string) (map[string]string, bool) {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	params := make(map[string]string)
	for i := range patternParts {
		if key, ok := paramName(patternParts[i]); ok {
			if pathParts[i] == "" {
				return nil, false
			}
			v, err := url.PathUnescape(pathParts[i])
			if err != nil {
				return nil, false
			}
			params[key] = v
			continue
		}
		if patternParts[i] != pathParts[i] {
			return nil, false
		}
	}
	return params, true
}
