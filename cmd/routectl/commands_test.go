package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/stock-navigator/pkg/navigation"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_BASE_URL", "")
	t.Setenv("APP_ROUTER_HISTORY", "")
	t.Setenv("APP_ROUTES_FILE", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeRoutes(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRoutes_Default(t *testing.T) {
	out, err := run(t, "routes")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	for _, name := range []string{"HomeView", "LogInView", "SignUpView", "UserSelectView", "LoadingView", "ThemeListView", "ThemeItemView", "StockItemView"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "/app/stockitem")
}

func TestRoutes_JSON(t *testing.T) {
	out, err := run(t, "routes", "--json", "--base", "/")
	require.NoError(t, err)

	var routes []navigation.RouteInfo
	require.NoError(t, json.Unmarshal([]byte(out), &routes))
	require.Len(t, routes, 8)
	assert.Equal(t, navigation.RouteInfo{Path: "/themeitem", Name: "ThemeItemView"}, routes[6])
}

func TestResolve(t *testing.T) {
	out, err := run(t, "resolve", "/themeitem")
	require.NoError(t, err)
	assert.Contains(t, out, "name: ThemeItemView")
	assert.Contains(t, out, "view: ThemeItemView")
}

func TestResolve_Full(t *testing.T) {
	out, err := run(t, "resolve", "--full", "--base", "/stock", "/stock/login/?next=home")
	require.NoError(t, err)
	assert.Contains(t, out, "name: LogInView")

	_, err = run(t, "resolve", "--full", "--base", "/stock", "/other/login")
	assert.Error(t, err)
}

func TestResolve_NotFound(t *testing.T) {
	_, err := run(t, "resolve", "/unknown")
	assert.True(t, errors.Is(err, navigation.ErrNotFound), "error = %v", err)
}

func TestResolve_Params(t *testing.T) {
	routes := writeRoutes(t, "routes.yaml", `
routes:
  - path: /
    name: HomeView
  - path: /theme/{id}
    name: ThemeItemView
`)

	out, err := run(t, "resolve", "--routes", routes, "/theme/semis")
	require.NoError(t, err)
	assert.Contains(t, out, "param id: semis")
}

func TestHref(t *testing.T) {
	out, err := run(t, "href", "StockItemView")
	require.NoError(t, err)
	assert.Equal(t, "/app/stockitem\n", out)

	out, err = run(t, "href", "--base", "/", "HomeView")
	require.NoError(t, err)
	assert.Equal(t, "/\n", out)
}

func TestHref_Params(t *testing.T) {
	routes := writeRoutes(t, "routes.toml", `
[[routes]]
path = "/theme/{id}"
name = "ThemeItemView"
`)

	out, err := run(t, "href", "--routes", routes, "ThemeItemView", "id=clean energy")
	require.NoError(t, err)
	assert.Equal(t, "/app/theme/clean%20energy\n", out)

	_, err = run(t, "href", "--routes", routes, "ThemeItemView")
	assert.True(t, errors.Is(err, navigation.ErrMissingParam), "error = %v", err)

	_, err = run(t, "href", "--routes", routes, "ThemeItemView", "id")
	assert.Error(t, err)
}

func TestHref_UnknownName(t *testing.T) {
	_, err := run(t, "href", "MissingView")
	assert.True(t, errors.Is(err, navigation.ErrNotFound), "error = %v", err)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Equal(t, "ok: 8 routes, base /app, history web\n", out)
}

func TestValidate_DuplicateName(t *testing.T) {
	routes := writeRoutes(t, "routes.yml", `
routes:
  - path: /
    name: HomeView
  - path: /home
    name: HomeView
`)

	_, err := run(t, "validate", routes)
	require.Error(t, err)
	assert.True(t, errors.Is(err, navigation.ErrConfiguration))

	var cerr *navigation.ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 1, cerr.Index)
	assert.Equal(t, "name", cerr.Field)
}

func TestValidate_DuplicatePath(t *testing.T) {
	routes := writeRoutes(t, "routes.yaml", `
routes:
  - path: /login
    name: LogInView
  - path: /login/
    name: SignInView
`)

	_, err := run(t, "validate", routes)
	assert.True(t, errors.Is(err, navigation.ErrConfiguration), "error = %v", err)
}

func TestValidate_InvalidHistory(t *testing.T) {
	_, err := run(t, "validate", "--history", "hash")
	assert.True(t, errors.Is(err, navigation.ErrConfiguration), "error = %v", err)
}

func TestConfigFlag(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[router]
base_path = "/portfolio"
history = "memory"
`), 0644))

	out, err := run(t, "validate", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "ok: 8 routes, base /portfolio, history memory\n", out)
}

func TestNavigate(t *testing.T) {
	out, err := run(t, "navigate", "/login", "@UserSelectView", "back", "forward", "replace", "/loading")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Regexp(t, `^STEP\s+NAME\s+PATH\s+HREF$`, lines[0])
	assert.Regexp(t, `^start\s+HomeView\s+/\s+/app/$`, lines[1])
	assert.Regexp(t, `^/login\s+LogInView\s+/login\s+/app/login$`, lines[2])
	assert.Regexp(t, `^@UserSelectView\s+UserSelectView\s+/userselect\s+/app/userselect$`, lines[3])
	assert.Regexp(t, `^back\s+LogInView\s+/login\s+/app/login$`, lines[4])
	assert.Regexp(t, `^forward\s+UserSelectView\s+/userselect`, lines[5])
	assert.Regexp(t, `^replace /loading\s+LoadingView\s+/loading\s+/app/loading$`, lines[6])
}

func TestNavigate_NamedParams(t *testing.T) {
	routes := writeRoutes(t, "routes.yaml", `
routes:
  - path: /
    name: HomeView
  - path: /theme/{id}
    name: ThemeItemView
`)

	out, err := run(t, "navigate", "--routes", routes, "--history", "memory", "--base", "/", "@ThemeItemView:id=semis")
	require.NoError(t, err)
	assert.Regexp(t, `ThemeItemView\s+/theme/semis\s+/theme/semis`, out)
}

func TestNavigate_Errors(t *testing.T) {
	_, err := run(t, "navigate", "/unknown")
	assert.True(t, errors.Is(err, navigation.ErrNotFound), "error = %v", err)

	_, err = run(t, "navigate", "back")
	assert.ErrorContains(t, err, "first entry")

	_, err = run(t, "navigate", "/login", "forward")
	assert.ErrorContains(t, err, "last entry")

	_, err = run(t, "navigate", "replace")
	assert.ErrorContains(t, err, "missing target")

	_, err = run(t, "navigate", "--start", "/nowhere", "/login")
	assert.True(t, errors.Is(err, navigation.ErrNotFound), "error = %v", err)

	_, err = run(t, "navigate", "@HomeView:id")
	assert.ErrorContains(t, err, "invalid parameter")
}
