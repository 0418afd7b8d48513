package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/anymon/internal/adapters/config"
	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/anymon/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func TestLoader_Load_Full(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "anymon.toml", `
[global]
debounce = 75
kill_timeout = 500
ignore = ["**/*.tmp"]
shell_fallback = false

[[task]]
name = "server"
watch = ["**/*.go"]
run = "go run ./cmd/server"

[[task]]
name = "assets"
watch = ["web/**"]
run = "npm run build"
restart = false
pty = true
`)

	cfg, err := newLoader(t).Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "anymon.toml"), cfg.Path)
	require.NotNil(t, cfg.Global.Debounce)
	assert.Equal(t, 75*time.Millisecond, *cfg.Global.Debounce)
	require.NotNil(t, cfg.Global.KillTimeout)
	assert.Equal(t, 500*time.Millisecond, *cfg.Global.KillTimeout)
	assert.Equal(t, []string{"**/*.tmp"}, cfg.Global.Ignore)
	require.NotNil(t, cfg.Global.ShellFallback)
	assert.False(t, *cfg.Global.ShellFallback)

	require.Len(t, cfg.Tasks, 2)
	assert.Equal(t, "server", cfg.Tasks[0].Name)
	assert.Equal(t, "go run ./cmd/server", cfg.Tasks[0].Run)
	assert.True(t, cfg.Tasks[0].RestartEnabled())
	assert.False(t, cfg.Tasks[0].PTY)
	assert.Equal(t, "assets", cfg.Tasks[1].Name)
	assert.False(t, cfg.Tasks[1].RestartEnabled())
	assert.True(t, cfg.Tasks[1].PTY)
}

func TestLoader_Load_MinimalHasNoGlobals(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "anymon.toml", `
[[task]]
name = "a"
run = "echo hi"
`)

	cfg, err := newLoader(t).Load(dir, "")
	require.NoError(t, err)
	assert.Nil(t, cfg.Global.Debounce)
	assert.Nil(t, cfg.Global.KillTimeout)
	assert.Nil(t, cfg.Global.ShellFallback)
	require.Len(t, cfg.Tasks, 1)
	assert.Empty(t, cfg.Tasks[0].Watch)
}

func TestLoader_Load_LargeDurationsSaturate(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "anymon.toml", `
[global]
kill_timeout = 9223372036854775807

[[task]]
name = "a"
run = "echo hi"
`)

	cfg, err := newLoader(t).Load(dir, "")
	require.NoError(t, err)
	require.NotNil(t, cfg.Global.KillTimeout)
	assert.Equal(t, time.Duration(math.MaxInt64), *cfg.Global.KillTimeout)
}

func TestLoader_Load_RelativePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "conf"), 0o750))
	createFile(t, filepath.Join(dir, "conf"), "dev.toml", `
[[task]]
name = "a"
run = "true"
`)

	cfg, err := newLoader(t).Load(dir, "conf/dev.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "conf", "dev.toml"), cfg.Path)
}

func TestLoader_Load_NotDiscovered(t *testing.T) {
	cfg, err := newLoader(t).Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoader_Load_MissingExplicitFile(t *testing.T) {
	dir := t.TempDir()
	_, err := newLoader(t).Load(dir, "missing.toml")
	require.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestLoader_Load_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "anymon.yaml", "task: []\n")

	_, err := newLoader(t).Load(dir, "anymon.yaml")
	require.ErrorContains(t, err, domain.ErrUnsupportedConfigFormat.Error())
}

func TestLoader_Load_ParseError(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "anymon.toml", "[[task]\nname = \n")

	_, err := newLoader(t).Load(dir, "")
	require.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
}

func TestLoader_Load_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "MissingName",
			content: "[[task]]\nrun = \"true\"\n",
			wantErr: domain.ErrMissingTaskName,
		},
		{
			name:    "MissingRun",
			content: "[[task]]\nname = \"a\"\n",
			wantErr: domain.ErrMissingRunCommand,
		},
		{
			name:    "BlankRun",
			content: "[[task]]\nname = \"a\"\nrun = \"   \"\n",
			wantErr: domain.ErrMissingRunCommand,
		},
		{
			name:    "Duplicate",
			content: "[[task]]\nname = \"a\"\nrun = \"true\"\n[[task]]\nname = \"a\"\nrun = \"false\"\n",
			wantErr: domain.ErrDuplicateTaskName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			createFile(t, dir, "anymon.toml", tt.content)

			_, err := newLoader(t).Load(dir, "")
			require.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestLoader_Load_WarnsOnUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "anymon.toml", `
[global]
debounse = 10

[[task]]
name = "a"
run = "true"
`)

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(`unknown config key "global.debounse" in anymon.toml`).Times(1)

	cfg, err := config.NewLoader(mockLogger).Load(dir, "")
	require.NoError(t, err)
	assert.Nil(t, cfg.Global.Debounce)
}
