package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestNewEnvService_OverlaysAppEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "AUTOMATOR_TEST_A=base\nAUTOMATOR_TEST_B=base\n")
	writeFile(t, filepath.Join(dir, ".env.test"), "AUTOMATOR_TEST_B=overlay\n")
	t.Setenv("APP_ENV", "test")
	t.Setenv("AUTOMATOR_TEST_A", "")
	t.Setenv("AUTOMATOR_TEST_B", "")
	os.Unsetenv("AUTOMATOR_TEST_A")
	os.Unsetenv("AUTOMATOR_TEST_B")

	svc := NewEnvService(dir)

	assert.Equal(t, "test", svc.AppEnv())
	assert.Len(t, svc.Loaded(), 2)
	assert.Equal(t, "base", svc.Get("AUTOMATOR_TEST_A"))
	assert.Equal(t, "overlay", svc.Get("AUTOMATOR_TEST_B"))
}

func TestNewEnvService_NoFiles(t *testing.T) {
	t.Setenv("APP_ENV", "")

	svc := NewEnvService(t.TempDir())

	assert.Equal(t, "dev", svc.AppEnv())
	assert.Empty(t, svc.Loaded())
}

func TestEnvService_Getters(t *testing.T) {
	svc := &EnvService{}
	t.Setenv("AUTOMATOR_TEST_BOOL", "true")
	t.Setenv("AUTOMATOR_TEST_BAD_BOOL", "maybe")
	t.Setenv("AUTOMATOR_TEST_INT", "42")
	t.Setenv("AUTOMATOR_TEST_DUR", "1500ms")
	t.Setenv("AUTOMATOR_TEST_SECS", "7")
	t.Setenv("AUTOMATOR_TEST_BAD_DUR", "soon")

	assert.True(t, svc.GetBool("AUTOMATOR_TEST_BOOL", false))
	assert.True(t, svc.GetBool("AUTOMATOR_TEST_BAD_BOOL", true))
	assert.False(t, svc.GetBool("AUTOMATOR_TEST_UNSET", false))
	assert.Equal(t, 42, svc.GetInt("AUTOMATOR_TEST_INT", 0))
	assert.Equal(t, 3, svc.GetInt("AUTOMATOR_TEST_UNSET", 3))
	assert.Equal(t, 1500*time.Millisecond, svc.GetDuration("AUTOMATOR_TEST_DUR", 0))
	assert.Equal(t, 7*time.Second, svc.GetDuration("AUTOMATOR_TEST_SECS", 0))
	assert.Equal(t, time.Second, svc.GetDuration("AUTOMATOR_TEST_BAD_DUR", time.Second))
	assert.Equal(t, "fallback", svc.GetWithDefault("AUTOMATOR_TEST_UNSET", "fallback"))
}
