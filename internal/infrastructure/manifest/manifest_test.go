package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"account-automator/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
register:
  - type: cursor
    email: dev@example.io
    password: s3cret!
    first_name: Alex
    last_name: Smith
  - type: GitHub Copilot
    email: ops@example.io
    password: hunter2
login:
  - type: augment
    email: dev@example.io
    password: s3cret!
    remember_me: true
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	m, err := Load(path)
	require.NoError(t, err)

	regs, err := m.RegistrationRequests()
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, entity.AccountTypeCursor, regs[0].Type)
	assert.Equal(t, "Alex", regs[0].Data.FirstName)
	assert.Equal(t, "Smith", regs[0].Data.LastName)
	assert.Equal(t, entity.AccountTypeGitHubCopilot, regs[1].Type)
	assert.Equal(t, "hunter2", regs[1].Data.Password)

	logins, err := m.LoginRequests()
	require.NoError(t, err)
	require.Len(t, logins, 1)
	assert.Equal(t, entity.AccountTypeAugment, logins[0].Type)
	assert.True(t, logins[0].Data.RememberMe)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.ErrorContains(t, err, "open manifest")
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyManifest)

	_, err = Decode(strings.NewReader("register: []\n"))
	assert.ErrorIs(t, err, ErrEmptyManifest)
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader("register:\n  - type: cursor\n    emial: typo@example.io\n"))

	assert.ErrorContains(t, err, "decode manifest")
}

func TestRequests_UnknownType(t *testing.T) {
	m, err := Decode(strings.NewReader("login:\n  - type: myspace\n    email: a@b.io\n    password: x\n"))
	require.NoError(t, err)

	_, err = m.LoginRequests()
	assert.ErrorContains(t, err, "login[0]")
}
