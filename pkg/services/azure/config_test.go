package azure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeConfig(t, `[default]
tenant = 11111111-2222-3333-4444-555555555555

[audit]
tenant = aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee
client_id = my-app
`)

	t.Run("named profile", func(t *testing.T) {
		profile, err := LoadProfile(path, "audit")

		require.NoError(t, err)
		assert.Equal(t, "audit", profile.Name)
		assert.Equal(t, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", profile.TenantID)
		assert.Equal(t, "my-app", profile.ClientID)
	})

	t.Run("empty name falls back to default", func(t *testing.T) {
		profile, err := LoadProfile(path, "")

		require.NoError(t, err)
		assert.Equal(t, DefaultProfile, profile.Name)
		assert.Equal(t, "11111111-2222-3333-4444-555555555555", profile.TenantID)
	})

	t.Run("missing profile", func(t *testing.T) {
		_, err := LoadProfile(path, "nope")

		assert.ErrorContains(t, err, "profile nope not found")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadProfile(filepath.Join(t.TempDir(), "absent"), "default")

		assert.Error(t, err)
	})
}
