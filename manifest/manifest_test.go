package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const massManifest = `{
  "domain": "mass",
  "name": "Music Assistant",
  "version": "2024.5.1",
  "documentation": "https://music-assistant.io",
  "issue_tracker": "https://github.com/music-assistant/hass-music-assistant/issues",
  "requirements": ["music-assistant==2.0.4"],
  "min_host_version": "2024.2.0"
}`

func Test_Load(t *testing.T) {
	m, err := Load([]byte(massManifest))
	require.NoError(t, err)

	assert.Equal(t, "mass", m.Domain)
	assert.Equal(t, "Music Assistant", m.Name)
	assert.Equal(t, "2024.5.1", m.Version)
	assert.Equal(t, []string{"music-assistant==2.0.4"}, m.Requirements)
}

func Test_Load_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "domain: mass"},
		{"missing domain", `{"name": "X", "version": "1.0.0"}`},
		{"missing name", `{"domain": "mass", "version": "1.0.0"}`},
		{"bad version", `{"domain": "mass", "name": "X", "version": "latest"}`},
		{"bad min host version", `{"domain": "mass", "name": "X", "version": "1.0.0", "min_host_version": "soon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidManifest)
		})
	}
}

func Test_CompatibleWith(t *testing.T) {
	m, err := Load([]byte(massManifest))
	require.NoError(t, err)

	ok, err := m.CompatibleWith("2024.6.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.CompatibleWith("2023.12.0")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = m.CompatibleWith("not-a-version")
	assert.Error(t, err)
}

func Test_CompatibleWith_NoMinimum(t *testing.T) {
	m := &Manifest{Domain: "mass", Name: "Music Assistant", Version: "1.0.0"}
	require.NoError(t, m.Validate())

	ok, err := m.CompatibleWith("0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}
