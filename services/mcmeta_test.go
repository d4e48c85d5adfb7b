package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func writeMcmeta(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pack.mcmeta")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestUpdatePackMetaSetsFormatAndDescription(t *testing.T) {
	path := writeMcmeta(t, `{"pack": {"pack_format": 15, "description": "Classic skies"}}`)

	require.NoError(t, UpdatePackMeta(path, "1.21.1", 34, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(34), gjson.GetBytes(data, "pack.pack_format").Int())
	assert.Equal(t, "Classic skies (Auto-updated for Minecraft 1.21.1)", gjson.GetBytes(data, "pack.description").String())
}

func TestUpdatePackMetaReplacesOldSuffix(t *testing.T) {
	path := writeMcmeta(t, `{"pack": {"pack_format": 32, "description": "Classic skies (Auto-updated for Minecraft 1.20.6)"}}`)

	require.NoError(t, UpdatePackMeta(path, "1.21.1", 34, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Classic skies (Auto-updated for Minecraft 1.21.1)", gjson.GetBytes(data, "pack.description").String())
}

func TestUpdatePackMetaPreservesUnknownKeys(t *testing.T) {
	path := writeMcmeta(t, `{"pack": {"pack_format": 15, "description": "Skies", "supported_formats": [15, 22]}, "language": {"en_pirate": {"name": "Pirate Speak"}}}`)

	require.NoError(t, UpdatePackMeta(path, "1.21.1", 34, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Pirate Speak", gjson.GetBytes(data, "language.en_pirate.name").String())
	assert.True(t, gjson.GetBytes(data, "pack.supported_formats").Exists())
}

func TestUpdatePackMetaExplicitDescription(t *testing.T) {
	path := writeMcmeta(t, `{"pack": {"pack_format": 15, "description": "Old"}}`)

	require.NoError(t, UpdatePackMeta(path, "1.20.6", 32, "Fresh skies"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Fresh skies (Auto-updated for Minecraft 1.20.6)", gjson.GetBytes(data, "pack.description").String())
}

func TestUpdatePackMetaRejectsMissingPackKey(t *testing.T) {
	path := writeMcmeta(t, `{"assets": {}}`)
	assert.Error(t, UpdatePackMeta(path, "1.21.1", 34, ""))
}

func TestUpdatePackMetaRejectsMissingFile(t *testing.T) {
	assert.Error(t, UpdatePackMeta(filepath.Join(t.TempDir(), "pack.mcmeta"), "1.21.1", 34, ""))
}
