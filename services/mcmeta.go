package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
)

const autoUpdateMarker = " (Auto-updated"

// UpdatePackMeta rewrites pack.mcmeta in place for one target version:
// pack.pack_format gets the group's format and pack.description gets a fresh
// auto-update suffix. Every other key is left untouched, which is why this
// edits the raw bytes instead of decoding into a struct.
func UpdatePackMeta(path string, mcVersion string, packFormat int, baseDescription string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("pack.mcmeta not found at %s: %w", path, err)
	}

	if _, _, _, err := jsonparser.Get(data, "pack"); err != nil {
		return fmt.Errorf("invalid pack.mcmeta structure (missing 'pack' key) in %s", path)
	}

	data, err = jsonparser.Set(data, []byte(strconv.Itoa(packFormat)), "pack", "pack_format")
	if err != nil {
		return fmt.Errorf("failed to set pack_format: %w", err)
	}

	if baseDescription == "" {
		current, _ := jsonparser.GetString(data, "pack", "description")
		if i := strings.Index(current, autoUpdateMarker); i >= 0 {
			current = current[:i]
		}
		baseDescription = strings.TrimSpace(current)
		if baseDescription == "" {
			baseDescription = "Resource Pack"
		}
	}
	description := fmt.Sprintf("%s (Auto-updated for Minecraft %s)", baseDescription, mcVersion)
	data, err = jsonparser.Set(data, []byte(strconv.Quote(description)), "pack", "description")
	if err != nil {
		return fmt.Errorf("failed to set description: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
