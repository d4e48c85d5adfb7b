package fileutils

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// ResolvePackVersion determines the pack's base version label for this run.
// Priority: explicit override (flag or PACK_VERSION env, already merged by
// the CLI) > version.json > VERSION file > latest git tag. All file probes
// are relative to dir.
func ResolvePackVersion(dir string, override string) (string, error) {
	if v := strings.TrimSpace(override); v != "" {
		return v, nil
	}

	if data, err := os.ReadFile(filepath.Join(dir, "version.json")); err == nil {
		for _, key := range []string{"version", "pack_version", "name"} {
			if v := gjson.GetBytes(data, key).String(); v != "" {
				return v, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join(dir, "VERSION")); err == nil {
		if v := strings.TrimSpace(string(data)); v != "" {
			return v, nil
		}
	}

	cmd := exec.Command("git", "describe", "--tags", "--abbrev=0")
	cmd.Dir = dir
	if out, err := cmd.Output(); err == nil {
		if v := strings.TrimSpace(string(out)); v != "" {
			return v, nil
		}
	}

	return "", errors.New("pack version not found: set PACK_VERSION, or add a version.json, VERSION file, or git tag")
}
