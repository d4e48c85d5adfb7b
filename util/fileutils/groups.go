package fileutils

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/packsmith/packsmith/util"
)

// DefaultResolutionPath is where `resolve` drops its output and where the
// downstream steps pick it up.
const DefaultResolutionPath = "versions_to_update.json"

func WriteResolution(path string, res util.Resolution) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func ReadResolution(path string) (util.Resolution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return util.Resolution{}, err
	}
	var res util.Resolution
	if err := json.Unmarshal(data, &res); err != nil {
		return util.Resolution{}, fmt.Errorf("malformed resolution file %s: %w", path, err)
	}
	return res, nil
}

// GroupEnvLines renders a resolution as KEY=value lines for shell and CI
// consumption:
//
//	GROUP_0_VERSIONS=1.21.1,1.21
//	GROUP_0_PACK_FORMAT=34
//	TOTAL_GROUPS=1
func GroupEnvLines(res util.Resolution) []string {
	var lines []string
	for i, group := range res.Groups {
		lines = append(lines,
			fmt.Sprintf("GROUP_%d_VERSIONS=%s", i, strings.Join(group.Versions, ",")),
			fmt.Sprintf("GROUP_%d_PACK_FORMAT=%d", i, group.PackFormat),
		)
	}
	return append(lines, fmt.Sprintf("TOTAL_GROUPS=%d", len(res.Groups)))
}
