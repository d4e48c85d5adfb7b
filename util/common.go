package util

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

func Contains(list []string, str string) bool {
	for _, v := range list {
		if v == str {
			return true
		}
	}
	return false
}

// CompareVersions orders Minecraft version strings. They are semver-shaped
// ("1.21.1") but unprefixed, so canonicalize before handing them to
// semver.Compare; anything that still doesn't parse falls back to a plain
// string comparison.
func CompareVersions(a string, b string) int {
	ca := "v" + a
	cb := "v" + b
	if semver.IsValid(ca) && semver.IsValid(cb) {
		return semver.Compare(ca, cb)
	}
	return strings.Compare(a, b)
}

// SortVersions sorts oldest first.
func SortVersions(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return CompareVersions(versions[i], versions[j]) < 0
	})
}

// VersionRange renders "oldest-newest", or the single version by itself.
func VersionRange(versions []string) string {
	if len(versions) == 0 {
		return ""
	}
	sorted := make([]string, len(versions))
	copy(sorted, versions)
	SortVersions(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	return sorted[0] + "-" + sorted[len(sorted)-1]
}
