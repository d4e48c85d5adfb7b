package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/packsmith/packsmith/util"
)

// ManifestSource is the resolver's view of the outside world: the ordered
// version manifest plus per-version pack format lookups.
type ManifestSource interface {
	Manifest() ([]util.ManifestEntry, error)
	PackFormat(id string) (int, error)
}

// Policy selects which versions a run publishes against.
//
// Explicit wins when set. Otherwise AllMissing takes every release not
// already covered on Modrinth (Published), and the default takes the
// Releases newest release entries.
type Policy struct {
	Explicit   []string
	Releases   int
	AllMissing bool
	Published  []string
}

// DefaultReleases is latest + previous release.
const DefaultReleases = 2

// Resolve picks the candidate versions per policy and partitions them by
// pack format. Groups come back sorted by pack format ascending, members in
// manifest (newest-first) order, so output is reproducible run to run.
//
// Any candidate without a discoverable pack format aborts the whole
// resolution: publishing a partial grouping would label archives for
// versions they were never resolved against.
func Resolve(src ManifestSource, policy Policy, baseVersion string) (util.Resolution, error) {
	manifest, err := src.Manifest()
	if err != nil {
		return util.Resolution{}, err
	}

	candidates, err := selectCandidates(manifest, policy)
	if err != nil {
		return util.Resolution{}, err
	}

	records := make([]util.VersionRecord, 0, len(candidates))
	for _, id := range candidates {
		pf, err := src.PackFormat(id)
		if err != nil {
			return util.Resolution{}, err
		}
		records = append(records, util.VersionRecord{Id: id, PackFormat: pf})
	}

	members := make(map[int][]string)
	var formats []int
	for _, rec := range records {
		if _, ok := members[rec.PackFormat]; !ok {
			formats = append(formats, rec.PackFormat)
		}
		members[rec.PackFormat] = append(members[rec.PackFormat], rec.Id)
	}
	sort.Ints(formats)

	res := util.Resolution{PackVersion: baseVersion}
	for _, pf := range formats {
		res.Groups = append(res.Groups, util.FormatGroup{
			PackFormat:    pf,
			Versions:      members[pf],
			VersionNumber: baseVersion + "-pf" + strconv.Itoa(pf),
			DisplayName:   fmt.Sprintf("Pack Format %d (%s)", pf, util.VersionRange(members[pf])),
		})
	}
	return res, nil
}

// selectCandidates walks the manifest newest first so the result order never
// depends on how the policy input was written.
func selectCandidates(manifest []util.ManifestEntry, policy Policy) ([]string, error) {
	if len(policy.Explicit) > 0 {
		var candidates []string
		for _, entry := range manifest {
			if util.Contains(policy.Explicit, entry.Id) && !util.Contains(candidates, entry.Id) {
				candidates = append(candidates, entry.Id)
			}
		}
		for _, id := range policy.Explicit {
			if !util.Contains(candidates, id) {
				return nil, &util.LookupError{Version: id}
			}
		}
		return candidates, nil
	}

	if policy.AllMissing {
		var candidates []string
		for _, entry := range manifest {
			if entry.Type == "release" && !util.Contains(policy.Published, entry.Id) {
				candidates = append(candidates, entry.Id)
			}
		}
		if len(candidates) == 0 {
			return nil, &util.ResolutionError{Reason: "every release is already published"}
		}
		return candidates, nil
	}

	want := policy.Releases
	if want <= 0 {
		want = DefaultReleases
	}
	var candidates []string
	for _, entry := range manifest {
		if entry.Type == "release" {
			candidates = append(candidates, entry.Id)
			if len(candidates) == want {
				return candidates, nil
			}
		}
	}
	return nil, &util.ResolutionError{
		Reason: fmt.Sprintf("manifest has %d release entries, need %d", len(candidates), want),
	}
}
