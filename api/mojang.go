package api

import (
	"errors"
	"fmt"

	"github.com/packsmith/packsmith/util"
)

var MANIFEST_URL = "https://launchermeta.mojang.com/mc/game/version_manifest_v2.json"

type manifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []struct {
		Id   string `json:"id"`
		Type string `json:"type"`
	} `json:"versions"`
}

// GetVersionManifest returns all known game versions, newest first, with
// their release-type tags.
func GetVersionManifest() ([]util.ManifestEntry, error) {
	var m manifest
	resp, err := client.R().SetResult(&m).Get(MANIFEST_URL)
	if err != nil {
		return nil, &util.FetchError{Source: "version manifest", Err: err}
	}
	if resp.IsError() {
		return nil, &util.FetchError{Source: "version manifest", Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}
	if len(m.Versions) == 0 {
		return nil, &util.FetchError{Source: "version manifest", Err: errors.New("manifest contains no versions")}
	}

	entries := make([]util.ManifestEntry, 0, len(m.Versions))
	for _, v := range m.Versions {
		entries = append(entries, util.ManifestEntry{Id: v.Id, Type: v.Type})
	}
	return entries, nil
}
