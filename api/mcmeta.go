package api

import (
	"errors"
	"fmt"

	"github.com/packsmith/packsmith/util"
)

// The misode/mcmeta summary is community maintained and auto updated, and is
// the only source that maps every version id to its resource pack format.
var MCMETA_URL = "https://raw.githubusercontent.com/misode/mcmeta/summary/versions/data.json"

type mcmetaVersion struct {
	Id                  string `json:"id"`
	Type                string `json:"type"`
	ResourcePackVersion *int   `json:"resource_pack_version"`
}

// PackFormats is the fetched pack-format index. Versions the summary has no
// resource_pack_version for (very old releases) are simply absent and lookups
// on them fail.
type PackFormats struct {
	formats map[string]int
}

func GetPackFormats() (*PackFormats, error) {
	var rows []mcmetaVersion
	// raw.githubusercontent.com serves the index as text/plain, which resty
	// would not unmarshal on its own.
	resp, err := client.R().SetResult(&rows).ForceContentType("application/json").Get(MCMETA_URL)
	if err != nil {
		return nil, &util.FetchError{Source: "pack format index", Err: err}
	}
	if resp.IsError() {
		return nil, &util.FetchError{Source: "pack format index", Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}
	if len(rows) == 0 {
		return nil, &util.FetchError{Source: "pack format index", Err: errors.New("index contains no versions")}
	}

	formats := make(map[string]int, len(rows))
	for _, row := range rows {
		if row.ResourcePackVersion != nil {
			formats[row.Id] = *row.ResourcePackVersion
		}
	}
	return &PackFormats{formats: formats}, nil
}

func (p *PackFormats) Lookup(id string) (int, error) {
	pf, ok := p.formats[id]
	if !ok {
		return 0, &util.LookupError{Version: id}
	}
	return pf, nil
}

// VersionSource serves the resolver: one manifest fetch plus pack-format
// lookups backed by a lazily fetched index.
type VersionSource struct {
	formats *PackFormats
}

func (s *VersionSource) Manifest() ([]util.ManifestEntry, error) {
	return GetVersionManifest()
}

func (s *VersionSource) PackFormat(id string) (int, error) {
	if s.formats == nil {
		formats, err := GetPackFormats()
		if err != nil {
			return 0, err
		}
		s.formats = formats
	}
	return s.formats.Lookup(id)
}
