package util

// Config holds everything a publish run needs. It is assembled once from
// flags/env by the CLI and passed down explicitly.
type Config struct {
	Project         string
	PackName        string
	BaseVersion     string
	Token           string
	PackDir         string
	OutputDir       string
	UpdateCmd       []string
	ContinueOnError bool
}

// ManifestEntry is one row of the version manifest, newest first.
type ManifestEntry struct {
	Id   string
	Type string
}

type VersionRecord struct {
	Id         string
	PackFormat int
}

// FormatGroup is a set of game versions sharing one pack_format, published
// together as a single Modrinth version.
type FormatGroup struct {
	PackFormat    int      `json:"pack_format"`
	Versions      []string `json:"versions"`
	VersionNumber string   `json:"version_number"`
	DisplayName   string   `json:"display_name"`
}

// Resolution is the handoff contract between `resolve` and everything
// downstream (versions_to_update.json).
type Resolution struct {
	PackVersion string        `json:"pack_version"`
	Groups      []FormatGroup `json:"groups"`
}

type UploadRequest struct {
	Archive       string
	Project       string
	GameVersions  []string
	VersionNumber string
	Name          string
	Changelog     string
}
