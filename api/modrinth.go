package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packsmith/packsmith/util"
	"github.com/tidwall/gjson"
)

var MODRINTH_API_BASE = "https://api.modrinth.com/v2"

// ResolveProject resolves a slug or id to the canonical project id. A 404
// means the project doesn't exist yet (first upload) and is not an error.
func ResolveProject(idOrSlug string) (id string, exists bool, err error) {
	resp, err := client.R().Get(MODRINTH_API_BASE + "/project/" + idOrSlug)
	if err != nil {
		return "", false, &util.FetchError{Source: "modrinth project", Err: err}
	}
	if resp.StatusCode() == 404 {
		return "", false, nil
	}
	if resp.IsError() {
		return "", false, &util.FetchError{Source: "modrinth project", Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}

	body := resp.Body()
	id = gjson.GetBytes(body, "id").String()
	if id == "" {
		id = gjson.GetBytes(body, "project_id").String()
	}
	if id == "" {
		return "", false, &util.FetchError{Source: "modrinth project", Err: errors.New("response carries no project id")}
	}
	return id, true, nil
}

type modrinthVersion struct {
	VersionNumber string   `json:"version_number"`
	GameVersions  []string `json:"game_versions"`
}

// ProjectVersions is what the project has already published: the union of
// covered game versions plus the game versions behind each version label.
type ProjectVersions struct {
	GameVersions []string
	Labels       map[string][]string
}

func GetProjectVersions(projectId string) (*ProjectVersions, error) {
	var versions []modrinthVersion
	resp, err := client.R().SetResult(&versions).Get(MODRINTH_API_BASE + "/project/" + projectId + "/version")
	if err != nil {
		return nil, &util.FetchError{Source: "modrinth versions", Err: err}
	}
	if resp.IsError() {
		return nil, &util.FetchError{Source: "modrinth versions", Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}

	published := &ProjectVersions{Labels: make(map[string][]string)}
	for _, v := range versions {
		for _, gv := range v.GameVersions {
			if !util.Contains(published.GameVersions, gv) {
				published.GameVersions = append(published.GameVersions, gv)
			}
		}
		if v.VersionNumber != "" {
			published.Labels[v.VersionNumber] = append(published.Labels[v.VersionNumber], v.GameVersions...)
		}
	}
	return published, nil
}

type uploadPayload struct {
	Name           string   `json:"name"`
	VersionNumber  string   `json:"version_number"`
	Changelog      string   `json:"changelog"`
	Dependencies   []string `json:"dependencies"`
	GameVersions   []string `json:"game_versions"`
	ReleaseChannel string   `json:"release_channel"`
	Loaders        []string `json:"loaders"`
	Featured       bool     `json:"featured"`
	ProjectId      string   `json:"project_id"`
	FileParts      []string `json:"file_parts"`
}

// UploadVersion publishes one archive as one Modrinth version. Name and
// changelog fall back to a "Minecraft <range>" form when left empty.
func UploadVersion(req util.UploadRequest, token string) error {
	if len(req.GameVersions) == 0 {
		return &util.FetchError{Source: "modrinth upload", Err: errors.New("no game versions to publish against")}
	}

	name := req.Name
	if name == "" {
		name = "Minecraft " + util.VersionRange(req.GameVersions)
	}
	changelog := req.Changelog
	if changelog == "" {
		if len(req.GameVersions) == 1 {
			changelog = "Auto-updated resource pack for Minecraft " + req.GameVersions[0]
		} else {
			sorted := make([]string, len(req.GameVersions))
			copy(sorted, req.GameVersions)
			util.SortVersions(sorted)
			changelog = fmt.Sprintf("Auto-updated resource pack for Minecraft %s through %s (%d versions)",
				sorted[0], sorted[len(sorted)-1], len(sorted))
		}
	}

	payload, err := json.Marshal(uploadPayload{
		Name:           name,
		VersionNumber:  req.VersionNumber,
		Changelog:      changelog,
		Dependencies:   []string{},
		GameVersions:   req.GameVersions,
		ReleaseChannel: "release",
		Loaders:        []string{"minecraft"},
		ProjectId:      req.Project,
		FileParts:      []string{"file"},
	})
	if err != nil {
		return err
	}

	archive, err := os.Open(req.Archive)
	if err != nil {
		return err
	}
	defer archive.Close()

	resp, err := client.R().
		SetHeader("Authorization", token).
		SetMultipartField("data", "", "application/json", strings.NewReader(string(payload))).
		SetFileReader("file", filepath.Base(req.Archive), archive).
		Post(MODRINTH_API_BASE + "/version")
	if err != nil {
		return &util.FetchError{Source: "modrinth upload", Err: err}
	}
	if resp.IsError() {
		return &util.FetchError{Source: "modrinth upload", Err: fmt.Errorf("status %s: %.200s", resp.Status(), resp.String())}
	}
	return nil
}
