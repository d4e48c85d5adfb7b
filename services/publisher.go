package services

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/packsmith/packsmith/api"
	"github.com/packsmith/packsmith/util"
	"github.com/packsmith/packsmith/util/fileutils"
	"github.com/pterm/pterm"
)

// Runner executes an external collaborator and returns its combined output.
// A non-zero exit comes back as *util.ExternalToolError.
type Runner interface {
	Run(name string, args ...string) (string, error)
}

type ExecRunner struct {
	Dir string
}

func (r ExecRunner) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return string(out), &util.ExternalToolError{Tool: name, ExitCode: exitCode, Output: strings.TrimSpace(string(out))}
	}
	return string(out), nil
}

// Uploader publishes one archive as one project version.
type Uploader interface {
	Upload(req util.UploadRequest, token string) error
}

type ModrinthUploader struct{}

func (ModrinthUploader) Upload(req util.UploadRequest, token string) error {
	return api.UploadVersion(req, token)
}

// Publisher drives a full run over an already computed resolution: pack
// updater once, then per group pack.mcmeta update, archive, upload.
type Publisher struct {
	Config   util.Config
	Runner   Runner
	Uploader Uploader
}

func NewPublisher(cfg util.Config) *Publisher {
	return &Publisher{
		Config:   cfg,
		Runner:   ExecRunner{Dir: cfg.PackDir},
		Uploader: ModrinthUploader{},
	}
}

// Publish uploads every group in the resolution. An updater, pack.mcmeta, or
// archiving failure always aborts the run; an upload failure aborts it too
// unless Config.ContinueOnError keeps the remaining groups going, in which
// case the run still ends in error if any group failed.
func (p *Publisher) Publish(res util.Resolution) error {
	if len(res.Groups) == 0 {
		pterm.Info.Println("Nothing to publish, all pack formats are up to date")
		return nil
	}

	if len(p.Config.UpdateCmd) > 0 {
		pterm.Info.Println("Running pack updater: " + strings.Join(p.Config.UpdateCmd, " "))
		out, err := p.Runner.Run(p.Config.UpdateCmd[0], p.Config.UpdateCmd[1:]...)
		if err != nil {
			return err
		}
		if out = strings.TrimSpace(out); out != "" {
			pterm.Debug.Println(out)
		}
	}

	var failed []string
	for _, group := range res.Groups {
		if err := p.publishGroup(group); err != nil {
			if !isGroupFailure(err) || !p.Config.ContinueOnError {
				return fmt.Errorf("%s: %w", group.DisplayName, err)
			}
			pterm.Warning.Printfln("%s failed, continuing: %v", group.DisplayName, err)
			failed = append(failed, group.DisplayName)
			continue
		}
		pterm.Success.Println("Published " + group.DisplayName + " as " + group.VersionNumber)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d groups failed to upload: %s", len(failed), len(res.Groups), strings.Join(failed, ", "))
	}
	return nil
}

func (p *Publisher) publishGroup(group util.FormatGroup) error {
	newest := newestVersion(group.Versions)

	mcmeta := filepath.Join(p.Config.PackDir, "pack.mcmeta")
	if err := UpdatePackMeta(mcmeta, newest, group.PackFormat, ""); err != nil {
		return err
	}

	if p.Config.OutputDir != "" {
		if err := os.MkdirAll(p.Config.OutputDir, 0755); err != nil {
			return err
		}
	}
	archive := filepath.Join(p.Config.OutputDir, p.archiveName(group))
	if err := fileutils.CreateArchive(p.Config.PackDir, archive); err != nil {
		return err
	}

	return p.Uploader.Upload(util.UploadRequest{
		Archive:       archive,
		Project:       p.Config.Project,
		GameVersions:  group.Versions,
		VersionNumber: group.VersionNumber,
	}, p.Config.Token)
}

func (p *Publisher) archiveName(group util.FormatGroup) string {
	name := p.Config.PackName
	if name == "" {
		name = "pack"
	}
	return strings.ReplaceAll(name, " ", "-") + "-" + group.VersionNumber + ".zip"
}

// isGroupFailure separates an upload that failed (fatal for the group only,
// when ContinueOnError is set) from broken local state like a missing
// pack.mcmeta, which always aborts the run.
func isGroupFailure(err error) bool {
	var fetchErr *util.FetchError
	var toolErr *util.ExternalToolError
	return errors.As(err, &fetchErr) || errors.As(err, &toolErr)
}

func newestVersion(versions []string) string {
	newest := versions[0]
	for _, v := range versions[1:] {
		if util.CompareVersions(v, newest) > 0 {
			newest = v
		}
	}
	return newest
}
