package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/text"
	"github.com/packsmith/packsmith/api"
	"github.com/packsmith/packsmith/services"
	"github.com/packsmith/packsmith/util"
	"github.com/packsmith/packsmith/util/fileutils"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func main() {
	packDirFlag := &cli.StringFlag{Name: "pack-dir", Value: ".", Usage: "Root directory of the resource pack"}
	packVersionFlag := &cli.StringFlag{Name: "pack-version", EnvVars: []string{"PACK_VERSION"}, Usage: "Base version label, e.g. 2.3.0"}
	projectFlag := &cli.StringFlag{Name: "project", EnvVars: []string{"MODRINTH_PROJECT"}, Usage: "Modrinth project id or slug"}
	tokenFlag := &cli.StringFlag{Name: "token", EnvVars: []string{"MODRINTH_TOKEN"}, Usage: "Modrinth API token (falls back to the OS keyring)"}
	versionsFlag := &cli.StringSliceFlag{Name: "versions", Usage: "Explicit game versions to publish against"}
	releasesFlag := &cli.IntFlag{Name: "releases", Value: services.DefaultReleases, Usage: "How many of the newest releases to target"}
	allMissingFlag := &cli.BoolFlag{Name: "all-missing", Usage: "Target every release not yet published on Modrinth"}
	outputFlag := &cli.StringFlag{Name: "output", Value: fileutils.DefaultResolutionPath, Usage: "Where to write the resolved grouping"}

	app := &cli.App{
		Name:  "packsmith",
		Usage: "Publish Minecraft resource packs to Modrinth, one upload per pack format",
		Commands: []*cli.Command{
			{
				Name:  "resolve",
				Usage: "Resolve target game versions and group them by pack format",
				Flags: []cli.Flag{packDirFlag, packVersionFlag, projectFlag, versionsFlag, releasesFlag, allMissingFlag, outputFlag},
				Action: func(c *cli.Context) error {
					base, err := fileutils.ResolvePackVersion(c.String("pack-dir"), c.String("pack-version"))
					if err != nil {
						return err
					}

					policy, err := buildPolicy(c)
					if err != nil {
						return err
					}

					res, err := services.Resolve(&api.VersionSource{}, policy, base)
					if err != nil {
						return err
					}

					if err := fileutils.WriteResolution(c.String("output"), res); err != nil {
						return err
					}
					printGroups(res)
					pterm.Success.Printfln("Resolved %d pack format group(s), wrote %s", len(res.Groups), c.String("output"))
					return nil
				},
			},
			{
				Name:  "version",
				Usage: "Print the pack's base version label",
				Flags: []cli.Flag{packDirFlag, packVersionFlag},
				Action: func(c *cli.Context) error {
					v, err := fileutils.ResolvePackVersion(c.String("pack-dir"), firstNonEmpty(c.Args().Get(0), c.String("pack-version")))
					if err != nil {
						return err
					}
					fmt.Println(v)
					return nil
				},
			},
			{
				Name:  "groups",
				Usage: "Print a resolved grouping as KEY=value lines for shell consumption",
				Action: func(c *cli.Context) error {
					path := c.Args().Get(0)
					if path == "" {
						path = fileutils.DefaultResolutionPath
					}
					res, err := fileutils.ReadResolution(path)
					if err != nil {
						return err
					}
					for _, line := range fileutils.GroupEnvLines(res) {
						fmt.Println(line)
					}
					return nil
				},
			},
			{
				Name:      "update",
				Usage:     "Update pack.mcmeta for a target version and pack format",
				ArgsUsage: "<mc-version> <pack-format>",
				Flags: []cli.Flag{
					packDirFlag,
					&cli.StringFlag{Name: "description", Usage: "Base description (default: keep the current one)"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return errors.New("usage: packsmith update <mc-version> <pack-format>")
					}
					packFormat, err := strconv.Atoi(c.Args().Get(1))
					if err != nil || packFormat <= 0 {
						return fmt.Errorf("pack format must be a positive integer, got %q", c.Args().Get(1))
					}

					mcmeta := filepath.Join(c.String("pack-dir"), "pack.mcmeta")
					if err := services.UpdatePackMeta(mcmeta, c.Args().Get(0), packFormat, c.String("description")); err != nil {
						return err
					}
					pterm.Success.Printfln("Updated %s for Minecraft %s (pack format %d)", mcmeta, c.Args().Get(0), packFormat)
					return nil
				},
			},
			{
				Name:    "package",
				Aliases: []string{"zip"},
				Usage:   "Archive pack.mcmeta, pack.png and assets/ into a zip",
				Flags: []cli.Flag{
					packDirFlag,
					&cli.StringFlag{Name: "out", Value: "pack.zip", Usage: "Output archive path"},
				},
				Action: func(c *cli.Context) error {
					out := c.String("out")
					if err := fileutils.CreateArchive(c.String("pack-dir"), out); err != nil {
						return err
					}
					info, err := os.Stat(out)
					if err != nil {
						return err
					}
					pterm.Success.Printfln("Created %s (%d bytes)", out, info.Size())
					return nil
				},
			},
			{
				Name:      "upload",
				Usage:     "Upload one archive as one Modrinth version",
				ArgsUsage: "<archive> <project> <game-versions> <version-number>",
				Flags:     []cli.Flag{tokenFlag},
				Action: func(c *cli.Context) error {
					if c.NArg() < 4 {
						return errors.New("usage: packsmith upload <archive> <project> <game-versions> <version-number>")
					}
					token, err := resolveToken(c.String("token"))
					if err != nil {
						return err
					}

					req := util.UploadRequest{
						Archive:       c.Args().Get(0),
						Project:       c.Args().Get(1),
						GameVersions:  splitVersions(c.Args().Get(2)),
						VersionNumber: c.Args().Get(3),
					}
					if err := api.UploadVersion(req, token); err != nil {
						return err
					}
					pterm.Success.Printfln("Uploaded %s as %s", req.Archive, req.VersionNumber)
					return nil
				},
			},
			{
				Name:  "publish",
				Usage: "Resolve, update, package and upload in one run",
				Flags: []cli.Flag{
					packDirFlag, packVersionFlag, projectFlag, tokenFlag,
					versionsFlag, releasesFlag, allMissingFlag, outputFlag,
					&cli.StringFlag{Name: "pack-name", EnvVars: []string{"PACK_NAME"}, Usage: "Pack display name used in archive names"},
					&cli.StringFlag{Name: "out-dir", Value: "dist", Usage: "Directory for built archives"},
					&cli.StringFlag{Name: "update-cmd", EnvVars: []string{"PACK_UPDATE_CMD"}, Usage: "External command that regenerates pack contents"},
					&cli.BoolFlag{Name: "continue-on-error", Usage: "Keep publishing remaining groups when an upload fails"},
				},
				Action: func(c *cli.Context) error {
					if c.String("project") == "" {
						return errors.New("a Modrinth project is required (--project or MODRINTH_PROJECT)")
					}
					token, err := resolveToken(c.String("token"))
					if err != nil {
						return err
					}
					base, err := fileutils.ResolvePackVersion(c.String("pack-dir"), c.String("pack-version"))
					if err != nil {
						return err
					}

					policy, err := buildPolicy(c)
					if err != nil {
						return err
					}

					pterm.Info.Println("Resolving target versions for pack version " + base)
					res, err := services.Resolve(&api.VersionSource{}, policy, base)
					if err != nil {
						return err
					}
					if err := fileutils.WriteResolution(c.String("output"), res); err != nil {
						return err
					}
					printGroups(res)

					cfg := util.Config{
						Project:         c.String("project"),
						PackName:        c.String("pack-name"),
						BaseVersion:     base,
						Token:           token,
						PackDir:         c.String("pack-dir"),
						OutputDir:       c.String("out-dir"),
						ContinueOnError: c.Bool("continue-on-error"),
					}
					if cmd := strings.TrimSpace(c.String("update-cmd")); cmd != "" {
						cfg.UpdateCmd = strings.Fields(cmd)
					}
					return services.NewPublisher(cfg).Publish(res)
				},
			},
			{
				Name:  "token",
				Usage: "Manage the Modrinth API token in the OS keyring",
				Subcommands: []*cli.Command{
					{
						Name:      "set",
						ArgsUsage: "<token>",
						Action: func(c *cli.Context) error {
							if c.Args().Get(0) == "" {
								return errors.New("usage: packsmith token set <token>")
							}
							if err := fileutils.SetToken(c.Args().Get(0)); err != nil {
								return err
							}
							pterm.Success.Println("Token stored")
							return nil
						},
					},
					{
						Name: "get",
						Action: func(c *cli.Context) error {
							token, err := fileutils.GetToken()
							if err != nil {
								return err
							}
							fmt.Println(token)
							return nil
						},
					},
					{
						Name: "rm",
						Action: func(c *cli.Context) error {
							if err := fileutils.DeleteToken(); err != nil {
								return err
							}
							pterm.Success.Println("Token removed")
							return nil
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// buildPolicy assembles the selection policy from flags, fetching the
// project's already published game versions when --all-missing asks for the
// delta.
func buildPolicy(c *cli.Context) (services.Policy, error) {
	policy := services.Policy{
		Explicit:   c.StringSlice("versions"),
		Releases:   c.Int("releases"),
		AllMissing: c.Bool("all-missing"),
	}

	if policy.AllMissing && len(policy.Explicit) == 0 {
		project := c.String("project")
		if project == "" {
			return services.Policy{}, errors.New("--all-missing needs a Modrinth project (--project or MODRINTH_PROJECT)")
		}
		id, exists, err := api.ResolveProject(project)
		if err != nil {
			return services.Policy{}, err
		}
		if !exists {
			pterm.Info.Println("Project not found on Modrinth, assuming first upload")
			return policy, nil
		}
		published, err := api.GetProjectVersions(id)
		if err != nil {
			return services.Policy{}, err
		}
		policy.Published = published.GameVersions
	}
	return policy, nil
}

func resolveToken(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	token, err := fileutils.GetToken()
	if err != nil || token == "" {
		return "", errors.New("no Modrinth token: pass --token, set MODRINTH_TOKEN, or run `packsmith token set`")
	}
	return token, nil
}

func printGroups(res util.Resolution) {
	lversion := len("VERSION:")
	lformat := len("FORMAT:")
	for _, group := range res.Groups {
		if len(group.VersionNumber) > lversion {
			lversion = len(group.VersionNumber)
		}
	}

	fmt.Println()
	fmt.Println(text.AlignDefault.Apply("VERSION:", lversion+2) + text.AlignDefault.Apply("FORMAT:", lformat+2) + "GAME VERSIONS:")
	for _, group := range res.Groups {
		fmt.Println(text.AlignDefault.Apply(group.VersionNumber, lversion+2) +
			text.AlignDefault.Apply(strconv.Itoa(group.PackFormat), lformat+2) +
			strings.Join(group.Versions, ", "))
	}
	fmt.Println()
}

func splitVersions(csv string) []string {
	var versions []string
	for _, v := range strings.Split(csv, ",") {
		if v = strings.TrimSpace(v); v != "" {
			versions = append(versions, v)
		}
	}
	return versions
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
