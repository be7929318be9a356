package main

import (
	"context"
	"os"

	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/ytaudiobar/release-tools/appcast"
	"github.com/ytaudiobar/release-tools/config"
	"github.com/ytaudiobar/release-tools/log"
	"github.com/ytaudiobar/release-tools/printer"
	"github.com/ytaudiobar/release-tools/release"
	"github.com/ytaudiobar/release-tools/sign"
)

func main() {

	var configPath string
	var output string
	var skipSigning bool
	var verbose bool

	app := cli.NewApp()
	app.Name = "generate-appcast"
	app.Usage = "Generate a Sparkle appcast.xml from GitHub releases"
	app.Version = "0.0.1"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "Config file",
			Value:       config.DefaultPath,
			Destination: &configPath,
		}, cli.StringFlag{
			Name:        "output, o",
			Usage:       "Output file, overrides the configured one",
			Destination: &output,
		}, cli.BoolFlag{
			Name:        "skip-signing",
			Usage:       "Leave enclosures unsigned even when a key is present",
			Destination: &skipSigning,
		}, cli.BoolFlag{
			Name:        "verbose",
			Usage:       "Full debug log",
			Destination: &verbose,
		},
	}

	app.Action = func(c *cli.Context) error {
		ctx := context.Background()

		if verbose {
			log.L.Logger.SetLevel(logrus.DebugLevel)
		}

		cfg, err := loadConfig(c, configPath)
		if err != nil {
			log.G(ctx).Fatalf("Error loading config: %v", err)
		}
		if output != "" {
			cfg.Output = output
		}

		githubToken := envy.Get("GITHUB_TOKEN", "")
		if githubToken == "" {
			log.G(ctx).Warn("No GITHUB_TOKEN found, using unauthenticated requests (rate limited)")
		}

		fetcher := &release.Fetcher{
			Client: release.NewClient(ctx, githubToken),
			Owner:  cfg.Owner,
			Repo:   cfg.Repo,
		}

		log.G(ctx).Infof("Generating %s from %s releases", cfg.Output, cfg.Slug())
		releases, err := fetcher.ListAll(ctx)
		if err != nil {
			log.G(ctx).Fatalf("Error fetching releases: %v", err)
		}

		generator := &appcast.Generator{Config: cfg}

		privateKey := envy.Get("SPARKLE_PRIVATE_KEY", "")
		switch {
		case skipSigning:
			log.G(ctx).Info("Signing skipped")
		case privateKey == "":
			log.G(ctx).Warn("No SPARKLE_PRIVATE_KEY found, appcast will not include signatures")
		default:
			generator.Signer = &sign.Signer{Tool: cfg.SignTool, PrivateKey: privateKey}
		}

		feed, summaries := generator.Generate(ctx, releases)

		if err := feed.WriteFile(cfg.Output); err != nil {
			log.G(ctx).Fatalf("Error writing %s: %v", cfg.Output, err)
		}

		printer.Table(summaries)
		log.G(ctx).Infof("Wrote %s with %d items", cfg.Output, len(feed.Channel.Items))
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		log.L.Fatal(err)
	}
}

// loadConfig tolerates a missing file only at the default path. A path
// the user asked for explicitly has to exist.
func loadConfig(c *cli.Context, path string) (*config.Config, error) {
	if c.IsSet("config") {
		return config.Load(path)
	}
	return config.LoadOrDefault(path)
}
