package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/ytaudiobar/release-tools/icons"
	"github.com/ytaudiobar/release-tools/log"
)

func main() {

	var dir string
	var radius float64
	var verbose bool

	app := cli.NewApp()
	app.Name = "roundicons"
	app.Usage = "Add macOS-style rounded corners to app icons, in place"
	app.Version = "0.0.1"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "dir, d",
			Usage:       "Icon set directory, e.g. Assets.xcassets/AppIcon.appiconset",
			Destination: &dir,
			Required:    true,
		}, cli.Float64Flag{
			Name:        "radius",
			Usage:       "Corner radius as a fraction of the shorter side",
			Value:       icons.DefaultRadius,
			Destination: &radius,
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

		p := &icons.Processor{Dir: dir, Radius: radius}
		n, err := p.Run(ctx)
		if err != nil {
			log.G(ctx).Fatalf("Error processing icons: %v", err)
		}

		log.G(ctx).Infof("Processed %d icon files", n)
		log.G(ctx).Infof("Originals backed up to %s", filepath.Join(dir, icons.BackupDir))
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		log.L.Fatal(err)
	}
}
