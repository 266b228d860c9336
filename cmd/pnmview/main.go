package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/bodgit/pnmview"
	"github.com/urfave/cli/v2"
)

const (
	defaultDB     = "pnmview.db"
	defaultConfig = "pnmview.toml"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newViewer(c *cli.Context, catalog *pnmview.Catalog) (*pnmview.Viewer, error) {
	config, err := pnmview.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	return pnmview.New(catalog, config, newLogger(c)), nil
}

func withCatalog(c *cli.Context, fn func(*pnmview.Viewer, *pnmview.Catalog) error) error {
	catalog, err := pnmview.NewCatalog(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer catalog.Close()

	v, err := newViewer(c, catalog)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := fn(v, catalog); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "pnmview"
	app.Usage = "Netpbm image viewing and conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PNMVIEW_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"PNMVIEW_CONFIG"},
			Value:   filepath.Join(cwd, defaultConfig),
			Usage:   "path to configuration file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "info",
			Usage:       "Decode images and print their format and dimensions",
			Description: "",
			ArgsUsage:   "FILE...",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				v, err := newViewer(c, nil)
				if err != nil {
					return cli.Exit(err, 1)
				}

				failed := 0
				for _, file := range c.Args().Slice() {
					m, err := v.Load(file)
					if err != nil {
						fmt.Fprintln(os.Stderr, err)
						failed++
						continue
					}
					fmt.Printf("%s: %s, %dx%d\n", file, m.Format, m.Width, m.Height)
				}

				if failed > 0 {
					return cli.Exit(fmt.Sprintf("%d of %d files failed to decode", failed, c.NArg()), 1)
				}

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert an image to PNG, JPEG, GIF, BMP or TIFF",
			Description: "The output format is taken from the extension of DESTINATION",
			ArgsUsage:   "SOURCE DESTINATION",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				v, err := newViewer(c, nil)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := v.Convert(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "watch",
			Usage:       "Decode an image every time it changes",
			Description: "If DESTINATION is given the image is converted to it after each successful decode",
			ArgsUsage:   "FILE [DESTINATION]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				v, err := newViewer(c, nil)
				if err != nil {
					return cli.Exit(err, 1)
				}

				ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				file, dst := c.Args().Get(0), c.Args().Get(1)
				if err := v.Watch(ctx, file, func(p *pnmview.Preview) {
					if msg := p.Message(); msg != "" {
						fmt.Fprintln(os.Stderr, msg)
						return
					}
					m := p.Raster()
					fmt.Printf("%s: %s, %dx%d\n", file, m.Format, m.Width, m.Height)
					if dst != "" {
						if err := v.Save(m, dst); err != nil {
							fmt.Fprintln(os.Stderr, err)
						}
					}
				}); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and record every image in the catalog",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				return withCatalog(c, func(v *pnmview.Viewer, _ *pnmview.Catalog) error {
					return v.Scan(c.Args().First())
				})
			},
		},
		{
			Name:        "list",
			Usage:       "List the images recorded in the catalog",
			Description: "",
			Action: func(c *cli.Context) error {
				return withCatalog(c, func(_ *pnmview.Viewer, catalog *pnmview.Catalog) error {
					entries, err := catalog.List()
					if err != nil {
						return err
					}

					w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, ' ', 0)
					for _, e := range entries {
						if e.Error != "" {
							fmt.Fprintf(w, "%s\t%s\terror: %s\n", e.Path, e.SHA1, e.Error)
							continue
						}
						fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\n", e.Path, e.SHA1, e.Format, e.Width, e.Height)
					}
					return w.Flush()
				})
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
