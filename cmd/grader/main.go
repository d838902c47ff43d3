package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/jaywantadh/GradeByte/config"
	"github.com/jaywantadh/GradeByte/internal/classifier"
	"github.com/jaywantadh/GradeByte/internal/extractor"
	"github.com/jaywantadh/GradeByte/internal/metadata"
	"github.com/jaywantadh/GradeByte/internal/pipeline"
	"github.com/jaywantadh/GradeByte/internal/sheet"
	"github.com/jaywantadh/GradeByte/internal/storage"
	"github.com/jaywantadh/GradeByte/pkg/env"
	"github.com/jaywantadh/GradeByte/pkg/logging"
)

func main() {
	env.LoadEnv()
	logging.InitLogger(false)

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		logging.Log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "grader",
		Usage:     "Score model answer sheets against an answer key",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "directory holding config.yaml",
				Value:   env.GetEnv("GRADER_CONFIG_DIR", "."),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "verbose text logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				logging.InitLogger(true)
			}
			return nil
		},
		Action: gradeAction,
		Commands: []*cli.Command{
			{
				Name:    "grade",
				Aliases: []string{"g"},
				Usage:   "Grade every configured model and write the results spreadsheet",
				Action:  gradeAction,
			},
			{
				Name:      "extract",
				Usage:     "Print the answers recovered from one document",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "variant",
						Usage: "classifier variant: key, dual or simple",
						Value: string(classifier.VariantSimple),
					},
				},
				Action: extractAction,
			},
			{
				Name:  "history",
				Usage: "List previous grading runs",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10},
				},
				Action: historyAction,
			},
			{
				Name:      "fetch",
				Usage:     "Copy the spreadsheet archived by a previous run",
				ArgsUsage: "RUN_ID DEST",
				Action:    fetchAction,
			},
		},
	}
}

func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if cfg.Debug && !c.Bool("debug") {
		logging.InitLogger(true)
	}
	return cfg, nil
}

func gradeAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := logging.Log

	deps := pipeline.Deps{
		Source: extractor.NewAutoSource(),
		Writer: sheet.NewExcelWriter(cfg.SheetName),
		Log:    log,
	}
	var store *metadata.MetadataStore
	if cfg.CacheDir != "" {
		store, err = metadata.OpenMetadataStore(cfg.CacheDir)
		if err != nil {
			return err
		}
		defer store.Close()
		deps.Source = &extractor.CachedSource{Next: deps.Source, Cache: store, Log: log}
		deps.History = store
	}
	if cfg.ArchiveDir != "" {
		archive, err := storage.NewLocalStorage(cfg.ArchiveDir, ".xlsx")
		if err != nil {
			return err
		}
		deps.Archive = archive
	}

	res, err := pipeline.Run(cfg, deps)
	if errors.Is(err, extractor.ErrMissingInput) {
		// fatal exits without running deferred closes
		if store != nil {
			store.Close()
		}
		log.WithError(err).Fatal("❌ Missing input file, nothing was written")
	}
	if err != nil {
		return err
	}

	avg := res.Table.AverageRow()
	for i, name := range res.Table.Models() {
		fmt.Fprintf(c.App.Writer, "%-10s %6.2f\n", name, avg.Values[i])
	}
	return nil
}

func extractAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("extract needs exactly one FILE argument", 2)
	}
	variant, err := classifier.ParseVariant(c.String("variant"))
	if err != nil {
		return err
	}

	doc, err := extractor.NewAutoSource().Extract(c.Args().First())
	if err != nil {
		return err
	}
	answers, err := classifier.Parse(variant, doc.Lines())
	if err != nil {
		return err
	}

	logging.Log.WithFields(logrus.Fields{"pages": len(doc.Pages), "answers": len(answers)}).
		Debugf("Extracted %s", doc.Path)
	for _, q := range answers.Questions() {
		fmt.Fprintf(c.App.Writer, "%d\t%s\n", q, answers[q])
	}
	return nil
}

func historyAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.CacheDir == "" {
		return cli.Exit("history needs cache_dir to be configured", 2)
	}
	store, err := metadata.OpenMetadataStore(cfg.CacheDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}
	for _, run := range runs {
		parts := make([]string, 0, len(run.Models))
		for _, m := range run.Models {
			parts = append(parts, fmt.Sprintf("%s=%.2f", m.Name, m.Average))
		}
		fmt.Fprintf(c.App.Writer, "%s  %s  %s  %s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.ID, run.OutputPath, strings.Join(parts, " "))
	}
	return nil
}

func fetchAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("fetch needs RUN_ID and DEST arguments", 2)
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.CacheDir == "" || cfg.ArchiveDir == "" {
		return cli.Exit("fetch needs cache_dir and archive_dir to be configured", 2)
	}

	store, err := metadata.OpenMetadataStore(cfg.CacheDir)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.GetRun(c.Args().Get(0))
	if err != nil {
		return err
	}
	if run.ArchiveID == "" {
		return fmt.Errorf("run %s has no archived report", run.ID)
	}

	archive, err := storage.NewLocalStorage(cfg.ArchiveDir, ".xlsx")
	if err != nil {
		return err
	}
	src, err := archive.Get(run.ArchiveID)
	if err != nil {
		return err
	}
	defer src.Close()

	dest := c.Args().Get(1)
	dst, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to copy report: %w", err)
	}
	if err := dst.Close(); err != nil {
		return err
	}

	logging.Log.WithFields(logrus.Fields{"run": run.ID, "archive": run.ArchiveID}).
		Infof("📦 Restored report to %s", dest)
	return nil
}
