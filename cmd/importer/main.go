package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"offerboard/internal/config"
	"offerboard/internal/db"
	"offerboard/internal/importer"
	categoryrepo "offerboard/internal/repository/category"
	enterpriserepo "offerboard/internal/repository/enterprise"
	offerrepo "offerboard/internal/repository/offer"
	categorysvc "offerboard/internal/service/category"
	enterprisesvc "offerboard/internal/service/enterprise"
	offersvc "offerboard/internal/service/offer"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "importer",
		Usage: "Import offerts from a CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the offerts CSV (title,company,categorySlug,...)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "skip-invalid",
				Usage: "Log and skip rows rejected by validation instead of aborting",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("import failed")
	}
}

func run(c *cli.Context) error {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg.LogLevel).WithField("app", "importer")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	categories := categorysvc.New(categoryrepo.NewPostgres(pool))
	enterprises := enterprisesvc.New(enterpriserepo.NewPostgres(pool))
	offers := offersvc.New(offerrepo.NewPostgres(pool, logger), categories, enterprises, logger)

	opts := []importer.Option{importer.WithLogger(logger)}
	if c.Bool("skip-invalid") {
		opts = append(opts, importer.SkipInvalid())
	}

	start := time.Now()
	rep, err := importer.NewCSVImporter(f, offers, opts...).Run(ctx)
	if err != nil {
		return fmt.Errorf("imported %d before failing: %w", rep.Imported, err)
	}

	logger.WithFields(logrus.Fields{
		"imported": rep.Imported,
		"skipped":  rep.Skipped,
		"took":     time.Since(start).Truncate(time.Millisecond).String(),
	}).Info("import finished")
	return nil
}
