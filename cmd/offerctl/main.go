package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"offerboard/internal/config"
	"offerboard/internal/offerclient"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "offerctl",
		Usage: "Browse the offerts API from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Aliases: []string{"a"},
				Usage:   "Base URL of the offerts API (defaults to OFFERS_API_URL)",
			},
			&cli.StringFlag{
				Name:  "token-file",
				Usage: "Where access tokens are stored (defaults to OFFERS_TOKEN_FILE or the user config dir)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log failed API calls to stderr",
			},
		},
		Commands: []*cli.Command{
			listCommand,
			searchCommand,
			getCommand,
			filterCommand,
			favoriteCommand,
			unfavoriteCommand,
			favoritesCommand,
			categoriesCommand,
			tokenCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("offerctl failed")
	}
}

func loadClientConfig(c *cli.Context) (config.ClientConfig, error) {
	cfg, err := config.ClientFromEnv()
	if err != nil {
		return cfg, err
	}
	if api := c.String("api"); api != "" {
		cfg.APIURL = api
	}
	if path := c.String("token-file"); path != "" {
		cfg.TokenFile = path
	}
	if cfg.TokenFile == "" {
		path, err := offerclient.DefaultTokenPath()
		if err != nil {
			return cfg, err
		}
		cfg.TokenFile = path
	}
	return cfg, nil
}

func tokenStore(c *cli.Context) (*offerclient.FileTokenStore, error) {
	cfg, err := loadClientConfig(c)
	if err != nil {
		return nil, err
	}
	return offerclient.NewFileTokenStore(cfg.TokenFile), nil
}

func newClient(c *cli.Context) (*offerclient.Client, error) {
	cfg, err := loadClientConfig(c)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if !c.Bool("verbose") {
		logger.SetLevel(logrus.ErrorLevel)
	}
	return offerclient.New(cfg.APIURL,
		offerclient.WithTokenStore(offerclient.NewFileTokenStore(cfg.TokenFile)),
		offerclient.WithLogger(logger),
		offerclient.WithHTTPClient(httpClient(cfg.Timeout)),
	), nil
}

// printResult writes the value as indented JSON even when the call failed,
// then reports the failure through the exit code.
func printResult[T any](r offerclient.Result[T]) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Value); err != nil {
		return err
	}
	if r.Err != nil {
		return cli.Exit(r.Err.Error(), 1)
	}
	return nil
}

func httpClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
