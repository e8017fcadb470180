package main

import (
	"encoding/base64"
	"net/url"
	"strconv"

	"offerboard/internal/offerclient"

	"github.com/urfave/cli/v2"
)

var listCommand = &cli.Command{
	Name:  "list",
	Usage: "List offerts",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "limit", Usage: "Page size", Value: 20},
		&cli.IntFlag{Name: "offset", Usage: "Offerts to skip"},
	},
	Action: func(c *cli.Context) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		params := url.Values{
			"limit":  {strconv.Itoa(c.Int("limit"))},
			"offset": {strconv.Itoa(c.Int("offset"))},
		}
		return printResult(client.Offers().ListAll(c.Context, params))
	},
}

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "Search offerts by title",
	ArgsUsage: "<title>",
	Action: func(c *cli.Context) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		term := base64.StdEncoding.EncodeToString([]byte(c.Args().First()))
		return printResult(client.Offers().SearchByTitle(c.Context, term))
	},
}

var getCommand = &cli.Command{
	Name:      "get",
	Usage:     "Show one offert",
	ArgsUsage: "<slug>",
	Action: func(c *cli.Context) error {
		slug, err := slugArg(c)
		if err != nil {
			return err
		}
		client, err := newClient(c)
		if err != nil {
			return err
		}
		return printResult(client.Offers().GetBySlug(c.Context, slug))
	},
}

var filterCommand = &cli.Command{
	Name:  "filter",
	Usage: "Filter offerts by category, company and salary",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "category", Usage: "Category slug"},
		&cli.StringFlag{Name: "company", Usage: "Company slug"},
		&cli.Int64Flag{Name: "salary-min", Usage: "Minimum salary"},
		&cli.Int64Flag{Name: "salary-max", Usage: "Maximum salary"},
	},
	Action: func(c *cli.Context) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		f := offerclient.Filters{
			Category: c.String("category"),
			Company:  c.String("company"),
		}
		if c.IsSet("salary-min") {
			v := c.Int64("salary-min")
			f.SalaryMin = &v
		}
		if c.IsSet("salary-max") {
			v := c.Int64("salary-max")
			f.SalaryMax = &v
		}
		return printResult(client.Offers().Filter(c.Context, f))
	},
}

var favoriteCommand = &cli.Command{
	Name:      "favorite",
	Usage:     "Mark an offert as favorite",
	ArgsUsage: "<slug>",
	Action: func(c *cli.Context) error {
		slug, err := slugArg(c)
		if err != nil {
			return err
		}
		client, err := newClient(c)
		if err != nil {
			return err
		}
		return printResult(client.Offers().Favorite(c.Context, slug))
	},
}

var unfavoriteCommand = &cli.Command{
	Name:      "unfavorite",
	Usage:     "Remove an offert from favorites",
	ArgsUsage: "<slug>",
	Action: func(c *cli.Context) error {
		slug, err := slugArg(c)
		if err != nil {
			return err
		}
		client, err := newClient(c)
		if err != nil {
			return err
		}
		return printResult(client.Offers().Unfavorite(c.Context, slug))
	},
}

var favoritesCommand = &cli.Command{
	Name:  "favorites",
	Usage: "List your favorite offerts",
	Action: func(c *cli.Context) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		return printResult(client.Offers().UserFavorites(c.Context))
	},
}

var categoriesCommand = &cli.Command{
	Name:  "categories",
	Usage: "List categories",
	Action: func(c *cli.Context) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		return printResult(client.Categories().ListAll(c.Context, nil))
	},
}

func slugArg(c *cli.Context) (string, error) {
	slug := c.Args().First()
	if slug == "" {
		return "", cli.Exit("missing <slug> argument", 2)
	}
	return slug, nil
}
