package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var tokenCommand = &cli.Command{
	Name:  "token",
	Usage: "Manage the stored access token",
	Subcommands: []*cli.Command{
		{
			Name:      "save",
			Usage:     "Store an access token issued by the identity provider",
			ArgsUsage: "<access-token> [refresh-token]",
			Action: func(c *cli.Context) error {
				access := c.Args().Get(0)
				if access == "" {
					return cli.Exit("missing <access-token> argument", 2)
				}
				store, err := tokenStore(c)
				if err != nil {
					return err
				}
				if err := store.Save(access, c.Args().Get(1)); err != nil {
					return err
				}
				fmt.Println("token saved")
				return nil
			},
		},
		{
			Name:  "clear",
			Usage: "Forget the stored tokens",
			Action: func(c *cli.Context) error {
				store, err := tokenStore(c)
				if err != nil {
					return err
				}
				if err := store.Destroy(); err != nil {
					return err
				}
				fmt.Println("token cleared")
				return nil
			},
		},
	},
}
