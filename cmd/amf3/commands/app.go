package commands

import (
	"github.com/urfave/cli/v3"
)

// NewApp creates the amf3 CLI app.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:  "amf3",
		Usage: "Decode, encode and store AMF3 messages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path of a TOML or YAML configuration file.",
			},
		},
		Commands: []*cli.Command{
			NewDecodeCommand(),
			NewEncodeCommand(),
			NewCBORCommand(),
			NewStoreCommand(),
			NewVersionCommand(),
		},
	}
}
