package commands

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// NewVersionCommand returns a cli.Command for "amf3 version".
func NewVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Shows the amf3 version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			info, ok := debug.ReadBuildInfo()

			if !ok {
				_, err := fmt.Fprintln(w, `version not available in GOPATH mode; use "go install" with Go modules enabled`)
				return err
			}

			version := info.Main.Version
			if version == "" {
				version = "(devel)"
			}
			_, err := fmt.Fprintf(w, "amf3 %v %v\n", version, info.GoVersion)
			return err
		},
	}
}
