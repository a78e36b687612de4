package commands

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/chaisql/amf3"
	"github.com/urfave/cli/v3"
)

// NewEncodeCommand returns a cli.Command for "amf3 encode".
func NewEncodeCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "encode",
		Usage:     "Encode JSON lines into an AMF3 message.",
		UsageText: `amf3 encode [options] [file]`,
		Description: `The encode command reads one JSON document per line and encodes them,
in order, into a single AMF3 message:

$ printf '"foo"\n"foo"\n' | amf3 encode --hex
0607666f6f0600

Integers that don't fit in 29 bits are encoded as doubles. Objects keep the order
of their members. {"$date": "<RFC 3339>"} is encoded as a date.`,
		Flags: []cli.Flag{
			hexFlag,
		},
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		var r io.Reader = cmd.Root().Reader
		if arg := cmd.Args().First(); arg != "" && arg != "-" {
			data, err := os.ReadFile(arg)
			if err != nil {
				return err
			}
			r = bytes.NewReader(data)
		}

		values, err := readJSONLines(ctx, r)
		if err != nil {
			return err
		}

		msg, err := amf3.NewEncoder(cfg.CodecOptions()).EncodeMessage(values...)
		if err != nil {
			return err
		}
		log.Debugf("encoded %d values into %d bytes", len(values), len(msg))

		return writeOutput(cmd, msg, cmd.Bool("hex"))
	}

	return &cmd
}
