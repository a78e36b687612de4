package commands

import (
	"context"

	"github.com/chaisql/amf3"
	"github.com/urfave/cli/v3"
)

// NewDecodeCommand returns a cli.Command for "amf3 decode".
func NewDecodeCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "decode",
		Usage:     "Decode an AMF3 message into JSON lines.",
		UsageText: `amf3 decode [options] [file]`,
		Description: `The decode command reads one AMF3 message from a file, or from the standard input,
and writes each of its values as JSON on its own line:

$ printf '\x06\x07foo\x06\x00' | amf3 decode
"foo"
"foo"

Dates are written as {"$date": "..."}. With --keep-references, back-references
are written as {"$ref": {"kind": "...", "index": n}} instead of being resolved.`,
		Flags: []cli.Flag{
			hexFlag,
			&cli.BoolFlag{
				Name:  "keep-references",
				Usage: "don't resolve back-references.",
			},
		},
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		data, err := readInput(cmd, cmd.Args().First(), cmd.Bool("hex"))
		if err != nil {
			return err
		}

		opts := cfg.CodecOptions()
		if cmd.Bool("keep-references") {
			opts.KeepReferences = true
		}

		values, err := amf3.NewDecoder(opts).DecodeMessage(data)
		if err != nil {
			return err
		}
		log.Debugf("decoded %d values from %d bytes", len(values), len(data))

		return writeJSONLines(cmd.Root().Writer, values)
	}

	return &cmd
}
