package commands

import (
	"context"

	"github.com/chaisql/amf3"
	"github.com/chaisql/amf3/bridge"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

// NewCBORCommand returns a cli.Command for "amf3 cbor".
func NewCBORCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "cbor",
		Usage:     "Convert an AMF3 message into a CBOR sequence.",
		UsageText: `amf3 cbor [options] [file]`,
		Description: `The cbor command decodes one AMF3 message and writes each of its values
as a canonical CBOR document, one after the other:

$ echo 0607666f6f0401 | amf3 cbor --hex
63666f6f
01

With --hex, both the input and the output are hexadecimal text, one document per line.`,
		Flags: []cli.Flag{
			hexFlag,
		},
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		asHex := cmd.Bool("hex")
		data, err := readInput(cmd, cmd.Args().First(), asHex)
		if err != nil {
			return err
		}

		values, err := amf3.NewDecoder(cfg.CodecOptions()).DecodeMessage(data)
		if err != nil {
			return err
		}

		for i, v := range values {
			doc, err := bridge.MarshalCBOR(v)
			if err != nil {
				return errors.Wrapf(err, "value %d", i)
			}

			if err := writeOutput(cmd, doc, asHex); err != nil {
				return err
			}
		}

		return nil
	}

	return &cmd
}
