package commands

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"os"

	"github.com/chaisql/amf3/bridge"
	"github.com/chaisql/amf3/internal/config"
	"github.com/chaisql/amf3/types"
	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"
	"github.com/urfave/cli/v3"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("amf3.cli")

var hexFlag = &cli.BoolFlag{
	Name:  "hex",
	Usage: "read or write AMF3 as hexadecimal text instead of raw bytes.",
}

// setup loads the configuration given by the --config flag, or the defaults,
// and configures logging accordingly.
func setup(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	var file *string
	if cfg.Log.File != "" {
		file = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, file)

	return cfg, nil
}

// readInput reads the file named by the first argument, or the standard input.
func readInput(cmd *cli.Command, arg string, asHex bool) ([]byte, error) {
	var data []byte
	var err error
	if arg != "" && arg != "-" {
		data, err = os.ReadFile(arg)
	} else {
		data, err = io.ReadAll(cmd.Root().Reader)
	}
	if err != nil {
		return nil, err
	}

	if !asHex {
		return data, nil
	}

	data = bytes.Join(bytes.Fields(data), nil)
	out := make([]byte, hex.DecodedLen(len(data)))
	_, err = hex.Decode(out, data)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex input")
	}

	return out, nil
}

func writeOutput(cmd *cli.Command, data []byte, asHex bool) error {
	w := cmd.Root().Writer
	if !asHex {
		_, err := w.Write(data)
		return err
	}

	_, err := io.WriteString(w, hex.EncodeToString(data)+"\n")
	return err
}

// writeJSONLines writes each value as JSON on its own line.
func writeJSONLines(w io.Writer, values []types.Value) error {
	for i, v := range values {
		data, err := bridge.MarshalJSON(v)
		if err != nil {
			return errors.Wrapf(err, "value %d", i)
		}

		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return err
		}
	}

	return nil
}

// readJSONLines parses one JSON document per non-empty line.
func readJSONLines(ctx context.Context, r io.Reader) ([]types.Value, error) {
	var values []types.Value

	br := bufio.NewReader(r)
	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

		if doc := bytes.TrimSpace(data); len(doc) > 0 {
			v, perr := bridge.ParseJSON(doc)
			if perr != nil {
				return nil, errors.Wrapf(perr, "line %d", line)
			}
			values = append(values, v)
		}

		if errors.Is(err, io.EOF) {
			return values, nil
		}
	}
}
