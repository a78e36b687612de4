package commands_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chaisql/amf3/cmd/amf3/commands"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	app := commands.NewApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(stdin)

	err := app.Run(context.Background(), append([]string{"amf3"}, args...))
	return out.String(), err
}

func TestDecode(t *testing.T) {
	out, err := run(t, "06 07 66 6f 6f\n06 00 09 05 01 04 00 04 01", "decode", "--hex")
	require.NoError(t, err)
	require.Equal(t, "\"foo\"\n\"foo\"\n[0,1]\n", out)

	out, err = run(t, "0607666f6f0600", "decode", "--hex", "--keep-references")
	require.NoError(t, err)
	require.Equal(t, "\"foo\"\n{\"$ref\":{\"kind\":\"string\",\"index\":0}}\n", out)

	out, err = run(t, "\x06\x07foo", "decode")
	require.NoError(t, err)
	require.Equal(t, "\"foo\"\n", out)

	_, err = run(t, "zz", "decode", "--hex")
	require.Error(t, err)

	_, err = run(t, "0600", "decode", "--hex")
	require.Error(t, err)
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg.amf")
	require.NoError(t, os.WriteFile(path, []byte{0x04, 0x05, 0x01}, 0o600))

	out, err := run(t, "", "decode", path)
	require.NoError(t, err)
	require.Equal(t, "5\nnull\n", out)
}

func TestEncode(t *testing.T) {
	out, err := run(t, "\"foo\"\n\n\"foo\"\n[0, 1]", "encode", "--hex")
	require.NoError(t, err)
	require.Equal(t, "0607666f6f060009050104000401\n", out)

	out, err = run(t, "1", "encode")
	require.NoError(t, err)
	require.Equal(t, "\x04\x01", out)

	_, err = run(t, "{", "encode")
	require.Error(t, err)
}

func TestCBOR(t *testing.T) {
	out, err := run(t, "0607666f6f0401", "cbor", "--hex")
	require.NoError(t, err)
	require.Equal(t, "63666f6f\n01\n", out)
}

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "so.db")

	_, err := run(t, "{\"volume\": 7}\n\"player\"\n", "store", "--path", path, "put", "settings")
	require.NoError(t, err)
	_, err = run(t, "null", "store", "--path", path, "put", "other")
	require.NoError(t, err)

	out, err := run(t, "", "store", "--path", path, "get", "settings")
	require.NoError(t, err)
	require.Equal(t, "{\"volume\":7}\n\"player\"\n", out)

	out, err = run(t, "", "store", "--path", path, "list")
	require.NoError(t, err)
	require.Equal(t, "other\nsettings\n", out)

	_, err = run(t, "", "store", "--path", path, "delete", "other")
	require.NoError(t, err)

	out, err = run(t, "", "store", "--path", path, "list", "o")
	require.NoError(t, err)
	require.Empty(t, out)

	_, err = run(t, "", "store", "--path", path, "get", "other")
	require.Error(t, err)

	_, err = run(t, "", "store", "--path", path, "get")
	require.Error(t, err)
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "amf3.toml")
	content := "[codec]\nmax_depth = 1\n\n[store]\npath = \"" + filepath.ToSlash(filepath.Join(dir, "so.db")) + "\"\n"
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o600))

	_, err := run(t, "090301090101", "--config", cfg, "decode", "--hex")
	require.Error(t, err)

	_, err = run(t, "[1]", "--config", cfg, "store", "put", "a")
	require.NoError(t, err)

	out, err := run(t, "", "--config", cfg, "store", "list")
	require.NoError(t, err)
	require.Equal(t, "a\n", out)

	_, err = run(t, "", "--config", filepath.Join(dir, "missing.yaml"), "decode")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	require.NotEmpty(t, out)
}
