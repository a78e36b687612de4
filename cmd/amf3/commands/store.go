package commands

import (
	"context"
	"fmt"

	"github.com/chaisql/amf3/internal/config"
	"github.com/chaisql/amf3/sharedobject"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

// NewStoreCommand returns a cli.Command for "amf3 store".
func NewStoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Manage a store of shared objects.",
		Description: `The store subcommands read and write named records, each holding one AMF3 message.
The store is located by --path, or by store.path in the configuration file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "path of the store. Defaults to " + config.DefaultStorePath + ".",
			},
		},
		Commands: []*cli.Command{
			newStorePutCommand(),
			newStoreGetCommand(),
			newStoreListCommand(),
			newStoreDeleteCommand(),
		},
	}
}

// withStore opens the store, runs fn and closes the store.
func withStore(cmd *cli.Command, fn func(s *sharedobject.Store) error) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	path := cfg.Store.Path
	if p := cmd.String("path"); p != "" {
		path = p
	}

	s, err := sharedobject.Open(path, &sharedobject.Options{
		Codec: cfg.CodecOptions(),
	})
	if err != nil {
		return err
	}

	err = fn(s)
	if cerr := s.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return err
}

func newStorePutCommand() *cli.Command {
	return &cli.Command{
		Name:      "put",
		Usage:     "Store JSON lines as one record.",
		UsageText: `amf3 store put name < values.jsonl`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return errors.New(cmd.UsageText)
			}

			values, err := readJSONLines(ctx, cmd.Root().Reader)
			if err != nil {
				return err
			}

			return withStore(cmd, func(s *sharedobject.Store) error {
				return s.Put(name, values...)
			})
		},
	}
}

func newStoreGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print a record as JSON lines.",
		UsageText: `amf3 store get name`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return errors.New(cmd.UsageText)
			}

			return withStore(cmd, func(s *sharedobject.Store) error {
				values, err := s.Get(name)
				if err != nil {
					return err
				}

				return writeJSONLines(cmd.Root().Writer, values)
			})
		},
	}
}

func newStoreListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List the records whose name starts with a prefix.",
		UsageText: `amf3 store list [prefix]`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withStore(cmd, func(s *sharedobject.Store) error {
				names, err := s.Names(cmd.Args().First())
				if err != nil {
					return err
				}

				for _, name := range names {
					if _, err := fmt.Fprintln(cmd.Root().Writer, name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newStoreDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a record.",
		UsageText: `amf3 store delete name`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return errors.New(cmd.UsageText)
			}

			return withStore(cmd, func(s *sharedobject.Store) error {
				return s.Delete(name)
			})
		},
	}
}
