// Package sharedobject persists named records holding AMF3 messages,
// the way a runtime keeps shared objects between sessions.
package sharedobject

import (
	"github.com/chaisql/amf3"
	"github.com/chaisql/amf3/lib/pebbleutil"
	"github.com/chaisql/amf3/types"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/tliron/commonlog"
)

const (
	separator    byte = 0x1F
	recordPrefix byte = 'r'

	// first byte of every record, followed by the message
	formatAMF3 byte = 0x03
)

var (
	// ErrNotFound is returned when the named record doesn't exist.
	ErrNotFound = errors.New("record not found")

	// ErrEmptyName is returned when a record is given an empty name.
	ErrEmptyName = errors.New("empty record name")

	// ErrCorrupted is returned when a stored record cannot be read back.
	ErrCorrupted = errors.New("corrupted record")
)

var log = commonlog.GetLogger("amf3.sharedobject")

// Options configure a Store.
type Options struct {
	// Codec configures how records are encoded and decoded.
	Codec *amf3.Options

	// FS is the filesystem used by Pebble. Defaults to the OS filesystem.
	FS vfs.FS
}

// A Store keeps named records, each one holding a single AMF3 message.
// References inside a record are scoped to that record.
type Store struct {
	db  *pebble.DB
	dec *amf3.Decoder
	enc *amf3.Encoder
}

// Open opens or creates the store located at path.
func Open(path string, opts *Options) (*Store, error) {
	if opts == nil {
		opts = &Options{}
	}

	popts := pebble.Options{
		FS:     opts.FS,
		Logger: pebbleutil.NewLogger("amf3.pebble"),
	}

	db, err := pebble.Open(path, &popts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening store %q", path)
	}

	log.Infof("opened store %q", path)

	return &Store{
		db:  db,
		dec: amf3.NewDecoder(opts.Codec),
		enc: amf3.NewEncoder(opts.Codec),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func buildKey(name string) []byte {
	key := make([]byte, 0, len(name)+2)
	key = append(key, recordPrefix, separator)
	return append(key, name...)
}

func trimKey(key []byte) string {
	return string(key[2:])
}

// Put encodes values into one message and stores it under name,
// replacing any previous record.
func (s *Store) Put(name string, values ...types.Value) error {
	msg, err := s.enc.AppendMessage([]byte{formatAMF3}, values...)
	if err != nil {
		return errors.Wrapf(err, "encoding record %q", name)
	}

	return s.put(name, msg)
}

// PutRaw stores an already encoded message under name. The message
// is decoded first so that only valid records are stored.
func (s *Store) PutRaw(name string, msg []byte) error {
	if _, err := s.dec.DecodeMessage(msg); err != nil {
		return errors.Wrapf(err, "invalid record %q", name)
	}

	record := make([]byte, 0, len(msg)+1)
	record = append(record, formatAMF3)
	record = append(record, msg...)
	return s.put(name, record)
}

func (s *Store) put(name string, record []byte) error {
	if name == "" {
		return errors.WithStack(ErrEmptyName)
	}

	err := s.db.Set(buildKey(name), record, pebble.Sync)
	if err != nil {
		return err
	}

	log.Debugf("stored record %q (%d bytes)", name, len(record)-1)
	return nil
}

// GetRaw returns the message stored under name.
func (s *Store) GetRaw(name string) ([]byte, error) {
	if name == "" {
		return nil, errors.WithStack(ErrEmptyName)
	}

	value, closer, err := s.db.Get(buildKey(name))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "%q", name)
		}

		return nil, err
	}

	if len(value) == 0 || value[0] != formatAMF3 {
		_ = closer.Close()
		return nil, errors.Wrapf(ErrCorrupted, "%q: unknown format", name)
	}

	cp := make([]byte, len(value)-1)
	copy(cp, value[1:])

	err = closer.Close()
	if err != nil {
		return nil, err
	}

	return cp, nil
}

// Get decodes the message stored under name.
func (s *Store) Get(name string) ([]types.Value, error) {
	msg, err := s.GetRaw(name)
	if err != nil {
		return nil, err
	}

	values, err := s.dec.DecodeMessage(msg)
	if err != nil {
		return nil, errors.Wrapf(errors.Mark(err, ErrCorrupted), "decoding record %q", name)
	}

	return values, nil
}

// Delete removes the record stored under name.
func (s *Store) Delete(name string) error {
	if name == "" {
		return errors.WithStack(ErrEmptyName)
	}

	key := buildKey(name)
	_, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return errors.Wrapf(ErrNotFound, "%q", name)
		}

		return err
	}
	err = closer.Close()
	if err != nil {
		return err
	}

	err = s.db.Delete(key, pebble.Sync)
	if err != nil {
		return err
	}

	log.Debugf("deleted record %q", name)
	return nil
}

// Names returns the names of the records starting with prefix, in lexicographic order.
func (s *Store) Names(prefix string) ([]string, error) {
	lower := buildKey(prefix)
	it := s.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upperBound(lower),
	})

	var names []string
	for it.First(); it.Valid(); it.Next() {
		names = append(names, trimKey(it.Key()))
	}

	if err := it.Error(); err != nil {
		_ = it.Close()
		return nil, err
	}

	return names, it.Close()
}

// upperBound returns the smallest key greater than every key starting with prefix.
func upperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}

	return nil
}
