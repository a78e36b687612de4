package sharedobject_test

import (
	"testing"

	"github.com/chaisql/amf3"
	"github.com/chaisql/amf3/sharedobject"
	"github.com/chaisql/amf3/types"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts *sharedobject.Options) *sharedobject.Store {
	t.Helper()

	if opts == nil {
		opts = &sharedobject.Options{}
	}
	opts.FS = vfs.NewMem()

	s, err := sharedobject.Open("", opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func TestStorePutGet(t *testing.T) {
	s := newStore(t, nil)

	date := types.NewDateValue(1609495559123)
	settings := types.NewArrayValue(date, date).
		Set("volume", types.NewIntegerValue(7)).
		Set("name", types.NewStringValue("player"))

	err := s.Put("settings", settings, types.NewStringValue("player"))
	require.NoError(t, err)

	values, err := s.Get("settings")
	require.NoError(t, err)
	require.Len(t, values, 2)
	require.True(t, types.Equal(settings, values[0]))
	require.Equal(t, types.NewStringValue("player"), values[1])

	// identity is kept inside a record
	a := types.AsArray(values[0])
	require.Same(t, a.Dense[0], a.Dense[1])

	raw, err := s.GetRaw("settings")
	require.NoError(t, err)
	want, err := amf3.EncodeMessage(settings, types.NewStringValue("player"))
	require.NoError(t, err)
	require.Equal(t, want, raw)

	// overwrite
	err = s.Put("settings", types.NewNullValue())
	require.NoError(t, err)
	values, err = s.Get("settings")
	require.NoError(t, err)
	require.Equal(t, []types.Value{types.NewNullValue()}, values)
}

func TestStorePutRaw(t *testing.T) {
	s := newStore(t, nil)

	err := s.PutRaw("ok", []byte{0x06, 0x07, 'f', 'o', 'o', 0x06, 0x00})
	require.NoError(t, err)

	values, err := s.Get("ok")
	require.NoError(t, err)
	require.Equal(t, []types.Value{types.NewStringValue("foo"), types.NewStringValue("foo")}, values)

	err = s.PutRaw("bad", []byte{0x06, 0x00})
	require.Error(t, err)

	_, err = s.Get("bad")
	require.ErrorIs(t, err, sharedobject.ErrNotFound)
}

func TestStoreCodecOptions(t *testing.T) {
	s := newStore(t, &sharedobject.Options{Codec: &amf3.Options{MaxDepth: 1}})

	err := s.Put("deep", types.NewArrayValue(types.NewArrayValue()))
	require.ErrorIs(t, err, amf3.ErrNestingTooDeep)
}

func TestStoreDeleteAndNames(t *testing.T) {
	s := newStore(t, nil)

	for _, name := range []string{"game/2", "game/1", "gamer", "other", "game/10"} {
		require.NoError(t, s.Put(name, types.NewStringValue(name)))
	}

	names, err := s.Names("game/")
	require.NoError(t, err)
	require.Equal(t, []string{"game/1", "game/10", "game/2"}, names)

	names, err = s.Names("")
	require.NoError(t, err)
	require.Equal(t, []string{"game/1", "game/10", "game/2", "gamer", "other"}, names)

	require.NoError(t, s.Delete("game/10"))
	require.ErrorIs(t, s.Delete("game/10"), sharedobject.ErrNotFound)

	_, err = s.Get("game/10")
	require.ErrorIs(t, err, sharedobject.ErrNotFound)

	names, err = s.Names("game/")
	require.NoError(t, err)
	require.Equal(t, []string{"game/1", "game/2"}, names)
}

func TestStoreEmptyName(t *testing.T) {
	s := newStore(t, nil)

	require.ErrorIs(t, s.Put("", types.NewNullValue()), sharedobject.ErrEmptyName)
	_, err := s.Get("")
	require.ErrorIs(t, err, sharedobject.ErrEmptyName)
	require.ErrorIs(t, s.Delete(""), sharedobject.ErrEmptyName)
}
