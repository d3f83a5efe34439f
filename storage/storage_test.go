package storage

import (
	"crypto/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/alice/curve"
	"github.com/f3rmion/alice/group"
)

type row struct {
	Name  string
	Count int
	Value curve.Scalar
	Image curve.Point
}

func newRow(t *testing.T, id curve.ID, name string, count int) row {
	t.Helper()
	g := id.Group()
	s, err := g.RandomScalar(rand.Reader)
	require.NoError(t, err)
	return row{
		Name:  name,
		Count: count,
		Value: curve.NewScalar(id, s),
		Image: curve.NewPoint(id, group.BaseMult(g, s)),
	}
}

func openMemory(t *testing.T) *Storage {
	t.Helper()
	s, err := Open("", Options{InMemory: true, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTableCRUD(t *testing.T) {
	s := openMemory(t)
	table := OpenTable[row](s, "rows")

	_, ok, err := table.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	first := newRow(t, curve.Secp256k1, "first", 1)
	prev, ok, err := table.Insert("a", first)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, prev.Count)

	got, ok, err := table.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, curve.Secp256k1, got.Value.Curve)
	assert.True(t, got.Value.Value.Equal(first.Value.Value))
	assert.True(t, got.Image.Value.Equal(first.Image.Value))

	second := newRow(t, curve.Ed25519, "second", 2)
	prev, ok, err = table.Insert("a", second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", prev.Name)

	removed, ok, err := table.Remove("a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", removed.Name)
	assert.Equal(t, curve.Ed25519, removed.Image.Curve)

	_, ok, err = table.Remove("a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelectPrefix(t *testing.T) {
	s := openMemory(t)
	table := OpenTable[row](s, "rows")

	for i, key := range []string{"k1[a]", "k1[b]", "k10[a]", "k2[a]"} {
		_, _, err := table.Insert(key, newRow(t, curve.Ristretto25519, key, i))
		require.NoError(t, err)
	}

	entries, err := table.Select("k1[")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "k1[a]", entries[0].Key)
	assert.Equal(t, "k1[b]", entries[1].Key)

	all, err := table.Select("")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestTablesAreIsolated(t *testing.T) {
	s := openMemory(t)
	rows := OpenTable[row](s, "rows")
	names := OpenTable[string](s, "names")

	_, _, err := rows.Insert("x", newRow(t, curve.BabyJubjub, "x", 0))
	require.NoError(t, err)
	_, _, err = names.Insert("x", "hello")
	require.NoError(t, err)

	got, ok, err := names.Get("x")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", got)

	entries, err := rows.Select("")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMove(t *testing.T) {
	s := openMemory(t)
	pending := OpenTable[row](s, "pending")
	done := OpenTable[string](s, "done")

	_, _, err := pending.Insert("a", newRow(t, curve.Ed25519, "a", 1))
	require.NoError(t, err)
	_, _, err = pending.Insert("b", newRow(t, curve.Ed25519, "b", 2))
	require.NoError(t, err)
	_, _, err = done.Insert("b", "already there")
	require.NoError(t, err)

	require.NoError(t, Move(pending, "a", done, "a", "finished"))
	_, ok, err := pending.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)
	got, ok, err := done.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "finished", got)

	// An occupied destination leaves both tables untouched.
	err = Move(pending, "b", done, "b", "overwritten")
	assert.ErrorIs(t, err, ErrExists)
	_, ok, err = pending.Get("b")
	require.NoError(t, err)
	assert.True(t, ok)
	got, _, err = done.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "already there", got)

	other := OpenTable[string](openMemory(t), "done")
	assert.Panics(t, func() { _ = Move(pending, "b", other, "b", "x") })
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, Options{Logger: zerolog.Nop()})
	require.NoError(t, err)
	original := newRow(t, curve.Secp256k1, "kept", 7)
	_, _, err = OpenTable[row](s, "rows").Insert("key", original)
	require.NoError(t, err)
	require.NoError(t, s.Flush())
	require.NoError(t, s.Close())

	s, err = Open(dir, Options{Logger: zerolog.Nop()})
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := OpenTable[row](s, "rows").Get("key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7, got.Count)
	assert.True(t, got.Value.Value.Equal(original.Value.Value))
}

func TestInvalidTableName(t *testing.T) {
	s := openMemory(t)
	assert.Panics(t, func() { OpenTable[row](s, "") })
	assert.Panics(t, func() { OpenTable[row](s, "a/b") })
}
