package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
)

// Entry is one row returned by Table.Select.
type Entry[T any] struct {
	Key   string
	Value T
}

// Table is a namespace of rows of type T keyed by string.
type Table[T any] struct {
	s      *Storage
	name   string
	prefix string
}

// OpenTable returns the table called name. Tables with different names
// never see each other's rows.
func OpenTable[T any](s *Storage, name string) *Table[T] {
	if name == "" || strings.ContainsRune(name, '/') {
		panic("storage: invalid table name " + fmt.Sprintf("%q", name))
	}
	return &Table[T]{s: s, name: name, prefix: name + "/"}
}

// Name returns the table name.
func (t *Table[T]) Name() string {
	return t.name
}

func (t *Table[T]) key(k string) []byte {
	return []byte(t.prefix + k)
}

func (t *Table[T]) decode(item *badger.Item) (T, error) {
	var v T
	err := item.Value(func(data []byte) error {
		return cbor.Unmarshal(data, &v)
	})
	if err != nil {
		return v, fmt.Errorf("storage: decode %s/%s: %w", t.name, item.Key()[len(t.prefix):], err)
	}
	return v, nil
}

// get reads key within txn. It reports false if the row is absent.
func (t *Table[T]) get(txn *badger.Txn, key string) (T, bool, error) {
	var zero T
	item, err := txn.Get(t.key(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("storage: get %s/%s: %w", t.name, key, err)
	}
	v, err := t.decode(item)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Get returns the row stored under key.
func (t *Table[T]) Get(key string) (T, bool, error) {
	var (
		v  T
		ok bool
	)
	err := t.s.db.View(func(txn *badger.Txn) error {
		var err error
		v, ok, err = t.get(txn, key)
		return err
	})
	return v, ok, err
}

// Insert stores value under key and returns the previous row, if any.
func (t *Table[T]) Insert(key string, value T) (T, bool, error) {
	data, err := cbor.Marshal(value)
	if err != nil {
		var zero T
		return zero, false, fmt.Errorf("storage: encode %s/%s: %w", t.name, key, err)
	}

	var (
		prev T
		ok   bool
	)
	err = t.s.db.Update(func(txn *badger.Txn) error {
		var err error
		if prev, ok, err = t.get(txn, key); err != nil {
			return err
		}
		return txn.Set(t.key(key), data)
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	t.s.log.Debug().Str("table", t.name).Str("key", key).Bool("replaced", ok).Msg("row inserted")
	return prev, ok, nil
}

// Remove deletes the row under key and returns it, if it existed.
func (t *Table[T]) Remove(key string) (T, bool, error) {
	var (
		prev T
		ok   bool
	)
	err := t.s.db.Update(func(txn *badger.Txn) error {
		var err error
		if prev, ok, err = t.get(txn, key); err != nil || !ok {
			return err
		}
		return txn.Delete(t.key(key))
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	if ok {
		t.s.log.Debug().Str("table", t.name).Str("key", key).Msg("row removed")
	}
	return prev, ok, nil
}

// Select returns every row whose key starts with prefix, in key order.
func (t *Table[T]) Select(prefix string) ([]Entry[T], error) {
	var out []Entry[T]
	err := t.s.db.View(func(txn *badger.Txn) error {
		p := t.key(prefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			item := it.Item()
			v, err := t.decode(item)
			if err != nil {
				return err
			}
			out = append(out, Entry[T]{
				Key:   string(item.KeyCopy(nil)[len(t.prefix):]),
				Value: v,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ErrExists is returned by Move when the destination row already exists.
var ErrExists = errors.New("storage: row exists")

// Move deletes fromKey in from and stores value under toKey in to within a
// single transaction. Nothing is written if the destination row exists.
// Both tables must belong to the same Storage.
func Move[S, T any](from *Table[S], fromKey string, to *Table[T], toKey string, value T) error {
	if from.s != to.s {
		panic("storage: move between different databases")
	}
	data, err := cbor.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %s/%s: %w", to.name, toKey, err)
	}

	err = to.s.db.Update(func(txn *badger.Txn) error {
		if _, ok, err := to.get(txn, toKey); err != nil {
			return err
		} else if ok {
			return fmt.Errorf("%w: %s/%s", ErrExists, to.name, toKey)
		}
		if err := txn.Delete(from.key(fromKey)); err != nil {
			return err
		}
		return txn.Set(to.key(toKey), data)
	})
	if err != nil {
		return err
	}
	to.s.log.Debug().
		Str("from", from.name+"/"+fromKey).
		Str("to", to.name+"/"+toKey).
		Msg("row moved")
	return nil
}
