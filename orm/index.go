package orm

import (
	"bytes"
	"regexp"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
)

var isIndexName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// Indexer calculates the secondary index key for a model. Returning a nil
// key means that the model is not indexed.
type Indexer func(Model) ([]byte, error)

// index keeps a MultiRef of primary keys under each index value.
type index struct {
	name    string
	prefix  []byte
	indexer Indexer
	unique  bool
}

func newIndex(bucket, name string, indexer Indexer, unique bool) index {
	return index{
		name:    name,
		prefix:  []byte("_i." + bucket + "_" + name + ":"),
		indexer: indexer,
		unique:  unique,
	}
}

func (i index) dbKey(value []byte) []byte {
	out := make([]byte, len(i.prefix)+len(value))
	copy(out, i.prefix)
	copy(out[len(i.prefix):], value)
	return out
}

// keys returns all primary keys indexed under given value.
func (i index) keys(db lendpool.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	refs, err := i.load(db, value)
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

func (i index) load(db lendpool.ReadOnlyKVStore, value []byte) (*MultiRef, error) {
	raw, err := db.Get(i.dbKey(value))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load index")
	}
	var refs MultiRef
	if raw == nil {
		return &refs, nil
	}
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal index")
	}
	return &refs, nil
}

func (i index) store(db lendpool.KVStore, value []byte, refs *MultiRef) error {
	if len(refs.Refs) == 0 {
		return db.Delete(i.dbKey(value))
	}
	raw, err := refs.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal index")
	}
	return db.Set(i.dbKey(value), raw)
}

// update moves the primary key from the index value of prev to the one of
// next. Either model can be nil for creation and deletion.
func (i index) update(db lendpool.KVStore, pk []byte, prev, next Model) error {
	var prevVal, nextVal []byte
	var err error
	if prev != nil {
		if prevVal, err = i.indexer(prev); err != nil {
			return errors.Wrapf(err, "index %q", i.name)
		}
	}
	if next != nil {
		if nextVal, err = i.indexer(next); err != nil {
			return errors.Wrapf(err, "index %q", i.name)
		}
	}
	if prev != nil && next != nil && bytes.Equal(prevVal, nextVal) {
		return nil
	}

	if prevVal != nil {
		refs, err := i.load(db, prevVal)
		if err != nil {
			return err
		}
		if err := refs.Remove(pk); err != nil {
			return errors.Wrapf(err, "index %q", i.name)
		}
		if err := i.store(db, prevVal, refs); err != nil {
			return err
		}
	}

	if nextVal != nil {
		refs, err := i.load(db, nextVal)
		if err != nil {
			return err
		}
		if i.unique && len(refs.Refs) > 0 {
			return errors.Wrapf(ErrUniqueConstraint, "index %q", i.name)
		}
		if err := refs.Add(pk); err != nil {
			return errors.Wrapf(err, "index %q", i.name)
		}
		if err := i.store(db, nextVal, refs); err != nil {
			return err
		}
	}
	return nil
}
