package store

import (
	"bytes"
	"io"
	"io/ioutil"
	"strings"

	bbolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"
)

var singletonBucket = []byte("record")

// Bolt is a record kept in a single bbolt database: one bucket for the
// singletons and one bucket per collection, keyed by member file name.
type Bolt struct {
	db *bbolt.DB
}

// OpenBolt opens, or creates, the database at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, xerrors.Errorf("opening db: %v", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range append([]string{string(singletonBucket)}, Collections()...) {
			if _, err := tx.CreateBucketIfNotExists([]byte(b)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, xerrors.Errorf("creating buckets: %v", err)
	}
	return &Bolt{db: db}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.db.Close()
}

// split returns the bucket and the key of a document.
func split(name string) ([]byte, []byte) {
	i := strings.IndexByte(name, '/')
	if i < 0 {
		return singletonBucket, []byte(name)
	}
	return []byte(name[:i]), []byte(name[i+1:])
}

func (b *Bolt) get(name string) ([]byte, error) {
	bucket, key := split(name)
	var buf []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bu := tx.Bucket(bucket)
		if bu == nil {
			return nil
		}
		// The value is only valid during the transaction.
		if v := bu.Get(key); v != nil {
			buf = append([]byte{}, v...)
		}
		return nil
	})
	return buf, err
}

// Open implements Store.
func (b *Bolt) Open(name string) (io.ReadCloser, error) {
	buf, err := b.get(name)
	if err != nil {
		return nil, xerrors.Errorf("reading %s: %v", name, err)
	}
	if buf == nil {
		return nil, xerrors.Errorf("%s: %w", name, ErrNotFound)
	}
	return ioutil.NopCloser(bytes.NewReader(buf)), nil
}

// Exists implements Store.
func (b *Bolt) Exists(name string) bool {
	buf, err := b.get(name)
	return err == nil && buf != nil
}

// Members implements Store.
func (b *Bolt) Members(collection string) ([]string, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	var names []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(collection)).ForEach(func(k, v []byte) error {
			name := collection + "/" + string(k)
			if isMember(collection, name) {
				names = append(names, name)
			}
			return nil
		})
	})
	if err != nil {
		return nil, xerrors.Errorf("listing %s: %v", collection, err)
	}
	return sorted(names), nil
}

// Create implements Writer. The document is stored in one transaction when
// the writer is closed.
func (b *Bolt) Create(name string) (io.WriteCloser, error) {
	bucket, key := split(name)
	if string(bucket) != string(singletonBucket) {
		if err := checkCollection(string(bucket)); err != nil {
			return nil, err
		}
	}
	return &boltDoc{db: b.db, bucket: bucket, key: key}, nil
}

type boltDoc struct {
	bytes.Buffer
	db      *bbolt.DB
	bucket  []byte
	key     []byte
	aborted bool
}

func (d *boltDoc) Close() error {
	if d.aborted {
		return nil
	}
	return d.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(d.bucket).Put(d.key, d.Bytes())
	})
}

// Abort drops the buffered content; a later Close stores nothing.
func (d *boltDoc) Abort() error {
	d.aborted = true
	d.Reset()
	return nil
}
