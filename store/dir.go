package store

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

const suffix = ".json"

// Dir is a record laid out as JSON files under a directory: one file per
// singleton and one sub-directory per collection.
type Dir struct {
	root string
}

// NewDir returns the record under root. The directory is not required to
// exist until something is written to it.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the top directory of the record.
func (d *Dir) Root() string {
	return d.root
}

func (d *Dir) path(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(name)+suffix)
}

// Open implements Store.
func (d *Dir) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(d.path(name))
	if os.IsNotExist(err) {
		return nil, xerrors.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, xerrors.Errorf("opening %s: %v", name, err)
	}
	return f, nil
}

// Exists implements Store.
func (d *Dir) Exists(name string) bool {
	_, err := os.Stat(d.path(name))
	return err == nil
}

// Members implements Store. Files without the prefix of the collection are
// ignored.
func (d *Dir) Members(collection string) ([]string, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	infos, err := ioutil.ReadDir(filepath.Join(d.root, collection))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, xerrors.Errorf("listing %s: %v", collection, err)
	}
	var names []string
	for _, fi := range infos {
		if fi.IsDir() || !strings.HasSuffix(fi.Name(), suffix) {
			continue
		}
		name := collection + "/" + strings.TrimSuffix(fi.Name(), suffix)
		if !isMember(collection, name) {
			log.Lvl3("ignoring", fi.Name(), "in", collection)
			continue
		}
		names = append(names, name)
	}
	return sorted(names), nil
}

// Create implements Writer. The content is written to a temporary file that
// replaces the document when the writer is closed.
func (d *Dir) Create(name string) (io.WriteCloser, error) {
	p := d.path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil {
		return nil, xerrors.Errorf("creating %s: %v", name, err)
	}
	f, err := ioutil.TempFile(filepath.Dir(p), filepath.Base(p)+".tmp")
	if err != nil {
		return nil, xerrors.Errorf("creating %s: %v", name, err)
	}
	return &dirFile{File: f, target: p}, nil
}

type dirFile struct {
	*os.File
	target string
}

func (f *dirFile) Close() error {
	if err := f.File.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), f.target)
}

// Abort removes the temporary file and leaves the document as it was.
func (f *dirFile) Abort() error {
	f.File.Close()
	return os.Remove(f.Name())
}
