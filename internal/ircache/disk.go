package ircache

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/standardbeagle/irengine/internal/ir"
)

// diskMagic is the 4-byte header spec.md §6 mandates for every disk-cache
// file: a quick sanity check that a .bin file under the cache root is
// actually one of ours before JSON-decoding the rest of it.
var diskMagic = [4]byte{'I', 'R', 'C', '1'}

// DiskCache is the persistent tier: one file per key at
// "<root>/<key[:2]>/<key>.bin", written via write-to-temp-then-rename so a
// reader never observes a partially written file.
type DiskCache struct {
	root string
}

// NewDiskCache opens (creating if necessary) a disk cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ircache: creating cache root %s: %w", dir, err)
	}
	return &DiskCache{root: dir}, nil
}

func (d *DiskCache) path(key Key) string {
	return filepath.Join(d.root, filepath.FromSlash(key.ShardPath()))
}

// Get reads and decodes the document stored under key, if present. A
// missing file, a bad magic header, or a schema_version mismatch with
// ir.CurrentSchemaVersion are all treated as a cache miss rather than an
// error: the caller just rebuilds.
func (d *DiskCache) Get(key Key) (*ir.IRDocument, bool) {
	f, err := os.Open(d.path(key))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var header [4]byte
	if _, err := io.ReadFull(f, header[:]); err != nil || header != diskMagic {
		return nil, false
	}

	var schemaVer uint32
	if err := binary.Read(f, binary.LittleEndian, &schemaVer); err != nil {
		return nil, false
	}
	if int(schemaVer) != ir.CurrentSchemaVersion {
		return nil, false
	}

	var doc ir.IRDocument
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, false
	}
	return &doc, true
}

// Put writes doc under key using a temp-file-then-rename sequence so a
// concurrent reader (or a crash mid-write) never sees a truncated file.
func (d *DiskCache) Put(key Key, doc *ir.IRDocument) error {
	if err := validateForCache(doc); err != nil {
		return err
	}

	dest := d.path(key)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("ircache: creating shard dir for %s: %w", key, err)
	}

	var buf bytes.Buffer
	buf.Write(diskMagic[:])
	if err := binary.Write(&buf, binary.LittleEndian, uint32(ir.CurrentSchemaVersion)); err != nil {
		return fmt.Errorf("ircache: writing schema version for %s: %w", key, err)
	}
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("ircache: encoding document for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return fmt.Errorf("ircache: creating temp file for %s: %w", key, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("ircache: writing temp file for %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ircache: closing temp file for %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ircache: renaming temp file into place for %s: %w", key, err)
	}
	return nil
}

// Delete removes the cached entry for key, if any. Missing entries are not
// an error.
func (d *DiskCache) Delete(key Key) error {
	err := os.Remove(d.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ircache: deleting %s: %w", key, err)
	}
	return nil
}
