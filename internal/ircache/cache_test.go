package ircache

import (
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/standardbeagle/irengine/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_StableAndDistinct(t *testing.T) {
	k1 := DeriveKey([]byte("package main"), "opts-a")
	k2 := DeriveKey([]byte("package main"), "opts-a")
	k3 := DeriveKey([]byte("package main"), "opts-b")

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Len(t, string(k1), keyHexLen)
}

func TestKey_ShardPath(t *testing.T) {
	k := Key("abcdef0123456789abcdef0123456789")
	assert.Equal(t, "ab/abcdef0123456789abcdef0123456789.bin", k.ShardPath())
}

func TestMemoryCache_EvictsOldestOverCapacity(t *testing.T) {
	mc := NewMemoryCache(2)
	mc.Put("a", &ir.IRDocument{FilePath: "a"})
	mc.Put("b", &ir.IRDocument{FilePath: "b"})
	mc.Put("c", &ir.IRDocument{FilePath: "c"})

	_, aOK := mc.Get("a")
	_, cOK := mc.Get("c")
	assert.False(t, aOK, "oldest entry should have been evicted")
	assert.True(t, cOK)
}

func TestDiskCache_PutGetRoundtrip(t *testing.T) {
	dir := t.TempDir()
	dc, err := NewDiskCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	doc := &ir.IRDocument{FilePath: "x.go", Language: "go", SchemaVer: ir.CurrentSchemaVersion}
	key := DeriveKey([]byte("content"), "v1")

	require.NoError(t, dc.Put(key, doc))

	got, ok := dc.Get(key)
	require.True(t, ok)
	assert.Equal(t, doc.FilePath, got.FilePath)
	assert.Equal(t, doc.Language, got.Language)
}

func TestDiskCache_MissingIsMiss(t *testing.T) {
	dc, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)

	_, ok := dc.Get(Key("0000000000000000000000000000000"))
	assert.False(t, ok)
}

func TestCache_GetOrBuild_SingleflightCollapsesConcurrentMisses(t *testing.T) {
	mem := NewMemoryCache(10)
	c := New(mem, nil)
	key := Key("deadbeefdeadbeefdeadbeefdeadbeef")

	var calls int64
	build := func() (*ir.IRDocument, error) {
		atomic.AddInt64(&calls, 1)
		return &ir.IRDocument{FilePath: "f.go"}, nil
	}

	done := make(chan struct{})
	const n = 8
	for i := 0; i < n; i++ {
		go func() {
			_, _ = c.GetOrBuild(key, build)
			done <- struct{}{}
		}()
	}
	for i := 0; i < n; i++ {
		<-done
	}

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "build should run once despite concurrent callers")
}

func TestCache_GetOrBuild_CachesSecondCallWithoutRebuild(t *testing.T) {
	mem := NewMemoryCache(10)
	c := New(mem, nil)
	key := Key("cafebabecafebabecafebabecafebabe")

	var calls int64
	build := func() (*ir.IRDocument, error) {
		atomic.AddInt64(&calls, 1)
		return &ir.IRDocument{FilePath: "f.go"}, nil
	}

	_, err := c.GetOrBuild(key, build)
	require.NoError(t, err)
	_, err = c.GetOrBuild(key, build)
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}
