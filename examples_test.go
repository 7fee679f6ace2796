package shardtree_test

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/davecgh/go-spew/spew"
	"github.com/gophersatwork/shardtree"
	"github.com/spf13/afero"
)

// TestBlobStoreWalkthrough shows a small content-addressed blob store built
// on top of the tree: payloads are stored under their xxHash64 digest, two
// hex characters per directory level.
func TestBlobStoreWalkthrough(t *testing.T) {
	isDebug := false // Set to true when you want to troubleshoot issues visually.
	memFs := afero.NewMemMapFs()

	tree, err := shardtree.WithScheme(
		shardtree.NewBuilder("/blobs").WithFs(memFs),
		shardtree.NewHexScheme(8, shardtree.CaseLower),
	).
		WithPrefixPartLengths(2, 2).
		Build()
	if err != nil {
		t.Fatalf("Failed to build tree: %v", err)
	}

	digestOf := func(payload []byte) []byte {
		digest := make([]byte, 8)
		binary.BigEndian.PutUint64(digest, xxhash.Sum64(payload))
		return digest
	}

	save := func(payload []byte) bool {
		file, created, err := tree.CreateFile(digestOf(payload))
		if err != nil {
			t.Fatalf("Failed to create blob: %v", err)
		}
		if !created {
			return false
		}
		if _, err := file.Write(payload); err != nil {
			t.Fatalf("Failed to write blob: %v", err)
		}
		if err := file.Close(); err != nil {
			t.Fatalf("Failed to close blob: %v", err)
		}
		return true
	}

	payloads := [][]byte{
		[]byte("generated protobuf stubs"),
		[]byte("compiled stylesheet"),
		[]byte("bundled worker script"),
	}

	// First round stores everything; the second is fully deduplicated.
	for _, payload := range payloads {
		if !save(payload) {
			t.Fatalf("Blob %q was not stored", payload)
		}
	}
	for _, payload := range payloads {
		if save(payload) {
			t.Fatalf("Blob %q was stored twice", payload)
		}
	}

	// Read one payload back through its digest.
	file, found, err := tree.OpenFile(digestOf(payloads[1]))
	if err != nil {
		t.Fatalf("Failed to open blob: %v", err)
	}
	if !found {
		t.Fatal("Stored blob not found")
	}
	content, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		t.Fatalf("Failed to read blob: %v", err)
	}
	if string(content) != string(payloads[1]) {
		t.Fatalf("Read %q, want %q", content, payloads[1])
	}

	// Enumerate the whole store.
	var stored []shardtree.Entry[[]byte]
	for entry, err := range tree.Entries() {
		if err != nil {
			t.Fatalf("Iteration error: %v", err)
		}
		stored = append(stored, entry)
	}
	if isDebug {
		spew.Dump(stored)
	}
	if len(stored) != len(payloads) {
		t.Fatalf("Found %d blobs, want %d", len(stored), len(payloads))
	}

	// The sharding of an existing store can be recovered from disk alone.
	lengths, ok, err := shardtree.InferPrefixPartLengths(memFs, "/blobs")
	if err != nil {
		t.Fatalf("Failed to infer prefix lengths: %v", err)
	}
	if !ok || len(lengths) != 2 || lengths[0] != 2 || lengths[1] != 2 {
		t.Fatalf("Inferred %v (ok=%v), want [2 2]", lengths, ok)
	}
}
