package shardtree

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// Minimal valid JPG and PNG payloads, hex encoded.
const (
	minimalJPGHex = "ffd8ffe000104a46494600010100000100010000ffdb004300080606070605080707070909080a0c140d0c0b0b0c1912130f141d1a1f1e1d1a1c1c20242e2720222c231c1c2837292c30313434341f27393d38323c2e333432ffdb0043010909090c0b0c180d0d1832211c21323232323232323232323232323232323232323232323232323232323232323232323232323232ffc00011080001000103011100021101031101ffc4001f00000105010101010101000000000000000102030405060708090a0bffc400b51000020103030204030505040400017d010203000411051221314106135161712232819114a1b1c1d1f0e123f1ffda000c03010002110311003f00ff00ffd9"
	minimalPNGHex = "89504e470d0a1a0a0000000d4948445200000001000000010802000000907724d90000000a49444154789c6360000002000185d114090000000049454e44ae426082"
)

// digestStore saves payloads under their md5 digest, the way an object store
// would sit on top of the tree.
type digestStore struct {
	tree *Tree[[]byte]
}

func newDigestStore(t *testing.T, fsys afero.Fs, base string, prefixPartLengths ...int) *digestStore {
	t.Helper()

	tree, err := WithScheme(NewBuilder(base).WithFs(fsys), NewHexScheme(md5.Size, CaseLower)).
		WithPrefixPartLengths(prefixPartLengths...).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return &digestStore{tree: tree}
}

// save stores a payload under its digest and reports whether it was added.
func (s *digestStore) save(t *testing.T, payload []byte) bool {
	t.Helper()

	digest := md5.Sum(payload)
	file, created, err := s.tree.CreateFile(digest[:])
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}
	if !created {
		return false
	}
	if _, err := file.Write(payload); err != nil {
		t.Fatalf("writing payload failed: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("closing payload failed: %v", err)
	}
	return true
}

func mustHexDecode(t *testing.T, text string) []byte {
	t.Helper()

	out, err := hex.DecodeString(text)
	if err != nil {
		t.Fatalf("bad hex fixture: %v", err)
	}
	return out
}

func testDigestStore(t *testing.T, prefixPartLengths ...int) {
	memFs := afero.NewMemMapFs()
	base := "/store"
	store := newDigestStore(t, memFs, base, prefixPartLengths...)

	payloads := [][]byte{
		mustHexDecode(t, minimalJPGHex),
		mustHexDecode(t, minimalPNGHex),
		{},
		[]byte("foo bar baz"),
	}

	for i, payload := range payloads {
		if !store.save(t, payload) {
			t.Fatalf("payload %d was not added", i)
		}
	}
	for i, payload := range payloads {
		if store.save(t, payload) {
			t.Fatalf("payload %d was added twice", i)
		}
	}

	inferred, ok, err := InferPrefixPartLengths(memFs, base)
	if err != nil {
		t.Fatalf("InferPrefixPartLengths failed: %v", err)
	}
	if !ok {
		t.Fatal("inference reported no files")
	}
	if !slices.Equal(inferred, prefixPartLengths) {
		t.Fatalf("inferred %v, want %v", inferred, prefixPartLengths)
	}

	entries := collectEntries(t, store.tree)
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}

	// Digests in ascending hex order of the payloads above.
	wantDigests := []string{
		"79c09c11a8f92599f3c6d389564dd24d", // jpg
		"ab07acbb1e496801937adfa772424bf7", // text
		"d41d8cd98f00b204e9800998ecf8427e", // empty
		"ddf93a3305d41f70e19bb8a04ac673a5", // png
	}
	for i, want := range wantDigests {
		if !bytes.Equal(entries[i].Name, mustHexDecode(t, want)) {
			t.Fatalf("entry %d digest = %x, want %s", i, entries[i].Name, want)
		}

		// Each leaf sits under directories cut from the front of its digest.
		wantPath := base
		remaining := want
		for _, length := range prefixPartLengths {
			wantPath += "/" + remaining[:length]
			remaining = remaining[length:]
		}
		wantPath += "/" + want
		if entries[i].Path != wantPath {
			t.Fatalf("entry %d path = %q, want %q", i, entries[i].Path, wantPath)
		}
	}
}

func TestDigestStore(t *testing.T) {
	prefixSets := [][]int{{}, {1}, {2, 2}, {2, 2, 2}, {16, 3}, {19, 13}}
	for _, prefixPartLengths := range prefixSets {
		t.Run(fmt.Sprintf("prefixes %v", prefixPartLengths), func(t *testing.T) {
			testDigestStore(t, prefixPartLengths...)
		})
	}
}

func TestDigestStoreReadBack(t *testing.T) {
	memFs := afero.NewMemMapFs()
	store := newDigestStore(t, memFs, "/store", 2, 2)

	payload := []byte("foo bar baz")
	if !store.save(t, payload) {
		t.Fatal("payload was not added")
	}

	digest := md5.Sum(payload)
	file, found, err := store.tree.OpenFile(digest[:])
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if !found {
		t.Fatal("saved payload not found")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		t.Fatalf("reading payload failed: %v", err)
	}
	if !bytes.Equal(content, payload) {
		t.Fatalf("read %q, want %q", content, payload)
	}

	path, err := store.tree.Path(digest[:])
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if !strings.Contains(path, "/ab/07/") {
		t.Fatalf("path %q does not shard by the digest prefix", path)
	}
}
