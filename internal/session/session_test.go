package session

import (
	"strings"
	"testing"
	"time"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestStore_CreateGetDelete(t *testing.T) {
	s, err := NewStore(time.Hour, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := s.Create("Demo", []byte("# Hi\n"))
	if doc.ID == "" {
		t.Fatal("expected a document id")
	}
	if doc.Version != 1 {
		t.Errorf("expected version 1 after create, got %d", doc.Version)
	}

	if got := s.Get(doc.ID); got != doc {
		t.Errorf("Get returned %v, expected the created document", got)
	}
	if got := s.Get("missing"); got != nil {
		t.Errorf("expected nil for unknown id, got %v", got)
	}

	if !s.Delete(doc.ID) {
		t.Error("expected delete to report true")
	}
	if s.Delete(doc.ID) {
		t.Error("expected second delete to report false")
	}
}

func TestDocument_SetContentBumpsVersion(t *testing.T) {
	s, _ := NewStore(time.Hour, 16)
	doc := s.Create("", []byte("one"))
	firstHash := doc.Snapshot().ContentHash

	doc.SetContent([]byte("two"))
	snap := doc.Snapshot()
	if snap.Version != 2 {
		t.Errorf("expected version 2, got %d", snap.Version)
	}
	if snap.ContentHash == firstHash {
		t.Error("expected content hash to change")
	}
}

func TestDocument_SetTitleConcurrentWithSnapshot(t *testing.T) {
	s, _ := NewStore(time.Hour, 16)
	doc := s.Create("first", []byte("text"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			doc.SetTitle("second")
		}
	}()
	for i := 0; i < 500; i++ {
		doc.Snapshot()
	}
	<-done

	if got := doc.Snapshot().Title; got != "second" {
		t.Errorf("expected title %q, got %q", "second", got)
	}
}

func TestStore_Cleanup(t *testing.T) {
	s, _ := NewStore(10*time.Millisecond, 16)
	doc := s.Create("", []byte("text"))
	fresh := s.Create("", []byte("other"))

	time.Sleep(25 * time.Millisecond)
	fresh.Touch()
	s.Cleanup()

	if s.Get(doc.ID) != nil {
		t.Error("expected stale document evicted")
	}
	if s.Get(fresh.ID) == nil {
		t.Error("expected touched document retained")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 document after cleanup, got %d", s.Len())
	}
}

func TestStore_AnalyzeCachesByContentHash(t *testing.T) {
	s, _ := NewStore(time.Hour, 16)
	doc := s.Create("", []byte("# A\n\n## B\n\ntext\n"))

	a1 := s.Analyze(doc)
	a2 := s.Analyze(doc)
	if a1 != a2 {
		t.Error("expected the cached analysis on unchanged content")
	}

	doc.SetContent([]byte("# A\n\nchanged\n"))
	a3 := s.Analyze(doc)
	if a3 == a1 {
		t.Error("expected a fresh analysis after a content change")
	}
}

func TestGenerateULID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateULID()
		if len(id) != 26 {
			t.Fatalf("expected 26-character id, got %q (%d)", id, len(id))
		}
		if !strings.ContainsAny(id[:1], crockford) {
			t.Fatalf("unexpected leading character in %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
