package session

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dvalk/slidenav/internal/engine"
)

// Document is one registered preview document.
type Document struct {
	mu sync.Mutex

	ID          string `json:"doc_id"`
	Title       string `json:"title,omitempty"`
	ContentHash string `json:"content_hash"`
	Version     int    `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	content []byte
}

// SetContent replaces the document text and bumps the version.
func (d *Document) SetContent(text []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content = text
	d.ContentHash = ContentHashHex(text)
	d.Version++
	d.UpdatedAt = time.Now()
}

// SetTitle replaces the document title.
func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Title = title
	d.UpdatedAt = time.Now()
}

// Content returns the current document text and its hash.
func (d *Document) Content() ([]byte, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content, d.ContentHash
}

// Touch refreshes the document's eviction clock without a content change.
func (d *Document) Touch() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.UpdatedAt = time.Now()
}

// Snapshot is a read-only, JSON-safe copy of document state.
type Snapshot struct {
	ID          string    `json:"doc_id"`
	Title       string    `json:"title,omitempty"`
	ContentHash string    `json:"content_hash"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the document state.
func (d *Document) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{
		ID:          d.ID,
		Title:       d.Title,
		ContentHash: d.ContentHash,
		Version:     d.Version,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// Store is a thread-safe in-memory document registry with TTL eviction and
// a content-hash keyed cache of resolved structure. The cache key is the
// hash, not the document id, so results never leak between documents or
// versions: identical hash means identical content means identical analysis.
type Store struct {
	mu   sync.Mutex
	docs map[string]*Document
	ttl  time.Duration

	analyses *lru.Cache[string, *engine.Analysis]
}

// NewStore creates a registry. cacheSize bounds the analysis cache.
func NewStore(ttl time.Duration, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = 128
	}
	cache, err := lru.New[string, *engine.Analysis](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create analysis cache: %w", err)
	}
	return &Store{
		docs:     make(map[string]*Document),
		ttl:      ttl,
		analyses: cache,
	}, nil
}

// Create registers a new document and returns it.
func (s *Store) Create(title string, text []byte) *Document {
	now := time.Now()
	doc := &Document{
		ID:        generateULID(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	doc.SetContent(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return doc
}

// Get returns the document with the given id, or nil.
func (s *Store) Get(id string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[id]
}

// Delete removes a document. Returns false when it was not present.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	return true
}

// Len returns the number of registered documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// Cleanup removes documents idle longer than the TTL.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, doc := range s.docs {
		if now.Sub(doc.Snapshot().UpdatedAt) > s.ttl {
			delete(s.docs, id)
		}
	}
}

// Analyze returns the resolved structure for a document's current content,
// consulting the cache first.
func (s *Store) Analyze(doc *Document) *engine.Analysis {
	text, hash := doc.Content()
	if a, ok := s.analyses.Get(hash); ok {
		return a
	}
	a := engine.Analyze(text)
	s.analyses.Add(hash, a)
	return a
}

// ContentHashHex computes SHA-256 of content and returns a hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
