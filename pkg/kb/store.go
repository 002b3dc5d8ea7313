package kb

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/consilium-ai/consilium/pkg/config"
)

// Store holds the chunked, in-memory Knowledge Base for every agent role,
// plus the retrieval cache layered in front of it (pkg/kb/cache.go).
// Documents are loaded once at startup, chunked, and hashed into a version
// string used to invalidate any cached retrieval once the underlying KB
// content changes.
type Store struct {
	mu          sync.RWMutex
	documents   map[config.AgentRole]Document
	versionHash string
	cache       *retrievalCache

	topK     int
	maxChars int
}

// NewStore constructs an empty Store; call Load to populate it.
func NewStore(topK, maxChars, cacheSize int) *Store {
	return &Store{
		documents: make(map[config.AgentRole]Document),
		cache:     newRetrievalCache(cacheSize),
		topK:      topK,
		maxChars:  maxChars,
	}
}

// Load reads every KB source registered in registry, chunks its content, and
// computes the store-wide version hash used for cache invalidation. Missing
// files are tolerated (logged and treated as an empty document) since a KB
// file is reference material, not a hard startup dependency.
func (s *Store) Load(registry *config.KBSourceRegistry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	documents := make(map[config.AgentRole]Document)
	var hashInputs []string

	for role, src := range registry.GetAll() {
		content, err := os.ReadFile(src.Path)
		if err != nil {
			if os.IsNotExist(err) {
				slog.Warn("KB source not found", "role", role, "path", src.Path)
				documents[role] = Document{Role: role, DocName: filepath.Base(src.Path)}
				continue
			}
			return fmt.Errorf("reading KB source for %s: %w", role, err)
		}

		docName := filepath.Base(src.Path)
		chunks := chunkDocument(string(content), docName)
		documents[role] = Document{Role: role, DocName: docName, Chunks: chunks}
		hashInputs = append(hashInputs, src.Path+":"+string(content))

		slog.Info("KB loaded", "role", role, "chunks", len(chunks), "chars", totalChars(chunks))
	}

	sort.Strings(hashInputs)
	s.documents = documents
	s.versionHash = hashDocuments(hashInputs)
	s.cache.reset()

	slog.Info("KB version computed", "version_hash", s.versionHash)
	return nil
}

// VersionHash returns the current 8-hex-char KB content fingerprint.
func (s *Store) VersionHash() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.versionHash
}

func hashDocuments(sortedInputs []string) string {
	h := sha256.New()
	for i, in := range sortedInputs {
		if i > 0 {
			h.Write([]byte("\n"))
		}
		h.Write([]byte(in))
	}
	sum := hex.EncodeToString(h.Sum(nil))
	return sum[:8]
}

func totalChars(chunks []Chunk) int {
	total := 0
	for _, c := range chunks {
		total += len(c.Content)
	}
	return total
}
