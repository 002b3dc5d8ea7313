// Package kb implements the Knowledge Base Store, chunker, and
// anti-ballast retrieval cache.
package kb

import "github.com/consilium-ai/consilium/pkg/config"

// Chunk is a single section-level (or sub-section) piece of a KB document.
// Chunks are derived once at load time and never mutated afterward.
type Chunk struct {
	Content   string
	Doc       string
	Section   string
	IsBallast bool
}

// Document holds all chunks loaded for a single agent role's KB file.
type Document struct {
	Role     config.AgentRole
	DocName  string
	Chunks   []Chunk
}

// SourceRef describes one chunk contributing to a RetrievalResult.
type SourceRef struct {
	Doc     string `json:"doc"`
	Section string `json:"section"`
	Ballast bool   `json:"ballast"`
}

// CacheStatus mirrors config.CacheStatus to avoid a retrieval-result caller
// needing to import config just for two constants.
type CacheStatus = config.CacheStatus

const (
	CacheHit  = config.CacheHit
	CacheMiss = config.CacheMiss
)

// RetrievalResult is the output of Store.Retrieve.
type RetrievalResult struct {
	Text        string
	ChunksUsed  int
	CharsUsed   int
	TotalChunks int
	BallastUsed int
	Sources     []SourceRef
	Cache       CacheStatus
}
