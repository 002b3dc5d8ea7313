package kb

import (
	"strings"

	"github.com/consilium-ai/consilium/pkg/config"
)

const truncationMinRemaining = 200

// Retrieve returns the KB content relevant to role for the given query,
// applying the anti-ballast rule (at most one front-matter chunk per
// retrieval), the topK/maxChars budget, and truncation-with-ellipsis for a
// chunk that would overflow the character budget.
//
// Results are cached per (role, normalized query, KB version, topK,
// maxChars); a cache hit returns instantly with Cache == CacheHit.
func (s *Store) Retrieve(role config.AgentRole, query string) RetrievalResult {
	s.mu.RLock()
	doc, ok := s.documents[role]
	versionHash := s.versionHash
	topK, maxChars := s.topK, s.maxChars
	s.mu.RUnlock()

	key := cacheKey(role, query, versionHash, topK, maxChars)
	if cached, hit := s.cache.get(key); hit {
		cached.Cache = CacheHit
		return cached
	}

	if !ok || len(doc.Chunks) == 0 {
		result := RetrievalResult{Cache: CacheMiss}
		s.cache.put(key, result)
		return result
	}

	result := selectChunks(doc.Chunks, topK, maxChars)
	result.Cache = CacheMiss
	s.cache.put(key, result)
	return result
}

// selectChunks implements the useful-first, at-most-one-ballast selection
// and budget-bounded-append-with-truncation algorithm.
func selectChunks(chunks []Chunk, topK, maxChars int) RetrievalResult {
	var useful, ballast []Chunk
	for _, c := range chunks {
		if c.IsBallast {
			ballast = append(ballast, c)
		} else {
			useful = append(useful, c)
		}
	}

	prioritized := useful
	if len(prioritized) > topK {
		prioritized = prioritized[:topK]
	}
	if len(prioritized) < topK && len(ballast) > 0 {
		prioritized = append(prioritized, ballast[0])
	}
	if len(prioritized) > topK {
		prioritized = prioritized[:topK]
	}

	var (
		selected    []string
		sources     []SourceRef
		charsUsed   int
		ballastUsed int
	)

	for _, c := range prioritized {
		remaining := maxChars - charsUsed
		if len(c.Content) <= remaining {
			selected = append(selected, c.Content)
			sources = append(sources, SourceRef{Doc: c.Doc, Section: c.Section, Ballast: c.IsBallast})
			charsUsed += len(c.Content)
			if c.IsBallast {
				ballastUsed++
			}
			continue
		}

		if remaining >= truncationMinRemaining {
			selected = append(selected, c.Content[:remaining]+"...")
			sources = append(sources, SourceRef{Doc: c.Doc, Section: c.Section + " (truncated)", Ballast: c.IsBallast})
			charsUsed += remaining
		}
		break
	}

	return RetrievalResult{
		Text:        strings.Join(selected, "\n\n---\n\n"),
		ChunksUsed:  len(selected),
		CharsUsed:   charsUsed,
		TotalChunks: len(chunks),
		BallastUsed: ballastUsed,
		Sources:     sources,
	}
}
