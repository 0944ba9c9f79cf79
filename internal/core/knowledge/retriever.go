// Package knowledge grounds generative calls in curated styling guidance.
// The knowledge base is embedded once at startup and read-only afterwards;
// retrieval is plain cosine top-k, deterministic for a fixed base and query.
package knowledge

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/manntalati/smart-wardrobe/internal/core/common"
	"github.com/manntalati/smart-wardrobe/internal/llm"
)

// minChunkLen drops headings and stray lines when chunking the guide.
const minChunkLen = 50

// minScore cuts off passages with no meaningful relevance to the query.
const minScore = 0.1

type passage struct {
	text string
	vec  []float32
}

type Retriever struct {
	embedder llm.EmbedderClient
	passages []passage
}

// Load reads the knowledge file, splits it into paragraph chunks and embeds
// each one. A missing file or a failed embedding never fails the caller: the
// retriever simply starts empty and Retrieve returns nothing, which the
// recommendation engine treats as "proceed ungrounded".
func Load(ctx context.Context, path string, embedder llm.EmbedderClient) *Retriever {
	r := &Retriever{embedder: embedder}

	if embedder == nil {
		return r
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: fashion knowledge base not loaded: %v", err)
		return r
	}

	for _, chunk := range strings.Split(string(data), "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if len(chunk) < minChunkLen {
			continue
		}
		vec, err := embedder.EmbedText(ctx, chunk)
		if err != nil {
			log.Printf("Warning: failed to embed knowledge chunk: %v", err)
			r.passages = nil
			return r
		}
		r.passages = append(r.passages, passage{text: chunk, vec: common.Normalized(vec)})
	}

	log.Printf("Loaded %d fashion knowledge chunks", len(r.passages))
	return r
}

func (r *Retriever) Len() int {
	return len(r.passages)
}

// Retrieve returns the top-k passages for the query, best first. Empty when
// the base is unloaded, the embedder is absent, or nothing scores above the
// cutoff.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) []string {
	if len(r.passages) == 0 || r.embedder == nil || k <= 0 {
		return nil
	}

	raw, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		log.Printf("Warning: knowledge query embedding failed: %v", err)
		return nil
	}
	queryVec := common.Normalized(raw)

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, 0, len(r.passages))
	for i, p := range r.passages {
		s := common.Dot(queryVec, p.vec)
		if s > minScore {
			ranked = append(ranked, scored{idx: i, score: s})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].idx < ranked[j].idx
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = r.passages[s.idx].text
	}
	return out
}

// NewFromChunks builds a retriever over pre-embedded chunks. Tests and
// callers that manage their own corpus use this instead of Load.
func NewFromChunks(embedder llm.EmbedderClient, chunks []string, vecs [][]float32) (*Retriever, error) {
	if len(chunks) != len(vecs) {
		return nil, fmt.Errorf("got %d chunks and %d vectors", len(chunks), len(vecs))
	}
	r := &Retriever{embedder: embedder}
	for i, c := range chunks {
		r.passages = append(r.passages, passage{text: c, vec: common.Normalized(vecs[i])})
	}
	return r, nil
}
