// Package index maintains an optional persistent bleve index over file
// lines. Lookup through the index is tokenized full-text matching, a
// different predicate than the core substring scan; the two are separate
// commands on purpose.
package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"
)

// Hit is one indexed line returned by Lookup.
type Hit struct {
	Path  string
	Num   int
	Line  string
	Score float64
}

type Index struct {
	idx bleve.Index
}

// Open creates or opens a bleve index at dir.
func Open(dir string) (*Index, error) {
	// best effort; a real failure surfaces from Open/New below
	_ = os.MkdirAll(filepath.Dir(dir), 0o755)

	idx, err := bleve.Open(dir)
	if err != nil {
		idx, err = bleve.New(dir, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("creating index: %w", err)
		}
	}

	return &Index{idx: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	line := bleve.NewTextFieldMapping()
	line.Analyzer = standard.Name
	line.Store = true
	line.IncludeTermVectors = true

	// keyword analyzer so deleteFile can term-match the exact path
	path := bleve.NewTextFieldMapping()
	path.Analyzer = keyword.Name
	path.Store = true

	num := bleve.NewNumericFieldMapping()
	num.Store = true

	dm.AddFieldMappingsAt("line", line)
	dm.AddFieldMappingsAt("path", path)
	dm.AddFieldMappingsAt("num", num)

	im.DefaultMapping = dm
	return im
}

// IndexFile replaces the indexed lines for path with lines. Line numbers
// are 1-based. Stale documents from a previous, longer version of the
// file are removed first.
func (ix *Index) IndexFile(path string, lines []string) error {
	if err := ix.deleteFile(path); err != nil {
		return err
	}

	batch := ix.idx.NewBatch()
	for i, line := range lines {
		num := i + 1
		err := batch.Index(docID(path, num), map[string]any{
			"path": path,
			"num":  num,
			"line": line,
		})
		if err != nil {
			return err
		}
	}
	return ix.idx.Batch(batch)
}

func (ix *Index) deleteFile(path string) error {
	q := bleve.NewTermQuery(path)
	q.SetField("path")
	req := bleve.NewSearchRequestOptions(q, 10000, 0, false)
	res, err := ix.idx.Search(req)
	if err != nil {
		return err
	}

	batch := ix.idx.NewBatch()
	for _, h := range res.Hits {
		batch.Delete(h.ID)
	}
	return ix.idx.Batch(batch)
}

// Lookup runs a match/prefix disjunction over indexed lines and returns
// up to limit hits, best first.
func (ix *Index) Lookup(term string, limit int) ([]Hit, error) {
	if strings.TrimSpace(term) == "" {
		return []Hit{}, nil
	}

	var qs []bleveQuery.Query
	qm := bleve.NewMatchQuery(term)
	qm.SetField("line")
	qm.SetBoost(2.0)
	qs = append(qs, qm)

	qp := bleve.NewPrefixQuery(strings.ToLower(term))
	qp.SetField("line")
	qp.SetBoost(1.0)
	qs = append(qs, qp)

	q := bleve.NewDisjunctionQuery(qs...)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"path", "num", "line"}

	res, err := ix.idx.Search(req)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{Score: h.Score}
		if p, ok := h.Fields["path"].(string); ok {
			hit.Path = p
		}
		if n, ok := h.Fields["num"].(float64); ok {
			hit.Num = int(n)
		}
		if l, ok := h.Fields["line"].(string); ok {
			hit.Line = l
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// DocCount reports how many lines are indexed.
func (ix *Index) DocCount() (uint64, error) {
	return ix.idx.DocCount()
}

func (ix *Index) Close() error {
	return ix.idx.Close()
}

func docID(path string, num int) string {
	return fmt.Sprintf("%s:%d", path, num)
}
