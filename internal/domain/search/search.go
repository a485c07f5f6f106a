package search

import (
	"context"
	"errors"
	"path"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	unicodetokenizer "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/puzpuzpuz/xsync"
	"github.com/overflow-lab/backend/pkg/logger"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

const PostDoc = "post"

// substringAnalyzer keeps every word lowercased, stop words included, so that
// wildcard queries can find any word containing a query term.
const substringAnalyzer = "substring"

// ErrUnsupportedQuery is returned when q has no term the index can look up.
var ErrUnsupportedQuery = errors.New("query is not supported by the index")

type PostData struct {
	Title     string
	Content   string
	CreatedAt time.Time
}

type Index interface {
	Index(document, id string, data any) error
	Delete(document, id string) error
	Search(document, q string, sortBy []string, offset, limit int) ([]string, error)
	Close()
}

type bleveIndex struct {
	logger   logger.Logger
	indexDir string
	indexes  *xsync.MapOf[string, bleve.Index]
	mu       sync.Mutex
}

func NewBleveIndex(ctx context.Context) *bleveIndex {
	return &bleveIndex{
		logger:   xcontext.Logger(ctx),
		indexDir: xcontext.Configs(ctx).Search.IndexDir,
		indexes:  xsync.NewMapOf[bleve.Index](),
	}
}

func (i *bleveIndex) Index(document, id string, data any) error {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return err
	}

	record, err := index.Document(id)
	if err != nil {
		return err
	}

	// Delete if the record existed.
	if record != nil {
		if err := index.Delete(id); err != nil {
			return err
		}
	}

	return index.Index(id, data)
}

func (i *bleveIndex) Delete(document, id string) error {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return err
	}

	return index.Delete(id)
}

// Search returns the ids of records having, for every term of q, a word of
// the title or the content containing the term. Results are candidates, the
// caller checks the exact match. Queries with non-ASCII characters or without
// letters and digits return ErrUnsupportedQuery.
func (i *bleveIndex) Search(document, q string, sortBy []string, offset, limit int) ([]string, error) {
	terms, ok := queryTerms(q)
	if !ok {
		return nil, ErrUnsupportedQuery
	}

	index, err := i.getIndexByDocument(document)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(buildQuery(terms), limit, offset, false)
	if len(sortBy) > 0 {
		req.SortBy(sortBy)
	}

	searchResults, err := index.Search(req)
	if err != nil {
		return nil, err
	}

	ids := []string{}
	for _, match := range searchResults.Hits {
		ids = append(ids, match.ID)
	}

	return ids, nil
}

func (i *bleveIndex) Close() {
	i.logger.Infof("Closing all indexers...")

	i.indexes.Range(func(document string, index bleve.Index) bool {
		if err := index.Close(); err != nil {
			i.logger.Errorf("Cannot close indexer %s: %v", document, err)
		}

		return true
	})

	i.logger.Infof("Closing all indexers...done")
}

func (i *bleveIndex) getIndexByDocument(document string) (bleve.Index, error) {
	if index, ok := i.indexes.Load(document); ok {
		return index, nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if index, ok := i.indexes.Load(document); ok {
		return index, nil
	}

	i.logger.Infof("A new document index is added: %s", document)

	indexPath := path.Join(i.indexDir, document)
	indexMapping, err := newIndexMapping()
	if err != nil {
		return nil, err
	}

	index, err := bleve.New(indexPath, indexMapping)
	if err != nil {
		if !errors.Is(err, bleve.ErrorIndexPathExists) {
			return nil, err
		}

		index, err = bleve.Open(indexPath)
		if err != nil {
			return nil, err
		}
	}

	i.indexes.Store(document, index)
	return index, nil
}

func newIndexMapping() (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()
	err := indexMapping.AddCustomAnalyzer(substringAnalyzer, map[string]any{
		"type":          custom.Name,
		"tokenizer":     unicodetokenizer.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}

	indexMapping.DefaultAnalyzer = substringAnalyzer
	return indexMapping, nil
}

// queryTerms splits q into lowercased runs of letters and digits.
func queryTerms(q string) ([]string, bool) {
	for _, r := range q {
		if r > unicode.MaxASCII {
			return nil, false
		}
	}

	terms := strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	return terms, len(terms) > 0
}

func buildQuery(terms []string) query.Query {
	conjuncts := []query.Query{}
	for _, term := range terms {
		title := bleve.NewWildcardQuery("*" + term + "*")
		title.SetField("Title")
		content := bleve.NewWildcardQuery("*" + term + "*")
		content.SetField("Content")
		conjuncts = append(conjuncts, bleve.NewDisjunctionQuery(title, content))
	}

	return bleve.NewConjunctionQuery(conjuncts...)
}
