package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Option keys understood by the indexed provider.
const (
	OptionSearchableFields = "searchableFields"
)

// indexRecord is one entry of an index file.
type indexRecord struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

type indexEntry struct {
	record indexRecord
	words  []string
}

// IndexedProvider searches a prebuilt index file of records. The file is a
// JSON or YAML array read from ResourceURL on Initialize.
type IndexedProvider struct {
	path   string
	fields map[string]bool // nil means every field
	log    *slog.Logger

	mu      sync.RWMutex
	entries []indexEntry
	ready   bool
}

// NewIndexedProvider is the ProviderFactory for IndexedProviderType.
func NewIndexedProvider(opts ProviderOptions) (types.ItemSearchProvider, error) {
	if opts.ResourceURL == "" {
		return nil, fmt.Errorf("indexed provider: resource url: %w", types.ErrInvalidKey)
	}
	fields, err := stringList(opts.Options[OptionSearchableFields])
	if err != nil {
		return nil, fmt.Errorf("indexed provider: %s: %w", OptionSearchableFields, err)
	}
	p := &IndexedProvider{
		path: strings.TrimPrefix(opts.ResourceURL, "file://"),
		log:  opts.Logger,
	}
	if p.log == nil {
		p.log = slog.Default()
	}
	if len(fields) > 0 {
		p.fields = make(map[string]bool, len(fields))
		for _, f := range fields {
			p.fields[f] = true
		}
	}
	return p, nil
}

// stringList accepts nil, []string or []any of strings.
func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("want string, got %T", e)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("want list of strings, got %T", v)
	}
}

// Initialize reads and indexes the resource file. Calling it again reloads
// the file.
func (p *IndexedProvider) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("read index: %w", err)
	}

	var records []indexRecord
	switch strings.ToLower(filepath.Ext(p.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return fmt.Errorf("parse index %s: %w", p.path, err)
	}

	entries := make([]indexEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, indexEntry{record: r, words: p.wordsOf(r)})
	}

	p.mu.Lock()
	p.entries = entries
	p.ready = true
	p.mu.Unlock()

	p.log.Debug("search index loaded",
		slog.String("path", p.path),
		slog.Int("records", len(entries)))
	return nil
}

func (p *IndexedProvider) wordsOf(r indexRecord) []string {
	var words []string
	add := func(field, text string) {
		if p.fields != nil && !p.fields[field] {
			return
		}
		words = append(words, tokenize(text)...)
	}
	add("name", r.Name)
	add("description", r.Description)
	for k, v := range r.Fields {
		add(k, v)
	}
	return words
}

// tokenize case-folds s and splits it into words.
func tokenize(s string) []string {
	folded := cases.Fold().String(s)
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// queryTokens case-folds the query and splits on whitespace so glob
// characters survive.
func queryTokens(q string) []string {
	return strings.Fields(cases.Fold().String(q))
}

func isGlob(token string) bool {
	return strings.ContainsAny(token, "*?[")
}

// Search returns the records in which every query token matches a word,
// either as a prefix or, for tokens containing glob characters, as a
// doublestar pattern. An empty query matches nothing.
func (p *IndexedProvider) Search(ctx context.Context, query string) ([]types.ItemSearchResult, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.ready {
		return nil, types.ErrProviderNotInitialized
	}

	tokens := queryTokens(query)
	results := make([]types.ItemSearchResult, 0)
	if len(tokens) == 0 {
		return results, nil
	}
	for _, tok := range tokens {
		if isGlob(tok) && !doublestar.ValidatePattern(tok) {
			return nil, fmt.Errorf("invalid pattern %q: %w", tok, doublestar.ErrBadPattern)
		}
	}

	for _, e := range p.entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if matchesAll(e.words, tokens) {
			results = append(results, toResult(e.record))
		}
	}
	return results, nil
}

func matchesAll(words, tokens []string) bool {
	for _, tok := range tokens {
		if !matchesAny(words, tok) {
			return false
		}
	}
	return true
}

func matchesAny(words []string, tok string) bool {
	glob := isGlob(tok)
	for _, w := range words {
		if glob {
			if ok, _ := doublestar.Match(tok, w); ok {
				return true
			}
			continue
		}
		if strings.HasPrefix(w, tok) {
			return true
		}
	}
	return false
}

func toResult(r indexRecord) types.ItemSearchResult {
	res := types.ItemSearchResult{ID: r.ID, Name: r.Name}
	if len(r.Fields) > 0 {
		res.Fields = make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			res.Fields[k] = v
		}
	}
	return res
}
