/*
heritageapi implements mock lookups of historical records and restoration
images for damaged heritage structures, and exposes them as tools.
*/
package heritageapi

import (
	"bytes"
	_ "embed"
	"errors"
	"io"
	"strings"

	// Packages
	heritage "github.com/mutablelogic/go-heritage"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	cases "golang.org/x/text/cases"
	norm "golang.org/x/text/unicode/norm"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Entry is a single historical record in the catalog
type Entry struct {
	Key              string `yaml:"key" json:"key"`
	Location         string `yaml:"location,omitempty" json:"location,omitempty"`
	TextRecord       string `yaml:"text_record" json:"text_record"`
	OriginalImageURL string `yaml:"original_image_url,omitempty" json:"original_image_url,omitempty"`
}

// Catalog is an ordered, read-only set of historical records
type Catalog struct {
	entries []Entry
	keys    []string
}

type catalogDocument struct {
	Records []Entry `yaml:"records"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// NotFoundText is returned as the text record when no entry matches
	NotFoundText = "관련 기록을 찾을 수 없습니다."
)

//go:embed catalog.yaml
var defaultCatalog []byte

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// DefaultCatalog returns the catalog embedded in the binary
func DefaultCatalog() (*Catalog, error) {
	return NewCatalog(bytes.NewReader(defaultCatalog))
}

// NewCatalog reads a YAML catalog document with a top-level "records" list
func NewCatalog(r io.Reader) (*Catalog, error) {
	var doc catalogDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, heritage.ErrBadParameter.Withf("invalid catalog: %v", err)
	}

	catalog := &Catalog{
		entries: make([]Entry, 0, len(doc.Records)),
		keys:    make([]string, 0, len(doc.Records)),
	}
	for i, entry := range doc.Records {
		entry.Key = strings.TrimSpace(entry.Key)
		entry.TextRecord = strings.TrimSpace(entry.TextRecord)
		if entry.Key == "" {
			return nil, heritage.ErrBadParameter.Withf("catalog record %d: missing key", i)
		}
		if entry.TextRecord == "" {
			return nil, heritage.ErrBadParameter.Withf("catalog record %q: missing text_record", entry.Key)
		}
		key := normalise(entry.Key)
		for _, existing := range catalog.keys {
			if existing == key {
				return nil, heritage.ErrConflict.Withf("catalog record %q: duplicate key", entry.Key)
			}
		}
		catalog.entries = append(catalog.entries, entry)
		catalog.keys = append(catalog.keys, key)
	}

	return catalog, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Entries returns the catalog records in declaration order
func (c *Catalog) Entries() []Entry {
	result := make([]Entry, len(c.entries))
	copy(result, c.entries)
	return result
}

// Lookup returns the record of the first entry whose key is contained in the
// structure name. The location is accepted but not used for matching. When
// nothing matches, the record has an error status and NotFoundText.
func (c *Catalog) Lookup(location, structureName string) schema.HeritageRecord {
	name := normalise(structureName)
	if name != "" {
		for i, key := range c.keys {
			if strings.Contains(name, key) {
				return schema.HeritageRecord{
					Status:           schema.StatusSuccess,
					TextRecord:       c.entries[i].TextRecord,
					OriginalImageURL: c.entries[i].OriginalImageURL,
				}
			}
		}
	}
	return schema.HeritageRecord{
		Status:     schema.StatusError,
		TextRecord: NotFoundText,
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// normalise composes Hangul jamo and folds case so that equivalent spellings
// of a structure name compare equal
func normalise(v string) string {
	v = norm.NFC.String(strings.TrimSpace(v))
	return cases.Fold().String(strings.Join(strings.Fields(v), " "))
}
