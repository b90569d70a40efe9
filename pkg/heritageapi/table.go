package heritageapi

import (
	// Packages
	uitable "github.com/mutablelogic/go-heritage/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// EntryTable implements table.TableData for catalog records.
type EntryTable []Entry

///////////////////////////////////////////////////////////////////////////////
// ENTRY TABLE (LIST)

func (t EntryTable) Header() []string {
	return []string{"KEY", "LOCATION", "RECORD", "IMAGE"}
}

func (t EntryTable) Len() int {
	return len(t)
}

func (t EntryTable) Row(i int) []any {
	e := t[i]
	return []any{uitable.Bold{Value: e.Key}, e.Location, uitable.Truncate(e.TextRecord, 40), e.OriginalImageURL}
}
