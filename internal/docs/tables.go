package docs

import (
	docs "google.golang.org/api/docs/v1"
)

// FindTables walks the document body in order and returns one entry
// per table. Index 0 is the first table in the document, matching how
// the table commands address them.
func FindTables(doc *docs.Document) []TableInfo {
	if doc == nil || doc.Body == nil {
		return nil
	}

	var tables []TableInfo
	for _, element := range doc.Body.Content {
		if element.Table == nil {
			continue
		}
		info := TableInfo{
			Index:      len(tables),
			StartIndex: element.StartIndex,
			EndIndex:   element.EndIndex,
			Rows:       element.Table.Rows,
			Columns:    element.Table.Columns,
		}
		tables = append(tables, info)
	}
	return tables
}

// TableAt returns the table with the given document-order index.
func TableAt(doc *docs.Document, index int) (TableInfo, error) {
	tables := FindTables(doc)
	if len(tables) == 0 {
		return TableInfo{}, Validationf("document has no tables")
	}
	if index < 0 || index >= len(tables) {
		return TableInfo{}, Validationf("table index %d out of range (document has %d tables)", index, len(tables))
	}
	return tables[index], nil
}

// EndIndex returns the index just past the last content character of
// the body, which is where end-of-document inserts land.
func EndIndex(doc *docs.Document) int64 {
	if doc == nil || doc.Body == nil || len(doc.Body.Content) == 0 {
		return 1
	}
	last := doc.Body.Content[len(doc.Body.Content)-1]
	if last.EndIndex <= 1 {
		return 1
	}
	// The final newline of the body cannot be written past.
	return last.EndIndex - 1
}
