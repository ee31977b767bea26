package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	docs "google.golang.org/api/docs/v1"
)

func docWithTables(dims ...[2]int64) *docs.Document {
	body := &docs.Body{}
	index := int64(1)

	body.Content = append(body.Content, &docs.StructuralElement{
		StartIndex: index,
		EndIndex:   index + 10,
		Paragraph:  &docs.Paragraph{},
	})
	index += 10

	for _, d := range dims {
		size := d[0]*d[1]*2 + 2
		body.Content = append(body.Content, &docs.StructuralElement{
			StartIndex: index,
			EndIndex:   index + size,
			Table:      &docs.Table{Rows: d[0], Columns: d[1]},
		})
		index += size

		body.Content = append(body.Content, &docs.StructuralElement{
			StartIndex: index,
			EndIndex:   index + 5,
			Paragraph:  &docs.Paragraph{},
		})
		index += 5
	}

	return &docs.Document{Body: body}
}

func TestFindTables(t *testing.T) {
	tables := FindTables(docWithTables([2]int64{2, 3}, [2]int64{4, 1}))
	require.Len(t, tables, 2)

	assert.Equal(t, 0, tables[0].Index)
	assert.Equal(t, int64(2), tables[0].Rows)
	assert.Equal(t, int64(3), tables[0].Columns)
	assert.Equal(t, int64(11), tables[0].StartIndex)

	assert.Equal(t, 1, tables[1].Index)
	assert.Equal(t, int64(4), tables[1].Rows)
	assert.Greater(t, tables[1].StartIndex, tables[0].EndIndex)
}

func TestFindTablesNone(t *testing.T) {
	assert.Empty(t, FindTables(docWithTables()))
	assert.Empty(t, FindTables(nil))
	assert.Empty(t, FindTables(&docs.Document{}))
}

func TestTableAt(t *testing.T) {
	doc := docWithTables([2]int64{2, 2}, [2]int64{3, 3})

	info, err := TableAt(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Rows)

	_, err = TableAt(doc, 2)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = TableAt(doc, -1)
	assert.Error(t, err)

	_, err = TableAt(&docs.Document{Body: &docs.Body{}}, 0)
	assert.Error(t, err)
}

func TestEndIndex(t *testing.T) {
	doc := docWithTables([2]int64{2, 2})
	last := doc.Body.Content[len(doc.Body.Content)-1]
	assert.Equal(t, last.EndIndex-1, EndIndex(doc))

	assert.Equal(t, int64(1), EndIndex(nil))
	assert.Equal(t, int64(1), EndIndex(&docs.Document{}))
}
