package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedStyleFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "HEADING_1", want: "HEADING_1"},
		{input: "heading_2", want: "HEADING_2"},
		{input: " title ", want: "TITLE"},
		{input: "NORMAL_TEXT", want: "NORMAL_TEXT"},
		{input: "HEADING_7", wantErr: true},
		{input: "bold", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NamedStyleFromString(tt.input)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeadingStyle(t *testing.T) {
	got, err := HeadingStyle(0)
	require.NoError(t, err)
	assert.Equal(t, "NORMAL_TEXT", got)

	got, err = HeadingStyle(3)
	require.NoError(t, err)
	assert.Equal(t, "HEADING_3", got)

	_, err = HeadingStyle(7)
	assert.Error(t, err)
}

func TestTextLength(t *testing.T) {
	assert.Equal(t, int64(5), TextLength("hello"))
	assert.Equal(t, int64(0), TextLength(""))
	// Astral-plane characters count as two UTF-16 code units.
	assert.Equal(t, int64(2), TextLength("😀"))
	assert.Equal(t, int64(4), TextLength("日本ab"))
}

func TestInsertTextRequests(t *testing.T) {
	req := InsertTextRequest("hi", 5)
	require.NotNil(t, req.InsertText)
	assert.Equal(t, "hi", req.InsertText.Text)
	assert.Equal(t, int64(5), req.InsertText.Location.Index)

	req = InsertTextAtEndRequest("tail")
	require.NotNil(t, req.InsertText)
	assert.Nil(t, req.InsertText.Location)
	assert.NotNil(t, req.InsertText.EndOfSegmentLocation)
}

func TestUpdateTextStyleRequest(t *testing.T) {
	req, err := UpdateTextStyleRequest(1, 10, TextStyle{
		Bold:     Bool(true),
		FontSize: 14,
		LinkURL:  "https://example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, req.UpdateTextStyle)

	style := req.UpdateTextStyle.TextStyle
	assert.True(t, style.Bold)
	assert.Equal(t, 14.0, style.FontSize.Magnitude)
	assert.Equal(t, "PT", style.FontSize.Unit)
	assert.Equal(t, "https://example.com", style.Link.Url)
	assert.Equal(t, "bold,fontSize,link", req.UpdateTextStyle.Fields)
	assert.Equal(t, int64(1), req.UpdateTextStyle.Range.StartIndex)
	assert.Equal(t, int64(10), req.UpdateTextStyle.Range.EndIndex)
}

func TestUpdateTextStyleRequestExplicitFalse(t *testing.T) {
	// Bold=false must still serialize so the API clears the bit.
	req, err := UpdateTextStyleRequest(1, 5, TextStyle{Bold: Bool(false)})
	require.NoError(t, err)
	assert.False(t, req.UpdateTextStyle.TextStyle.Bold)
	assert.Contains(t, req.UpdateTextStyle.TextStyle.ForceSendFields, "Bold")
	assert.Equal(t, "bold", req.UpdateTextStyle.Fields)
}

func TestUpdateTextStyleRequestEmpty(t *testing.T) {
	_, err := UpdateTextStyleRequest(1, 5, TextStyle{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestParseHexColor(t *testing.T) {
	color, err := ParseHexColor("#FF8000")
	require.NoError(t, err)
	rgb := color.Color.RgbColor
	assert.InDelta(t, 1.0, rgb.Red, 0.001)
	assert.InDelta(t, 128.0/255.0, rgb.Green, 0.001)
	assert.InDelta(t, 0.0, rgb.Blue, 0.001)

	_, err = ParseHexColor("#FFF")
	assert.Error(t, err)
	_, err = ParseHexColor("not-a-color")
	assert.Error(t, err)

	// The leading # is optional.
	color, err = ParseHexColor("000000")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, color.Color.RgbColor.Red, 0.001)
}

func TestInsertTableRequest(t *testing.T) {
	req, err := InsertTableRequest(3, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), req.InsertTable.Rows)
	assert.Equal(t, int64(2), req.InsertTable.Columns)
	assert.NotNil(t, req.InsertTable.EndOfSegmentLocation)

	req, err = InsertTableRequest(1, 1, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), req.InsertTable.Location.Index)
	assert.Nil(t, req.InsertTable.EndOfSegmentLocation)

	_, err = InsertTableRequest(0, 2, 0)
	assert.Error(t, err)
}

func TestTableRowRequests(t *testing.T) {
	req := InsertTableRowRequest(100, 2, true)
	loc := req.InsertTableRow.TableCellLocation
	assert.Equal(t, int64(100), loc.TableStartLocation.Index)
	assert.Equal(t, int64(2), loc.RowIndex)
	assert.True(t, req.InsertTableRow.InsertBelow)

	req = InsertTableRowRequest(100, 0, false)
	assert.False(t, req.InsertTableRow.InsertBelow)
	assert.Contains(t, req.InsertTableRow.ForceSendFields, "InsertBelow")

	req = DeleteTableRowRequest(100, 1)
	assert.Equal(t, int64(1), req.DeleteTableRow.TableCellLocation.RowIndex)
}

func TestTableColumnRequests(t *testing.T) {
	req := InsertTableColumnRequest(100, 1, false)
	loc := req.InsertTableColumn.TableCellLocation
	assert.Equal(t, int64(1), loc.ColumnIndex)
	assert.False(t, req.InsertTableColumn.InsertRight)

	req = DeleteTableColumnRequest(100, 3)
	assert.Equal(t, int64(3), req.DeleteTableColumn.TableCellLocation.ColumnIndex)
}

func TestReplaceAllTextRequest(t *testing.T) {
	req := ReplaceAllTextRequest("old", "new", true)
	criteria := req.ReplaceAllText.ContainsText
	assert.Equal(t, "old", criteria.Text)
	assert.True(t, criteria.MatchCase)
	assert.Equal(t, "new", req.ReplaceAllText.ReplaceText)

	// Replacing with the empty string deletes occurrences; the field
	// must still serialize.
	req = ReplaceAllTextRequest("gone", "", false)
	assert.Contains(t, req.ReplaceAllText.ForceSendFields, "ReplaceText")
	assert.Contains(t, req.ReplaceAllText.ContainsText.ForceSendFields, "MatchCase")
}

func TestDeleteContentRangeRequest(t *testing.T) {
	req, err := DeleteContentRangeRequest(5, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(5), req.DeleteContentRange.Range.StartIndex)
	assert.Equal(t, int64(10), req.DeleteContentRange.Range.EndIndex)

	_, err = DeleteContentRangeRequest(10, 10)
	assert.Error(t, err)
	_, err = DeleteContentRangeRequest(10, 5)
	assert.Error(t, err)
}

func TestStyledInsert(t *testing.T) {
	requests, err := StyledInsert("Heading\n", 1, "HEADING_1", &TextStyle{Bold: Bool(true)})
	require.NoError(t, err)
	require.Len(t, requests, 3)

	insert := requests[0].InsertText
	assert.Equal(t, "Heading\n", insert.Text)
	assert.Equal(t, int64(1), insert.Location.Index)

	// Requests run in order against the evolving document, so the
	// style ranges cover the freshly inserted text.
	para := requests[1].UpdateParagraphStyle
	assert.Equal(t, int64(1), para.Range.StartIndex)
	assert.Equal(t, int64(9), para.Range.EndIndex)
	assert.Equal(t, "HEADING_1", para.ParagraphStyle.NamedStyleType)

	// Character styling stops before the trailing newline.
	text := requests[2].UpdateTextStyle
	assert.Equal(t, int64(1), text.Range.StartIndex)
	assert.Equal(t, int64(8), text.Range.EndIndex)
	assert.True(t, text.TextStyle.Bold)
}

func TestStyledInsertPlain(t *testing.T) {
	requests, err := StyledInsert("plain", 7, "", nil)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.NotNil(t, requests[0].InsertText)
}

func TestStyledInsertValidation(t *testing.T) {
	_, err := StyledInsert("", 1, "", nil)
	assert.Error(t, err)
	_, err = StyledInsert("x", 0, "", nil)
	assert.Error(t, err)
	_, err = StyledInsert("x", 1, "HEADING_9", nil)
	assert.Error(t, err)
}

func TestStyledInsertNewlineOnly(t *testing.T) {
	// A pure newline insert has nothing to character-style.
	requests, err := StyledInsert("\n", 1, "", &TextStyle{Bold: Bool(true)})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.NotNil(t, requests[0].InsertText)
}

func TestInsertInlineImageRequest(t *testing.T) {
	req, err := InsertInlineImageRequest("https://example.com/a.png", 5, 200, 100)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", req.InsertInlineImage.Uri)
	assert.Equal(t, int64(5), req.InsertInlineImage.Location.Index)
	assert.Equal(t, 200.0, req.InsertInlineImage.ObjectSize.Width.Magnitude)

	req, err = InsertInlineImageRequest("https://example.com/b.png", 0, 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, req.InsertInlineImage.EndOfSegmentLocation)
	assert.Nil(t, req.InsertInlineImage.ObjectSize)

	_, err = InsertInlineImageRequest("", 1, 0, 0)
	assert.Error(t, err)
}

func TestBulletRequests(t *testing.T) {
	req := CreateParagraphBulletsRequest(1, 20)
	assert.Equal(t, "BULLET_DISC_CIRCLE_SQUARE", req.CreateParagraphBullets.BulletPreset)
	assert.Equal(t, int64(20), req.CreateParagraphBullets.Range.EndIndex)

	req = DeleteParagraphBulletsRequest(1, 20)
	assert.NotNil(t, req.DeleteParagraphBullets)
}

func TestAlignParagraphRequest(t *testing.T) {
	req, err := AlignParagraphRequest(1, 10, "center")
	require.NoError(t, err)
	assert.Equal(t, "CENTER", req.UpdateParagraphStyle.ParagraphStyle.Alignment)
	assert.Equal(t, "alignment", req.UpdateParagraphStyle.Fields)

	_, err = AlignParagraphRequest(1, 10, "middle")
	assert.Error(t, err)
}
