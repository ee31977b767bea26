package docs

import (
	"fmt"
	"strings"
	"unicode/utf16"

	docs "google.golang.org/api/docs/v1"
)

// Named paragraph styles accepted by ApplyNamedStyleRequest.
var namedStyles = map[string]bool{
	"NORMAL_TEXT": true,
	"TITLE":       true,
	"SUBTITLE":    true,
	"HEADING_1":   true,
	"HEADING_2":   true,
	"HEADING_3":   true,
	"HEADING_4":   true,
	"HEADING_5":   true,
	"HEADING_6":   true,
}

// NamedStyleFromString validates and normalizes a named style, so
// "heading_1" and "HEADING_1" both work.
func NamedStyleFromString(s string) (string, error) {
	style := strings.ToUpper(strings.TrimSpace(s))
	if !namedStyles[style] {
		return "", Validationf("unknown style %q (expected NORMAL_TEXT, TITLE, SUBTITLE, or HEADING_1 through HEADING_6)", s)
	}
	return style, nil
}

// HeadingStyle maps a Markdown-like heading level (1-6) to its named
// style. Level 0 means normal text.
func HeadingStyle(level int) (string, error) {
	if level == 0 {
		return "NORMAL_TEXT", nil
	}
	if level < 1 || level > 6 {
		return "", Validationf("heading level must be between 1 and 6, got %d", level)
	}
	return fmt.Sprintf("HEADING_%d", level), nil
}

// TextLength returns the length of text as the Docs API counts it:
// UTF-16 code units, not bytes or runes.
func TextLength(text string) int64 {
	return int64(len(utf16.Encode([]rune(text))))
}

// InsertTextRequest inserts text at an explicit index.
func InsertTextRequest(text string, index int64) *docs.Request {
	return &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Text:     text,
			Location: &docs.Location{Index: index},
		},
	}
}

// InsertTextAtEndRequest inserts text at the end of the document body.
func InsertTextAtEndRequest(text string) *docs.Request {
	return &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Text:                 text,
			EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
		},
	}
}

// TextStyle describes character formatting for UpdateTextStyleRequest.
// Nil pointer fields are left untouched in the document.
type TextStyle struct {
	Bold            *bool
	Italic          *bool
	Underline       *bool
	Strikethrough   *bool
	FontSize        float64
	FontFamily      string
	LinkURL         string
	ForegroundColor string
	BackgroundColor string
}

// Bool returns a pointer to b, for TextStyle fields.
func Bool(b bool) *bool { return &b }

// UpdateTextStyleRequest styles the character range [start, end).
// Only the fields set in style are written; everything else keeps its
// current formatting.
func UpdateTextStyleRequest(start, end int64, style TextStyle) (*docs.Request, error) {
	ts := &docs.TextStyle{}
	var fields []string

	if style.Bold != nil {
		ts.Bold = *style.Bold
		ts.ForceSendFields = append(ts.ForceSendFields, "Bold")
		fields = append(fields, "bold")
	}
	if style.Italic != nil {
		ts.Italic = *style.Italic
		ts.ForceSendFields = append(ts.ForceSendFields, "Italic")
		fields = append(fields, "italic")
	}
	if style.Underline != nil {
		ts.Underline = *style.Underline
		ts.ForceSendFields = append(ts.ForceSendFields, "Underline")
		fields = append(fields, "underline")
	}
	if style.Strikethrough != nil {
		ts.Strikethrough = *style.Strikethrough
		ts.ForceSendFields = append(ts.ForceSendFields, "Strikethrough")
		fields = append(fields, "strikethrough")
	}
	if style.FontSize > 0 {
		ts.FontSize = &docs.Dimension{Magnitude: style.FontSize, Unit: "PT"}
		fields = append(fields, "fontSize")
	}
	if style.FontFamily != "" {
		ts.WeightedFontFamily = &docs.WeightedFontFamily{FontFamily: style.FontFamily}
		fields = append(fields, "weightedFontFamily")
	}
	if style.LinkURL != "" {
		ts.Link = &docs.Link{Url: style.LinkURL}
		fields = append(fields, "link")
	}
	if style.ForegroundColor != "" {
		color, err := ParseHexColor(style.ForegroundColor)
		if err != nil {
			return nil, err
		}
		ts.ForegroundColor = color
		fields = append(fields, "foregroundColor")
	}
	if style.BackgroundColor != "" {
		color, err := ParseHexColor(style.BackgroundColor)
		if err != nil {
			return nil, err
		}
		ts.BackgroundColor = color
		fields = append(fields, "backgroundColor")
	}

	if len(fields) == 0 {
		return nil, Validationf("no text style fields to update")
	}

	return &docs.Request{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     &docs.Range{StartIndex: start, EndIndex: end, ForceSendFields: []string{"StartIndex"}},
			TextStyle: ts,
			Fields:    strings.Join(fields, ","),
		},
	}, nil
}

// ParseHexColor converts "#RRGGBB" (or "RRGGBB") to an API color.
func ParseHexColor(hex string) (*docs.OptionalColor, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return nil, Validationf("invalid color %q (expected #RRGGBB)", hex)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return nil, Validationf("invalid color %q (expected #RRGGBB)", hex)
	}
	return &docs.OptionalColor{
		Color: &docs.Color{
			RgbColor: &docs.RgbColor{
				Red:   float64(r) / 255.0,
				Green: float64(g) / 255.0,
				Blue:  float64(b) / 255.0,
			},
		},
	}, nil
}

// ApplyNamedStyleRequest applies a named paragraph style to every
// paragraph overlapping [start, end).
func ApplyNamedStyleRequest(start, end int64, namedStyle string) (*docs.Request, error) {
	style, err := NamedStyleFromString(namedStyle)
	if err != nil {
		return nil, err
	}
	return &docs.Request{
		UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          &docs.Range{StartIndex: start, EndIndex: end, ForceSendFields: []string{"StartIndex"}},
			ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: style},
			Fields:         "namedStyleType",
		},
	}, nil
}

// AlignParagraphRequest sets paragraph alignment over [start, end).
// Accepted alignments are START, CENTER, END and JUSTIFIED.
func AlignParagraphRequest(start, end int64, alignment string) (*docs.Request, error) {
	a := strings.ToUpper(strings.TrimSpace(alignment))
	switch a {
	case "START", "CENTER", "END", "JUSTIFIED":
	default:
		return nil, Validationf("unknown alignment %q (expected START, CENTER, END, or JUSTIFIED)", alignment)
	}
	return &docs.Request{
		UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          &docs.Range{StartIndex: start, EndIndex: end, ForceSendFields: []string{"StartIndex"}},
			ParagraphStyle: &docs.ParagraphStyle{Alignment: a},
			Fields:         "alignment",
		},
	}, nil
}

// InsertTableRequest inserts a rows x columns table. With index <= 0
// the table goes at the end of the body.
func InsertTableRequest(rows, columns, index int64) (*docs.Request, error) {
	if rows < 1 || columns < 1 {
		return nil, Validationf("table dimensions must be at least 1x1, got %dx%d", rows, columns)
	}
	req := &docs.InsertTableRequest{Rows: rows, Columns: columns}
	if index > 0 {
		req.Location = &docs.Location{Index: index}
	} else {
		req.EndOfSegmentLocation = &docs.EndOfSegmentLocation{}
	}
	return &docs.Request{InsertTable: req}, nil
}

// tableCellLocation points at one cell of the table whose first
// structural element starts at tableStart.
func tableCellLocation(tableStart, row, column int64) *docs.TableCellLocation {
	return &docs.TableCellLocation{
		TableStartLocation: &docs.Location{Index: tableStart},
		RowIndex:           row,
		ColumnIndex:        column,
		ForceSendFields:    []string{"RowIndex", "ColumnIndex"},
	}
}

// InsertTableRowRequest inserts a row adjacent to the given row.
// insertBelow false means the new row goes above the reference row.
func InsertTableRowRequest(tableStart, row int64, insertBelow bool) *docs.Request {
	return &docs.Request{
		InsertTableRow: &docs.InsertTableRowRequest{
			TableCellLocation: tableCellLocation(tableStart, row, 0),
			InsertBelow:       insertBelow,
			ForceSendFields:   []string{"InsertBelow"},
		},
	}
}

// DeleteTableRowRequest deletes the given row.
func DeleteTableRowRequest(tableStart, row int64) *docs.Request {
	return &docs.Request{
		DeleteTableRow: &docs.DeleteTableRowRequest{
			TableCellLocation: tableCellLocation(tableStart, row, 0),
		},
	}
}

// InsertTableColumnRequest inserts a column adjacent to the given
// column. insertRight false means the new column goes to the left.
func InsertTableColumnRequest(tableStart, column int64, insertRight bool) *docs.Request {
	return &docs.Request{
		InsertTableColumn: &docs.InsertTableColumnRequest{
			TableCellLocation: tableCellLocation(tableStart, 0, column),
			InsertRight:       insertRight,
			ForceSendFields:   []string{"InsertRight"},
		},
	}
}

// DeleteTableColumnRequest deletes the given column.
func DeleteTableColumnRequest(tableStart, column int64) *docs.Request {
	return &docs.Request{
		DeleteTableColumn: &docs.DeleteTableColumnRequest{
			TableCellLocation: tableCellLocation(tableStart, 0, column),
		},
	}
}

// DeleteContentRangeRequest deletes [start, end).
func DeleteContentRangeRequest(start, end int64) (*docs.Request, error) {
	if end <= start {
		return nil, Validationf("delete range end %d must be after start %d", end, start)
	}
	return &docs.Request{
		DeleteContentRange: &docs.DeleteContentRangeRequest{
			Range: &docs.Range{StartIndex: start, EndIndex: end, ForceSendFields: []string{"StartIndex"}},
		},
	}, nil
}

// ReplaceAllTextRequest replaces every occurrence of find with replace.
func ReplaceAllTextRequest(find, replace string, matchCase bool) *docs.Request {
	return &docs.Request{
		ReplaceAllText: &docs.ReplaceAllTextRequest{
			ContainsText: &docs.SubstringMatchCriteria{
				Text:            find,
				MatchCase:       matchCase,
				ForceSendFields: []string{"MatchCase"},
			},
			ReplaceText:     replace,
			ForceSendFields: []string{"ReplaceText"},
		},
	}
}

// InsertInlineImageRequest inserts an image from a public URI. Width
// and height are points; zero leaves the native size.
func InsertInlineImageRequest(uri string, index, width, height int64) (*docs.Request, error) {
	if uri == "" {
		return nil, Validationf("image URI is required")
	}
	req := &docs.InsertInlineImageRequest{Uri: uri}
	if index > 0 {
		req.Location = &docs.Location{Index: index}
	} else {
		req.EndOfSegmentLocation = &docs.EndOfSegmentLocation{}
	}
	if width > 0 && height > 0 {
		req.ObjectSize = &docs.Size{
			Width:  &docs.Dimension{Magnitude: float64(width), Unit: "PT"},
			Height: &docs.Dimension{Magnitude: float64(height), Unit: "PT"},
		}
	}
	return &docs.Request{InsertInlineImage: req}, nil
}

// CreateParagraphBulletsRequest turns the paragraphs in [start, end)
// into a bulleted list.
func CreateParagraphBulletsRequest(start, end int64) *docs.Request {
	return &docs.Request{
		CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
			Range:        &docs.Range{StartIndex: start, EndIndex: end, ForceSendFields: []string{"StartIndex"}},
			BulletPreset: "BULLET_DISC_CIRCLE_SQUARE",
		},
	}
}

// DeleteParagraphBulletsRequest removes list formatting from the
// paragraphs in [start, end).
func DeleteParagraphBulletsRequest(start, end int64) *docs.Request {
	return &docs.Request{
		DeleteParagraphBullets: &docs.DeleteParagraphBulletsRequest{
			Range: &docs.Range{StartIndex: start, EndIndex: end, ForceSendFields: []string{"StartIndex"}},
		},
	}
}

// StyledInsert builds the request sequence for inserting text with
// optional paragraph and character styling in one batch. Requests in a
// batch are applied in order against the evolving document, so the
// style ranges target the layout after the insert lands.
func StyledInsert(text string, index int64, namedStyle string, style *TextStyle) ([]*docs.Request, error) {
	if text == "" {
		return nil, Validationf("text is required")
	}

	var requests []*docs.Request
	if index > 0 {
		requests = append(requests, InsertTextRequest(text, index))
	} else {
		return nil, Validationf("insertion index must be positive, got %d", index)
	}

	end := index + TextLength(text)

	if namedStyle != "" {
		req, err := ApplyNamedStyleRequest(index, end, namedStyle)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if style != nil {
		// Trailing newlines carry paragraph marks; styling them leaks
		// character formatting into the next paragraph.
		styleEnd := index + TextLength(strings.TrimRight(text, "\n"))
		if styleEnd > index {
			req, err := UpdateTextStyleRequest(index, styleEnd, *style)
			if err != nil {
				return nil, err
			}
			requests = append(requests, req)
		}
	}

	return requests, nil
}
