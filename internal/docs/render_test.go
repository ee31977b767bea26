package docs

import (
	"testing"

	docs "google.golang.org/api/docs/v1"
)

func paragraph(style, text string) *docs.StructuralElement {
	para := &docs.Paragraph{
		Elements: []*docs.ParagraphElement{
			{TextRun: &docs.TextRun{Content: text}},
		},
	}
	if style != "" {
		para.ParagraphStyle = &docs.ParagraphStyle{NamedStyleType: style}
	}
	return &docs.StructuralElement{Paragraph: para}
}

func bulletParagraph(text string) *docs.StructuralElement {
	return &docs.StructuralElement{
		Paragraph: &docs.Paragraph{
			Bullet: &docs.Bullet{ListId: "kix.list"},
			Elements: []*docs.ParagraphElement{
				{TextRun: &docs.TextRun{Content: text}},
			},
		},
	}
}

func styledParagraph(text string, style *docs.TextStyle) *docs.StructuralElement {
	return &docs.StructuralElement{
		Paragraph: &docs.Paragraph{
			Elements: []*docs.ParagraphElement{
				{TextRun: &docs.TextRun{Content: text, TextStyle: style}},
			},
		},
	}
}

func simpleTable(rows [][]string) *docs.StructuralElement {
	table := &docs.Table{}
	for _, cells := range rows {
		row := &docs.TableRow{}
		for _, text := range cells {
			row.TableCells = append(row.TableCells, &docs.TableCell{
				Content: []*docs.StructuralElement{paragraph("", text+"\n")},
			})
		}
		table.TableRows = append(table.TableRows, row)
	}
	return &docs.StructuralElement{Table: table}
}

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		content []*docs.StructuralElement
		want    string
	}{
		{
			name:    "empty content",
			content: nil,
			want:    "",
		},
		{
			name:    "plain paragraph",
			content: []*docs.StructuralElement{paragraph("", "Hello world\n")},
			want:    "Hello world",
		},
		{
			name: "headings",
			content: []*docs.StructuralElement{
				paragraph("HEADING_1", "Intro\n"),
				paragraph("HEADING_3", "Details\n"),
			},
			want: "# Intro\n\n### Details",
		},
		{
			name:    "title renders as h1",
			content: []*docs.StructuralElement{paragraph("TITLE", "Quarterly Report\n")},
			want:    "# Quarterly Report",
		},
		{
			name:    "subtitle renders italic",
			content: []*docs.StructuralElement{paragraph("SUBTITLE", "Q3 numbers\n")},
			want:    "*Q3 numbers*",
		},
		{
			name: "empty paragraphs skipped",
			content: []*docs.StructuralElement{
				paragraph("", "before\n"),
				paragraph("", "\n"),
				paragraph("", "after\n"),
			},
			want: "before\n\nafter",
		},
		{
			name: "bullet list",
			content: []*docs.StructuralElement{
				bulletParagraph("first\n"),
				bulletParagraph("second\n"),
			},
			want: "- first\n- second",
		},
		{
			name:    "bold run",
			content: []*docs.StructuralElement{styledParagraph("loud\n", &docs.TextStyle{Bold: true})},
			want:    "**loud**",
		},
		{
			name:    "bold italic run",
			content: []*docs.StructuralElement{styledParagraph("both\n", &docs.TextStyle{Bold: true, Italic: true})},
			want:    "***both***",
		},
		{
			name: "link run",
			content: []*docs.StructuralElement{styledParagraph("docs\n", &docs.TextStyle{
				Link: &docs.Link{Url: "https://example.com"},
			})},
			want: "[docs](https://example.com)",
		},
		{
			name: "monospace run renders as code",
			content: []*docs.StructuralElement{styledParagraph("go build\n", &docs.TextStyle{
				WeightedFontFamily: &docs.WeightedFontFamily{FontFamily: "Courier New"},
			})},
			want: "`go build`",
		},
		{
			name: "table with header separator",
			content: []*docs.StructuralElement{
				simpleTable([][]string{
					{"Name", "Role"},
					{"Ada", "engineer"},
				}),
			},
			want: "| Name | Role |\n| --- | --- |\n| Ada | engineer |",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderMarkdown(tt.content)
			if got != tt.want {
				t.Errorf("RenderMarkdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderPlainText(t *testing.T) {
	content := []*docs.StructuralElement{
		paragraph("HEADING_1", "Title\n"),
		styledParagraph("bold text\n", &docs.TextStyle{Bold: true}),
		simpleTable([][]string{{"a", "b"}, {"c", "d"}}),
	}

	got := RenderPlainText(content)
	want := "Title\nbold text\na\tb\nc\td"
	if got != want {
		t.Errorf("RenderPlainText() = %q, want %q", got, want)
	}
}

func TestRenderMarkdownMultiRunParagraph(t *testing.T) {
	content := []*docs.StructuralElement{
		{
			Paragraph: &docs.Paragraph{
				Elements: []*docs.ParagraphElement{
					{TextRun: &docs.TextRun{Content: "see "}},
					{TextRun: &docs.TextRun{Content: "this", TextStyle: &docs.TextStyle{Italic: true}}},
					{TextRun: &docs.TextRun{Content: " part\n"}},
				},
			},
		},
	}

	got := RenderMarkdown(content)
	want := "see *this* part"
	if got != want {
		t.Errorf("RenderMarkdown() = %q, want %q", got, want)
	}
}
