package docs

import (
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// RenderMarkdown converts document body content to Markdown. The
// title is not part of the body content; callers print it themselves.
func RenderMarkdown(content []*docs.StructuralElement) string {
	var md strings.Builder
	for _, element := range content {
		renderElement(&md, element)
	}
	return strings.TrimRight(md.String(), "\n")
}

// RenderPlainText extracts the raw text of document body content,
// with table cells separated by tabs.
func RenderPlainText(content []*docs.StructuralElement) string {
	var text strings.Builder
	for _, element := range content {
		switch {
		case element.Paragraph != nil:
			writeParagraphText(&text, element.Paragraph)
			text.WriteString("\n")
		case element.Table != nil:
			writeTableText(&text, element.Table)
		}
	}
	return strings.TrimRight(text.String(), "\n")
}

func renderElement(md *strings.Builder, element *docs.StructuralElement) {
	switch {
	case element.Paragraph != nil:
		renderParagraph(md, element.Paragraph)
	case element.Table != nil:
		renderTable(md, element.Table)
	case element.SectionBreak != nil:
		// The implicit break that opens every body renders as nothing.
		if element.StartIndex > 0 {
			md.WriteString("---\n\n")
		}
	}
}

func renderParagraph(md *strings.Builder, para *docs.Paragraph) {
	if para == nil || len(para.Elements) == 0 {
		return
	}

	var body strings.Builder
	for _, elem := range para.Elements {
		switch {
		case elem.TextRun != nil:
			renderTextRun(&body, elem.TextRun)
		case elem.InlineObjectElement != nil:
			body.WriteString("[image]")
		}
	}

	text := strings.TrimRight(body.String(), "\n")
	if strings.TrimSpace(text) == "" {
		return
	}

	prefix, suffix := paragraphDecoration(para)
	md.WriteString(prefix)
	md.WriteString(text)
	md.WriteString(suffix)
	if para.Bullet != nil {
		md.WriteString("\n")
	} else {
		md.WriteString("\n\n")
	}
}

// paragraphDecoration maps the paragraph's named style and bullet to
// a Markdown prefix and suffix.
func paragraphDecoration(para *docs.Paragraph) (string, string) {
	if para.Bullet != nil {
		return "- ", ""
	}
	if para.ParagraphStyle == nil {
		return "", ""
	}
	switch style := para.ParagraphStyle.NamedStyleType; style {
	case "TITLE":
		return "# ", ""
	case "SUBTITLE":
		return "*", "*"
	case "HEADING_1", "HEADING_2", "HEADING_3", "HEADING_4", "HEADING_5", "HEADING_6":
		level := int(style[len(style)-1] - '0')
		return strings.Repeat("#", level) + " ", ""
	default:
		return "", ""
	}
}

func renderTextRun(md *strings.Builder, run *docs.TextRun) {
	content := run.Content
	if content == "" {
		return
	}

	style := run.TextStyle
	if style == nil {
		md.WriteString(content)
		return
	}

	if style.Link != nil && style.Link.Url != "" {
		md.WriteString("[")
		md.WriteString(strings.TrimSpace(content))
		md.WriteString("](")
		md.WriteString(style.Link.Url)
		md.WriteString(")")
		return
	}

	if style.WeightedFontFamily != nil && strings.Contains(style.WeightedFontFamily.FontFamily, "Courier") {
		md.WriteString("`")
		md.WriteString(strings.TrimSpace(content))
		md.WriteString("`")
		return
	}

	switch {
	case style.Bold && style.Italic:
		md.WriteString("***")
		md.WriteString(content)
		md.WriteString("***")
	case style.Bold:
		md.WriteString("**")
		md.WriteString(content)
		md.WriteString("**")
	case style.Italic:
		md.WriteString("*")
		md.WriteString(content)
		md.WriteString("*")
	default:
		md.WriteString(content)
	}
}

func renderTable(md *strings.Builder, table *docs.Table) {
	if table == nil || len(table.TableRows) == 0 {
		return
	}

	for rowIndex, row := range table.TableRows {
		md.WriteString("|")
		for _, cell := range row.TableCells {
			md.WriteString(" ")
			md.WriteString(cellText(cell))
			md.WriteString(" |")
		}
		md.WriteString("\n")

		// First row doubles as the header.
		if rowIndex == 0 {
			md.WriteString("|")
			for range row.TableCells {
				md.WriteString(" --- |")
			}
			md.WriteString("\n")
		}
	}
	md.WriteString("\n")
}

// cellText flattens a table cell's paragraphs to a single line.
func cellText(cell *docs.TableCell) string {
	if cell == nil {
		return ""
	}
	var text strings.Builder
	for _, element := range cell.Content {
		if element.Paragraph == nil {
			continue
		}
		for _, elem := range element.Paragraph.Elements {
			if elem.TextRun != nil {
				text.WriteString(elem.TextRun.Content)
			}
		}
	}
	flat := strings.ReplaceAll(text.String(), "\n", " ")
	return strings.TrimSpace(flat)
}

func writeParagraphText(text *strings.Builder, para *docs.Paragraph) {
	if para == nil {
		return
	}
	for _, elem := range para.Elements {
		if elem.TextRun != nil {
			text.WriteString(strings.TrimRight(elem.TextRun.Content, "\n"))
		}
	}
}

func writeTableText(text *strings.Builder, table *docs.Table) {
	for _, row := range table.TableRows {
		cells := make([]string, len(row.TableCells))
		for i, cell := range row.TableCells {
			cells[i] = cellText(cell)
		}
		text.WriteString(strings.Join(cells, "\t"))
		text.WriteString("\n")
	}
}
