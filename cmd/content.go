package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gdocs-cli/gdocs/internal/docs"
	docsapi "google.golang.org/api/docs/v1"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Read and edit document text",
	}

	cmd.AddCommand(newContentReadCmd())
	cmd.AddCommand(newContentInsertCmd())
	cmd.AddCommand(newContentAppendCmd())
	cmd.AddCommand(newContentFromFileCmd())
	cmd.AddCommand(newContentReplaceCmd())
	cmd.AddCommand(newContentBulletsCmd())

	return cmd
}

func newContentReadCmd() *cobra.Command {
	var plain, raw bool

	cmd := &cobra.Command{
		Use:   "read <document-id>",
		Short: "Print document content as Markdown",
		Long: `Prints the document rendered as Markdown. --plain strips all
formatting, --raw dumps the structural JSON the API returns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if plain && raw {
				return docs.Validationf("--plain and --raw are mutually exclusive")
			}

			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := client.GetDocumentContent(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			p := printer()
			if raw {
				data, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode document: %w", err)
				}
				p.Raw(string(data))
				return nil
			}

			var content []*docsapi.StructuralElement
			if doc.Body != nil {
				content = doc.Body.Content
			}

			if plain {
				text := docs.RenderPlainText(content)
				p.Result(map[string]string{"id": doc.DocumentId, "title": doc.Title, "text": text}, func(w io.Writer) {
					fmt.Fprintln(w, text)
				})
				return nil
			}

			markdown := docs.RenderMarkdown(content)
			p.Result(map[string]string{"id": doc.DocumentId, "title": doc.Title, "markdown": markdown}, func(w io.Writer) {
				fmt.Fprintf(w, "# %s\n\n", doc.Title)
				if markdown != "" {
					fmt.Fprintln(w, markdown)
				}
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Output plain text without formatting")
	cmd.Flags().BoolVar(&raw, "raw", false, "Output the raw structural JSON")

	return cmd
}

// styleFlags collects the shared styling options of the insert
// commands and builds the optional character style.
type styleFlags struct {
	heading string
	bold    bool
	italic  bool
}

func (f *styleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.heading, "heading", "", "Paragraph style: TITLE, SUBTITLE, NORMAL_TEXT, HEADING_1-6, or a level 1-6")
	cmd.Flags().BoolVar(&f.bold, "bold", false, "Insert the text in bold")
	cmd.Flags().BoolVar(&f.italic, "italic", false, "Insert the text in italics")
}

func (f *styleFlags) namedStyle() (string, error) {
	if f.heading == "" {
		return "", nil
	}
	if level, err := strconv.Atoi(f.heading); err == nil {
		return docs.HeadingStyle(level)
	}
	return docs.NamedStyleFromString(f.heading)
}

func (f *styleFlags) textStyle() *docs.TextStyle {
	if !f.bold && !f.italic {
		return nil
	}
	style := &docs.TextStyle{}
	if f.bold {
		style.Bold = docs.Bool(true)
	}
	if f.italic {
		style.Italic = docs.Bool(true)
	}
	return style
}

func newContentInsertCmd() *cobra.Command {
	var index int64
	var style styleFlags

	cmd := &cobra.Command{
		Use:   "insert <document-id> <text>",
		Short: "Insert text at an index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			namedStyle, err := style.namedStyle()
			if err != nil {
				return err
			}
			requests, err := docs.StyledInsert(args[1], index, namedStyle, style.textStyle())
			if err != nil {
				return err
			}

			if _, err := client.BatchUpdate(cmd.Context(), args[0], requests); err != nil {
				return err
			}
			printer().Success("Inserted %d character(s) at index %d", docs.TextLength(args[1]), index)
			return nil
		},
	}

	cmd.Flags().Int64Var(&index, "index", 1, "Character index to insert at (1 is the start of the body)")
	style.register(cmd)

	return cmd
}

func newContentAppendCmd() *cobra.Command {
	var style styleFlags

	cmd := &cobra.Command{
		Use:   "append <document-id> <text>",
		Short: "Append text to the end of the document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}
			return appendText(cmd, client, args[0], args[1], &style)
		},
	}

	style.register(cmd)

	return cmd
}

// appendText appends text, applying styles in a second batch after
// re-reading the document so the style range covers the appended
// region exactly.
func appendText(cmd *cobra.Command, client *docs.Client, documentID, text string, style *styleFlags) error {
	ctx := cmd.Context()

	namedStyle, err := style.namedStyle()
	if err != nil {
		return err
	}
	textStyle := style.textStyle()

	doc, err := client.GetDocumentContent(ctx, documentID)
	if err != nil {
		return err
	}
	start := docs.EndIndex(doc)

	// End-of-body inserts land before the final newline, so a leading
	// newline keeps the appended text on its own paragraph.
	insert := text
	if start > 1 {
		insert = "\n" + text
		start++
	}

	if _, err := client.BatchUpdate(ctx, documentID, []*docsapi.Request{
		docs.InsertTextAtEndRequest(insert),
	}); err != nil {
		return err
	}

	if namedStyle != "" || textStyle != nil {
		end := start + docs.TextLength(text)
		var requests []*docsapi.Request
		if namedStyle != "" {
			req, err := docs.ApplyNamedStyleRequest(start, end, namedStyle)
			if err != nil {
				return err
			}
			requests = append(requests, req)
		}
		if textStyle != nil {
			req, err := docs.UpdateTextStyleRequest(start, end, *textStyle)
			if err != nil {
				return err
			}
			requests = append(requests, req)
		}
		if _, err := client.BatchUpdate(ctx, documentID, requests); err != nil {
			return err
		}
	}

	printer().Success("Appended %d character(s)", docs.TextLength(text))
	return nil
}

func newContentFromFileCmd() *cobra.Command {
	var style styleFlags

	cmd := &cobra.Command{
		Use:   "from-file <document-id> <path>",
		Short: "Append the contents of a local file",
		Long: `Reads a local text file and appends it to the document. Pass "-" to
read from standard input.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[1] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[1])
			}
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			if len(data) == 0 {
				return docs.Validationf("input is empty")
			}

			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}
			return appendText(cmd, client, args[0], string(data), &style)
		},
	}

	style.register(cmd)

	return cmd
}

func newContentReplaceCmd() *cobra.Command {
	var ignoreCase bool

	cmd := &cobra.Command{
		Use:   "replace <document-id> <find> <replace>",
		Short: "Replace every occurrence of a string",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			occurrences, err := client.ReplaceAllText(cmd.Context(), args[0], args[1], args[2], !ignoreCase)
			if err != nil {
				return err
			}

			p := printer()
			p.Result(map[string]any{"occurrencesChanged": occurrences}, func(w io.Writer) {
				fmt.Fprintf(w, "Replaced %d occurrence(s)\n", occurrences)
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "Ignore case when matching (matching is exact by default)")

	return cmd
}

func newContentBulletsCmd() *cobra.Command {
	var start, end int64
	var remove bool

	cmd := &cobra.Command{
		Use:   "bullets <document-id>",
		Short: "Add or remove list bullets over a range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if end <= start {
				return docs.Validationf("range end %d must be after start %d", end, start)
			}

			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			var request *docsapi.Request
			if remove {
				request = docs.DeleteParagraphBulletsRequest(start, end)
			} else {
				request = docs.CreateParagraphBulletsRequest(start, end)
			}
			if _, err := client.BatchUpdate(cmd.Context(), args[0], []*docsapi.Request{request}); err != nil {
				return err
			}

			if remove {
				printer().Success("Removed bullets from range [%d, %d)", start, end)
			} else {
				printer().Success("Added bullets to range [%d, %d)", start, end)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&start, "start", 1, "Range start index")
	cmd.Flags().Int64Var(&end, "end", 0, "Range end index (exclusive)")
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove bullets instead of adding them")

	return cmd
}
