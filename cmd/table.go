package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gdocs-cli/gdocs/internal/docs"
	docsapi "google.golang.org/api/docs/v1"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Create and modify tables inside documents",
		Long: `Table commands address tables by their 0-based position in the
document: the first table is table 0, the second is table 1, and so on.`,
	}

	cmd.AddCommand(newTableCreateCmd())
	cmd.AddCommand(newTableListCmd())
	cmd.AddCommand(newTableAddRowCmd())
	cmd.AddCommand(newTableDeleteRowCmd())
	cmd.AddCommand(newTableAddColumnCmd())
	cmd.AddCommand(newTableDeleteColumnCmd())

	return cmd
}

func newTableCreateCmd() *cobra.Command {
	var rows, columns, index int64

	cmd := &cobra.Command{
		Use:   "create <document-id>",
		Short: "Insert a new table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			request, err := docs.InsertTableRequest(rows, columns, index)
			if err != nil {
				return err
			}
			if _, err := client.BatchUpdate(cmd.Context(), args[0], []*docsapi.Request{request}); err != nil {
				return err
			}

			printer().Success("Created %dx%d table", rows, columns)
			return nil
		},
	}

	cmd.Flags().Int64Var(&rows, "rows", 3, "Number of rows")
	cmd.Flags().Int64Var(&columns, "columns", 3, "Number of columns")
	cmd.Flags().Int64Var(&index, "index", 1, "Character index to insert at (0 appends to the end)")

	return cmd
}

func newTableListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <document-id>",
		Short: "List the tables in a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := client.GetDocumentContent(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			tables := docs.FindTables(doc)

			p := printer()
			p.Result(map[string]any{"tables": tables}, func(w io.Writer) {
				if len(tables) == 0 {
					fmt.Fprintln(w, "No tables found.")
					return
				}
				rows := make([][]string, len(tables))
				for i, t := range tables {
					rows[i] = []string{
						strconv.Itoa(t.Index),
						fmt.Sprintf("%dx%d", t.Rows, t.Columns),
						strconv.FormatInt(t.StartIndex, 10),
						strconv.FormatInt(t.EndIndex, 10),
					}
				}
				p.Table([]string{"TABLE", "SIZE", "START", "END"}, rows)
			})
			return nil
		},
	}
}

// parseTableIndex parses the positional 0-based table index argument.
func parseTableIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 {
		return 0, docs.Validationf("table index must be a non-negative integer, got %q", arg)
	}
	return index, nil
}

// tableRequest looks up the addressed table and builds one batch
// request against it.
func tableRequest(cmd *cobra.Command, client *docs.Client, documentID string, tableIndex int, build func(docs.TableInfo) (*docsapi.Request, error)) error {
	doc, err := client.GetDocumentContent(cmd.Context(), documentID)
	if err != nil {
		return err
	}
	info, err := docs.TableAt(doc, tableIndex)
	if err != nil {
		return err
	}
	request, err := build(info)
	if err != nil {
		return err
	}
	_, err = client.BatchUpdate(cmd.Context(), documentID, []*docsapi.Request{request})
	return err
}

func newTableAddRowCmd() *cobra.Command {
	var row int64
	var above bool

	cmd := &cobra.Command{
		Use:   "add-row <document-id> <table-index>",
		Short: "Insert a row into a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tableIndex, err := parseTableIndex(args[1])
			if err != nil {
				return err
			}
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			err = tableRequest(cmd, client, args[0], tableIndex, func(info docs.TableInfo) (*docsapi.Request, error) {
				if row < 0 || row >= info.Rows {
					return nil, docs.Validationf("row %d out of range (table has %d rows)", row, info.Rows)
				}
				return docs.InsertTableRowRequest(info.StartIndex, row, !above), nil
			})
			if err != nil {
				return err
			}

			where := "below"
			if above {
				where = "above"
			}
			printer().Success("Inserted row %s row %d of table %d", where, row, tableIndex)
			return nil
		},
	}

	cmd.Flags().Int64Var(&row, "row", 0, "Reference row (0-based)")
	cmd.Flags().BoolVar(&above, "above", false, "Insert above the reference row instead of below")

	return cmd
}

func newTableDeleteRowCmd() *cobra.Command {
	var row int64

	cmd := &cobra.Command{
		Use:   "delete-row <document-id> <table-index>",
		Short: "Delete a row from a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tableIndex, err := parseTableIndex(args[1])
			if err != nil {
				return err
			}
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			err = tableRequest(cmd, client, args[0], tableIndex, func(info docs.TableInfo) (*docsapi.Request, error) {
				if row < 0 || row >= info.Rows {
					return nil, docs.Validationf("row %d out of range (table has %d rows)", row, info.Rows)
				}
				return docs.DeleteTableRowRequest(info.StartIndex, row), nil
			})
			if err != nil {
				return err
			}

			printer().Success("Deleted row %d from table %d", row, tableIndex)
			return nil
		},
	}

	cmd.Flags().Int64Var(&row, "row", 0, "Row to delete (0-based)")

	return cmd
}

func newTableAddColumnCmd() *cobra.Command {
	var column int64
	var left bool

	cmd := &cobra.Command{
		Use:   "add-column <document-id> <table-index>",
		Short: "Insert a column into a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tableIndex, err := parseTableIndex(args[1])
			if err != nil {
				return err
			}
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			err = tableRequest(cmd, client, args[0], tableIndex, func(info docs.TableInfo) (*docsapi.Request, error) {
				if column < 0 || column >= info.Columns {
					return nil, docs.Validationf("column %d out of range (table has %d columns)", column, info.Columns)
				}
				return docs.InsertTableColumnRequest(info.StartIndex, column, !left), nil
			})
			if err != nil {
				return err
			}

			where := "right of"
			if left {
				where = "left of"
			}
			printer().Success("Inserted column %s column %d of table %d", where, column, tableIndex)
			return nil
		},
	}

	cmd.Flags().Int64Var(&column, "column", 0, "Reference column (0-based)")
	cmd.Flags().BoolVar(&left, "left", false, "Insert left of the reference column instead of right")

	return cmd
}

func newTableDeleteColumnCmd() *cobra.Command {
	var column int64

	cmd := &cobra.Command{
		Use:   "delete-column <document-id> <table-index>",
		Short: "Delete a column from a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tableIndex, err := parseTableIndex(args[1])
			if err != nil {
				return err
			}
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			err = tableRequest(cmd, client, args[0], tableIndex, func(info docs.TableInfo) (*docsapi.Request, error) {
				if column < 0 || column >= info.Columns {
					return nil, docs.Validationf("column %d out of range (table has %d columns)", column, info.Columns)
				}
				return docs.DeleteTableColumnRequest(info.StartIndex, column), nil
			})
			if err != nil {
				return err
			}

			printer().Success("Deleted column %d from table %d", column, tableIndex)
			return nil
		},
	}

	cmd.Flags().Int64Var(&column, "column", 0, "Column to delete (0-based)")

	return cmd
}
