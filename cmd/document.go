package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gdocs-cli/gdocs/internal/docs"
)

func newDocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Create, find, share and manage documents",
	}

	cmd.AddCommand(newDocCreateCmd())
	cmd.AddCommand(newDocListCmd())
	cmd.AddCommand(newDocSearchCmd())
	cmd.AddCommand(newDocGetCmd())
	cmd.AddCommand(newDocDeleteCmd())
	cmd.AddCommand(newDocMoveCmd())
	cmd.AddCommand(newDocShareCmd())
	cmd.AddCommand(newDocPermissionsCmd())
	cmd.AddCommand(newDocUnshareCmd())
	cmd.AddCommand(newDocRevisionsCmd())

	return cmd
}

func newDocCreateCmd() *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			doc, err := client.CreateDocument(cmd.Context(), args[0], folderID)
			if err != nil {
				return err
			}

			printer().Result(doc, func(w io.Writer) {
				fmt.Fprintf(w, "Created document: %s\n", doc.Title)
				fmt.Fprintf(w, "ID:  %s\n", doc.ID)
				fmt.Fprintf(w, "URL: %s\n", doc.URL())
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "Folder ID to create the document in")

	return cmd
}

func newDocListCmd() *cobra.Command {
	var limit int64
	var folderID, driveID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			summaries, err := client.ListDocuments(cmd.Context(), &docs.ListOptions{
				Limit:         limit,
				FolderID:      folderID,
				SharedDriveID: driveID,
			})
			if err != nil {
				return err
			}

			printSummaries(summaries)
			return nil
		},
	}

	cmd.Flags().Int64Var(&limit, "limit", 20, "Maximum number of documents to list")
	cmd.Flags().StringVar(&folderID, "folder", "", "Only list documents in this folder")
	cmd.Flags().StringVar(&driveID, "drive", "", "Only list documents in this Shared Drive")

	return cmd
}

func newDocSearchCmd() *cobra.Command {
	var limit int64

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find documents by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			summaries, err := client.SearchDocuments(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			printSummaries(summaries)
			return nil
		},
	}

	cmd.Flags().Int64Var(&limit, "limit", 20, "Maximum number of results")

	return cmd
}

func printSummaries(summaries []*docs.DocumentSummary) {
	p := printer()
	p.Result(map[string]any{"documents": summaries}, func(w io.Writer) {
		if len(summaries) == 0 {
			fmt.Fprintln(w, "No documents found.")
			return
		}
		rows := make([][]string, len(summaries))
		for i, s := range summaries {
			rows[i] = []string{s.ID, s.ModifiedTime, s.Title}
		}
		p.Table([]string{"ID", "MODIFIED", "TITLE"}, rows)
	})
}

func newDocGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <document-id>",
		Short: "Show document metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			doc, err := client.GetDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printer().Result(doc, func(w io.Writer) {
				fmt.Fprintf(w, "Title:    %s\n", doc.Title)
				fmt.Fprintf(w, "ID:       %s\n", doc.ID)
				fmt.Fprintf(w, "Revision: %s\n", doc.RevisionID)
				fmt.Fprintf(w, "URL:      %s\n", doc.URL())
			})
			return nil
		},
	}
}

func newDocDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <document-id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return docs.Validationf("refusing to delete without --force")
			}

			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}
			if err := client.DeleteDocument(cmd.Context(), args[0]); err != nil {
				return err
			}

			printer().Success("Deleted document %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm the deletion")

	return cmd
}

func newDocMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <document-id> <folder-id>",
		Short: "Move a document into a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}
			if err := client.MoveDocument(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			printer().Success("Moved document %s to folder %s", args[0], args[1])
			return nil
		},
	}
}

func newDocShareCmd() *cobra.Command {
	var role, message string
	var notify bool

	cmd := &cobra.Command{
		Use:   "share <document-id> <email>",
		Short: "Grant a user access to a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			permission, err := client.ShareDocument(cmd.Context(), args[0], &docs.ShareOptions{
				Email:            args[1],
				Role:             role,
				SendNotification: notify,
				Message:          message,
			})
			if err != nil {
				return err
			}

			printer().Result(permission, func(w io.Writer) {
				fmt.Fprintf(w, "Shared with %s as %s (permission %s)\n",
					args[1], permission.Role, permission.ID)
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "reader", "Access role: reader, commenter or writer")
	cmd.Flags().BoolVar(&notify, "notify", false, "Send a notification email")
	cmd.Flags().StringVar(&message, "message", "", "Message for the notification email")

	return cmd
}

func newDocPermissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "permissions <document-id>",
		Short: "List who has access to a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			permissions, err := client.ListPermissions(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			p := printer()
			p.Result(map[string]any{"permissions": permissions}, func(w io.Writer) {
				if len(permissions) == 0 {
					fmt.Fprintln(w, "No permissions found.")
					return
				}
				rows := make([][]string, len(permissions))
				for i, perm := range permissions {
					who := perm.EmailAddress
					if who == "" {
						who = perm.DisplayName
					}
					rows[i] = []string{perm.ID, perm.Role, perm.Type, who}
				}
				p.Table([]string{"ID", "ROLE", "TYPE", "WHO"}, rows)
			})
			return nil
		},
	}
}

func newDocUnshareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unshare <document-id> <permission-id>",
		Short: "Revoke an access grant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}
			if err := client.UnshareDocument(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			printer().Success("Removed permission %s from document %s", args[1], args[0])
			return nil
		},
	}
}

func newDocRevisionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revisions <document-id>",
		Short: "List the revision history of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			revisions, err := client.ListRevisions(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			p := printer()
			p.Result(map[string]any{"revisions": revisions}, func(w io.Writer) {
				if len(revisions) == 0 {
					fmt.Fprintln(w, "No revisions found.")
					return
				}
				rows := make([][]string, len(revisions))
				for i, r := range revisions {
					rows[i] = []string{r.ID, r.ModifiedTime, r.LastModifyingUser}
				}
				p.Table([]string{"ID", "MODIFIED", "BY"}, rows)
			})
			return nil
		},
	}
}
