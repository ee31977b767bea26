package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newDrivesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drives",
		Short: "Browse Shared Drives and folders",
	}

	cmd.AddCommand(newDrivesListCmd())
	cmd.AddCommand(newDrivesFoldersCmd())

	return cmd
}

func newDrivesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the Shared Drives you can access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			drives, err := client.ListSharedDrives(cmd.Context())
			if err != nil {
				return err
			}

			p := printer()
			p.Result(map[string]any{"drives": drives}, func(w io.Writer) {
				if len(drives) == 0 {
					fmt.Fprintln(w, "No shared drives found.")
					return
				}
				rows := make([][]string, len(drives))
				for i, d := range drives {
					rows[i] = []string{d.ID, d.Name}
				}
				p.Table([]string{"ID", "NAME"}, rows)
			})
			return nil
		},
	}
}

func newDrivesFoldersCmd() *cobra.Command {
	var parentID, driveID string

	cmd := &cobra.Command{
		Use:   "folders",
		Short: "List folders in My Drive or a Shared Drive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := resolveClient(cmd.Context())
			if err != nil {
				return err
			}

			folders, err := client.ListFolders(cmd.Context(), parentID, driveID)
			if err != nil {
				return err
			}

			p := printer()
			p.Result(map[string]any{"folders": folders}, func(w io.Writer) {
				if len(folders) == 0 {
					fmt.Fprintln(w, "No folders found.")
					return
				}
				rows := make([][]string, len(folders))
				for i, f := range folders {
					rows[i] = []string{f.ID, f.Name}
				}
				p.Table([]string{"ID", "NAME"}, rows)
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&parentID, "parent", "", "Only list folders under this parent folder")
	cmd.Flags().StringVar(&driveID, "drive", "", "List folders in this Shared Drive")

	return cmd
}
