package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		records, err := mgr.List()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no backups found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCREATED\tSIZE\tVERSION")
		for _, record := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				record.BackupName,
				record.CreatedAt.Format(time.RFC3339),
				humanize.Bytes(record.SizeBytes),
				record.Version,
			)
		}
		return w.Flush()
	},
}
