package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		stats, err := mgr.Stats()
		if err != nil {
			return err
		}

		fmt.Printf("backups:    %d\n", stats.Count)
		fmt.Printf("total size: %s\n", humanize.Bytes(stats.TotalSizeBytes))
		if stats.Count > 0 {
			fmt.Printf("oldest:     %s\n", stats.Oldest.Format(time.RFC3339))
			fmt.Printf("newest:     %s\n", stats.Newest.Format(time.RFC3339))
		}
		return nil
	},
}
