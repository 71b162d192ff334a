package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove backups beyond the retention count",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		removed, err := mgr.Cleanup()
		if err != nil {
			return err
		}
		fmt.Printf("removed %d backup(s)\n", removed)
		return nil
	},
}
