package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Take a point-in-time backup of the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		record, err := mgr.Create()
		if err != nil {
			return err
		}
		fmt.Printf("created %s (%s)\n", record.BackupName, humanize.Bytes(record.SizeBytes))
		return nil
	},
}
