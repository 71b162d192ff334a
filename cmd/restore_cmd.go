package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var restoreTarget string

var restoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Replace the store contents with a backup",
	Long: `restore validates the named backup, snapshots the current store
under the pre_restore_ prefix, then replaces the store files with the
backup's contents. Make sure nothing is using the store while this
runs; the replace is not atomic.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		if err := mgr.Restore(args[0], restoreTarget); err != nil {
			return err
		}
		fmt.Printf("restored %s\n", args[0])
		return nil
	},
}

func init() {
	restoreCmd.Flags().
		StringVarP(&restoreTarget, "target", "t", "", "restore into this path instead of the configured store path")
}
