package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <name>",
	Short: "Check a backup's structural integrity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		ok, err := mgr.Verify(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("backup %s failed verification", args[0])
		}
		fmt.Printf("backup %s is valid\n", args[0])
		return nil
	},
}
