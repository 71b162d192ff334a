package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kebairia/dmsave/internal/backup"
	"github.com/kebairia/dmsave/internal/logger"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run periodic backups until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cfg, err := newManager()
		if err != nil {
			return err
		}
		if cfg.Backup.Interval <= 0 {
			return fmt.Errorf("backup.interval must be set to schedule backups")
		}

		sched := backup.NewScheduler(mgr, cfg.Backup.Interval, logger.Global())
		sched.Start()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		sched.Stop()
		return nil
	},
}
