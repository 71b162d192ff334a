package cmd

import (
	"fmt"
	"os"

	"github.com/kebairia/dmsave/internal/backup"
	"github.com/kebairia/dmsave/internal/config"
	"github.com/kebairia/dmsave/internal/logger"
	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// ConfigFile is the path to the YAML configuration.
var (
	ConfigFile string
	// rootCmd is the base command for dmsave.
	rootCmd = &cobra.Command{
		Use:   "dmsave",
		Short: "Backup and restore tool for the dmpool datastore",
		Long: `dmsave takes point-in-time backups of the dmpool datastore,
keeps them under a retention policy, and restores them with a
pre-restore safety snapshot.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() {
	log, err := logger.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "error", err.Error())
		os.Exit(1)
	}
}

// newManager loads the configuration and builds the backup manager
// shared by every subcommand.
func newManager() (*backup.Manager, config.Config, error) {
	var cfg config.Config
	if err := cfg.Load(ConfigFile); err != nil {
		return nil, cfg, err
	}
	mgr, err := backup.NewManager(cfg, backup.WithVersion(version))
	if err != nil {
		return nil, cfg, err
	}
	return mgr, cfg, nil
}

func init() {
	rootCmd.PersistentFlags().
		StringVarP(&ConfigFile, "config", "c", "./configs/config.yaml", "path to YAML config file")

	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(scheduleCmd)
}
