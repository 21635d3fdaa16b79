// Command committee is the command line companion of the committee site:
// browse the content, count views and likes against a running server, send
// the contact form and migrate the stats table.
package main

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wadjakorntonsri/committee-site/pkg/config"
	"github.com/wadjakorntonsri/committee-site/pkg/logger"
)

// cli holds the state shared by every subcommand.
type cli struct {
	cfg        *config.Config
	log        *zap.Logger
	serverURL  string
	deviceFile string
	timeout    time.Duration
}

func newRootCmd(cfg *config.Config, log *zap.Logger) *cobra.Command {
	c := &cli{cfg: cfg, log: log}

	root := &cobra.Command{
		Use:           "committee",
		Short:         "Command line client for the committee site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.serverURL, "server", cfg.BaseURL, "Base URL of the committee server")
	root.PersistentFlags().StringVar(&c.deviceFile, "device-file", defaultDeviceFile(), "File remembering the records liked from this machine")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 30*time.Second, "Operation timeout")

	root.AddCommand(c.browseCmd())
	root.AddCommand(c.statsCmd())
	root.AddCommand(c.contactCmd())
	root.AddCommand(c.exportCmd())
	root.AddCommand(c.importCmd())
	return root
}

func defaultDeviceFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".committee-likes.json"
	}
	return dir + "/committee/likes.json"
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := newRootCmd(cfg, log).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
