// Package main provides the entry point for the Network Settings application.
// Network Settings is a GTK4 front-end for the ConnMan network daemon. It
// lists the technologies the daemon manages (Wi-Fi, Ethernet, Bluetooth, ...)
// and lets the user switch them on and off, scan and share connections.
//
// Usage:
//
//	connman-gtk [flags]
//
// Environment:
//
//	The application talks to ConnMan (net.connman) on the D-Bus system bus.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yllada/connman-gtk/cli"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/config"
	"github.com/yllada/connman-gtk/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	verbose    bool
	configPath string
	busName    string

	rootCmd = &cobra.Command{
		Use:           "connman-gtk",
		Short:         "Manage ConnMan network technologies",
		Long:          "A GTK4 front-end for the ConnMan network daemon.",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Unknown flags belong to GTK; run hands them to the application.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE:               run,
	}
)

func init() {
	rootCmd.SetVersionTemplate(versionString())
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().StringVar(&configPath, "config", "", "configuration file (default ~/.config/connman-gtk/config.yaml)")
	rootCmd.Flags().StringVar(&busName, "bus", "", "message bus the daemon is on: system or session (overrides the configuration)")
}

func versionString() string {
	s := fmt.Sprintf("%s v%s\n", common.AppName, appVersion)
	if buildTime != "unknown" {
		s += fmt.Sprintf("  Build:  %s\n  Commit: %s\n", buildTime, commitSHA)
	}
	return s
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logLevel := common.LevelInfo
	if verbose {
		logLevel = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:       logLevel,
		EnableFile:  true,
		MaxFileSize: 5,
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	cfg, err := loadConfig()
	if err != nil {
		common.LogWarn("Using default configuration: %v", err)
	}

	bus, err := cli.ResolveBus(cfg, busName)
	if err != nil {
		return err
	}

	common.LogInfo("Starting %s v%s", common.AppName, appVersion)
	app := ui.NewApplication(ui.Options{
		Config:  cfg,
		Version: appVersion,
		Bus:     bus,
	})

	// SIGINT and SIGTERM shut the application down cleanly
	setupSignalHandler(app)

	exitCode := app.Run(append([]string{os.Args[0]}, cli.ApplicationArgs(cmd.Flags(), os.Args[1:])...))
	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
		return fmt.Errorf("exited with code %d", exitCode)
	}
	return nil
}

// loadConfig returns the configuration. On error the returned config holds
// the defaults.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return cfg, err
}

// setupSignalHandler quits the application on SIGINT/SIGTERM.
func setupSignalHandler(app *ui.Application) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, initiating graceful shutdown...", sig)
		app.RequestQuit()
	}()
}
