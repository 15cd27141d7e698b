// Package cmd implements the subcommands for the rethreadctl
// executable, grounded on oasis-node/cmd's root-command-plus-Register
// convention.
package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rethread-go/rethread"
	"github.com/rethread-go/rethread/internal/logging"
)

const (
	cfgLogFile  = "log.file"
	cfgLogFmt   = "log.format"
	cfgLogLevel = "log.level"
)

var rootFlags = pflag.NewFlagSet("", pflag.ContinueOnError)

var rootCmd = &cobra.Command{
	Use:           "rethreadctl",
	Short:         "exercise rethread's cancellation primitives",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command, exiting the process with status 1
// on error, matching oasis-node's Execute.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		if err := initLogging(); err != nil {
			fmt.Fprintf(os.Stderr, "rethreadctl: failed to initialize logging: %v\n", err)
			os.Exit(1)
		}
	})

	logLevel := logging.LevelInfo
	rootFlags.String(cfgLogFile, "", "log file (default: stderr)")
	rootFlags.String(cfgLogFmt, "logfmt", "log format: logfmt or json")
	rootFlags.Var(&logLevel, cfgLogLevel, "log level")
	_ = viper.BindPFlags(rootFlags)

	rootCmd.PersistentFlags().AddFlagSet(rootFlags)

	for _, register := range []func(*cobra.Command){
		registerCV,
		registerSleep,
		registerSource,
		registerSupervise,
		registerPoll,
	} {
		register(rootCmd)
	}
}

func initLogging() error {
	var logLevel logging.Level
	if err := logLevel.Set(viper.GetString(cfgLogLevel)); err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if f := viper.GetString(cfgLogFile); f != "" {
		fh, err := os.OpenFile(f, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return err
		}
		w = fh
	}

	if err := logging.Initialize(w, viper.GetString(cfgLogFmt), logLevel); err != nil {
		if err.Error() == "logging: already initialized" {
			return nil
		}
		return err
	}
	return nil
}

// signalToken returns a StandaloneToken that gets cancelled the first
// time the process receives SIGINT or SIGTERM, freeing every demo
// subcommand from rolling its own signal plumbing.
func signalToken() *rethread.StandaloneToken {
	token := rethread.NewStandaloneToken()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		token.Cancel()
	}()

	return token
}
