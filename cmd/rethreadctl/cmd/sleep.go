package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rethread-go/rethread/internal/logging"
	"github.com/rethread-go/rethread/wait"
)

var logSleep = logging.GetLogger("cmd/sleep")

var sleepFlags = pflag.NewFlagSet("", pflag.ContinueOnError)

var sleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "sleep for a duration, interruptibly",
	RunE:  doSleep,
}

func registerSleep(root *cobra.Command) {
	sleepFlags.Duration("for", 10*time.Second, "duration to sleep")
	sleepCmd.Flags().AddFlagSet(sleepFlags)
	root.AddCommand(sleepCmd)
}

func doSleep(cmd *cobra.Command, args []string) error {
	d, err := cmd.Flags().GetDuration("for")
	if err != nil {
		return err
	}

	token := signalToken()

	logSleep.Info("sleeping", "duration", d)
	if wait.SleepFor(d, token) {
		fmt.Printf("sleep: slept the full %s\n", d)
	} else {
		fmt.Println("sleep: interrupted")
	}
	return nil
}
