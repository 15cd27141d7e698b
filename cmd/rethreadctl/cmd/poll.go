//go:build unix

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/rethread-go/rethread/internal/logging"
	"github.com/rethread-go/rethread/wait"
)

var logPoll = logging.GetLogger("cmd/poll")

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "wait for stdin to become readable, interruptibly",
	RunE:  doPoll,
}

func registerPoll(root *cobra.Command) {
	root.AddCommand(pollCmd)
}

func doPoll(cmd *cobra.Command, args []string) error {
	token := signalToken()

	fmt.Println("poll: waiting for input on stdin, Ctrl-C to cancel")
	revents, err := wait.Poll(int(os.Stdin.Fd()), unix.POLLIN, token)
	if err != nil {
		return err
	}

	if revents == 0 {
		logPoll.Info("poll cancelled")
		fmt.Println("poll: cancelled")
		return nil
	}

	logPoll.Info("stdin became readable", "revents", revents)
	fmt.Println("poll: stdin is readable")
	return nil
}
