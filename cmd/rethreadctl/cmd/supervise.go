package cmd

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"

	"github.com/rethread-go/rethread"
	"github.com/rethread-go/rethread/internal/logging"
	"github.com/rethread-go/rethread/worker"
)

var logSupervise = logging.GetLogger("cmd/supervise")

var superviseCmd = &cobra.Command{
	Use:   "supervise",
	Short: "run a flaky task under a restart-with-backoff policy until it succeeds or is interrupted",
	RunE:  doSupervise,
}

func registerSupervise(root *cobra.Command) {
	root.AddCommand(superviseCmd)
}

func doSupervise(cmd *cobra.Command, args []string) error {
	token := signalToken()

	flaky := func(inner *rethread.StandaloneToken) error {
		if rand.Intn(3) != 0 {
			return errors.New("task failed transiently")
		}
		return nil
	}

	sw := worker.Supervised(flaky, backoff.NewExponentialBackOff(), func(attempt int, err error) {
		logSupervise.Warn("restarting after failure", "attempt", attempt, "err", err)
		fmt.Printf("supervise: attempt %d failed: %v\n", attempt, err)
	})

	// Chain propagates an operator's Ctrl-C into the supervised
	// worker's own token without forcing it to give up the moment
	// the command starts, the way Stop alone would.
	chain := rethread.NewChain(token, sw.Token())
	defer chain.Close()

	sw.Wait()
	if err := sw.Stop(); err != nil {
		fmt.Printf("supervise: gave up: %v\n", err)
	} else {
		fmt.Println("supervise: succeeded")
	}
	return nil
}
