package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rethread-go/rethread"
	"github.com/rethread-go/rethread/internal/logging"
	"github.com/rethread-go/rethread/wait"
)

var logSource = logging.GetLogger("cmd/source")

var sourceFlags = pflag.NewFlagSet("", pflag.ContinueOnError)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "broadcast-cancel a pool of workers waiting on their own tokens",
	RunE:  doSource,
}

func registerSource(root *cobra.Command) {
	sourceFlags.Int("workers", 4, "number of workers subscribed to the source")
	sourceCmd.Flags().AddFlagSet(sourceFlags)
	root.AddCommand(sourceCmd)
}

func doSource(cmd *cobra.Command, args []string) error {
	n, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return err
	}

	sigToken := signalToken()
	source := rethread.NewSource()
	chain := rethread.NewChain(sigToken, source)
	defer chain.Close()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		token := source.NewToken()

		var mu sync.Mutex
		cv := wait.NewCond(sync.NewCond(&mu))

		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.Lock()
			cv.WaitPredicate(token, func() bool { return false })
			mu.Unlock()
			logSource.Info("worker stopped", "worker", i)
		}()
	}

	fmt.Printf("source: %d workers waiting, Ctrl-C to cancel all of them\n", n)
	wg.Wait()
	fmt.Println("source: all workers stopped")
	return nil
}
