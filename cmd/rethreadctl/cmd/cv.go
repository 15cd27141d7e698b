package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/rethread-go/rethread/internal/logging"
	"github.com/rethread-go/rethread/wait"
)

var logCV = logging.GetLogger("cmd/cv")

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "wait on a condition variable until interrupted or it fires",
	RunE:  doCV,
}

func registerCV(root *cobra.Command) {
	root.AddCommand(cvCmd)
}

// doCV demonstrates the S1/S2 scenarios: a goroutine blocks on a
// condition variable guarded by the process's signal token, and a
// second goroutine eventually satisfies the predicate it is waiting
// on, racing against an operator hitting Ctrl-C.
func doCV(cmd *cobra.Command, args []string) error {
	token := signalToken()

	var mu sync.Mutex
	cv := wait.NewCond(sync.NewCond(&mu))
	var ready bool

	go func() {
		time.Sleep(5 * time.Second)
		mu.Lock()
		ready = true
		cv.Broadcast()
		mu.Unlock()
	}()

	mu.Lock()
	woke := cv.WaitPredicate(token, func() bool { return ready })
	mu.Unlock()

	if woke {
		logCV.Info("predicate satisfied")
		fmt.Println("cv: predicate satisfied")
	} else {
		logCV.Info("cancelled before predicate was satisfied")
		fmt.Println("cv: cancelled")
	}
	return nil
}
