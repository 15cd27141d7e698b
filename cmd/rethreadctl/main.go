// Command rethreadctl exercises the rethread primitives from the
// command line, the way oasis-node's subcommands exercise a single
// piece of node machinery each.
package main

import (
	"github.com/rethread-go/rethread/cmd/rethreadctl/cmd"
)

func main() {
	cmd.Execute()
}
