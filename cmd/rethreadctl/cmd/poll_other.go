//go:build !unix

package cmd

import "github.com/spf13/cobra"

// registerPoll is a no-op off unix: Poll relies on the self-pipe
// trick over a unix poll(2)/pipe2(2), which has no portable
// equivalent in this module.
func registerPoll(root *cobra.Command) {}
