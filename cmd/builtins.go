package cmd

import (
	"fmt"
	"sort"

	"github.com/josephlewis42/msh/core/shell"
	"github.com/spf13/cobra"
)

// builtinsCmd lists what the shell handles itself
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands and special variables of the shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		var builtins []string

		for _, name := range shell.NewBuiltinTable().Names() {
			builtins = append(builtins, "builtin:"+name)
		}

		for _, trigger := range shell.NewVariables(shell.NewState(0)).Triggers() {
			builtins = append(builtins, "variable:"+trigger)
		}

		sort.Strings(builtins)

		for _, v := range builtins {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
