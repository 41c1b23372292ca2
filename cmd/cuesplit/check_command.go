package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cuesplit/internal/preflight"
)

type checkRow struct {
	Name     string `json:"name" yaml:"name"`
	Passed   bool   `json:"passed" yaml:"passed"`
	Optional bool   `json:"optional" yaml:"optional"`
	Detail   string `json:"detail" yaml:"detail"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [library-root]",
		Short: "Check external tools and directory permissions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			libraryRoot := ""
			if len(args) == 1 {
				libraryRoot = args[0]
			}
			results := preflight.RunAll(ctx.configValue(), libraryRoot)

			rows := make([]checkRow, 0, len(results))
			for _, r := range results {
				rows = append(rows, checkRow(r))
			}
			done, err := writeStructured(cmd, ctx.outputFormat(cmd), rows)
			if err != nil {
				return err
			}
			if !done {
				fmt.Fprintln(cmd.OutOrStdout(), checkTable(rows))
			}
			if preflight.Failed(results) {
				return errors.New("one or more required checks failed")
			}
			return nil
		},
	}
}
