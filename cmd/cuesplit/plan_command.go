package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cuesplit/internal/splitplan"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "plan <cue-file>",
		Short: "Print the split plan for a standalone CUE sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cuePath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve cue path: %w", err)
			}
			dir := strings.TrimSpace(root)
			if dir == "" {
				dir = filepath.Dir(cuePath)
			} else if dir, err = filepath.Abs(dir); err != nil {
				return fmt.Errorf("resolve root: %w", err)
			}

			planner := splitplan.NewPlanner(ctx.configValue(), ctx.loggerValue())
			plan, err := planner.FromStandaloneCue(dir, cuePath)
			if err != nil {
				return fmt.Errorf("plan %s: %w", cuePath, err)
			}
			return writePlan(cmd, ctx.outputFormat(cmd), plan)
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Directory the sheet's FILE entry is resolved against (default: the sheet's directory)")
	return cmd
}
