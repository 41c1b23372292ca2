package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cuesplit/internal/splitplan"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML encodes v as YAML to the command's stdout.
func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeStructured writes v as JSON or YAML; it reports false for table output.
func writeStructured(cmd *cobra.Command, format outputFormat, v any) (bool, error) {
	switch format {
	case formatYAML:
		return true, writeYAML(cmd, v)
	case formatTable:
		return false, nil
	default:
		return true, writeJSON(cmd, v)
	}
}

func writePlan(cmd *cobra.Command, format outputFormat, plan splitplan.AlbumProcess) error {
	if done, err := writeStructured(cmd, format, plan); done || err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), planTables(plan.Record()))
	return nil
}
