package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func runExport(cmd *cobra.Command, args []string) error {
	out := exportOut
	if out == "" {
		out = fmt.Sprintf("budget-request-%d.xlsx", exportID)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}

	if err := current.usecases.Exports.Export(cmd.Context(), exportID, f); err != nil {
		f.Close()
		_ = os.Remove(out)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported budget request %d to %s\n", exportID, out)
	return nil
}
