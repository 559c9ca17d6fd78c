package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/persistence/snapshot"
)

// NewSnapshotCommand creates the snapshot command, which prints the
// workspace document the server would start from.
func NewSnapshotCommand(load configLoader) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the current snapshot document as JSON",
		Long: `Loads the snapshot the server would start from and prints it.

A missing or unreadable snapshot is reseeded exactly as on server start.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}

			store := snapshot.Open(snapshot.Options{
				Enabled: cfg.EnablePersistence,
				DataDir: cfg.DataDir,
			}, zap.NewNop())
			defer store.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(store.Snapshot())
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "snapshot directory (overrides DATA_DIR)")

	return cmd
}
