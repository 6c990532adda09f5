package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <record-id>",
	Short: "Restore the server's store from a backup archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid record id: %s", args[0])
		}

		if err := newClient().RestoreBackup(cmd.Context(), id); err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}

		fmt.Printf("Restored from backup %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
