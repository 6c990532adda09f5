package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmolenaar/pharmvault/internal/core/domain"
)

var backupType string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a backup archive",
	Long:  "Ask the running server to snapshot its store to a JSON archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch domain.BackupType(backupType) {
		case domain.BackupTypeManual, domain.BackupTypeDaily, domain.BackupTypeWeekly, domain.BackupTypeMonthly:
		default:
			return fmt.Errorf("invalid backup type: %s", backupType)
		}

		record, err := newClient().CreateBackup(cmd.Context(), backupType)
		if err != nil {
			return err
		}

		fmt.Printf("Backup %s\n", record.Status)
		fmt.Printf("Record ID: %d\n", record.ID)
		fmt.Printf("Filename:  %s\n", record.Filename)
		fmt.Printf("Size:      %d bytes\n", record.SizeBytes)

		if record.Status == string(domain.BackupStatusFailed) {
			return fmt.Errorf("backup failed, see record %d", record.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().StringVar(&backupType, "type", "manual", "backup type (manual, daily, weekly, monthly)")
}
