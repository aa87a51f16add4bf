package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubematch/internal/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent scans",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of scans to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewScanRepository(db)
	scans, err := repo.List(historyLimit)
	if err != nil {
		return fmt.Errorf("list scans: %w", err)
	}

	if len(scans) == 0 {
		fmt.Println("No scans recorded yet.")
		return nil
	}

	for _, s := range scans {
		status := "ok"
		if !s.Succeeded {
			status = "failed: " + s.Error
		}
		fmt.Printf("%s  %s  %s\n", s.ScanID[:8], s.CreatedAt.Format("2006-01-02 15:04:05"), status)
	}
	return nil
}
