package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubematch"
	"github.com/SeamusWaldron/cubematch/internal/geometry"
	"github.com/SeamusWaldron/cubematch/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <scan-id>",
	Short: "Re-run the matcher against a previously recorded scan's raw facelets",
	Long: `Replay loads the stored BGR samples for a scan and runs them back
through Match, using the current prior table. This is useful for
checking whether a table update or attempts-budget change fixes a scan
that previously failed, without needing the physical cube again.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().IntVar(&scanAttempts, "attempts", 0, "Per-facelet retry budget (0 uses the library default)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	scanID := args[0]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewScanRepository(db)
	scan, err := repo.Get(scanID)
	if err != nil {
		return fmt.Errorf("load scan: %w", err)
	}
	if scan == nil {
		matches, err := findByPrefix(repo, scanID)
		if err != nil {
			return err
		}
		if len(matches) != 1 {
			return fmt.Errorf("no scan uniquely matching %q", scanID)
		}
		scan = &matches[0]
	}

	facelets, err := repo.Facelets(scan.ScanID)
	if err != nil {
		return fmt.Errorf("load facelets: %w", err)
	}
	if len(facelets) != geometry.NumFacelets {
		return fmt.Errorf("scan %s has %d stored facelets, want %d", scan.ScanID, len(facelets), geometry.NumFacelets)
	}

	table, err := loadTableFlagOrDefault()
	if err != nil {
		return err
	}

	var bgrs [geometry.NumFacelets]cubematch.BGR
	for _, f := range facelets {
		bgrs[f.Index] = cubematch.BGR{B: f.B, G: f.G, R: f.R}
	}

	var opts []cubematch.Option
	if scanAttempts > 0 {
		opts = append(opts, cubematch.WithAttempts(scanAttempts))
	}

	face, err := cubematch.Match(table, bgrs, opts...)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	fmt.Println(face)
	return nil
}

func findByPrefix(repo *storage.ScanRepository, prefix string) ([]storage.Scan, error) {
	all, err := repo.List(10000)
	if err != nil {
		return nil, err
	}
	var out []storage.Scan
	for _, s := range all {
		if strings.HasPrefix(s.ScanID, prefix) {
			out = append(out, s)
		}
	}
	return out, nil
}
