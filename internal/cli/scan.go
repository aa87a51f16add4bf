package cli

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubematch"
	"github.com/SeamusWaldron/cubematch/internal/capture"
	"github.com/SeamusWaldron/cubematch/internal/capture/ble"
	"github.com/SeamusWaldron/cubematch/internal/cubegen"
	"github.com/SeamusWaldron/cubematch/internal/geometry"
	"github.com/SeamusWaldron/cubematch/internal/storage"
	"github.com/SeamusWaldron/cubematch/internal/tui"
)

var (
	scanSimulate   bool
	scanWatch      bool
	scanNoise      float64
	scanNamePrefix string
	scanAttempts   int
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Capture one facelet scan and resolve it to a face string",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanSimulate, "simulate", false, "Use a simulated device instead of a real dock")
	scanCmd.Flags().Float64Var(&scanNoise, "noise", 0.05, "Fraction of facelets perturbed when --simulate is set")
	scanCmd.Flags().BoolVar(&scanWatch, "watch", false, "Show a live TUI while scanning")
	scanCmd.Flags().StringVar(&scanNamePrefix, "device", "cubedock", "BLE device name prefix to search for")
	scanCmd.Flags().IntVar(&scanAttempts, "attempts", 0, "Per-facelet retry budget (0 uses the library default)")
}

func runScan(cmd *cobra.Command, args []string) error {
	table, err := loadTableFlagOrDefault()
	if err != nil {
		return err
	}

	device, err := openDevice(cmd.Context())
	if err != nil {
		return err
	}
	defer device.Close()

	var opts []cubematch.Option
	if scanAttempts > 0 {
		opts = append(opts, cubematch.WithAttempts(scanAttempts))
	}

	var frame capture.Frame
	var face string
	var scanErr error

	if scanWatch {
		model := tui.NewScanModel(device, table, opts...)
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("tui error: %w", err)
		}
		frame, face, scanErr = model.Result()
	} else {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		frame, scanErr = device.Scan(ctx)
		if scanErr == nil {
			var bgrs [geometry.NumFacelets]cubematch.BGR
			for i, c := range frame {
				bgrs[i] = cubematch.BGR{B: c[0], G: c[1], R: c[2]}
			}
			face, scanErr = cubematch.Match(table, bgrs, opts...)
		}
	}

	if err := recordScan(frame, face, scanErr); err != nil {
		fmt.Printf("warning: failed to record scan: %v\n", err)
	}

	if scanErr != nil {
		return fmt.Errorf("scan failed: %w", scanErr)
	}

	if !scanWatch {
		fmt.Println(face)
	}
	return nil
}

func openDevice(ctx context.Context) (capture.Device, error) {
	if scanSimulate {
		cube := cubegen.NewSolved()
		cube.Scramble(20, rand.New(rand.NewSource(1)))
		return capture.NewSimulated(cube.Colors(), scanNoise, nil), nil
	}

	results, err := ble.Discover(ctx, scanNamePrefix, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("discover dock: %w", err)
	}
	if len(results) == 0 {
		return nil, capture.ErrDeviceNotFound
	}

	dock, err := ble.Connect(results[0])
	if err != nil {
		return nil, fmt.Errorf("connect dock: %w", err)
	}
	return dock, nil
}

func loadTableFlagOrDefault() (*cubematch.Table, error) {
	if tablePath != "" {
		return cubematch.LoadTable(tablePath)
	}
	return loadDefaultTable()
}

func recordScan(frame capture.Frame, face string, scanErr error) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewScanRepository(db)

	facelets := make([]storage.Facelet, geometry.NumFacelets)
	for i, c := range frame {
		f := storage.Facelet{Index: i, B: c[0], G: c[1], R: c[2]}
		if face != "" {
			f.AssignedColor = string(face[i])
		}
		facelets[i] = f
	}

	s := storage.Scan{
		Succeeded:   scanErr == nil,
		FaceString:  face,
		AttemptsCap: scanAttempts,
	}
	if scanErr != nil {
		s.Error = scanErr.Error()
	}

	_, err = repo.Create(s, facelets, nil)
	return err
}

func openDB() (*storage.DB, error) {
	if dbPath != "" {
		return storage.Open(dbPath)
	}
	return storage.OpenDefault()
}
