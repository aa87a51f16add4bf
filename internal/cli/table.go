package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubematch"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Manage the color-classifier prior table",
}

var tableLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Validate a prior table file and install it as the default",
	Long: `Load checks that <file> is a well-formed prior table (16,777,216
BGR entries, six little-endian color scores each) and copies it to the
default table path so scan/watch commands can find it without --table.`,
	Args: cobra.ExactArgs(1),
	RunE: runTableLoad,
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.AddCommand(tableLoadCmd)
}

func runTableLoad(cmd *cobra.Command, args []string) error {
	src := args[0]

	if _, err := cubematch.LoadTable(src); err != nil {
		return fmt.Errorf("invalid prior table: %w", err)
	}

	dst, err := defaultTablePath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read table: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("create table directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("install table: %w", err)
	}

	fmt.Printf("Installed prior table at %s\n", dst)
	return nil
}

func defaultTablePath() (string, error) {
	if tablePath != "" {
		return tablePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".cubematch", "prior.bin"), nil
}

func loadDefaultTable() (*cubematch.Table, error) {
	path, err := defaultTablePath()
	if err != nil {
		return nil, err
	}
	return cubematch.LoadTable(path)
}
