// Package cli implements the command-line front end for the data-entry
// workflow: probing the API, searching the reference list, and saving
// budget drafts remotely or to the local fallback store.
package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"munibudget/internal/client"
	"munibudget/internal/config"
	"munibudget/internal/localstore"
	"munibudget/internal/logger"
	"munibudget/internal/reference"
)

var (
	apiBaseURL   string
	muniListPath string
	storeDir     string
)

var rootCmd = &cobra.Command{
	Use:   "form",
	Short: "Municipality budget data-entry client",
	Long: `form enters Thai municipal budget data against the Municipality
Budget API, with a local fallback store when the server is unreachable.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cfg := config.Get()
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", cfg.APIBaseURL, "API base URL")
	rootCmd.PersistentFlags().StringVar(&muniListPath, "data", cfg.MuniListPath, "municipality reference dataset path")
	rootCmd.PersistentFlags().StringVar(&storeDir, "store", cfg.LocalStoreDir, "local fallback store directory")
}

// newClient builds the persistence gateway with the local fallback store.
func newClient() (*client.Client, error) {
	store, err := localstore.New(storeDir)
	if err != nil {
		return nil, err
	}
	return client.New(apiBaseURL, &http.Client{Timeout: 15 * time.Second}, store), nil
}

// loadReference loads the municipality list, degrading to an empty list
// on failure so search and autofill are disabled rather than fatal.
func loadReference() []reference.Municipality {
	munis, err := reference.LoadFile(muniListPath)
	if err != nil {
		logger.Get().Errorf("Failed to load municipality data: %v", err)
		return nil
	}
	return munis
}

func fail(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	fmt.Fprintln(os.Stderr, "Error:", err)
	return err
}
