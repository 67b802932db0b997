package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"munibudget/internal/client"
	"munibudget/internal/form"
	"munibudget/internal/localstore"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check API connectivity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fail("%v", err)
		}
		if c.Probe(context.Background()) {
			fmt.Println("connected")
			return nil
		}
		fmt.Println("disconnected (saves will go to the local store)")
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save <draft.json>",
	Short: "Save a budget draft, remotely or to the local fallback store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := readDraft(args[0])
		if err != nil {
			return fail("%v", err)
		}

		c, err := newClient()
		if err != nil {
			return fail("%v", err)
		}

		result, err := c.Save(context.Background(), draft)
		if err != nil {
			return fail("save failed: %v", err)
		}

		switch result.StorageMode {
		case client.StorageLocal:
			fmt.Printf("Saved offline (%s): data is stored on this device only\n", result.Outcome)
		default:
			fmt.Printf("Saved (%s)\n", result.Outcome)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <draft.json>",
	Short: "Print a draft in the Thai-labeled export format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := readDraft(args[0])
		if err != nil {
			return fail("%v", err)
		}

		out, err := json.MarshalIndent(localstore.FromForm(draft), "", "  ")
		if err != nil {
			return fail("formatting draft: %v", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

// readDraft loads an English-keyed draft file and normalizes it through
// the form controller so the derived total is consistent.
func readDraft(path string) (form.Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return form.Data{}, fmt.Errorf("reading draft: %w", err)
	}
	var draft form.Data
	if err := json.Unmarshal(raw, &draft); err != nil {
		return form.Data{}, fmt.Errorf("parsing draft: %w", err)
	}

	var total float64
	for _, p := range draft.Plans {
		total += p.Actual
	}
	draft.TotalSpent = total
	return draft, nil
}

func init() {
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(exportCmd)
}
