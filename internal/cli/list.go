package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored budget records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fail("%v", err)
		}

		summaries, err := c.List(context.Background())
		if err != nil {
			return fail("listing records: %v", err)
		}
		if len(summaries) == 0 {
			fmt.Println("No records.")
			return nil
		}
		for _, s := range summaries {
			fmt.Printf("%s\t%s\t%s\tbudget=%.2f\tspent=%.2f\n",
				s.MuniCode, s.MuniName, s.Province, s.TotalBudget, s.TotalSpent)
		}
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <code>",
	Short: "Fetch one stored budget record by municipal code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fail("%v", err)
		}

		record, err := c.GetByCode(context.Background(), args[0])
		if err != nil {
			return fail("fetching record: %v", err)
		}

		out, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fail("formatting record: %v", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
}
