package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"munibudget/internal/reference"
)

// searchResultLimit mirrors the form's visible result cap.
const searchResultLimit = 7

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search municipalities by name or code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		munis := loadReference()
		if len(munis) == 0 {
			return fail("no municipality data available")
		}

		results := reference.SearchByName(munis, args[0])
		if len(results) > searchResultLimit {
			results = results[:searchResultLimit]
		}
		if len(results) == 0 {
			fmt.Println("No matches.")
			return nil
		}
		for _, m := range results {
			fmt.Printf("%s\t%s\t%s\t%s\n", m.Code, m.Name, m.Province, m.Website)
		}
		return nil
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <code>",
	Short: "Look up a municipality by exact code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		munis := loadReference()
		m, ok := reference.FindByCode(munis, args[0])
		if !ok {
			return fail("no municipality with code %q", args[0])
		}
		fmt.Printf("Code:     %s\n", m.Code)
		fmt.Printf("Name:     %s\n", m.Name)
		fmt.Printf("Type:     %s\n", m.Type)
		fmt.Printf("District: %s\n", m.District)
		fmt.Printf("Province: %s\n", m.Province)
		fmt.Printf("Region:   %s\n", m.Region)
		fmt.Printf("Website:  %s\n", m.Website)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(lookupCmd)
}
