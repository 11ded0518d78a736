package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sentimenthub/sentimenthub/pkg/taxonomy"
)

func NewTaxonomyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Print the classification taxonomy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaxonomy()
		},
	}

	return cmd
}

func runTaxonomy() error {
	// Printing the taxonomy needs no provider credentials, so skip the
	// full config load and honor only the taxonomy path override.
	registry, err := loadRegistry(&Config{TaxonomyPath: os.Getenv("SENTIMENT_TAXONOMY_PATH")})
	if err != nil {
		return err
	}

	for _, category := range registry.Categories() {
		fmt.Println(category)

		for _, sentiment := range taxonomy.Sentiments {
			subs := registry.SubcategoriesFor(category, sentiment)
			if len(subs) == 0 {
				continue
			}

			fmt.Printf("  %s:\n", sentiment)
			for _, sub := range subs {
				fmt.Printf("    - %s\n", sub)
			}
		}
	}

	return nil
}
