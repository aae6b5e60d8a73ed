package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tekkistudio/salesbot/internal/catalog"
	"github.com/tekkistudio/salesbot/internal/db"
	"github.com/tekkistudio/salesbot/internal/knowledge"
	"github.com/tekkistudio/salesbot/internal/progress"
)

// seedFile is the YAML layout of a seed file: the catalog listings and the
// optional fallback knowledge entries.
type seedFile struct {
	Businesses []catalog.Business `yaml:"businesses"`
	Fallback   []knowledge.Entry  `yaml:"fallback_entries"`
}

var seedCmd = &cobra.Command{
	Use:   "seed <file.yml>",
	Short: "Import businesses and fallback entries from a YAML file",
	Long: `Imports the catalog and the fallback knowledge base from a YAML file.
Businesses are upserted by slug; fallback entries replace the stored set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading seed file: %w", err)
		}
		var seed seedFile
		if err := yaml.Unmarshal(raw, &seed); err != nil {
			return fmt.Errorf("parsing seed file: %w", err)
		}
		if len(seed.Businesses) == 0 && len(seed.Fallback) == 0 {
			return fmt.Errorf("seed file contains no businesses and no fallback entries")
		}

		database, err := db.Open(filepath.Join(cfg.DataDir, "salesbot.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		ctx := cmd.Context()
		store := catalog.NewStore(database)

		reporter := progress.NewReporter("Importing businesses")
		reporter.Start(len(seed.Businesses))
		for i, b := range seed.Businesses {
			if _, err := store.Upsert(ctx, b); err != nil {
				return fmt.Errorf("importing %s: %w", b.Name, err)
			}
			reporter.Update(i+1, b.Name)
		}
		reporter.Finish()

		if len(seed.Fallback) > 0 {
			if err := knowledge.NewStore(database).SaveAll(ctx, seed.Fallback); err != nil {
				return fmt.Errorf("importing fallback entries: %w", err)
			}
		}

		fmt.Printf("Imported %d businesses and %d fallback entries.\n", len(seed.Businesses), len(seed.Fallback))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
