package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tekkistudio/salesbot/internal/config"
	"github.com/tekkistudio/salesbot/internal/db"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage chatbot configuration overrides stored in the database",
	Long: `Manages chatbot configuration overrides. Overrides are stored in the
database and take precedence over .salesbot.yml, so the widget copy can be
changed without redeploying.

Keys: welcome_message, whatsapp_number, initial_suggestions,
human_trigger_phrases. List-valued keys take a JSON array of strings.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a chatbot configuration override",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closer, err := openOverrideStore()
		if err != nil {
			return err
		}
		defer closer()

		if err := store.SetOverride(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Set %s.\n", args[0])
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a stored override so the file value applies again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closer, err := openOverrideStore()
		if err != nil {
			return err
		}
		defer closer()

		if err := store.DeleteOverride(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("removing override %s: %w", args[0], err)
		}
		fmt.Printf("Removed %s.\n", args[0])
		return nil
	},
}

func openOverrideStore() (*config.OverrideStore, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	database, err := db.Open(filepath.Join(cfg.DataDir, "salesbot.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return config.NewOverrideStore(database), func() { database.Close() }, nil
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}
