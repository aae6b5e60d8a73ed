package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tekkistudio/salesbot/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize salesbot configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure salesbot and generates a .salesbot.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
