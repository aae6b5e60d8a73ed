package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .salesbot.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to salesbot! Let's configure the assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "anthropic", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)
	cfg.Model = DefaultModel(cfg.Provider)

	// 2. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory (SQLite database and indexes)",
		Default: "data",
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	// 3. Server port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: "8090",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 4. WhatsApp number for the human handoff link.
	waPrompt := promptui.Prompt{
		Label:   "WhatsApp number for advisor handoff (international format, optional)",
		Default: "",
	}
	waNumber, err := waPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("whatsapp number: %w", err)
	}
	cfg.Chatbot.WhatsAppNumber = strings.TrimSpace(waNumber)

	if apiKeyVar := APIKeyEnvVar(cfg.Provider); apiKeyVar != "" {
		fmt.Printf("\nRemember to export %s before starting the server.\n", apiKeyVar)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if err := cfg.Save(".salesbot.yml"); err != nil {
		return nil, err
	}
	fmt.Println("\nConfiguration saved to .salesbot.yml")

	return cfg, nil
}
