package config

// DefaultWelcomeMessage greets visitors when the widget opens.
const DefaultWelcomeMessage = "Bonjour ! Je suis Sara, votre conseillère TEKKI Studio. " +
	"Je peux vous présenter nos business e-commerce en vente et répondre à vos questions. Comment puis-je vous aider ?"

// DefaultInitialSuggestions are the quick replies shown before the first user message.
var DefaultInitialSuggestions = []string{
	"Quels business sont disponibles ?",
	"Comment fonctionne l'accompagnement ?",
	"Contacter un conseiller",
}

// DefaultHumanTriggerPhrases hand the conversation to a human when present
// in an utterance. Overridable from the remote chatbot configuration; an
// empty list disables the trigger entirely.
var DefaultHumanTriggerPhrases = []string{
	"parler à un humain",
	"parler à quelqu'un",
	"un vrai conseiller",
	"appeler quelqu'un",
}

// DefaultPagesExclude keeps the widget off back-office pages.
var DefaultPagesExclude = []string{
	"/admin/**",
	"/api/**",
}

// defaultModels maps each provider to its default chat model.
var defaultModels = map[ProviderType]string{
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-haiku-4-5-20251001",
	ProviderOllama:    "llama3",
}

// DefaultModel returns the default chat model for the given provider.
func DefaultModel(provider ProviderType) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return defaultModels[ProviderOpenAI]
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o-mini",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		DataDir:           "data",
		RemoteTimeoutSec:  10,
		RateLimitRPM:      60,
		Server: ServerConfig{
			Port: 8090,
		},
		Chatbot: ChatbotConfig{
			WelcomeMessage:      DefaultWelcomeMessage,
			InitialSuggestions:  append([]string(nil), DefaultInitialSuggestions...),
			HumanTriggerPhrases: append([]string(nil), DefaultHumanTriggerPhrases...),
			PagesInclude:        []string{"/**"},
			PagesExclude:        append([]string(nil), DefaultPagesExclude...),
		},
	}
}
