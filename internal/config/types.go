package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// ChatbotConfig holds the widget-facing behaviour of the assistant.
type ChatbotConfig struct {
	WelcomeMessage      string   `yaml:"welcome_message" koanf:"welcome_message"`
	InitialSuggestions  []string `yaml:"initial_suggestions" koanf:"initial_suggestions"`
	HumanTriggerPhrases []string `yaml:"human_trigger_phrases" koanf:"human_trigger_phrases"`
	WhatsAppNumber      string   `yaml:"whatsapp_number" koanf:"whatsapp_number"`
	PagesInclude        []string `yaml:"pages_include" koanf:"pages_include"`
	PagesExclude        []string `yaml:"pages_exclude" koanf:"pages_exclude"`
}

// Config is the top-level salesbot configuration, corresponding to .salesbot.yml.
type Config struct {
	Provider          ProviderType  `yaml:"provider" koanf:"provider"`
	Model             string        `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType  `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string        `yaml:"embedding_model" koanf:"embedding_model"`
	DataDir           string        `yaml:"data_dir" koanf:"data_dir"`
	RemoteTimeoutSec  int           `yaml:"remote_timeout_seconds" koanf:"remote_timeout_seconds"`
	RateLimitRPM      int           `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`
	NotifyWebhookURL  string        `yaml:"notify_webhook_url" koanf:"notify_webhook_url"`
	Server            ServerConfig  `yaml:"server" koanf:"server"`
	Chatbot           ChatbotConfig `yaml:"chatbot" koanf:"chatbot"`
}
