package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting the service reads.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Agent  AgentConfig
	Admin  AdminConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	agent, err := loadAgentConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		AI:     ai,
		Agent:  agent,
		Admin:  loadAdminConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the upstream generative-language model.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether a default upstream credential is configured.
// The admin console may still supply a credential at runtime, so a false
// value here does not disable the agent outright.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds a model instance for the given credential. An empty
// credential falls back to the configured API key.
func (c AIConfig) NewChatModel(ctx context.Context, credential string) (model.ChatModel, error) {
	apiKey := strings.TrimSpace(credential)
	if apiKey == "" {
		apiKey = c.APIKey
	}
	if c.Model == "" || (apiKey == "" && (c.AccessKey == "" || c.SecretKey == "")) {
		return nil, fmt.Errorf("model credential missing: provide a credential or ARK_API_KEY plus Model")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      apiKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("Model")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// AgentTiming consolidates every chat-agent timing literal in one place.
// Services never carry fallback values of their own.
type AgentTiming struct {
	// QueueDelay is how long a first message waits before an agent is
	// assigned.
	QueueDelay time.Duration
	// IdleTimeout ends the session after this much inactivity while active.
	IdleTimeout time.Duration
	// TypingStartDelay elapses before the typing indicator appears.
	TypingStartDelay time.Duration
	// PerWord scales the reveal duration by the reply's word count; the
	// result is clamped to [MinReveal, MaxReveal] and a random jitter in
	// [0, RevealJitterCap) is added.
	PerWord         time.Duration
	MinReveal       time.Duration
	MaxReveal       time.Duration
	RevealJitterCap time.Duration
	// DeliveredDelay and ReadDelay advance a user message's receipt state;
	// ReadDelay counts from the delivered transition.
	DeliveredDelay time.Duration
	ReadDelay      time.Duration
	// HistoryWindow bounds the prior turns forwarded upstream.
	HistoryWindow int
}

// DefaultAgentTiming returns the documented timing defaults.
func DefaultAgentTiming() AgentTiming {
	return AgentTiming{
		QueueDelay:       8 * time.Second,
		IdleTimeout:      120 * time.Second,
		TypingStartDelay: 2 * time.Second,
		PerWord:          400 * time.Millisecond,
		MinReveal:        4 * time.Second,
		MaxReveal:        25 * time.Second,
		RevealJitterCap:  2 * time.Second,
		DeliveredDelay:   500 * time.Millisecond,
		ReadDelay:        1200 * time.Millisecond,
		HistoryWindow:    6,
	}
}

// AgentConfig seeds the runtime agent settings.
type AgentConfig struct {
	Enabled  bool
	Language string
	Timing   AgentTiming
}

func loadAgentConfig() (AgentConfig, error) {
	enabled, err := parseBoolEnv("AGENT_ENABLED", true)
	if err != nil {
		return AgentConfig{}, err
	}

	timing := DefaultAgentTiming()
	overrides := []struct {
		key    string
		target *time.Duration
	}{
		{"AGENT_QUEUE_DELAY", &timing.QueueDelay},
		{"AGENT_IDLE_TIMEOUT", &timing.IdleTimeout},
		{"AGENT_TYPING_START_DELAY", &timing.TypingStartDelay},
		{"AGENT_PER_WORD", &timing.PerWord},
		{"AGENT_MIN_REVEAL", &timing.MinReveal},
		{"AGENT_MAX_REVEAL", &timing.MaxReveal},
		{"AGENT_REVEAL_JITTER_CAP", &timing.RevealJitterCap},
		{"AGENT_DELIVERED_DELAY", &timing.DeliveredDelay},
		{"AGENT_READ_DELAY", &timing.ReadDelay},
	}
	for _, o := range overrides {
		if d, err := parseOptionalDurationEnv(o.key); err != nil {
			return AgentConfig{}, err
		} else if d != nil {
			*o.target = *d
		}
	}

	if window, err := parseOptionalIntEnv("AGENT_HISTORY_WINDOW"); err != nil {
		return AgentConfig{}, err
	} else if window != nil && *window > 0 {
		timing.HistoryWindow = *window
	}

	if timing.MinReveal > timing.MaxReveal {
		return AgentConfig{}, fmt.Errorf("AGENT_MIN_REVEAL %s exceeds AGENT_MAX_REVEAL %s", timing.MinReveal, timing.MaxReveal)
	}

	return AgentConfig{
		Enabled:  enabled,
		Language: getEnvOrDefault("AGENT_LANGUAGE", "ar"),
		Timing:   timing,
	}, nil
}

// AdminConfig holds the single console credential pair.
type AdminConfig struct {
	Username string
	Password string
}

func loadAdminConfig() AdminConfig {
	return AdminConfig{
		Username: getEnvOrDefault("ADMIN_USERNAME", "admin"),
		Password: getEnvOrDefault("ADMIN_PASSWORD", "safarly@2026"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalDurationEnv(key string) (*time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := time.ParseDuration(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	if val < 0 {
		return nil, fmt.Errorf("invalid %s value %q: must not be negative", key, value)
	}
	return &val, nil
}
