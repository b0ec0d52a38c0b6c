package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"feedbackclassifier/internal/domain"
)

const defaultExternalHTTPTimeout = 90 * time.Second
const defaultExternalHTTPTimeoutSeconds = int(defaultExternalHTTPTimeout / time.Second)

const (
	ProviderHuggingFace = "huggingface"
	ProviderAnthropic   = "anthropic"
	ProviderOpenAI      = "openai"
)

const (
	DefaultHuggingFaceModel   = "facebook/bart-large-mnli"
	DefaultAnthropicModel     = "claude-sonnet-4-5-20250929"
	DefaultOpenAIModel        = "gpt-4o-mini"
	DefaultHuggingFaceBaseURL = "https://router.huggingface.co/hf-inference/models"
	DefaultOpenAIBaseURL      = "https://api.openai.com/v1"
	defaultListenAddr         = ":7860"
	defaultMaxUploadBytes     = 10 << 20
)

type Config struct {
	ClassifierProvider string `yaml:"classifier_provider"`
	ClassifierModel    string `yaml:"classifier_model"`
	HypothesisTemplate string `yaml:"hypothesis_template"`

	HuggingFaceAPIToken string `yaml:"huggingface_api_token"`
	HuggingFaceBaseURL  string `yaml:"huggingface_base_url"`
	AnthropicAPIKey     string `yaml:"anthropic_api_key"`
	OpenAIAPIKey        string `yaml:"openai_api_key"`
	OpenAIBaseURL       string `yaml:"openai_base_url"`

	ExternalHTTPTimeoutSeconds int    `yaml:"external_http_timeout_seconds"`
	GlossaryPath               string `yaml:"glossary_path"`
	LabelColumn                string `yaml:"label_column"`

	ListenAddr     string `yaml:"listen_addr"`
	ResultsDir     string `yaml:"results_dir"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`

	SlackBotToken   string `yaml:"slack_bot_token"`
	ReportChannelID string `yaml:"report_channel_id"`
}

// Load reads config.yaml (or CONFIG_PATH), applies env overrides and
// defaults, then validates.
func Load() (Config, error) {
	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("error parsing %s: %w", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	envOverride(&cfg.ClassifierProvider, "CLASSIFIER_PROVIDER")
	envOverride(&cfg.ClassifierModel, "CLASSIFIER_MODEL")
	envOverride(&cfg.HypothesisTemplate, "HYPOTHESIS_TEMPLATE")
	envOverride(&cfg.HuggingFaceAPIToken, "HF_API_TOKEN")
	envOverride(&cfg.HuggingFaceBaseURL, "HF_BASE_URL")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	envOverride(&cfg.OpenAIBaseURL, "OPENAI_BASE_URL")
	envOverride(&cfg.GlossaryPath, "GLOSSARY_PATH")
	envOverride(&cfg.LabelColumn, "LABEL_COLUMN")
	envOverride(&cfg.ListenAddr, "LISTEN_ADDR")
	envOverride(&cfg.ResultsDir, "RESULTS_DIR")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.ReportChannelID, "REPORT_CHANNEL_ID")
	if err := envOverrideInt(&cfg.ExternalHTTPTimeoutSeconds, "EXTERNAL_HTTP_TIMEOUT_SECONDS"); err != nil {
		return Config{}, err
	}
	if err := envOverrideInt64(&cfg.MaxUploadBytes, "MAX_UPLOAD_BYTES"); err != nil {
		return Config{}, err
	}

	if cfg.ClassifierProvider == "" {
		cfg.ClassifierProvider = ProviderHuggingFace
	}
	cfg.ClassifierProvider = strings.ToLower(strings.TrimSpace(cfg.ClassifierProvider))
	if cfg.ClassifierModel == "" {
		switch cfg.ClassifierProvider {
		case ProviderAnthropic:
			cfg.ClassifierModel = DefaultAnthropicModel
		case ProviderOpenAI:
			cfg.ClassifierModel = DefaultOpenAIModel
		default:
			cfg.ClassifierModel = DefaultHuggingFaceModel
		}
	}
	if cfg.HypothesisTemplate == "" {
		cfg.HypothesisTemplate = domain.DefaultHypothesisTpl
	}
	if cfg.HuggingFaceBaseURL == "" {
		cfg.HuggingFaceBaseURL = DefaultHuggingFaceBaseURL
	}
	if cfg.OpenAIBaseURL == "" {
		cfg.OpenAIBaseURL = DefaultOpenAIBaseURL
	}
	if cfg.ExternalHTTPTimeoutSeconds == 0 {
		cfg.ExternalHTTPTimeoutSeconds = defaultExternalHTTPTimeoutSeconds
	}
	if cfg.LabelColumn == "" {
		cfg.LabelColumn = domain.DefaultLabelColumn
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}
	if cfg.ResultsDir == "" {
		cfg.ResultsDir = filepath.Join(os.TempDir(), "feedback-classifier")
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.ClassifierProvider {
	case ProviderHuggingFace:
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("anthropic_api_key is required when classifier_provider=anthropic")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("openai_api_key is required when classifier_provider=openai")
		}
	default:
		return fmt.Errorf("classifier_provider must be 'huggingface', 'anthropic' or 'openai', got '%s'", c.ClassifierProvider)
	}

	if !strings.Contains(c.HypothesisTemplate, "{}") {
		return fmt.Errorf("invalid hypothesis_template '%s': must contain {}", c.HypothesisTemplate)
	}
	if c.ExternalHTTPTimeoutSeconds < 5 {
		return fmt.Errorf("invalid external_http_timeout_seconds '%d': must be >= 5", c.ExternalHTTPTimeoutSeconds)
	}
	if strings.TrimSpace(c.LabelColumn) == "" || c.LabelColumn == domain.FeedbackColumn {
		return fmt.Errorf("invalid label_column '%s'", c.LabelColumn)
	}
	if c.MaxUploadBytes < 1024 {
		return fmt.Errorf("invalid max_upload_bytes '%d': must be >= 1024", c.MaxUploadBytes)
	}
	if (c.SlackBotToken == "") != (c.ReportChannelID == "") {
		return fmt.Errorf("slack_bot_token and report_channel_id must be set together")
	}
	if c.GlossaryPath != "" {
		if err := validateGlossaryPath(c.GlossaryPath); err != nil {
			return fmt.Errorf("invalid glossary_path '%s': %w", c.GlossaryPath, err)
		}
	}
	return nil
}

func (c Config) SlackConfigured() bool {
	return c.SlackBotToken != "" && c.ReportChannelID != ""
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", envKey, val, err)
		}
		*field = parsed
	}
	return nil
}

func envOverrideInt64(field *int64, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", envKey, val, err)
		}
		*field = parsed
	}
	return nil
}

func validateGlossaryPath(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read glossary: %w", err)
	}
	var g struct {
		Terms []struct{} `yaml:"terms"`
	}
	if err := yaml.Unmarshal(data, &g); err != nil {
		return fmt.Errorf("parse glossary yaml: %w", err)
	}
	return nil
}
