package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"feedbackclassifier/internal/domain"
)

func isolateConfigEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-config.yaml"))
	for _, key := range []string{
		"CLASSIFIER_PROVIDER", "CLASSIFIER_MODEL", "HYPOTHESIS_TEMPLATE",
		"HF_API_TOKEN", "HF_BASE_URL", "ANTHROPIC_API_KEY", "OPENAI_API_KEY",
		"OPENAI_BASE_URL", "GLOSSARY_PATH", "LABEL_COLUMN", "LISTEN_ADDR",
		"RESULTS_DIR", "SLACK_BOT_TOKEN", "REPORT_CHANNEL_ID",
		"EXTERNAL_HTTP_TIMEOUT_SECONDS", "MAX_UPLOAD_BYTES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ClassifierProvider != ProviderHuggingFace {
		t.Fatalf("unexpected provider default: %q", cfg.ClassifierProvider)
	}
	if cfg.ClassifierModel != DefaultHuggingFaceModel {
		t.Fatalf("unexpected model default: %q", cfg.ClassifierModel)
	}
	if cfg.HypothesisTemplate != domain.DefaultHypothesisTpl {
		t.Fatalf("unexpected hypothesis template: %q", cfg.HypothesisTemplate)
	}
	if cfg.LabelColumn != "Predicted_Category" {
		t.Fatalf("unexpected label column default: %q", cfg.LabelColumn)
	}
	if cfg.ExternalHTTPTimeoutSeconds != defaultExternalHTTPTimeoutSeconds {
		t.Fatalf("unexpected timeout default: %d", cfg.ExternalHTTPTimeoutSeconds)
	}
	if cfg.ListenAddr != ":7860" {
		t.Fatalf("unexpected listen addr default: %q", cfg.ListenAddr)
	}
	if cfg.SlackConfigured() {
		t.Fatal("slack must be disabled by default")
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	isolateConfigEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
classifier_provider: "anthropic"
anthropic_api_key: "yaml-anthropic"
label_column: "Predicted Category"
external_http_timeout_seconds: 30
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", cfgPath)
	t.Setenv("CLASSIFIER_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("EXTERNAL_HTTP_TIMEOUT_SECONDS", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ClassifierProvider != ProviderOpenAI {
		t.Fatalf("env should override provider, got %q", cfg.ClassifierProvider)
	}
	if cfg.ClassifierModel != DefaultOpenAIModel {
		t.Fatalf("expected openai model default, got %q", cfg.ClassifierModel)
	}
	if cfg.AnthropicAPIKey != "yaml-anthropic" {
		t.Fatalf("expected yaml anthropic key to survive, got %q", cfg.AnthropicAPIKey)
	}
	if cfg.LabelColumn != "Predicted Category" {
		t.Fatalf("expected yaml label column, got %q", cfg.LabelColumn)
	}
	if cfg.ExternalHTTPTimeoutSeconds != 120 {
		t.Fatalf("env should override timeout, got %d", cfg.ExternalHTTPTimeoutSeconds)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown provider",
			env:     map[string]string{"CLASSIFIER_PROVIDER": "cohere"},
			wantErr: "classifier_provider must be",
		},
		{
			name:    "anthropic without key",
			env:     map[string]string{"CLASSIFIER_PROVIDER": "anthropic"},
			wantErr: "anthropic_api_key is required",
		},
		{
			name:    "timeout too small",
			env:     map[string]string{"EXTERNAL_HTTP_TIMEOUT_SECONDS": "2"},
			wantErr: "external_http_timeout_seconds",
		},
		{
			name:    "timeout not a number",
			env:     map[string]string{"EXTERNAL_HTTP_TIMEOUT_SECONDS": "soon"},
			wantErr: "invalid EXTERNAL_HTTP_TIMEOUT_SECONDS",
		},
		{
			name:    "template without placeholder",
			env:     map[string]string{"HYPOTHESIS_TEMPLATE": "This is it."},
			wantErr: "hypothesis_template",
		},
		{
			name:    "label column collides with input",
			env:     map[string]string{"LABEL_COLUMN": "Feedback"},
			wantErr: "label_column",
		},
		{
			name:    "partial slack config",
			env:     map[string]string{"SLACK_BOT_TOKEN": "xoxb-test"},
			wantErr: "slack_bot_token and report_channel_id",
		},
		{
			name:    "missing glossary",
			env:     map[string]string{"GLOSSARY_PATH": "/does/not/exist.yaml"},
			wantErr: "glossary_path",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	isolateConfigEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("classifier_provider: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", cfgPath)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
