package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/chatmem/config"
	"github.com/hupe1980/chatmem/core"
	"github.com/hupe1980/chatmem/logging"
	"github.com/hupe1980/chatmem/memory"
	"github.com/hupe1980/chatmem/model"
	"github.com/hupe1980/chatmem/model/anthropic"
	"github.com/hupe1980/chatmem/model/openai"
)

// app bundles what a subcommand needs after configuration is loaded.
type app struct {
	cfg    *config.Config
	logger logging.Logger
	store  core.MemoryStore
}

func (o *globalOptions) loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})

	store, err := memory.Open(cfg.Memory.Path, func(mo *memory.Options) {
		mo.MaxItems = cfg.Memory.MaxItems
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open memory: %w", err)
	}

	logger.Debug("Memory opened", "path", cfg.Memory.Path, "max_items", cfg.Memory.MaxItems)

	return &app{cfg: cfg, logger: logger, store: store}, nil
}

// sessionOrDefault returns the flag value or the configured session.
func (a *app) sessionOrDefault(flag string) string {
	if s := strings.TrimSpace(flag); s != "" {
		return s
	}
	return a.cfg.Session
}

// buildModels turns the configured provider chain into models. Providers
// without credentials are skipped with a warning.
func buildModels(cfgs []config.ModelConfig, logger logging.Logger) ([]model.Model, error) {
	models := make([]model.Model, 0, len(cfgs))

	for _, mc := range cfgs {
		provider := strings.ToLower(mc.Provider)
		apiKey := mc.ResolveAPIKey()

		if provider != "mock" && apiKey == "" {
			logger.Warn("Skipping provider without API key", "provider", provider, "model", mc.Model)
			continue
		}

		switch provider {
		case "openai":
			models = append(models, openai.NewModel(func(o *openai.Options) {
				applyOpenAIOptions(o, mc, apiKey)
			}))
		case "groq":
			models = append(models, openai.NewGroqModel(apiKey, func(o *openai.Options) {
				applyOpenAIOptions(o, mc, apiKey)
			}))
		case "anthropic":
			models = append(models, anthropic.NewModel(func(o *anthropic.Options) {
				applyAnthropicOptions(o, mc, apiKey)
			}))
		case "mock":
			name := mc.Model
			if name == "" {
				name = "echo"
			}
			models = append(models, model.NewMockModel(name, "mock"))
		default:
			return nil, fmt.Errorf("unknown provider %q", mc.Provider)
		}
	}

	if len(models) == 0 {
		return nil, fmt.Errorf("no usable model: set OPENAI_API_KEY, GROQ_API_KEY or ANTHROPIC_API_KEY")
	}

	return models, nil
}

func applyOpenAIOptions(o *openai.Options, mc config.ModelConfig, apiKey string) {
	o.APIKey = apiKey
	if mc.Model != "" {
		o.Model = mc.Model
	}
	if mc.Temperature != nil {
		o.Temperature = *mc.Temperature
	}
	if mc.MaxTokens > 0 {
		o.MaxCompletionTokens = mc.MaxTokens
	}
	if mc.BaseURL != "" {
		o.BaseURL = mc.BaseURL
	}
}

func applyAnthropicOptions(o *anthropic.Options, mc config.ModelConfig, apiKey string) {
	o.APIKey = apiKey
	if mc.Model != "" {
		o.Model = mc.Model
	}
	if mc.Temperature != nil {
		o.Temperature = *mc.Temperature
	}
	if mc.MaxTokens > 0 {
		o.MaxTokens = mc.MaxTokens
	}
	if mc.BaseURL != "" {
		o.BaseURL = mc.BaseURL
	}
}
