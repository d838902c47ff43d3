package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"

	"github.com/jaywantadh/GradeByte/internal/classifier"
)

// ModelConfig binds a model name to its answer sheet and the classifier
// variant used to read it.
type ModelConfig struct {
	Name    string `mapstructure:"name"`
	Path    string `mapstructure:"path"`
	Variant string `mapstructure:"variant"`
}

// AppConfig holds the grading run configuration
type AppConfig struct {
	Questions  int           `mapstructure:"questions"`
	KeyPath    string        `mapstructure:"key_path"`
	Models     []ModelConfig `mapstructure:"models"`
	OutputPath string        `mapstructure:"output_path"`
	SheetName  string        `mapstructure:"sheet_name"`
	CacheDir   string        `mapstructure:"cache_dir"`
	ArchiveDir string        `mapstructure:"archive_dir"`
	Debug      bool          `mapstructure:"debug"`
}

const DefaultQuestions = 500

// DefaultModels is the model table graded when no config file overrides it.
func DefaultModels() []ModelConfig {
	return []ModelConfig{
		{Name: "GPT", Path: "gpt.pdf", Variant: "dual"},
		{Name: "Grok", Path: "grok.pdf", Variant: "simple"},
		{Name: "Bencao", Path: "bencao.pdf", Variant: "simple"},
		{Name: "Claude", Path: "claude.pdf", Variant: "simple"},
		{Name: "DeepSeek", Path: "deepseek.pdf", Variant: "simple"},
		{Name: "Gemini", Path: "gemini.pdf", Variant: "simple"},
	}
}

// Default returns the configuration used when nothing is overridden.
func Default() *AppConfig {
	return &AppConfig{
		Questions:  DefaultQuestions,
		KeyPath:    "answer_key.pdf",
		Models:     DefaultModels(),
		OutputPath: "results.xlsx",
		SheetName:  "Results",
	}
}

// LoadConfig reads config.yaml from path when present, applies GRADER_*
// environment overrides and falls back to the defaults for anything unset.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.SetEnvPrefix("grader")
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("questions", def.Questions)
	v.SetDefault("key_path", def.KeyPath)
	v.SetDefault("output_path", def.OutputPath)
	v.SetDefault("sheet_name", def.SheetName)
	v.SetDefault("cache_dir", "")
	v.SetDefault("archive_dir", "")
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("⚠️ No config file in %s, using defaults", path)
	}

	var appConfig AppConfig
	if err := v.Unmarshal(&appConfig); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if len(appConfig.Models) == 0 {
		appConfig.Models = def.Models
	}

	if err := appConfig.Validate(); err != nil {
		return nil, err
	}
	return &appConfig, nil
}

// Validate rejects configurations the pipeline cannot run.
func (c *AppConfig) Validate() error {
	if c.Questions < 1 {
		return fmt.Errorf("questions must be positive, got %d", c.Questions)
	}
	if c.KeyPath == "" {
		return errors.New("key_path is required")
	}
	if len(c.Models) == 0 {
		return errors.New("at least one model is required")
	}
	seen := make(map[string]bool, len(c.Models))
	for i, m := range c.Models {
		if m.Name == "" || m.Path == "" {
			return fmt.Errorf("model %d: name and path are required", i)
		}
		if seen[m.Name] {
			return fmt.Errorf("model %q listed twice", m.Name)
		}
		seen[m.Name] = true
		v, err := classifier.ParseVariant(m.Variant)
		if err != nil {
			return fmt.Errorf("model %q: %w", m.Name, err)
		}
		// the key variant is reserved for the answer key document
		if v == classifier.VariantKey {
			return fmt.Errorf("model %q: variant %q is reserved for the answer key", m.Name, m.Variant)
		}
	}
	if c.OutputPath == "" {
		return errors.New("output_path is required")
	}
	return nil
}
