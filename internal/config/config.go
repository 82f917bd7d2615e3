package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ConfigDirEnv overrides the directory holding config.yaml
const ConfigDirEnv = "FRIDAY_CONFIG_DIR"

// Config holds all configuration for F.R.I.D.A.Y.
type Config struct {
	Proxy ProxyConfig `mapstructure:"proxy"`
	LLM   LLMConfig   `mapstructure:"llm"`
	Voice VoiceConfig `mapstructure:"voice"`
	UI    UIConfig    `mapstructure:"ui"`
	Log   LogConfig   `mapstructure:"log"`

	v *viper.Viper
}

// ProxyConfig holds the conversational proxy settings, both server and client side
type ProxyConfig struct {
	Listen  string        `mapstructure:"listen"`
	Path    string        `mapstructure:"path"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LLMConfig selects and configures the model behind the proxy
type LLMConfig struct {
	Provider    string  `mapstructure:"provider"`
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	Host        string  `mapstructure:"host"`
	Temperature float64 `mapstructure:"temperature"`
	Debug       bool    `mapstructure:"debug"`
}

// VoiceConfig holds the voice relay settings
type VoiceConfig struct {
	URL         string `mapstructure:"url"`
	AssistantID string `mapstructure:"assistant_id"`
}

// UIConfig holds HUD and console settings
type UIConfig struct {
	ClearedTimeout  time.Duration `mapstructure:"cleared_timeout"`
	FeedbackTimeout time.Duration `mapstructure:"feedback_timeout"`
	Splash          time.Duration `mapstructure:"splash"`
	Seed            uint64        `mapstructure:"seed"`
	SpeakReplies    bool          `mapstructure:"speak_replies"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// GetConfigDir returns the cross-platform config directory
func GetConfigDir() (string, error) {
	dir := os.Getenv(ConfigDirEnv)
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user config dir: %w", err)
		}
		dir = filepath.Join(configDir, "friday")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}

	return dir, nil
}

// GetDataDir returns the directory for log files
func GetDataDir() (string, error) {
	var dataDir string

	if os.Getenv("XDG_DATA_HOME") != "" {
		dataDir = filepath.Join(os.Getenv("XDG_DATA_HOME"), "friday")
	} else if home, err := os.UserHomeDir(); err == nil {
		if _, err := os.Stat(filepath.Join(home, ".local", "share")); err == nil {
			dataDir = filepath.Join(home, ".local", "share", "friday")
		} else {
			// Windows has no ~/.local/share
			configDir, err := GetConfigDir()
			if err != nil {
				return "", err
			}
			dataDir = configDir
		}
	} else {
		return "", fmt.Errorf("failed to get user home dir: %w", err)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}

	return dataDir, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("proxy.listen", ":8787")
	v.SetDefault("proxy.path", "/api/vapi/generate")
	v.SetDefault("proxy.url", "http://localhost:8787/api/vapi/generate")
	v.SetDefault("proxy.timeout", 60*time.Second)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "gemini-2.0-flash-001")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.host", "http://localhost:11434")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.debug", false)
	v.SetDefault("voice.url", "ws://localhost:8790/voice")
	v.SetDefault("voice.assistant_id", "")
	v.SetDefault("ui.cleared_timeout", 2*time.Second)
	v.SetDefault("ui.feedback_timeout", 2500*time.Millisecond)
	v.SetDefault("ui.splash", 3500*time.Millisecond)
	v.SetDefault("ui.seed", 0)
	v.SetDefault("ui.speak_replies", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load reads the config file, applying defaults and FRIDAY_* environment overrides
func Load() (*Config, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("FRIDAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// Names used by the hosted services' own tooling
	_ = v.BindEnv("llm.api_key", "FRIDAY_LLM_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("voice.assistant_id", "FRIDAY_VOICE_ASSISTANT_ID", "VAPI_ASSISTANT_ID")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Save writes the current values to config.yaml
func (c *Config) Save() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	// A fresh instance keeps env-bound values such as the API key out of the file
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("proxy.listen", c.Proxy.Listen)
	v.Set("proxy.path", c.Proxy.Path)
	v.Set("proxy.url", c.Proxy.URL)
	v.Set("proxy.timeout", c.Proxy.Timeout.String())
	v.Set("llm.provider", c.LLM.Provider)
	v.Set("llm.model", c.LLM.Model)
	v.Set("llm.host", c.LLM.Host)
	v.Set("llm.temperature", c.LLM.Temperature)
	v.Set("llm.debug", c.LLM.Debug)
	v.Set("voice.url", c.Voice.URL)
	v.Set("voice.assistant_id", c.Voice.AssistantID)
	v.Set("ui.cleared_timeout", c.UI.ClearedTimeout.String())
	v.Set("ui.feedback_timeout", c.UI.FeedbackTimeout.String())
	v.Set("ui.splash", c.UI.Splash.String())
	v.Set("ui.seed", c.UI.Seed)
	v.Set("ui.speak_replies", c.UI.SpeakReplies)
	v.Set("log.level", c.Log.Level)
	v.Set("log.file", c.Log.File)

	configPath := filepath.Join(configDir, "config.yaml")
	if err := backup(configPath); err != nil {
		return err
	}
	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// backup copies an existing config file to path+".backup"
func backup(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil
	}

	existing, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read existing config for backup: %w", err)
	}
	if err := os.WriteFile(path+".backup", existing, 0600); err != nil {
		return fmt.Errorf("failed to write config backup: %w", err)
	}
	return nil
}

// Watch calls fn with the reloaded config whenever config.yaml changes on disk
func (c *Config) Watch(fn func(*Config, error)) {
	if c.v == nil {
		return
	}
	c.v.OnConfigChange(func(fsnotify.Event) {
		fn(decode(c.v))
	})
	c.v.WatchConfig()
}
