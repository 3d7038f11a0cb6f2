// ABOUTME: Configuration management with viper: defaults, optional YAML file and environment
// ABOUTME: Defines the server, state, remote store, TTS, chatbot, dispatch and log settings

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. MOWAKEB_SERVER_PORT
const EnvPrefix = "MOWAKEB"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	State    StateConfig    `mapstructure:"state" yaml:"state"`
	Redis    RedisConfig    `mapstructure:"redis" yaml:"redis"`
	Supabase SupabaseConfig `mapstructure:"supabase" yaml:"supabase"`
	RowStore RowStoreConfig `mapstructure:"rowstore" yaml:"rowstore"`
	TTS      TTSConfig      `mapstructure:"tts" yaml:"tts"`
	Chatbot  ChatbotConfig  `mapstructure:"chatbot" yaml:"chatbot"`
	HTTP     HTTPConfig     `mapstructure:"http" yaml:"http"`
	Dispatch DispatchConfig `mapstructure:"dispatch" yaml:"dispatch"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Features FeatureConfig  `mapstructure:"features" yaml:"features"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string `mapstructure:"port" yaml:"port"`
	// RateLimit is requests per second per client; 0 disables limiting
	RateLimit   float64  `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst   int      `mapstructure:"rate_burst" yaml:"rate_burst"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// StateConfig selects where device-local state lives
type StateConfig struct {
	// Backend is memory, gocache, redis or sqlite
	Backend    string `mapstructure:"backend" yaml:"backend"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	Namespace  string `mapstructure:"namespace" yaml:"namespace"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address   string `mapstructure:"address" yaml:"address"`
	Password  string `mapstructure:"password" yaml:"password"`
	DB        int    `mapstructure:"db" yaml:"db"`
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix"`
}

// SupabaseConfig holds the hosted project settings
type SupabaseConfig struct {
	URL          string `mapstructure:"url" yaml:"url"`
	AnonKey      string `mapstructure:"anon_key" yaml:"anon_key"`
	TrackerTable string `mapstructure:"tracker_table" yaml:"tracker_table"`
	PapersTable  string `mapstructure:"papers_table" yaml:"papers_table"`
	Bucket       string `mapstructure:"bucket" yaml:"bucket"`
}

// RowStoreConfig selects the tracker and papers tables
type RowStoreConfig struct {
	// Backend is supabase, sqlite or none
	Backend    string `mapstructure:"backend" yaml:"backend"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// TTSConfig selects the speech synthesizer
type TTSConfig struct {
	// Provider is http, google or none
	Provider     string        `mapstructure:"provider" yaml:"provider"`
	URL          string        `mapstructure:"url" yaml:"url"`
	Voice        string        `mapstructure:"voice" yaml:"voice"`
	LanguageCode string        `mapstructure:"language_code" yaml:"language_code"`
	Encoding     string        `mapstructure:"encoding" yaml:"encoding"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// ChatbotConfig points at the PDF chatbot backend
type ChatbotConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// HTTPConfig configures the outbound HTTP client
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// DispatchConfig sizes the remote task dispatcher
type DispatchConfig struct {
	Workers     int           `mapstructure:"workers" yaml:"workers"`
	QueueSize   int           `mapstructure:"queue_size" yaml:"queue_size"`
	TaskTimeout time.Duration `mapstructure:"task_timeout" yaml:"task_timeout"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// FeatureConfig holds the default state of optional surfaces
type FeatureConfig struct {
	LongForm  bool `mapstructure:"long_form" yaml:"long_form"`
	Audio     bool `mapstructure:"audio" yaml:"audio"`
	Chatbot   bool `mapstructure:"chatbot" yaml:"chatbot"`
	RateLimit bool `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// legacyEnv maps keys to the bare variable names older deployments use
var legacyEnv = map[string]string{
	"server.port":    "PORT",
	"state.backend":  "CACHE_TYPE",
	"redis.address":  "REDIS_ADDRESS",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.rate_limit", 1.0)
	v.SetDefault("server.rate_burst", 3)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("state.backend", "memory")
	v.SetDefault("state.sqlite_path", "mowakeb-state.db")
	v.SetDefault("state.namespace", "device")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "mowakeb:")

	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.anon_key", "")
	v.SetDefault("supabase.tracker_table", "reading_tracker")
	v.SetDefault("supabase.papers_table", "papers")
	v.SetDefault("supabase.bucket", "")

	v.SetDefault("rowstore.backend", "none")
	v.SetDefault("rowstore.sqlite_path", "mowakeb-rows.db")

	v.SetDefault("tts.provider", "none")
	v.SetDefault("tts.url", "")
	v.SetDefault("tts.voice", "en-US-Neural2-J")
	v.SetDefault("tts.language_code", "en-US")
	v.SetDefault("tts.encoding", "MP3")
	v.SetDefault("tts.cache_ttl", 7*24*time.Hour)

	v.SetDefault("chatbot.base_url", "")

	v.SetDefault("http.timeout", 30*time.Second)

	v.SetDefault("dispatch.workers", 4)
	v.SetDefault("dispatch.queue_size", 100)
	v.SetDefault("dispatch.task_timeout", 15*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("features.long_form", true)
	v.SetDefault("features.audio", true)
	v.SetDefault("features.chatbot", true)
	v.SetDefault("features.rate_limit", true)
}

// NewViper returns a viper instance with defaults and environment bindings.
// configFile may be empty, in which case ./mowakeb.yaml is used when present.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
		return v, nil
	}

	v.SetConfigName("mowakeb")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// FromViper decodes and validates the configuration held by v
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads defaults, the optional config file and the environment
func Load(configFile string) (*Config, error) {
	v, err := NewViper(configFile)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

func (c *Config) normalize() {
	c.State.Backend = strings.ToLower(strings.TrimSpace(c.State.Backend))
	c.RowStore.Backend = strings.ToLower(strings.TrimSpace(c.RowStore.Backend))
	c.TTS.Provider = strings.ToLower(strings.TrimSpace(c.TTS.Provider))
	c.Supabase.URL = strings.TrimRight(strings.TrimSpace(c.Supabase.URL), "/")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}
	if c.Server.RateLimit < 0 {
		return errors.New("rate limit cannot be negative")
	}

	switch c.State.Backend {
	case "memory", "gocache":
	case "redis":
		if c.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using the redis state backend")
		}
	case "sqlite":
		if c.State.SQLitePath == "" {
			return errors.New("sqlite path cannot be empty when using the sqlite state backend")
		}
	default:
		return fmt.Errorf("state backend must be memory, gocache, redis or sqlite, got %q", c.State.Backend)
	}
	if c.State.Namespace == "" {
		return errors.New("state namespace cannot be empty")
	}

	switch c.RowStore.Backend {
	case "none":
	case "supabase":
		if c.Supabase.URL == "" || c.Supabase.AnonKey == "" {
			return errors.New("supabase url and anon key are required for the supabase row store")
		}
	case "sqlite":
		if c.RowStore.SQLitePath == "" {
			return errors.New("sqlite path cannot be empty when using the sqlite row store")
		}
	default:
		return fmt.Errorf("row store backend must be supabase, sqlite or none, got %q", c.RowStore.Backend)
	}
	if c.Supabase.Bucket != "" && (c.Supabase.URL == "" || c.Supabase.AnonKey == "") {
		return errors.New("supabase url and anon key are required for the storage bucket")
	}

	switch c.TTS.Provider {
	case "none", "google":
	case "http":
		if c.TTS.URL == "" {
			return errors.New("tts url cannot be empty when using the http provider")
		}
	default:
		return fmt.Errorf("tts provider must be http, google or none, got %q", c.TTS.Provider)
	}

	if c.Dispatch.Workers < 1 {
		return errors.New("dispatch workers must be at least 1")
	}
	if c.Dispatch.TaskTimeout <= 0 {
		return errors.New("dispatch task timeout must be positive")
	}

	return nil
}
