package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/genricoloni/courtside/internal/timeline"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

const (
	// EnvPrefix is the prefix of every environment override
	EnvPrefix = "COURTSIDE"

	defaultBackendURL       = "http://127.0.0.1:5000"
	defaultListenAddr       = "127.0.0.1:8765"
	defaultPrimaryPlayer    = "mpv.video"
	defaultSecondaryPlayer  = "mpv.commentary"
	defaultSeekMode         = "ack"
	defaultProgressMode     = "poll"
	defaultTickInterval     = 250 * time.Millisecond
	defaultProgressInterval = 3 * time.Second
	defaultEventTolerance   = 2.0
	defaultSpeechRate       = 0.9
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Duration is a time.Duration readable from TOML strings and env values such as "250ms"
type Duration time.Duration

// UnmarshalText parses a Go duration string
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the duration as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalText renders the duration as a Go duration string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Settings are the raw values read from the config file and the environment
type Settings struct {
	BackendURL       string   `toml:"backend_url" envconfig:"BACKEND_URL"`
	ListenAddr       string   `toml:"listen_addr" envconfig:"LISTEN_ADDR"`
	PrimaryPlayer    string   `toml:"primary_player" envconfig:"PRIMARY_PLAYER"`
	SecondaryPlayer  string   `toml:"secondary_player" envconfig:"SECONDARY_PLAYER"`
	SeekMode         string   `toml:"seek_mode" envconfig:"SEEK_MODE"`
	ProgressMode     string   `toml:"progress_mode" envconfig:"PROGRESS_MODE"`
	TickInterval     Duration `toml:"tick_interval" envconfig:"TICK_INTERVAL"`
	ProgressInterval Duration `toml:"progress_interval" envconfig:"PROGRESS_INTERVAL"`
	EventTolerance   float64  `toml:"event_tolerance" envconfig:"EVENT_TOLERANCE"`
	SpeechRate       float64  `toml:"speech_rate" envconfig:"SPEECH_RATE"`
	CommentaryFile   string   `toml:"commentary_file" envconfig:"COMMENTARY_FILE"`
	Debug            bool     `toml:"debug" envconfig:"DEBUG"`
	// Categories maps extra event types to marker categories, e.g. lbw = "wicket"
	Categories map[string]string `toml:"categories" envconfig:"CATEGORIES"`
}

// Default returns the settings used when nothing overrides them
func Default() Settings {
	return Settings{
		BackendURL:       defaultBackendURL,
		ListenAddr:       defaultListenAddr,
		PrimaryPlayer:    defaultPrimaryPlayer,
		SecondaryPlayer:  defaultSecondaryPlayer,
		SeekMode:         defaultSeekMode,
		ProgressMode:     defaultProgressMode,
		TickInterval:     Duration(defaultTickInterval),
		ProgressInterval: Duration(defaultProgressInterval),
		EventTolerance:   defaultEventTolerance,
		SpeechRate:       defaultSpeechRate,
	}
}

// Load builds the settings: defaults, then the optional .env file, then the TOML
// file at path (or $COURTSIDE_CONFIG when path is empty), then environment overrides.
func Load(path string) (Settings, error) {
	s := Default()

	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		if err := decodeFile(expandPath(path), &s); err != nil {
			return Settings{}, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return Settings{}, fmt.Errorf("read environment: %w", err)
	}

	s.normalize()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func decodeFile(path string, s *Settings) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(s); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (s *Settings) normalize() {
	s.BackendURL = strings.TrimRight(strings.TrimSpace(s.BackendURL), "/")
	s.SeekMode = strings.ToLower(strings.TrimSpace(s.SeekMode))
	s.ProgressMode = strings.ToLower(strings.TrimSpace(s.ProgressMode))
	if s.CommentaryFile != "" {
		s.CommentaryFile = expandPath(s.CommentaryFile)
	}
	for eventType, category := range s.Categories {
		s.Categories[eventType] = strings.ToLower(strings.TrimSpace(category))
	}
}

// Validate rejects settings the daemon cannot run with
func (s Settings) Validate() error {
	switch {
	case s.BackendURL == "":
		return fmt.Errorf("%w: backend_url is required", ErrInvalidConfig)
	case s.ListenAddr == "":
		return fmt.Errorf("%w: listen_addr is required", ErrInvalidConfig)
	case s.PrimaryPlayer == "":
		return fmt.Errorf("%w: primary_player is required", ErrInvalidConfig)
	case s.SeekMode != "ack" && s.SeekMode != "settle":
		return fmt.Errorf("%w: seek_mode must be ack or settle, got %q", ErrInvalidConfig, s.SeekMode)
	case s.ProgressMode != "poll" && s.ProgressMode != "scripted":
		return fmt.Errorf("%w: progress_mode must be poll or scripted, got %q", ErrInvalidConfig, s.ProgressMode)
	case s.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval must be positive", ErrInvalidConfig)
	case s.ProgressInterval <= 0:
		return fmt.Errorf("%w: progress_interval must be positive", ErrInvalidConfig)
	case s.EventTolerance < 0:
		return fmt.Errorf("%w: event_tolerance must not be negative", ErrInvalidConfig)
	case s.SpeechRate <= 0:
		return fmt.Errorf("%w: speech_rate must be positive", ErrInvalidConfig)
	}

	for eventType, category := range s.Categories {
		if _, ok := timeline.ParseCategory(category); !ok {
			return fmt.Errorf("%w: unknown category %q for event type %q", ErrInvalidConfig, category, eventType)
		}
	}
	return nil
}

// Expand path if it contains ~ or environment variables
func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}

// AppConfig holds application configuration
type AppConfig struct {
	logger   *zap.Logger
	settings Settings
}

// NewAppConfig creates a new application configuration instance
func NewAppConfig(logger *zap.Logger, s Settings) *AppConfig {
	logger.Info("Configuration loaded",
		zap.String("backendURL", s.BackendURL),
		zap.String("listenAddr", s.ListenAddr),
		zap.String("primaryPlayer", s.PrimaryPlayer),
		zap.String("secondaryPlayer", s.SecondaryPlayer),
		zap.String("seekMode", s.SeekMode),
		zap.String("progressMode", s.ProgressMode),
		zap.Duration("tickInterval", s.TickInterval.Std()),
		zap.Duration("progressInterval", s.ProgressInterval.Std()),
		zap.Float64("eventTolerance", s.EventTolerance),
		zap.Float64("speechRate", s.SpeechRate),
		zap.String("commentaryFile", s.CommentaryFile),
		zap.Int("categories", len(s.Categories)))

	return &AppConfig{
		logger:   logger,
		settings: s,
	}
}

// GetBackendURL returns the base URL of the processing backend
func (c *AppConfig) GetBackendURL() string {
	return c.settings.BackendURL
}

// GetListenAddr returns the address of the local control API
func (c *AppConfig) GetListenAddr() string {
	return c.settings.ListenAddr
}

// GetSeekMode returns "ack" or "settle"
func (c *AppConfig) GetSeekMode() string {
	return c.settings.SeekMode
}

// GetProgressMode returns "poll" or "scripted"
func (c *AppConfig) GetProgressMode() string {
	return c.settings.ProgressMode
}

// GetPrimaryPlayer returns the MPRIS name of the video player
func (c *AppConfig) GetPrimaryPlayer() string {
	return c.settings.PrimaryPlayer
}

// GetSecondaryPlayer returns the MPRIS name of the commentary player, empty when there is none
func (c *AppConfig) GetSecondaryPlayer() string {
	return c.settings.SecondaryPlayer
}

// GetTickInterval returns how often time-updates are computed while playing
func (c *AppConfig) GetTickInterval() time.Duration {
	return c.settings.TickInterval.Std()
}

// GetProgressInterval returns the progress poll or script interval
func (c *AppConfig) GetProgressInterval() time.Duration {
	return c.settings.ProgressInterval.Std()
}

// GetEventTolerance returns the highlight window in seconds
func (c *AppConfig) GetEventTolerance() float64 {
	return c.settings.EventTolerance
}

// GetSpeechRate returns the commentary speech rate
func (c *AppConfig) GetSpeechRate() float64 {
	return c.settings.SpeechRate
}

// GetCommentaryFile returns the path of the commentary text, empty when none is configured
func (c *AppConfig) GetCommentaryFile() string {
	return c.settings.CommentaryFile
}

// NewClassifier returns the marker classifier with the configured event types registered
func (c *AppConfig) NewClassifier() *timeline.Classifier {
	classifier := timeline.NewClassifier()
	for eventType, name := range c.settings.Categories {
		if category, ok := timeline.ParseCategory(name); ok {
			classifier.Register(eventType, category)
		}
	}
	return classifier
}
