package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Download   DownloadConfig   `mapstructure:"download"`
	Extractor  ExtractorConfig  `mapstructure:"extractor"`
	Transcoder TranscoderConfig `mapstructure:"transcoder"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains download folder configuration
type DownloadConfig struct {
	BaseDir      string `mapstructure:"base_dir"`
	DatabasePath string `mapstructure:"database_path"`
	HistoryLimit int    `mapstructure:"history_limit"`
}

// ExtractorConfig configures the external extraction tool
type ExtractorConfig struct {
	Binary          string        `mapstructure:"binary"`
	SocketTimeout   time.Duration `mapstructure:"socket_timeout"`
	Retries         int           `mapstructure:"retries"`
	FragmentRetries int           `mapstructure:"fragment_retries"`
	MaxVideoHeight  int           `mapstructure:"max_video_height"`
	UserAgent       string        `mapstructure:"user_agent"`
	Accept          string        `mapstructure:"accept"`
	AcceptLanguage  string        `mapstructure:"accept_language"`
}

// TranscoderConfig configures the external audio transcoder
type TranscoderConfig struct {
	Binary       string `mapstructure:"binary"`
	AudioFormat  string `mapstructure:"audio_format"`
	AudioQuality string `mapstructure:"audio_quality"`
}

// RateLimitConfig bounds batch submissions per client address
type RateLimitConfig struct {
	PerDay      int           `mapstructure:"per_day"`
	PerHour     int           `mapstructure:"per_hour"`
	PerMinute   int           `mapstructure:"per_minute"`
	VisitorTTL  time.Duration `mapstructure:"visitor_ttl"`
	SweepPeriod time.Duration `mapstructure:"sweep_period"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		Download: DownloadConfig{
			BaseDir:      "downloads",
			DatabasePath: "downloads/mediabatch.db",
			HistoryLimit: 50,
		},
		Extractor: ExtractorConfig{
			Binary:          "yt-dlp",
			SocketTimeout:   30 * time.Second,
			Retries:         10,
			FragmentRetries: 10,
			MaxVideoHeight:  720,
			UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			Accept:          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			AcceptLanguage:  "en-us,en;q=0.5",
		},
		Transcoder: TranscoderConfig{
			Binary:       "ffmpeg",
			AudioFormat:  "mp3",
			AudioQuality: "192K",
		},
		RateLimit: RateLimitConfig{
			PerDay:      50,
			PerHour:     10,
			PerMinute:   5,
			VisitorTTL:  24 * time.Hour,
			SweepPeriod: time.Hour,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
