package config

import (
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config carries every knob the client needs. Env vars win; flags fill in
// whatever the environment left unset.
type Config struct {
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Derived from BaseURL/EnableHTTPS, never set directly.
	ServerURL string `env:"-"`
	SocketURL string `env:"-"`

	PollIntervalSeconds   int    `env:"POLL_INTERVAL_SECONDS"`
	HeartbeatSeconds      int    `env:"HEARTBEAT_SECONDS"`
	ReconnectDelaySeconds int    `env:"RECONNECT_DELAY_SECONDS"`
	ClientDBPath          string `env:"CLIENT_DB_PATH"`
	Currency              string `env:"DISPLAY_CURRENCY"`
	ChatbotDisabled       bool   `env:"CHATBOT_DISABLED"`

	Version bool `env:"-"` // show client version and exit (flag only)
}

// PollInterval returns the poll cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// Heartbeat returns the socket ping cadence.
func (c *Config) Heartbeat() time.Duration {
	return time.Duration(c.HeartbeatSeconds) * time.Second
}

// ReconnectDelay returns the pause between socket reconnect attempts.
func (c *Config) ReconnectDelay() time.Duration {
	return time.Duration(c.ReconnectDelaySeconds) * time.Second
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// Flags only apply where env vars left defaults.
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "backend address as host:port")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "use https/wss towards the backend")
	flag.IntVar(&cfg.PollIntervalSeconds, "poll-interval", cfg.PollIntervalSeconds, "seconds between sync cycles")
	flag.IntVar(&cfg.HeartbeatSeconds, "heartbeat", cfg.HeartbeatSeconds, "seconds between socket heartbeat pings")
	flag.IntVar(&cfg.ReconnectDelaySeconds, "reconnect-delay", cfg.ReconnectDelaySeconds, "seconds to wait before redialing the socket")
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "base directory for the local cache database")
	flag.StringVar(&cfg.Currency, "currency", cfg.Currency, "ISO display currency for amounts")
	flag.BoolVar(&cfg.ChatbotDisabled, "no-chatbot", cfg.ChatbotDisabled, "disable the Gemini transaction parser")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "show client version and exit")

	flag.Parse()

	// BaseURL must be bare "address:port"; anything else falls back.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8080"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
		cfg.SocketURL = "wss://" + cfg.BaseURL + "/api/ws"
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
		cfg.SocketURL = "ws://" + cfg.BaseURL + "/api/ws"
	}

	if cfg.PollIntervalSeconds <= 0 {
		cfg.PollIntervalSeconds = 60
	}
	if cfg.HeartbeatSeconds <= 0 {
		cfg.HeartbeatSeconds = 30
	}
	if cfg.ReconnectDelaySeconds <= 0 {
		cfg.ReconnectDelaySeconds = 60
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}

	return cfg
}
