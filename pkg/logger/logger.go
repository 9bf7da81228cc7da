package logx

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Debug        bool `split_words:"true" default:"false"`
	PrettyFormat bool `split_words:"true" default:"false"`
	// Stderr keeps stdout free for the interactive chat transcript.
	Stderr bool `split_words:"true" default:"false"`
	// Level, when set, wins over Debug (trace, debug, info, warn, error).
	Level string `split_words:"true"`
}

var DefaultConfig = &Config{}

func safe(opts ...Config) *Config {
	if len(opts) == 0 {
		return DefaultConfig
	}
	return &opts[0]
}

func (c Config) level() zerolog.Level {
	if v := strings.TrimSpace(c.Level); v != "" {
		if lvl, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			return lvl
		}
	}
	if c.Debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// New builds a logger writing to out; JSON unless PrettyFormat is set.
func New(conf Config, out io.Writer) zerolog.Logger {
	if conf.PrettyFormat {
		out = zerolog.ConsoleWriter{Out: out}
	}
	return zerolog.New(out).
		Level(conf.level()).
		With().Timestamp().Caller().Stack().
		Logger()
}

// Init replaces the global zerolog logger.
func Init(opts ...Config) {
	conf := safe(opts...)

	var out io.Writer = os.Stdout
	if conf.Stderr {
		out = os.Stderr
	}
	log.Logger = New(*conf, out)
}
