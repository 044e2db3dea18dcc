package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
)

type Config struct {
	Server  string `envconfig:"HUD_SERVER" default:"ws://localhost:8080/operator"`
	Token   string `envconfig:"HUD_TOKEN"`
	Colours bool   `envconfig:"HUD_COLOURS" default:"true"`
	// Once prints the current state and exits
	Once    bool          `ignored:"true"`
	Command string        `ignored:"true"`
	Refresh time.Duration `ignored:"true"`
}

// LoadConfig reads the environment, then lets flags override it.
func LoadConfig(args []string) (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}

	flags := pflag.NewFlagSet("hud", pflag.ContinueOnError)
	flags.StringVarP(&cfg.Server, "server", "s", cfg.Server, "operator socket url")
	flags.StringVarP(&cfg.Token, "token", "t", cfg.Token, "operator token")
	flags.BoolVar(&cfg.Colours, "colours", cfg.Colours, "colorize statuses")
	flags.BoolVar(&cfg.Once, "once", false, "print the state once and exit")
	flags.StringVarP(&cfg.Command, "command", "c", "", `remote command to dispatch, e.g. '{"type":"SET_SYSTEM_ACCEPTS_CUSTOMERS","accept":false}'`)
	flags.DurationVar(&cfg.Refresh, "refresh", time.Second, "minimum delay between two renders")
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}
