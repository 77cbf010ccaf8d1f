package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v2"

	"github.com/branched-services/go-tariplan/address"
	"github.com/branched-services/go-tariplan/tchess"
)

// Config is the tchessctl configuration file.
//
//	wallet_url = "http://127.0.0.1:9000/json_rpc"
//	token = "..."
//	fee = 2000
//	poll_interval = "500ms"
//	league = "component_..."
//	badge = "nft_..._u256_..."
type Config struct {
	WalletURL      string `toml:"wallet_url"`
	Token          string `toml:"token"`
	Fee            int64  `toml:"fee"`
	PollInterval   string `toml:"poll_interval"`
	GameTemplate   string `toml:"game_template"`
	LeagueTemplate string `toml:"league_template"`
	League         string `toml:"league"`
	Badge          string `toml:"badge"`
}

func defaultConfig() Config {
	return Config{
		WalletURL:      "http://127.0.0.1:9000/json_rpc",
		Fee:            tchess.DefaultFee,
		PollInterval:   "500ms",
		GameTemplate:   string(tchess.GameTemplate),
		LeagueTemplate: string(tchess.LeagueTemplate),
	}
}

// loadConfig reads path over the defaults. A missing file is not an error
// unless required is set.
func loadConfig(path string, required bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// saveConfig writes cfg to path, used to remember created entities.
func saveConfig(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// applyFlags overlays flags and environment variables set on the command line.
func applyFlags(cfg *Config, c *cli.Context) {
	if c.IsSet(WalletURLFlag.Name) {
		cfg.WalletURL = c.String(WalletURLFlag.Name)
	}
	if c.IsSet(TokenFlag.Name) {
		cfg.Token = c.String(TokenFlag.Name)
	}
	if c.IsSet(FeeFlag.Name) {
		cfg.Fee = c.Int64(FeeFlag.Name)
	}
	if c.IsSet(LeagueFlag.Name) {
		cfg.League = c.String(LeagueFlag.Name)
	}
	if c.IsSet(BadgeFlag.Name) {
		cfg.Badge = c.String(BadgeFlag.Name)
	}
}

func (c Config) pollInterval() (time.Duration, error) {
	if c.PollInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("poll_interval: %w", err)
	}
	return d, nil
}

func (c Config) sequences() tchess.Sequences {
	return tchess.Sequences{
		Fee:            c.Fee,
		GameTemplate:   address.TemplateAddress(c.GameTemplate),
		LeagueTemplate: address.TemplateAddress(c.LeagueTemplate),
	}
}

func (c Config) league() (address.EntityAddress, error) {
	if c.League == "" {
		return address.EntityAddress{}, errors.New("no league configured, create one with `league new` or pass --league")
	}
	return address.Parse(c.League)
}

func (c Config) badge() (address.EntityAddress, error) {
	if c.Badge == "" {
		return address.EntityAddress{}, errors.New("no player badge configured, register with `register` or pass --badge")
	}
	return address.Parse(c.Badge)
}
