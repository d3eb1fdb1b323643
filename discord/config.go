package discord

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var (
	Conf Config
)

type Config struct {
	DebugLog    bool   `json:"debug_log" env:"DEBUG_LOG"`
	Prefix      string `json:"prefix" env:"PREFIX" env-default:"!"`
	Token       string `json:"token" env:"BOT_SECRET"`
	DataDir     string `json:"data_dir" env:"DATA_DIR" env-default:"."`
	Game        string `json:"game" env:"LOBBY_GAME" env-default:"CS2"`
	MinPlayers  int    `json:"min_players" env:"LOBBY_MIN_PLAYERS" env-default:"6"`
	TeamSelect  bool   `json:"team_select" env:"LOBBY_TEAM_SELECT"`
	MetricsAddr string `json:"metrics_addr" env:"METRICS_ADDR"`
}

// LoadConfig reads filename (JSON) with environment overrides. A missing
// file falls back to the environment alone; .env is loaded first if present.
func LoadConfig(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot loading .env. %w", err)
	}

	var conf Config
	if _, err := os.Stat(filename); err == nil {
		if err := cleanenv.ReadConfig(filename, &conf); err != nil {
			return nil, fmt.Errorf("cannot loading config. %w", err)
		}
	} else if err := cleanenv.ReadEnv(&conf); err != nil {
		return nil, fmt.Errorf("cannot reading env. %w", err)
	}

	if conf.Token == "" {
		return nil, errors.New("BOT_SECRET is not found in config or env")
	}

	Conf = conf
	return &Conf, nil
}
