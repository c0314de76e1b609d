package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Binance Futures Testnet API
	ApiKey    string
	SecretKey string

	// Testnet toggles the futures testnet endpoint. Defaults to true;
	// this tool is meant for the testnet and mainnet must be opted into.
	Testnet bool

	// HTTPTimeout bounds every REST call (price, filters, order).
	HTTPTimeout time.Duration
}

// Load reads configuration from envFile (when present) and the process
// environment. A missing .env file is not an error: keys may come from
// the environment directly.
func Load(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	cfg := &Config{}
	var err error

	// Trim whitespace in case keys were pasted into the .env file.
	cfg.ApiKey = strings.TrimSpace(os.Getenv("BINANCE_TESTNET_API_KEY"))
	if cfg.ApiKey == "" {
		return nil, fmt.Errorf("BINANCE_TESTNET_API_KEY is required")
	}

	cfg.SecretKey = strings.TrimSpace(os.Getenv("BINANCE_TESTNET_API_SECRET"))
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("BINANCE_TESTNET_API_SECRET is required")
	}

	cfg.Testnet = true
	if val := os.Getenv("TESTNET"); val == "false" {
		cfg.Testnet = false
	}

	timeoutSec := 10
	if val := os.Getenv("HTTP_TIMEOUT_SEC"); val != "" {
		timeoutSec, err = parseInt(val, "HTTP_TIMEOUT_SEC")
		if err != nil {
			return nil, err
		}
	}
	cfg.HTTPTimeout = time.Duration(timeoutSec) * time.Second

	return cfg, nil
}

func parseInt(value, name string) (int, error) {
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", name, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return i, nil
}
