package main

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"

	"tabroom-plus/matchup"
	"tabroom-plus/rankings"
)

type Config struct {
	Addr        string
	DBPath      string
	RankingsURL string
	Margin      float64
	Aliases     []rankings.Alias
	HTTPTimeout time.Duration
	Debug       bool
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:        ":8080",
		DBPath:      "./tabroom_plus.db",
		RankingsURL: rankings.DefaultURL,
		Margin:      matchup.DefaultMargin,
		Aliases:     rankings.DefaultAliases,
		HTTPTimeout: 30 * time.Second,
	}

	if port := getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	// Railway volume mount, as deployed; an explicit path wins.
	if mountPath := getenv("RAILWAY_VOLUME_MOUNT_PATH"); mountPath != "" {
		cfg.DBPath = filepath.Join(mountPath, "tabroomplus.db")
	}
	if p := getenv("TABROOM_DB_PATH"); p != "" {
		cfg.DBPath = p
	}

	if u := getenv("TABROOM_RANKINGS_URL"); u != "" {
		cfg.RankingsURL = u
	}

	if m := getenv("TABROOM_MATCHUP_MARGIN"); m != "" {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return Config{}, eris.Errorf("config: invalid TABROOM_MATCHUP_MARGIN %q", m)
		}
		cfg.Margin = v
	}

	if a := getenv("TABROOM_SCHOOL_ALIASES"); a != "" {
		aliases, err := parseAliases(a)
		if err != nil {
			return Config{}, err
		}
		cfg.Aliases = aliases
	}

	if t := getenv("TABROOM_HTTP_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return Config{}, eris.Wrapf(err, "config: invalid TABROOM_HTTP_TIMEOUT %q", t)
		}
		cfg.HTTPTimeout = d
	}

	cfg.Debug = getenv("TABROOM_DEBUG") == "1"
	return cfg, nil
}

// parseAliases reads "variant=canonical" pairs separated by commas, keeping
// their order. "none" disables aliasing.
func parseAliases(s string) ([]rankings.Alias, error) {
	out := []rankings.Alias{}
	if strings.TrimSpace(s) == "none" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		variant, canonical, ok := strings.Cut(pair, "=")
		variant, canonical = strings.TrimSpace(variant), strings.TrimSpace(canonical)
		if !ok || variant == "" || canonical == "" {
			return nil, eris.Errorf("config: invalid school alias %q", pair)
		}
		out = append(out, rankings.Alias{Variant: variant, Canonical: canonical})
	}
	return out, nil
}
