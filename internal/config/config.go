package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "BLOG_"

type Config struct {
	Addr     string `validate:"required"`
	DiagAddr string `validate:"required"`
	Routes   bool
	Seed     bool
	Debug    bool

	DBDriver string `validate:"required,oneof=postgres sqlite"`
	DBDSN    string `validate:"required"`
}

var validate = validator.New()

// Load reads .env (if present), then parses args with environment
// fallbacks and validates the result.
func Load(name string, args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var c Config

	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	fset.BoolVar(&c.Routes, "routes", getEnvBool("ROUTES", false), "Generate router documentation")
	fset.StringVar(&c.Addr, "addr", getEnv("ADDR", ":3333"), "application port")
	fset.StringVar(&c.DiagAddr, "diag_addr", getEnv("DIAG_ADDR", ":9999"), "diag port")
	fset.StringVar(&c.DBDriver, "db_driver", getEnv("DB_DRIVER", "sqlite"), "database driver: postgres or sqlite")
	fset.StringVar(&c.DBDSN, "db_dsn", getEnv("DB_DSN", "blog.db"), "database DSN")
	fset.BoolVar(&c.Seed, "seed", getEnvBool("SEED", false), "insert fixture data into an empty database")
	fset.BoolVar(&c.Debug, "debug", getEnvBool("DEBUG", false), "development logging")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))

	if err := validate.Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return c, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		return v
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}
