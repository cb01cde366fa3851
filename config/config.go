package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	DBUrl         string
	TokenSecret   string
	TokenTTL      time.Duration
	Debug         bool
	SeedFile      string
	StaticDir     string
	AdminUser     string
	AdminPassword string
}

// ParseFlags reads the command line. Defaults come from QFORM_* environment
// variables, optionally loaded from a .env file in the working directory.
func ParseFlags() (cfg Config, err error) {
	return Parse(flag.CommandLine, os.Args[1:])
}

func Parse(fs *flag.FlagSet, args []string) (cfg Config, err error) {
	err = godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return
	}

	var host string
	fs.StringVar(&host, "host", env("QFORM_HOST", "0.0.0.0"), "listen host name")
	var port uint
	fs.UintVar(&port, "port", uint(envInt("QFORM_PORT", 80)), "listen port number")
	fs.StringVar(&cfg.DBUrl, "db-url", env("QFORM_DB_URL", "qform.sqlite"), "path to SQLite3 DB file")
	fs.StringVar(&cfg.TokenSecret, "token-secret", env("QFORM_TOKEN_SECRET", ""), "secret key for token encryption and decryption")
	var ttl uint
	fs.UintVar(&ttl, "token-ttl", uint(envInt("QFORM_TOKEN_TTL", 120)), "token TTL in seconds")
	fs.BoolVar(&cfg.Debug, "debug", env("QFORM_DEBUG", "") == "true", "log at DEBUG level")
	fs.StringVar(&cfg.SeedFile, "seed", env("QFORM_SEED", ""), "YAML file of forms to import into an empty database")
	fs.StringVar(&cfg.StaticDir, "static-dir", env("QFORM_STATIC_DIR", ""), "directory holding the public/ and private/ page trees (empty serves the API only)")
	fs.StringVar(&cfg.AdminUser, "admin-user", env("QFORM_ADMIN_USER", "admin"), "administrator user name")
	fs.StringVar(&cfg.AdminPassword, "admin-password", env("QFORM_ADMIN_PASSWORD", ""), "create or reset the administrator with this password")
	err = fs.Parse(args)
	if err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(env(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
