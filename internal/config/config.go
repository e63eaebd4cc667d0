// Package config loads wopp settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults
//  2. the TOML file $XDG_CONFIG_HOME/wopp/config.toml (or $WOPP_CONFIG)
//  3. a .env file in the working directory
//  4. WOPP_* environment variables
//  5. command-line flags, applied by the CLI
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/wopp/pkg/errors"
	"github.com/matzehuels/wopp/pkg/requirements"
)

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "WOPP_"

// Environment variable names.
const (
	EnvConfig     = EnvPrefix + "CONFIG"
	EnvReqDir     = EnvPrefix + "REQ_DIR"
	EnvReqPattern = EnvPrefix + "REQ_PATTERN"
	EnvCacheTTL   = EnvPrefix + "CACHE_TTL"
	EnvTimeout    = EnvPrefix + "TIMEOUT"
	EnvNoCache    = EnvPrefix + "NO_CACHE"
	EnvRedisURL   = EnvPrefix + "REDIS_URL"
	EnvPyPIURL    = EnvPrefix + "PYPI_URL"
)

// Defaults.
const (
	DefaultCacheTTL = 24 * time.Hour
	DefaultTimeout  = 10 * time.Second
)

// Config holds resolved settings. It is built once per invocation and
// passed by value.
type Config struct {
	ReqDir     string        `toml:"req_dir"`
	ReqPattern string        `toml:"req_pattern"`
	CacheTTL   time.Duration `toml:"cache_ttl"`
	Timeout    time.Duration `toml:"timeout"`
	NoCache    bool          `toml:"no_cache"`
	RedisURL   string        `toml:"redis_url"`
	PyPIURL    string        `toml:"pypi_url"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ReqDir:     ".",
		ReqPattern: requirements.DefaultPattern,
		CacheTTL:   DefaultCacheTTL,
		Timeout:    DefaultTimeout,
	}
}

// Options controls where [Load] looks.
type Options struct {
	// File is the TOML config path. Empty uses $WOPP_CONFIG, then
	// [DefaultFile]. A missing default file is not an error; a missing
	// explicit one is.
	File string

	// EnvFile is the dotenv file. Empty uses ".env"; a missing file is
	// skipped.
	EnvFile string

	// Getenv reads the environment. Nil uses os.Getenv.
	Getenv func(string) string
}

// DefaultFile returns $XDG_CONFIG_HOME/wopp/config.toml or the platform
// equivalent.
func DefaultFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wopp", "config.toml"), nil
}

// Load resolves the configuration from defaults, file and environment.
func Load(opts Options) (Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()

	file, explicit := opts.File, opts.File != ""
	if !explicit {
		if file = getenv(EnvConfig); file != "" {
			explicit = true
		} else if f, err := DefaultFile(); err == nil {
			file = f
		}
	}
	if file != "" {
		if err := cfg.loadFile(file, explicit); err != nil {
			return Config{}, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", envFile)
	}
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, explicit bool) error {
	md, err := toml.DecodeFile(path, c)
	if stderrors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) string) error {
	if v := lookup(EnvReqDir); v != "" {
		c.ReqDir = v
	}
	if v := lookup(EnvReqPattern); v != "" {
		c.ReqPattern = v
	}
	if v := lookup(EnvRedisURL); v != "" {
		c.RedisURL = v
	}
	if v := lookup(EnvPyPIURL); v != "" {
		c.PyPIURL = v
	}
	if v := lookup(EnvNoCache); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s=%q", EnvNoCache, v)
		}
		c.NoCache = b
	}
	for key, dst := range map[string]*time.Duration{EnvCacheTTL: &c.CacheTTL, EnvTimeout: &c.Timeout} {
		v := lookup(key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s=%q", key, v)
		}
		*dst = d
	}
	return nil
}

// Validate checks that settings are usable.
func (c Config) Validate() error {
	if c.CacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache_ttl must not be negative")
	}
	if c.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout must be positive")
	}
	if err := errors.ValidateFilePattern(c.ReqPattern); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "req_pattern")
	}
	if c.PyPIURL != "" {
		if err := errors.ValidateURL(c.PyPIURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "pypi_url")
		}
	}
	return nil
}

// String renders the settings as TOML, falling back to Go syntax when
// encoding fails.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return c.fields()
	}
	return b.String()
}

// fields formats c with %+v without re-entering String.
func (c Config) fields() string {
	type plain Config
	return fmt.Sprintf("%+v", plain(c))
}
