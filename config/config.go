package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultHTTPPort           = 3000
	defaultPostgresPort       = "5432"
	defaultSSLMode            = "disable"
	defaultLogLevel           = "info"
	defaultBcryptCost         = 10

	PasswordAlgorithmBcrypt   = "bcrypt"
	PasswordAlgorithmArgon2id = "argon2id"
)

// legacyEnvKeys maps the flat variable names used by earlier deployments onto config keys.
var legacyEnvKeys = map[string]string{
	"DB_HOST":     "postgres.master.host",
	"DB_PORT":     "postgres.master.port",
	"DB_DATABASE": "postgres.database",
	"DB_USERNAME": "postgres.master.userName",
	"DB_PASSWORD": "postgres.master.password",
	"JWT_SECRET":  "secretKey.jwt",
	"PORT":        "http.port",
}

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port" validate:"gte=0,lte=65535"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *PostgresConfig `json:"postgres" yaml:"postgres" mapstructure:"postgres" validate:"required"`

	SecretKey struct {
		// JWT signs and verifies session tokens.
		JWT string `json:"jwt" yaml:"jwt" validate:"min=5"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`
}

// PostgresConfig extends the shared connection settings with schema bootstrap and query logging options.
type PostgresConfig struct {
	postgres.DBConn `mapstructure:",squash"`

	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
	// SlowQueryThreshold marks queries slower than this as warnings. Zero keeps the default.
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost        int    `json:"bcryptCost" yaml:"bcryptCost" validate:"omitempty,gte=4,lte=31"`
	PasswordAlgorithm string `json:"passwordAlgorithm" yaml:"passwordAlgorithm" validate:"omitempty,oneof=bcrypt argon2id"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf and overlays environment variables.
// A missing yaml file is not an error; the configuration then comes from the environment alone.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile != "" {
		if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read %s config failed", currEnv)
		}
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := applyLegacyEnv(koanfInstance); err != nil {
		return nil, err
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded configuration against its struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	return c.Postgres.validate()
}

func (p *PostgresConfig) validate() error {
	switch {
	case p.Master.Host == "":
		return errors.New("invalid configuration: postgres.master.host is required")
	case p.Master.UserName == "":
		return errors.New("invalid configuration: postgres.master.userName is required")
	case p.Database == "":
		return errors.New("invalid configuration: postgres.database is required")
	}

	return nil
}

// PasswordAlgorithm returns the configured hashing algorithm, defaulting to bcrypt.
func (c *Config) PasswordAlgorithm() string {
	if c.Auth == nil || c.Auth.PasswordAlgorithm == "" {
		return PasswordAlgorithmBcrypt
	}

	return c.Auth.PasswordAlgorithm
}

// BcryptCost returns the configured bcrypt cost, defaulting to 10.
func (c *Config) BcryptCost() int {
	if c.Auth == nil || c.Auth.BcryptCost == 0 {
		return defaultBcryptCost
	}

	return c.Auth.BcryptCost
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = defaultHTTPPort
	}
	if c.Env.Log.Level == "" {
		c.Env.Log.Level = defaultLogLevel
	}
	if c.Postgres == nil {
		return
	}
	master := &c.Postgres.Master
	if master.Port == "" {
		master.Port = defaultPostgresPort
	}
	if c.Postgres.SSLMode == "" {
		c.Postgres.SSLMode = defaultSSLMode
	}
	for i := range c.Postgres.Replicas {
		replica := &c.Postgres.Replicas[i]
		if replica.Port == "" {
			replica.Port = master.Port
		}
		if replica.UserName == "" {
			replica.UserName = master.UserName
			replica.Password = master.Password
		}
	}
}

// loadDotEnv populates the process environment from a .env file when one exists.
// Variables already set in the environment win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return errors.Wrapf(err, "load %s failed", path)
	}

	return nil
}

func applyLegacyEnv(k *koanf.Koanf) error {
	for envKey, configKey := range legacyEnvKeys {
		value, ok := os.LookupEnv(envKey)
		if !ok {
			continue
		}
		if err := k.Set(configKey, value); err != nil {
			return errors.Wrapf(err, "apply %s", envKey)
		}
	}

	replicas := replicasFromEnv()
	if len(replicas) == 0 {
		return nil
	}

	return errors.Wrap(k.Set("postgres.replicas", replicas), "apply postgres replicas")
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// replicasFromEnv builds the replicas slice from environment variables.
// Format: POSTGRES_REPLICAS_{index}_{HOST|PORT|USERNAME|PASSWORD}
func replicasFromEnv() []map[string]any {
	var replicas []map[string]any

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		if host == "" {
			break
		}

		replicas = append(replicas, map[string]any{
			"host":     host,
			"port":     os.Getenv(prefix + "PORT"),
			"userName": os.Getenv(prefix + "USERNAME"),
			"password": os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
