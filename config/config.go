package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

// Auth strategy names recognized in configuration.
const (
	StrategyBasic   = "basic"
	StrategySession = "session"
)

// Session store backends recognized in configuration.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// DefaultSessionCookieName is used when no cookie name is configured. The
// session strategy still demands an explicit name via Validate.
const DefaultSessionCookieName = "session_id"

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Redis *RedisConfig `json:"redis" yaml:"redis"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// RedisConfig holds connection settings for the Redis session store.
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// AuthConfig defines authentication-related configuration.
type AuthConfig struct {
	// Strategy selects the identity source for protected routes:
	// "basic" (Authorization header) or "session" (session cookie).
	Strategy string `json:"strategy" yaml:"strategy"`

	// SessionStore selects the session storage backend:
	// "memory", "postgres" or "redis".
	SessionStore string `json:"sessionStore" yaml:"sessionStore"`

	// SessionCookieName is the cookie carrying the session token.
	// It has no default and must be provided for the session strategy.
	SessionCookieName string `json:"sessionCookieName" yaml:"sessionCookieName"`

	// SessionDurationSeconds is the session TTL. Zero or unset disables
	// expiry entirely; sessions then live until revoked.
	SessionDurationSeconds int `json:"sessionDurationSeconds" yaml:"sessionDurationSeconds"`

	// ExcludedPaths lists routes that never require authentication.
	// Each entry must end with '/' (exact match) or '*' (prefix match).
	ExcludedPaths []string `json:"excludedPaths" yaml:"excludedPaths"`

	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
}

// Validate checks the auth section for values that cannot be acted on.
func (c *AuthConfig) Validate() error {
	switch c.Strategy {
	case StrategyBasic, StrategySession:
	default:
		return errors.Errorf("unknown auth strategy: %q", c.Strategy)
	}

	if c.Strategy == StrategySession {
		if c.SessionCookieName == "" {
			return errors.New("auth.sessionCookieName must be provided for the session strategy")
		}
		switch c.SessionStore {
		case StoreMemory, StorePostgres, StoreRedis:
		default:
			return errors.Errorf("unknown session store: %q", c.SessionStore)
		}
	}

	if c.SessionDurationSeconds < 0 {
		return errors.Errorf("auth.sessionDurationSeconds must be >= 0, got %d", c.SessionDurationSeconds)
	}

	return nil
}

// LoadWithEnv loads .yaml files through koanf.
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

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: AUTH_SESSIONCOOKIENAME -> auth.sessionCookieName
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Auth == nil {
		return nil, errors.New("auth configuration section is required")
	}

	// SESSION_COOKIE_NAME and SESSION_DURATION_SECONDS are honored as plain
	// environment variables on top of the koanf env mapping.
	if name := os.Getenv("SESSION_COOKIE_NAME"); name != "" {
		cfg.Auth.SessionCookieName = name
	}
	if raw := os.Getenv("SESSION_DURATION_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "parse SESSION_DURATION_SECONDS %q", raw)
		}
		cfg.Auth.SessionDurationSeconds = seconds
	}

	if err := cfg.Auth.Validate(); err != nil {
		return nil, err
	}

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
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

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
