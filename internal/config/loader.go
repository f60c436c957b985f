package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"n8nmcp/pkg/logging"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvAPIURL       = "N8N_API_URL"
	EnvAPIKey       = "N8N_API_KEY"
	EnvDatabasePath = "DATABASE_PATH"
	EnvLogLevel     = "LOG_LEVEL"
	EnvMode         = "MCP_MODE"
	EnvHTTPAddr     = "MCP_HTTP_ADDR"
)

// fieldEnv maps validated field paths to the environment variable that sets
// them, so errors name what the user actually controls.
var fieldEnv = map[string]string{
	"n8n.apiUrl":    EnvAPIURL,
	"n8n.apiKey":    EnvAPIKey,
	"database.path": EnvDatabasePath,
	"logging.level": EnvLogLevel,
	"mcp.mode":      EnvMode,
	"mcp.httpAddr":  EnvHTTPAddr,
}

// LoadOptions controls where Load reads from.
type LoadOptions struct {
	// FilePath is an optional YAML file. Empty means environment only.
	FilePath string
	// Getenv looks up environment variables. Nil means os.Getenv.
	Getenv func(string) string
}

// Load builds the configuration from defaults, the optional file and the
// environment, then validates it. Every failure is a *ConfigurationError or a
// *ConfigurationErrorCollection.
func Load(opts LoadOptions) (Config, error) {
	cfg, err := merge(opts)
	if err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadLocal is Load for commands that only touch the local catalog: the n8n
// settings are neither required nor validated.
func LoadLocal(opts LoadOptions) (Config, error) {
	cfg, err := merge(opts)
	if err != nil {
		return Config{}, err
	}
	local := cfg
	local.N8N = N8NConfig{APIURL: "http://localhost", APIKey: "unused"}
	if err := Validate(local); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func merge(opts LoadOptions) (Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := GetDefaultConfig()

	if opts.FilePath != "" {
		if err := loadFile(opts.FilePath, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg, getenv)
	cfg.N8N.APIURL = normalizeURL(cfg.N8N.APIURL)
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	cfg.MCP.Mode = strings.ToLower(cfg.MCP.Mode)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		ce := &ConfigurationError{
			Source:    "file",
			FilePath:  path,
			ErrorType: ErrorTypeIO,
			Message:   err.Error(),
		}
		if errors.Is(err, os.ErrNotExist) {
			ce.Message = "config file not found"
			ce.Suggestions = []string{"Check the --config path", "Omit --config to use environment variables only"}
		}
		return ce
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ConfigurationError{
			Source:      "file",
			FilePath:    path,
			ErrorType:   ErrorTypeParse,
			Message:     err.Error(),
			Suggestions: []string{"Check the YAML syntax and field names"},
		}
	}
	logging.Debug("Config", "Loaded configuration from %s", path)
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.N8N.APIURL, EnvAPIURL)
	set(&cfg.N8N.APIKey, EnvAPIKey)
	set(&cfg.Database.Path, EnvDatabasePath)
	set(&cfg.Logging.Level, EnvLogLevel)
	set(&cfg.MCP.Mode, EnvMode)
	set(&cfg.MCP.HTTPAddr, EnvHTTPAddr)
}

// normalizeURL drops trailing slashes and an /api/v1 suffix, which the
// client adds itself.
func normalizeURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	u = strings.TrimSuffix(u, "/api/v1")
	return strings.TrimRight(u, "/")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	})
	return v
}

// Validate checks a merged configuration.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ConfigurationError{Source: "env", ErrorType: ErrorTypeValidation, Message: err.Error()}
	}

	collection := &ConfigurationErrorCollection{}
	for _, fe := range verrs {
		// Namespace is "Config.n8n.apiKey"; drop the root type name.
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		field := path
		if env, ok := fieldEnv[path]; ok {
			field = env
		}
		collection.Add(&ConfigurationError{
			Source:      "env",
			Field:       field,
			ErrorType:   ErrorTypeValidation,
			Message:     validationMessage(fe),
			Suggestions: suggestionsFor(field),
		})
	}
	if len(collection.Errors) == 1 {
		return collection.Errors[0]
	}
	return collection
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "url":
		return fmt.Sprintf("%q is not a valid URL", fe.Value())
	case "oneof":
		return fmt.Sprintf("%q must be one of: %s", fe.Value(), fe.Param())
	case "hostname_port":
		return fmt.Sprintf("%q must be host:port", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func suggestionsFor(field string) []string {
	switch field {
	case EnvAPIURL:
		return []string{"Set N8N_API_URL to your n8n instance, e.g. https://n8n.example.com"}
	case EnvAPIKey:
		return []string{"Create an API key in n8n under Settings > n8n API and set N8N_API_KEY"}
	}
	return nil
}
