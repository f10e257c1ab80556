package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MrSnakeDoc/gradle-updater/internal/errs"
	"github.com/MrSnakeDoc/gradle-updater/internal/versions"
	"github.com/MrSnakeDoc/gradle-updater/internal/wrapper"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "GRADLE_UPDATER"

// Keys of every setting, as used in the config file.
const (
	KeyStage       = "stage"
	KeyEndpoint    = "endpoint"
	KeyGradlew     = "gradlew"
	KeyDir         = "dir"
	KeyPolicy      = "policy"
	KeyTimeout     = "timeout"
	KeyHTTPTimeout = "http_timeout"
	KeyLogLevel    = "log_level"
	KeyJSONLogs    = "json_logs"
)

type Config struct {
	Stage       string
	Endpoint    string
	Gradlew     string
	Dir         string
	Policy      versions.Policy
	Timeout     time.Duration
	HTTPTimeout time.Duration
	LogLevel    string
	JSONLogs    bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyEndpoint, versions.DefaultEndpoint)
	v.SetDefault(KeyGradlew, wrapper.DefaultScript)
	v.SetDefault(KeyDir, ".")
	v.SetDefault(KeyPolicy, string(versions.Lenient))
	v.SetDefault(KeyTimeout, 15*time.Minute)
	v.SetDefault(KeyHTTPTimeout, 30*time.Second)
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyJSONLogs, false)
}

// RegisterFlags adds one flag per setting to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("stage", "", "release stage to query (current, release-candidate, nightly, ...)")
	fs.String("endpoint", versions.DefaultEndpoint, "versions endpoint base URL")
	fs.String("gradlew", wrapper.DefaultScript, "wrapper script to invoke")
	fs.String("dir", ".", "Gradle project directory")
	fs.String("policy", string(versions.Lenient), "response shape policy: lenient or strict")
	fs.Duration("timeout", 15*time.Minute, "upper bound for the whole run")
	fs.Duration("http-timeout", 30*time.Second, "timeout of the versions request")
	fs.String("config", "", "optional YAML config file")
}

var flagKeys = map[string]string{
	KeyStage:       "stage",
	KeyEndpoint:    "endpoint",
	KeyGradlew:     "gradlew",
	KeyDir:         "dir",
	KeyPolicy:      "policy",
	KeyTimeout:     "timeout",
	KeyHTTPTimeout: "http-timeout",
}

// Load resolves settings from flags, the CI input, GRADLE_UPDATER_* variables,
// the config file and defaults, in that order.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	if err := v.BindEnv(KeyStage, "INPUT_STAGE", EnvPrefix+"_STAGE"); err != nil {
		return nil, errs.New(errs.Configuration, "bind env", err)
	}

	if fs != nil {
		for key, name := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errs.New(errs.Configuration, "bind flag "+name, err)
				}
			}
		}
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			if err := mergeFile(v, f.Value.String()); err != nil {
				return nil, err
			}
		}
	}

	if !v.IsSet(KeyStage) {
		return nil, errs.Newf(errs.Configuration, "read input",
			"input %q is required (set --stage, INPUT_STAGE or %s_STAGE)", KeyStage, EnvPrefix)
	}

	policy, err := versions.ParsePolicy(v.GetString(KeyPolicy))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Stage:       v.GetString(KeyStage),
		Endpoint:    v.GetString(KeyEndpoint),
		Gradlew:     v.GetString(KeyGradlew),
		Dir:         v.GetString(KeyDir),
		Policy:      policy,
		Timeout:     v.GetDuration(KeyTimeout),
		HTTPTimeout: v.GetDuration(KeyHTTPTimeout),
		LogLevel:    v.GetString(KeyLogLevel),
		JSONLogs:    v.GetBool(KeyJSONLogs),
	}

	// Empty variables are allowed so INPUT_STAGE="" counts as set; other
	// string settings fall back to their defaults instead.
	if cfg.Gradlew == "" {
		cfg.Gradlew = wrapper.DefaultScript
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = versions.DefaultEndpoint
	}

	if cfg.Timeout < 0 || cfg.HTTPTimeout < 0 {
		return nil, errs.Newf(errs.Configuration, "read config", "timeouts must not be negative")
	}

	return cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.New(errs.Configuration, "read config file", err)
	}

	settings := map[string]any{}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return errs.New(errs.Configuration, "read config file",
			fmt.Errorf("failed to unmarshal YAML from %s: %w", path, err))
	}

	if err := v.MergeConfigMap(settings); err != nil {
		return errs.New(errs.Configuration, "read config file", err)
	}
	return nil
}
