// Package config resolves CLI settings from flags, CKIT_* environment
// variables and an optional YAML config file, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/provenance-io/contract-kit-go/pkg/chain"
	"github.com/provenance-io/contract-kit-go/pkg/logger"
	"github.com/provenance-io/contract-kit-go/pkg/runtime"
)

const envPrefix = "CKIT"

const (
	KeyConfig   = "config"
	KeyReceiver = "receiver"
	KeyCode     = "code"
	KeyLogLevel = "log_level"
	KeyTrace    = "trace"
)

type Config struct {
	Receiver chain.Name
	Code     chain.Name
	LogLevel zapcore.Level
	// Trace is a file traces are appended to; empty disables tracing.
	Trace string
}

// raw mirrors the config file layout.
type raw struct {
	Receiver string `mapstructure:"receiver"`
	Code     string `mapstructure:"code"`
	LogLevel string `mapstructure:"log_level"`
	Trace    string `mapstructure:"trace"`
}

// BindFlags registers the persistent flags shared by all commands.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(KeyConfig, "", "path to a YAML config file")
	fs.String(KeyReceiver, runtime.DefaultAccount, "account receiving actions")
	fs.String(KeyCode, "", "account whose code actions are sent to (default receiver)")
	fs.String("log-level", "warn", "log level: debug, info, warn, error")
	fs.String(KeyTrace, "", "append protobuf action traces to this file")
}

// Load builds a Config from fs, the environment and the config file
// named by --config or CKIT_CONFIG.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		KeyConfig:   KeyConfig,
		KeyReceiver: KeyReceiver,
		KeyCode:     KeyCode,
		KeyLogLevel: "log-level",
		KeyTrace:    KeyTrace,
	} {
		if f := fs.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var r raw
	if err := v.Unmarshal(&r); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return r.resolve()
}

func (r raw) resolve() (*Config, error) {
	if r.Receiver == "" {
		return nil, errors.New("receiver must be set")
	}
	c := &Config{Trace: r.Trace}

	var err error
	if c.Receiver, err = chain.ParseName(r.Receiver); err != nil {
		return nil, fmt.Errorf("receiver: %w", err)
	}
	c.Code = c.Receiver
	if r.Code != "" {
		if c.Code, err = chain.ParseName(r.Code); err != nil {
			return nil, fmt.Errorf("code: %w", err)
		}
	}
	if r.LogLevel == "" {
		r.LogLevel = "warn"
	}
	if c.LogLevel, err = logger.ParseLevel(r.LogLevel); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return c, nil
}

// Logger builds the process logger at the configured level.
func (c *Config) Logger() (logger.Logger, error) {
	return logger.New(c.LogLevel)
}
