// Package config resolves settings from defaults, an optional config file,
// DECK_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Option is a configuration key with its default and meaning.
type Option struct {
	Key     string
	Default any
	Comment string
}

// Options returns every configuration key.
func Options() []Option {
	return []Option{
		{Key: "ssh.host", Default: "localhost", Comment: "Host the SSH server listens on"},
		{Key: "ssh.port", Default: 53531, Comment: "Port the SSH server listens on"},
		{Key: "ssh.key_path", Default: "deck", Comment: "Path of the SSH host key, created if missing"},
		{Key: "http.addr", Default: ":8080", Comment: "Listen address of the web server"},
		{Key: "http.debug", Default: false, Comment: "Allow cross-origin requests"},
		{Key: "http.token", Default: "", Comment: "Bearer token for the protected API; empty denies all"},
		{Key: "render.format", Default: "ansi", Comment: "Output of the render command: ansi or html"},
		{Key: "render.width", Default: 0, Comment: "Wrap width of the render command; 0 uses the terminal width"},
		{Key: "log.level", Default: "", Comment: "Log level: debug, info, warn or error"},
	}
}

// New returns a viper instance seeded with the defaults.
func New() *viper.Viper {
	v := viper.New()
	for _, o := range Options() {
		v.SetDefault(o.Key, o.Default)
	}
	return v
}

// Load reads configFile, or config.yaml from the standard locations if it
// is empty, and enables DECK_* environment overrides. A missing default
// config file is not an error.
func Load(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "deck"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("deck")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}
