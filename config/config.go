// Package config resolves ytcut settings from flags, YTCUT_* environment
// variables and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/user/ytcut/cutter"
	"github.com/user/ytcut/ffmpeg"
)

// Keys shared by flags, env vars and the config file.
const (
	KeyOutput     = "output"
	KeyTemp       = "temp"
	KeyFfmpeg     = "ffmpeg"
	KeyHistoryDB  = "history_db"
	KeyNoHistory  = "no_history"
	KeyPlay       = "play"
	KeyAccessible = "accessible"
	KeyQuiet      = "quiet"
	KeyVerbose    = "verbose"
)

// Config is the resolved runtime configuration.
type Config struct {
	Output     string
	Temp       string
	Ffmpeg     string
	HistoryDB  string
	NoHistory  bool
	Play       bool
	Accessible bool
	Quiet      bool
	Verbose    bool
}

// New returns a viper instance with ytcut defaults and env binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyOutput, cutter.DefaultOutput)
	v.SetDefault(KeyTemp, cutter.DefaultTemp)
	v.SetDefault(KeyFfmpeg, ffmpeg.DefaultBinary)
	v.SetDefault(KeyHistoryDB, "")
	v.SetDefault(KeyNoHistory, false)
	v.SetDefault(KeyPlay, false)
	v.SetDefault(KeyAccessible, false)
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyVerbose, false)

	v.SetEnvPrefix("YTCUT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds each flag to the key of the same name with dashes as underscores.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		bindErr = v.BindPFlag(key, f)
	})
	return bindErr
}

// ReadFile loads path, or ~/.config/ytcut/config.yaml when path is empty. A
// missing default file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(dir, "ytcut"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load resolves a Config from v.
func Load(v *viper.Viper) Config {
	return Config{
		Output:     v.GetString(KeyOutput),
		Temp:       v.GetString(KeyTemp),
		Ffmpeg:     v.GetString(KeyFfmpeg),
		HistoryDB:  v.GetString(KeyHistoryDB),
		NoHistory:  v.GetBool(KeyNoHistory),
		Play:       v.GetBool(KeyPlay),
		Accessible: v.GetBool(KeyAccessible),
		Quiet:      v.GetBool(KeyQuiet),
		Verbose:    v.GetBool(KeyVerbose),
	}
}
