package pkgconfig

import (
	"path"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// Option tunes how NewViper builds its key space.
type Option func(v *viper.Viper) error

// WithDefaults registers fallback values for keys that no other source sets.
func WithDefaults(defaults map[string]any) Option {
	return func(v *viper.Viper) error {
		for key, value := range defaults {
			v.SetDefault(key, value)
		}
		return nil
	}
}

// WithEnvPrefix lets PREFIX_SERVER_ADDRESS_HTTP override server.address.http.
func WithEnvPrefix(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(prefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		return nil
	}
}

// WithFlags binds config keys to command-line flags. A flag only wins when
// the user actually set it.
func WithFlags(flags *pflag.FlagSet, bindings map[string]string) Option {
	return func(v *viper.Viper) error {
		if flags == nil {
			return nil
		}
		for key, name := range bindings {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return err
			}
		}
		return nil
	}
}

// NewViper builds a Viper-backed Config. When pathFile is empty no file is
// read and only flags, environment and defaults apply.
//
// The config file type is inferred by Viper from the filename extension.
func NewViper(pathFile string, opts ...Option) (*Viper, error) {
	v := viper.New()

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	if pathFile == "" {
		return &Viper{v: v}, nil
	}

	filename := path.Base(pathFile)
	configName := filename[:len(filename)-len(path.Ext(filename))]

	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(configName)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.WatchConfig()

	return &Viper{v: v}, nil
}

// GetInt returns the value for key as int64.
func (vc *Viper) GetInt(key string) int64 {
	return vc.v.GetInt64(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetArray returns the value for key split by commas, skipping blanks.
func (vc *Viper) GetArray(key string) []string {
	var out []string
	for _, item := range strings.Split(vc.v.GetString(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	return nil
}
