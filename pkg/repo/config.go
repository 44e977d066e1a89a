package repo

import (
	"os"
	"path"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/tallyledger/tally/pkg/fileutil"
)

type Duration time.Duration

func (d *Duration) MarshalText() (text []byte, err error) {
	return []byte(time.Duration(*d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	x, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(x)
	return nil
}

func StringToTimeDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(Duration(5)) {
			return data, nil
		}

		d, err := time.ParseDuration(data.(string))
		if err != nil {
			return nil, err
		}
		return Duration(d), nil
	}
}

func (d *Duration) ToDuration() time.Duration {
	return time.Duration(*d)
}

func (d *Duration) String() string {
	return time.Duration(*d).String()
}

type Config struct {
	Ulimit  uint64  `mapstructure:"ulimit" toml:"ulimit"`
	Storage Storage `mapstructure:"storage" toml:"storage"`
	Monitor Monitor `mapstructure:"monitor" toml:"monitor"`
	Audit   Audit   `mapstructure:"audit" toml:"audit"`
	Log     Log     `mapstructure:"log" toml:"log"`
}

type Storage struct {
	KvType      string `mapstructure:"kv_type" toml:"kv_type"`
	KvCacheSize int    `mapstructure:"kv_cache_size" toml:"kv_cache_size"`
	Sync        bool   `mapstructure:"sync" toml:"sync"`
}

type Monitor struct {
	Enable bool  `mapstructure:"enable" toml:"enable"`
	Port   int64 `mapstructure:"port" toml:"port"`
}

type Audit struct {
	Enable bool `mapstructure:"enable" toml:"enable"`

	// Path is relative to the repo root unless absolute.
	Path string `mapstructure:"path" toml:"path"`
}

type Log struct {
	Level            string `mapstructure:"level" toml:"level"`
	Filename         string `mapstructure:"filename" toml:"filename"`
	EnableColor      bool   `mapstructure:"enable_color" toml:"enable_color"`
	DisableTimestamp bool   `mapstructure:"disable_timestamp" toml:"disable_timestamp"`
	EnablePersist    bool   `mapstructure:"enable_persist" toml:"enable_persist"`

	// unit: day
	MaxAge uint `mapstructure:"max_age" toml:"max_age"`

	RotationTime Duration  `mapstructure:"rotation_time" toml:"rotation_time"`
	Module       LogModule `mapstructure:"module" toml:"module"`
}

type LogModule struct {
	APP     string `mapstructure:"app" toml:"app"`
	Token   string `mapstructure:"token" toml:"token"`
	Ledger  string `mapstructure:"ledger" toml:"ledger"`
	Storage string `mapstructure:"storage" toml:"storage"`
	Notice  string `mapstructure:"notice" toml:"notice"`
	Audit   string `mapstructure:"audit" toml:"audit"`
}

func DefaultConfig() *Config {
	return &Config{
		Ulimit: 65535,
		Storage: Storage{
			KvType:      KVStorageTypeLeveldb,
			KvCacheSize: KVStorageCacheSize,
			Sync:        KVStorageSync,
		},
		Monitor: Monitor{
			Enable: true,
			Port:   40011,
		},
		Audit: Audit{
			Enable: true,
			Path:   path.Join(auditDirName, AuditDBFileName),
		},
		Log: Log{
			Level:            "info",
			Filename:         "tally",
			EnableColor:      true,
			DisableTimestamp: false,
			EnablePersist:    false,
			MaxAge:           30,
			RotationTime:     Duration(24 * time.Hour),
			Module: LogModule{
				APP:     "info",
				Token:   "info",
				Ledger:  "info",
				Storage: "info",
				Notice:  "info",
				Audit:   "info",
			},
		},
	}
}

func LoadConfig(repoRoot string) (*Config, error) {
	cfg, err := func() (*Config, error) {
		cfg := DefaultConfig()
		cfgPath := path.Join(repoRoot, CfgFileName)
		existConfig := fileutil.Exist(cfgPath)
		if !existConfig {
			err := os.MkdirAll(repoRoot, 0755)
			if err != nil {
				return nil, errors.Wrap(err, "failed to build default config")
			}

			if err := writeConfigWithEnv(cfgPath, cfg); err != nil {
				return nil, errors.Wrap(err, "failed to build default config")
			}
		} else {
			if err := CheckWritable(repoRoot); err != nil {
				return nil, err
			}
			if err := readConfigFromFile(cfgPath, cfg); err != nil {
				return nil, err
			}
		}

		return cfg, nil
	}()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}
