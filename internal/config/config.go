// Package config loads the qtorm CLI configuration from .qtorm.yaml, the
// environment (QTORM_ prefix, .env files) and command line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs 所有的文件读写都通过它，测试的时候替换成内存文件系统
var AppFs = afero.NewOsFs()

const (
	envPrefix = "QTORM"
	// DefaultFile 在当前目录下查找
	DefaultFile = ".qtorm.yaml"
)

// FieldConfig declares one column.
type FieldConfig struct {
	Name          string `mapstructure:"name"`
	Type          string `mapstructure:"type"`
	PrimaryKey    bool   `mapstructure:"primary_key"`
	AutoIncrement bool   `mapstructure:"auto_increment"`
	NotNull       bool   `mapstructure:"not_null"`
	Unique        bool   `mapstructure:"unique"`
	Size          int    `mapstructure:"size"`
	// References 外键引用的表名，只能用在 int 类型上
	References string `mapstructure:"references"`
}

type TableConfig struct {
	Name   string        `mapstructure:"name"`
	Fields []FieldConfig `mapstructure:"fields"`
}

type TraceConfig struct {
	// Exporter 是 zipkin 或者 jaeger，为空的时候不上报
	Exporter    string `mapstructure:"exporter"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// Config holds the CLI configuration.
type Config struct {
	Driver  string        `mapstructure:"driver"`
	DSN     string        `mapstructure:"dsn"`
	Out     string        `mapstructure:"out"`
	Verbose bool          `mapstructure:"verbose"`
	Tables  []TableConfig `mapstructure:"tables"`
	Trace   TraceConfig   `mapstructure:"trace"`
}

// New returns a viper instance reading QTORM_ variables.
// Flags may be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetFs(AppFs)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("driver", "sqlite3")
	v.SetDefault("dsn", "")
	v.SetDefault("out", "")
	v.SetDefault("verbose", false)
	v.SetDefault("trace.exporter", "")
	v.SetDefault("trace.endpoint", "")
	v.SetDefault("trace.service_name", "qtorm")
	return v
}

// Load reads the configuration. path overrides DefaultFile and must exist
// when given.
func Load(v *viper.Viper, path string) (*Config, error) {
	if err := loadDotEnv(".env", false); err != nil {
		return nil, err
	}
	// .env.local 优先级更高
	if err := loadDotEnv(".env.local", true); err != nil {
		return nil, err
	}

	if path == "" {
		// 默认的配置文件可以不存在
		if ok, err := afero.Exists(AppFs, DefaultFile); err != nil {
			return nil, err
		} else if ok {
			path = DefaultFile
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.DSN == "" {
		cfg.DSN = os.Getenv("DATABASE_URL")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv 读取 .env 文件，文件不存在的时候忽略
func loadDotEnv(name string, overload bool) error {
	data, err := afero.ReadFile(AppFs, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	vals, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", name, err)
	}
	for k, val := range vals {
		if _, ok := os.LookupEnv(k); ok && !overload {
			continue
		}
		if err = os.Setenv(k, val); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the table declarations.
func (c *Config) Validate() error {
	if c.Driver == "" {
		return errors.New("config: driver is required")
	}
	tables := make(map[string]struct{}, len(c.Tables))
	for _, t := range c.Tables {
		if t.Name == "" {
			return errors.New("config: table without name")
		}
		if _, ok := tables[t.Name]; ok {
			return fmt.Errorf("config: duplicate table %s", t.Name)
		}
		tables[t.Name] = struct{}{}
	}

	for _, t := range c.Tables {
		cols := make(map[string]struct{}, len(t.Fields))
		for _, f := range t.Fields {
			if f.Name == "" {
				return fmt.Errorf("config: table %s: field without name", t.Name)
			}
			if _, ok := cols[f.Name]; ok {
				return fmt.Errorf("config: table %s: duplicate field %s", t.Name, f.Name)
			}
			cols[f.Name] = struct{}{}
			if _, err := parseKind(f.Type); err != nil {
				return fmt.Errorf("config: table %s: field %s: %w", t.Name, f.Name, err)
			}
			if f.References == "" {
				continue
			}
			if f.Type != "int" {
				return fmt.Errorf("config: table %s: field %s: references needs type int", t.Name, f.Name)
			}
			if _, ok := tables[f.References]; !ok {
				return fmt.Errorf("config: table %s: field %s: unknown table %s", t.Name, f.Name, f.References)
			}
		}
	}
	return nil
}
