package config

import (
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. CHEMALERT_WEB_PORT
const EnvPrefix = "CHEMALERT_"

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig web server configuration
type WebConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	Theme       string   `yaml:"theme"`        // light | dark, handed to the UI at startup
	SearchLimit int      `yaml:"search_limit"` // results shown by the interactive search
	CorsOrigins []string `yaml:"cors_origins"`
}

// CatalogConfig selects where the catalog is loaded from
type CatalogConfig struct {
	Source string `yaml:"source"` // embedded | file | database
	Path   string `yaml:"path"`   // for source=file: .yaml, .yml, .json or .csv
}

// DBConfig database configuration, only used when catalog.source=database
type DBConfig struct {
	Type     string `yaml:"type"` // postgres | sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// LogConfig logging configuration
type LogConfig struct {
	Mode       string `yaml:"mode"` // development | production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// AppConfig application configuration
type AppConfig struct {
	System   SysConfig     `yaml:"system"`
	Web      WebConfig     `yaml:"web"`
	Catalog  CatalogConfig `yaml:"catalog"`
	Database DBConfig      `yaml:"database"`
	Logger   LogConfig     `yaml:"logger"`
}

// GetLogDir returns the log directory under the workdir
func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

// GetDataDir returns the data directory under the workdir
func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

// DefaultAppConfig returns the built-in defaults
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "chemalert",
			Location: "Asia/Kolkata",
			Workdir:  "/var/chemalert",
			Debug:    false,
		},
		Web: WebConfig{
			Host:        "0.0.0.0",
			Port:        1980,
			Theme:       "light",
			SearchLimit: 10,
			CorsOrigins: []string{"*"},
		},
		Catalog: CatalogConfig{
			Source: "embedded",
		},
		Database: DBConfig{
			Type:     "sqlite",
			Host:     "127.0.0.1",
			Port:     5432,
			Name:     "chemalert.db",
			User:     "postgres",
			Passwd:   "",
			MaxConn:  20,
			IdleConn: 5,
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/chemalert/logs/chemalert.log",
		},
	}
}

// LoadConfig reads cfile (if given and present) over the defaults, applies
// environment overrides and validates the result.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", cfile)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", cfile)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setString(key string, dst *string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
		*dst = v
	}
}

func setInt(key string, dst *int) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
		if n, err := cast.ToIntE(v); err == nil {
			*dst = n
		}
	}
}

func setBool(key string, dst *bool) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			*dst = b
		}
	}
}

func (c *AppConfig) applyEnvOverrides() {
	setString("SYSTEM_WORKDIR", &c.System.Workdir)
	setString("SYSTEM_LOCATION", &c.System.Location)
	setBool("SYSTEM_DEBUG", &c.System.Debug)

	setString("WEB_HOST", &c.Web.Host)
	setInt("WEB_PORT", &c.Web.Port)
	setString("WEB_THEME", &c.Web.Theme)
	setInt("WEB_SEARCH_LIMIT", &c.Web.SearchLimit)
	if v := os.Getenv(EnvPrefix + "WEB_CORS_ORIGINS"); v != "" {
		c.Web.CorsOrigins = cast.ToStringSlice(strings.ReplaceAll(v, ",", " "))
	}

	setString("CATALOG_SOURCE", &c.Catalog.Source)
	setString("CATALOG_PATH", &c.Catalog.Path)

	setString("DB_TYPE", &c.Database.Type)
	setString("DB_HOST", &c.Database.Host)
	setInt("DB_PORT", &c.Database.Port)
	setString("DB_NAME", &c.Database.Name)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWD", &c.Database.Passwd)
	setBool("DB_DEBUG", &c.Database.Debug)

	setString("LOGGER_MODE", &c.Logger.Mode)
	setBool("LOGGER_FILE_ENABLE", &c.Logger.FileEnable)
	setString("LOGGER_FILENAME", &c.Logger.Filename)
}

// Validate checks enumerated settings
func (c *AppConfig) Validate() error {
	switch c.Web.Theme {
	case "light", "dark":
	default:
		return errors.Errorf("web.theme must be light or dark, got %q", c.Web.Theme)
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return errors.Errorf("web.port out of range: %d", c.Web.Port)
	}
	if c.Web.SearchLimit <= 0 {
		c.Web.SearchLimit = 10
	}
	switch c.Catalog.Source {
	case "embedded":
	case "file":
		if c.Catalog.Path == "" {
			return errors.New("catalog.path is required when catalog.source is file")
		}
	case "database":
		switch c.Database.Type {
		case "postgres", "sqlite":
		default:
			return errors.Errorf("database.type must be postgres or sqlite, got %q", c.Database.Type)
		}
	default:
		return errors.Errorf("catalog.source must be embedded, file or database, got %q", c.Catalog.Source)
	}
	return nil
}
