package config

import (
	"fmt"
	"time"
)

const DevelopmentEnv = "development"

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer APIServerConfigs
	Auth      AuthConfigs
	Search    SearchConfigs
	Redis     RedisConfigs
	View      ViewConfigs
	Logger    LoggerConfigs
}

// IsDevelopment is true when the service runs on a local machine. Cookies are
// sent without the Secure flag in this mode.
func (c Configs) IsDevelopment() bool {
	return c.Env == DevelopmentEnv
}

type DatabaseConfigs struct {
	Driver   string
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string
}

func (d *DatabaseConfigs) ConnectionString() string {
	if d.Driver == "sqlite" {
		return d.Database
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	DefaultLimit    int
	MaxLimit        int
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

const (
	DatabaseSearchEngine = "database"
	BleveSearchEngine    = "bleve"
)

type SearchConfigs struct {
	Engine        string
	IndexDir      string
	MaxResults    int
	PreviewLength int
}

type RedisConfigs struct {
	Addr string
}

type ViewConfigs struct {
	// DedupWindow is the period in which the same viewer is counted once for a
	// post. Zero means every read is counted.
	DedupWindow time.Duration
}

type LoggerConfigs struct {
	Level string
}

func Default() Configs {
	return Configs{
		Env: "production",
		Database: DatabaseConfigs{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     "3306",
			Database: "overflow",
			User:     "root",
			LogLevel: "error",
		},
		ApiServer: APIServerConfigs{
			ServerConfigs:   ServerConfigs{Port: "8080"},
			DefaultLimit:    10,
			MaxLimit:        100,
			ShutdownTimeout: 30 * time.Second,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "auth_token",
				Expiration: 24 * time.Hour,
			},
		},
		Search: SearchConfigs{
			Engine:        DatabaseSearchEngine,
			IndexDir:      "./index",
			MaxResults:    50,
			PreviewLength: 200,
		},
		Logger: LoggerConfigs{
			Level: "info",
		},
	}
}
