package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	Remote RemoteConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	View   ViewConfig
}

type AppConfig struct {
	Port               string
	Env                string
	LoginRatePerMinute int
	AllowedOrigins     []string

	// TrustedProxies may set X-Forwarded-For; IPs or CIDRs
	TrustedProxies []string
}

// RemoteConfig holds the institute backend endpoints. The dashboard screens
// historically talked to several hosts, so each resource group has its own base URL.
type RemoteConfig struct {
	InstituteURL string
	ScheduleURL  string
	UploadURL    string
	Timeout      time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type ViewConfig struct {
	PageSize int
}

func LoadConfig() (*Config, error) {
	// .env is optional; values from the process environment win.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("VIEW_PAGE_SIZE", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("DB_PORT", "5432")

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 12 * time.Hour
	}

	timeout, err := time.ParseDuration(v.GetString("REMOTE_TIMEOUT"))
	if err != nil {
		timeout = 15 * time.Second
	}

	instituteURL := v.GetString("INSTITUTE_API_URL")
	scheduleURL := v.GetString("SCHEDULE_API_URL")
	if scheduleURL == "" {
		scheduleURL = instituteURL
	}
	uploadURL := v.GetString("UPLOAD_API_URL")
	if uploadURL == "" {
		uploadURL = instituteURL
	}

	// An empty origin list allows every origin
	allowedOrigins := splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	pageSize := v.GetInt("VIEW_PAGE_SIZE")
	if pageSize < 1 {
		pageSize = 10
	}

	return &Config{
		App: AppConfig{
			Port:               v.GetString("APP_PORT"),
			Env:                v.GetString("APP_ENV"),
			LoginRatePerMinute: v.GetInt("LOGIN_RATE_PER_MINUTE"),
			AllowedOrigins:     allowedOrigins,
			TrustedProxies:     splitList(v.GetString("TRUSTED_PROXIES")),
		},
		Remote: RemoteConfig{
			InstituteURL: instituteURL,
			ScheduleURL:  scheduleURL,
			UploadURL:    uploadURL,
			Timeout:      timeout,
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		View: ViewConfig{
			PageSize: pageSize,
		},
	}
}

// splitList reads a comma separated env value
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
