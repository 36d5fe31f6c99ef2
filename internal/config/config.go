package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	PublicData PublicDataConfig
	Naver      NaverConfig
	Kakao      KakaoConfig
	Supabase   SupabaseConfig
	Redis      RedisConfig
	OAuth      OAuthConfig
	Log        LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// PublicDataConfig - настройки клиента портала открытых данных (상가정보 API)
type PublicDataConfig struct {
	BaseURL       string
	ServiceKey    string
	RegionTimeout time.Duration
	SearchTimeout time.Duration
}

type NaverConfig struct {
	ClientID     string
	ClientSecret string
	AuthBaseURL  string
	APIBaseURL   string
}

type KakaoConfig struct {
	ClientID     string
	ClientSecret string
	AuthBaseURL  string
	APIBaseURL   string
}

type SupabaseConfig struct {
	URL     string
	AnonKey string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type OAuthConfig struct {
	StateTTL time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		PublicData: PublicDataConfig{
			BaseURL:       viper.GetString("PUBLIC_DATA_BASE_URL"),
			ServiceKey:    viper.GetString("PUBLIC_DATA_SERVICE_KEY"),
			RegionTimeout: time.Duration(viper.GetInt("PUBLIC_DATA_REGION_TIMEOUT")) * time.Second,
			SearchTimeout: time.Duration(viper.GetInt("PUBLIC_DATA_SEARCH_TIMEOUT")) * time.Second,
		},
		Naver: NaverConfig{
			ClientID:     viper.GetString("NAVER_CLIENT_ID"),
			ClientSecret: viper.GetString("NAVER_CLIENT_SECRET"),
			AuthBaseURL:  viper.GetString("NAVER_AUTH_BASE_URL"),
			APIBaseURL:   viper.GetString("NAVER_API_BASE_URL"),
		},
		Kakao: KakaoConfig{
			ClientID:     viper.GetString("KAKAO_CLIENT_ID"),
			ClientSecret: viper.GetString("KAKAO_CLIENT_SECRET"),
			AuthBaseURL:  viper.GetString("KAKAO_AUTH_BASE_URL"),
			APIBaseURL:   viper.GetString("KAKAO_API_BASE_URL"),
		},
		Supabase: SupabaseConfig{
			URL:     viper.GetString("SUPABASE_URL"),
			AnonKey: viper.GetString("SUPABASE_ANON_KEY"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		OAuth: OAuthConfig{
			StateTTL: time.Duration(viper.GetInt("OAUTH_STATE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.PublicData.BaseURL == "" {
		cfg.PublicData.BaseURL = "http://apis.data.go.kr/B553077/api/open/sdsc2"
	}
	if cfg.PublicData.RegionTimeout == 0 {
		cfg.PublicData.RegionTimeout = 5 * time.Second
	}
	if cfg.PublicData.SearchTimeout == 0 {
		cfg.PublicData.SearchTimeout = 10 * time.Second
	}
	if cfg.Naver.AuthBaseURL == "" {
		cfg.Naver.AuthBaseURL = "https://nid.naver.com"
	}
	if cfg.Naver.APIBaseURL == "" {
		cfg.Naver.APIBaseURL = "https://openapi.naver.com"
	}
	if cfg.Kakao.AuthBaseURL == "" {
		cfg.Kakao.AuthBaseURL = "https://kauth.kakao.com"
	}
	if cfg.Kakao.APIBaseURL == "" {
		cfg.Kakao.APIBaseURL = "https://kapi.kakao.com"
	}
	if cfg.OAuth.StateTTL == 0 {
		cfg.OAuth.StateTTL = 10 * time.Minute
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// IsProduction сообщает, запущен ли сервис в production-окружении.
// Подстановка тестовых данных вместо ошибки upstream разрешена только вне production.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
