package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultListenAddr = ":3000"
	DefaultStaticDir  = "./static"
	DefaultSiteName   = "Atelier"
)

type MySQLConfig struct {
	Dsn             string `mapstructure:"dsn"`
	TablePrefix     string `mapstructure:"tablePrefix"`
	MaxIdleConns    int    `mapstructure:"maxIdleConns"`
	MaxOpenConns    int    `mapstructure:"maxOpenConns"`
	ConnMaxIdleTime int    `mapstructure:"connMaxIdleTime"`
	ConnMaxLifetime int    `mapstructure:"connMaxLifetime"`
}

type RedisConfig struct {
	URL         string `mapstructure:"url"`
	PoolSize    int    `mapstructure:"poolSize"`
	ClusterMode bool   `mapstructure:"clusterMode"`
}

type StorageConfig struct {
	Backend string      `mapstructure:"backend"` // "redis" or "memory"
	Redis   RedisConfig `mapstructure:"redis"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"botToken"`
	ChatID   string `mapstructure:"chatID"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

type NotifyConfig struct {
	Backend  string         `mapstructure:"backend"` // "telegram" or "smtp"
	Telegram TelegramConfig `mapstructure:"telegram"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
}

type AdminConfig struct {
	Username     string `mapstructure:"username"`
	CookieSecure bool   `mapstructure:"cookieSecure"`
}

type Config struct {
	Debug        bool          `mapstructure:"debug"`
	SiteName     string        `mapstructure:"siteName"`
	BaseURL      string        `mapstructure:"baseURL"`
	SecretKey    string        `mapstructure:"secretKey"`
	ListenAddr   string        `mapstructure:"listenAddr"`
	StaticDir    string        `mapstructure:"staticDir"`
	TemplateDir  string        `mapstructure:"templateDir"`
	AllowOrigins []string      `mapstructure:"allowOrigins"`
	Admin        AdminConfig   `mapstructure:"admin"`
	Storage      StorageConfig `mapstructure:"storage"`
	MySQL        MySQLConfig   `mapstructure:"mysql"`
	Notify       NotifyConfig  `mapstructure:"notify"`
}

func (c *Config) Sanitize() error {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.StaticDir == "" {
		c.StaticDir = DefaultStaticDir
	}
	if c.SiteName == "" {
		c.SiteName = DefaultSiteName
	}
	if c.Admin.Username == "" {
		c.Admin.Username = "admin"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "redis"
	}
	if !c.Debug {
		c.Admin.CookieSecure = true
	}
	return nil
}

func LoadConfig(filename string) (*Config, error) {
	viper.SetConfigFile(filename)
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
