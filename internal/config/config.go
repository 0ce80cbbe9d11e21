package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Task     TaskConfig     `mapstructure:"task"`
	Fund     FundConfig     `mapstructure:"fund"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig 存储配置，Driver 为 "postgres" 或 "memory"
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN postgres 连接串
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"`  // seconds
	PoolSize int `mapstructure:"pool_size"` // reconcile workers
}

// FundConfig 资助与监控配置
type FundConfig struct {
	RecentWindowDays int  `mapstructure:"recent_window_days"`
	TopDonorLimit    int  `mapstructure:"top_donor_limit"`
	SeedDemo         bool `mapstructure:"seed_demo"`
}

// RecentWindow 近期捐赠的统计窗口
func (f FundConfig) RecentWindow() time.Duration {
	return time.Duration(f.RecentWindowDays) * 24 * time.Hour
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // stdout, stderr, file
	File   string `mapstructure:"file"`   // used when output is file
}

func (l LogConfig) GetLevel() string {
	return l.Level
}

func (l LogConfig) GetOutput() string {
	return l.Output
}

func (l LogConfig) GetFile() string {
	return l.File
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "gradlink")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("task.interval", 60)
	v.SetDefault("task.pool_size", 8)
	v.SetDefault("fund.recent_window_days", 7)
	v.SetDefault("fund.top_donor_limit", 5)
	v.SetDefault("fund.seed_demo", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file", "logs/app.log")
}

// Load 加载配置：先读 config.yaml，再用 SERVER_PORT、DATABASE_DRIVER 等
// 环境变量覆盖。配置文件不存在不算错误
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config", "/etc/gradlink"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Task.Interval <= 0 {
		return fmt.Errorf("task.interval must be positive, got %d", c.Task.Interval)
	}
	if c.Task.PoolSize <= 0 {
		return fmt.Errorf("task.pool_size must be positive, got %d", c.Task.PoolSize)
	}
	return nil
}
