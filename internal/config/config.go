package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Outbox    OutboxConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	Payroll   PayrollConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
}

type RedisConfig struct {
	Addr       string
	MaxRetries int
}

type KafkaConfig struct {
	Brokers       []string
	GroupID       string
	MaxRetries    int
	RenderRetries int
	RenderBackoff time.Duration
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxRetries   int
}

type JWTConfig struct {
	Secret string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type StorageConfig struct {
	PDFDir string
}

// Load reads .env (if present), then payroll.yaml (if present), then PAYROLL_* environment variables.
// Later sources win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("payroll")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("PAYROLL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			IdleTimeout:     v.GetDuration("http.idle_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			Host:       v.GetString("database.host"),
			Port:       v.GetString("database.port"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			Name:       v.GetString("database.name"),
			SSLMode:    v.GetString("database.sslmode"),
			MaxRetries: v.GetInt("database.max_retries"),
		},
		Redis: RedisConfig{
			Addr:       v.GetString("redis.addr"),
			MaxRetries: v.GetInt("redis.max_retries"),
		},
		Kafka: KafkaConfig{
			Brokers:       v.GetStringSlice("kafka.brokers"),
			GroupID:       v.GetString("kafka.group_id"),
			MaxRetries:    v.GetInt("kafka.max_retries"),
			RenderRetries: v.GetInt("kafka.render_retries"),
			RenderBackoff: v.GetDuration("kafka.render_backoff"),
		},
		Outbox: OutboxConfig{
			PollInterval: v.GetDuration("outbox.poll_interval"),
			BatchSize:    v.GetInt("outbox.batch_size"),
			MaxRetries:   v.GetInt("outbox.max_retries"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("rate_limit.rps"),
			Burst: v.GetInt("rate_limit.burst"),
		},
		Storage: StorageConfig{
			PDFDir: v.GetString("storage.pdf_dir"),
		},
		Payroll: PayrollConfig{
			ContributionRate: v.GetString("payroll.contribution_rate"),
			ContributionCap:  v.GetString("payroll.contribution_cap"),
			RuralMultiplier:  v.GetString("payroll.rural_multiplier"),
			MinYear:          v.GetInt("payroll.min_year"),
			MaxYear:          v.GetInt("payroll.max_year"),
		},
	}

	if err := v.UnmarshalKey("payroll.brackets", &cfg.Payroll.Brackets); err != nil {
		return nil, fmt.Errorf("decode payroll.brackets: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "go-payroll")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")

	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "payroll")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_retries", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.max_retries", 5)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.group_id", "go-payroll-payslip-pdf")
	v.SetDefault("kafka.max_retries", 5)
	v.SetDefault("kafka.render_retries", 3)
	v.SetDefault("kafka.render_backoff", 2*time.Second)

	v.SetDefault("outbox.poll_interval", 3*time.Second)
	v.SetDefault("outbox.batch_size", 50)
	v.SetDefault("outbox.max_retries", 10)

	v.SetDefault("rate_limit.rps", 20)
	v.SetDefault("rate_limit.burst", 40)

	v.SetDefault("storage.pdf_dir", "storage/pdf")

	v.SetDefault("payroll.contribution_rate", "0.05")
	v.SetDefault("payroll.contribution_cap", "180000")
	v.SetDefault("payroll.rural_multiplier", "1.2")
	v.SetDefault("payroll.min_year", 2000)
	v.SetDefault("payroll.max_year", 2100)
	v.SetDefault("payroll.brackets", defaultBrackets())
}

func (c *Config) validate() error {
	if c.App.Port == "" {
		return errors.New("app.port is required")
	}
	if c.Payroll.MinYear > c.Payroll.MaxYear {
		return fmt.Errorf("payroll.min_year %d is after payroll.max_year %d", c.Payroll.MinYear, c.Payroll.MaxYear)
	}
	if len(c.Payroll.Brackets) == 0 {
		return errors.New("payroll.brackets must not be empty")
	}
	return nil
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}
