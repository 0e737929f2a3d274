// Package config provides the structures and loader for the service
// configuration.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the shared configuration for all Star-Space binaries.
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	RabbitMQ                `yaml:"rabbitmq"`
	SMTP                    `yaml:"smtp"`
	Notifications           `yaml:"notifications"`
	Backup                  `yaml:"backup"`
}

// HTTPServer holds the API server settings.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection holds the cache connection settings.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RabbitMQ holds the notification queue connection settings.
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"rabbitmq_url"`
	RabbitMQMaxRetries int           `yaml:"rabbitmq_max_retries" env-default:"10"`
	RabbitMQRetryDelay time.Duration `yaml:"rabbitmq_retry_delay" env-default:"3s"`
}

// SMTP holds the mail transport settings for due notifications.
type SMTP struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort string `yaml:"smtp_port" env-default:"587"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass"`
	SMTPFrom string `yaml:"smtp_from" env-default:"notifications@starspace.com"`
}

// Notifications holds the due-reminder settings.
type Notifications struct {
	NotifyWindowDays int           `yaml:"notify_window_days" env-default:"3"`
	NotifyInterval   time.Duration `yaml:"notify_interval" env-default:"24h"`
}

// Backup holds the paths used by the monthly backup job.
type Backup struct {
	BackupDir string `yaml:"backup_dir" env-default:"backups/monthly"`
	MediaDir  string `yaml:"media_dir" env-default:"media"`
	PgDumpBin string `yaml:"pg_dump_bin" env-default:"pg_dump"`
}

// MustLoad reads the configuration from the file named by CONFIG_PATH
// and exits the process when it cannot.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
