package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Security SecurityConfig `yaml:"security"`
	Grades   GradesConfig   `yaml:"grades"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  StorageConfig  `yaml:"storage"`
	Workers  WorkersConfig  `yaml:"workers"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
}

// DatabaseConfig selects one document backend by Driver: "mongo", "mysql" or "bolt".
type DatabaseConfig struct {
	Driver string      `yaml:"driver"`
	Mongo  MongoConfig `yaml:"mongo"`
	MySQL  MySQLConfig `yaml:"mysql"`
	Bolt   BoltConfig  `yaml:"bolt"`
}

type MongoConfig struct {
	URI            string        `yaml:"uri"`
	Name           string        `yaml:"name"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	MaxPoolSize    uint64        `yaml:"max_pool_size"`
}

type MySQLConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	Charset            string        `yaml:"charset"`
	ParseTime          bool          `yaml:"parse_time"`
	Loc                string        `yaml:"loc"`
	MaxConnections     int           `yaml:"max_connections"`
	MaxIdleConnections int           `yaml:"max_idle_connections"`
	ConnectionLifetime time.Duration `yaml:"connection_lifetime"`
}

type BoltConfig struct {
	Path    string        `yaml:"path"`
	Timeout time.Duration `yaml:"timeout"`
}

type SecurityConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type GradesConfig struct {
	// StrictDuplicateCheck switches the add-grade duplicate test from three
	// independent single-field lookups to one combined filter.
	StrictDuplicateCheck bool `yaml:"strict_duplicate_check"`
}

type RedisConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	PoolSize    int    `yaml:"pool_size"`
	ImportQueue string `yaml:"import_queue"`
	DLQSuffix   string `yaml:"dlq_suffix"`
}

type StorageConfig struct {
	S3           S3Config `yaml:"s3"`
	TaskPrefix   string   `yaml:"task_prefix"`
	ImportPrefix string   `yaml:"import_prefix"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type WorkersConfig struct {
	Import ImportWorkerConfig `yaml:"import"`
}

type ImportWorkerConfig struct {
	Count int `yaml:"count"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and fills defaults.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	config.applyDefaults()

	switch config.Database.Driver {
	case "mongo", "mysql", "bolt":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	return &config, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString("APP_ENV", &c.App.Env)
	setString("DB_DRIVER", &c.Database.Driver)
	setString("MONGO_URI", &c.Database.Mongo.URI)
	setString("MONGO_DB", &c.Database.Mongo.Name)
	setString("MYSQL_HOST", &c.Database.MySQL.Host)
	setString("MYSQL_USER", &c.Database.MySQL.User)
	setString("MYSQL_PASSWORD", &c.Database.MySQL.Password)
	setString("BOLT_PATH", &c.Database.Bolt.Path)
	setString("REDIS_HOST", &c.Redis.Host)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setString("S3_ENDPOINT", &c.Storage.S3.Endpoint)
	setString("S3_ACCESS_KEY", &c.Storage.S3.AccessKey)
	setString("S3_SECRET_KEY", &c.Storage.S3.SecretKey)
	setString("S3_BUCKET", &c.Storage.S3.Bucket)
	setString("LOG_LEVEL", &c.Logging.Level)

	if v, ok := os.LookupEnv("SERVER_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "school-admin-api"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = 10 << 20
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mongo"
	}
	if c.Database.Mongo.Name == "" {
		c.Database.Mongo.Name = "smart_college"
	}
	if c.Database.Mongo.ConnectTimeout == 0 {
		c.Database.Mongo.ConnectTimeout = 10 * time.Second
	}
	if c.Database.Bolt.Path == "" {
		c.Database.Bolt.Path = "data/school.db"
	}
	if c.Database.Bolt.Timeout == 0 {
		c.Database.Bolt.Timeout = time.Second
	}
	if c.Database.MySQL.Charset == "" {
		c.Database.MySQL.Charset = "utf8mb4"
	}
	if c.Database.MySQL.Loc == "" {
		c.Database.MySQL.Loc = "UTC"
	}
	if c.Security.BcryptCost == 0 {
		c.Security.BcryptCost = 12
	}
	if c.Redis.ImportQueue == "" {
		c.Redis.ImportQueue = "grade_imports"
	}
	if c.Redis.DLQSuffix == "" {
		c.Redis.DLQSuffix = ":dlq"
	}
	if c.Storage.TaskPrefix == "" {
		c.Storage.TaskPrefix = "tasks/"
	}
	if c.Storage.ImportPrefix == "" {
		c.Storage.ImportPrefix = "imports/"
	}
	if c.Workers.Import.Count == 0 {
		c.Workers.Import.Count = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// MySQL DSN format: [username[:password]@][protocol[(address)]]/dbname[?param1=value1&...&paramN=valueN]
func (c *Config) MySQLDSN() string {
	m := c.Database.MySQL
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		m.User, m.Password, m.Host, m.Port, m.Name, m.Charset, m.ParseTime, m.Loc)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// RedisEnabled reports whether an import queue is configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// StorageEnabled reports whether an object store is configured for uploads.
func (c *Config) StorageEnabled() bool {
	return c.Storage.S3.Bucket != ""
}
