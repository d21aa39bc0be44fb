package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
app:
  name: smart-college
  env: development
server:
  port: 8081
  shutdown_timeout: 3s
database:
  driver: bolt
  bolt:
    path: /tmp/school.db
grades:
  strict_duplicate_check: true
redis:
  host: localhost
  port: 6379
logging:
  level: debug
  format: console
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "smart-college", cfg.App.Name)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "bolt", cfg.Database.Driver)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.True(t, cfg.Grades.StrictDuplicateCheck)
	assert.Equal(t, "grade_imports", cfg.Redis.ImportQueue)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "mongodb://db:27017")

	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mongo", cfg.Database.Driver)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.Mongo.URI)
	assert.Equal(t, "smart_college", cfg.Database.Mongo.Name)
}

func TestParseRejectsBadInput(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	_, err := Parse([]byte(sampleConfig))
	assert.Error(t, err)

	os.Unsetenv("SERVER_PORT")
	_, err = Parse([]byte("database:\n  driver: postgres\n"))
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestLoadReadsConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/school.db", cfg.Database.Bolt.Path)
}

func TestMySQLDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{MySQL: MySQLConfig{
		User: "root", Password: "secret", Host: "localhost", Port: 3306,
		Name: "college", Charset: "utf8mb4", ParseTime: true, Loc: "UTC",
	}}}
	assert.Equal(t, "root:secret@tcp(localhost:3306)/college?charset=utf8mb4&parseTime=true&loc=UTC", cfg.MySQLDSN())
}

func TestOptionalDependencies(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)
	assert.True(t, cfg.RedisEnabled())
	assert.False(t, cfg.StorageEnabled())

	cfg.Storage.S3.Bucket = "school-files"
	assert.True(t, cfg.StorageEnabled())
}
