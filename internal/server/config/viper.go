package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/ticketledger/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the server reads.
const EnvPrefix = "TICKETLEDGER"

var dotEnvPath = ".env"

// loadDotEnv exports variables from path unless they are already set. A
// missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// parseFileAndEnv overlays the config file named by -c/-config and then the
// environment onto cfg.
func parseFileAndEnv(cfg *Config, args []string) error {
	v := viper.New()
	setDefaults(v, cfg)

	if path := flagx.ConfigFile(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can find it on Unmarshal.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("endpoint_addr_grpc", c.EndpointAddrGRPC)
	v.SetDefault("endpoint_addr_http", c.EndpointAddrHTTP)
	v.SetDefault("storage_backend", c.StorageBackend)
	v.SetDefault("database_dsn", c.DatabaseDSN)
	v.SetDefault("redis_addr", c.RedisAddr)
	v.SetDefault("redis_password", c.RedisPassword)
	v.SetDefault("redis_db", c.RedisDB)
	v.SetDefault("redis_key_prefix", c.RedisKeyPrefix)
	v.SetDefault("token_audience", c.TokenAudience)
	v.SetDefault("token_max_lifetime", c.TokenMaxLifetime)
	v.SetDefault("max_batch_size", c.MaxBatchSize)
	v.SetDefault("log_format", c.LogFormat)
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("audit_sink", c.AuditSink)
	v.SetDefault("kafka_brokers", c.KafkaBrokers)
	v.SetDefault("kafka_topic", c.KafkaTopic)
	v.SetDefault("s3_bucket", c.S3Bucket)
	v.SetDefault("s3_region", c.S3Region)
	v.SetDefault("s3_base_endpoint", c.S3BaseEndpoint)
	v.SetDefault("s3_root_user", c.S3RootUser)
	v.SetDefault("s3_root_password", c.S3RootPassword)
	v.SetDefault("s3_prefix", c.S3Prefix)
}
