package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Minio    MinioConfig
	Upload   UploadConfig
	NATS     NATSConfig
	Database DatabaseConfig
	Server   ServerConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type MinioConfig struct {
	Endpoint                string        `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName              string        `envconfig:"MINIO_BUCKET_NAME" required:"true"`
	AccessKey               string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey               string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	PutPresignedDuration    time.Duration `envconfig:"MINIO_PUT_PRESIGNED_DURATION" default:"15m"`
	PartPresignedDuration   time.Duration `envconfig:"MINIO_PART_PRESIGNED_DURATION" default:"1h"`
	GetPresignedDuration    time.Duration `envconfig:"MINIO_GET_PRESIGNED_DURATION" default:"15m"`
	UseSSL                  bool          `envconfig:"MINIO_USE_SSL" default:"false"`
}

type UploadConfig struct {
	GrantTTL   time.Duration `envconfig:"UPLOAD_GRANT_TTL" default:"15m"`
	SessionTTL time.Duration `envconfig:"UPLOAD_SESSION_TTL" default:"24h"`
	// Chunk bounds follow the backend's multipart constraints: parts smaller
	// than 5MiB (except the last) are rejected at completion time.
	MinChunkSize     int64         `envconfig:"UPLOAD_MIN_CHUNK_SIZE" default:"5242880"`    // 5MiB
	MaxChunkSize     int64         `envconfig:"UPLOAD_MAX_CHUNK_SIZE" default:"104857600"`  // 100MiB
	DefaultChunkSize int64         `envconfig:"UPLOAD_DEFAULT_CHUNK_SIZE" default:"5242880"` // 5MiB
	CleanupEvery     time.Duration `envconfig:"UPLOAD_CLEANUP_EVERY" default:"15m"`
}

type NATSConfig struct {
	URL        string `envconfig:"NATS_URL" required:"true"`
	StreamName string `envconfig:"NATS_STREAM_NAME" default:"UPLOADS"`
	Subject    string `envconfig:"NATS_SUBJECT" default:"uploads.asset.stored"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
