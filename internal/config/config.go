package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	DBDSN       string `envconfig:"DB_DSN" default:"spartanmarket.db"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	EmailDomain string `envconfig:"EMAIL_DOMAIN" default:"@sjsu.edu"`
	LogFile     string `envconfig:"LOG_FILE"`

	// Blob storage: "disk" keeps uploads under UploadDir and serves them at
	// /uploads/*; "s3" pushes them to a MinIO bucket.
	StorageDriver  string `envconfig:"STORAGE_DRIVER" default:"disk"`
	UploadDir      string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"spartanmarket"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	log.Printf("[config] PORT=%d DB_DSN=%s STORAGE_DRIVER=%s UPLOAD_DIR=%s EMAIL_DOMAIN=%s",
		cfg.Port, cfg.DBDSN, cfg.StorageDriver, cfg.UploadDir, cfg.EmailDomain)
	return cfg, nil
}
