package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"spartanmarket/internal/auth"
	"spartanmarket/internal/config"
	httpapi "spartanmarket/internal/http"
	"spartanmarket/internal/repos"
	"spartanmarket/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[warn] no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	var blobs storage.BlobStore
	switch cfg.StorageDriver {
	case "s3":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		blobs, err = storage.NewMinioStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		cancel()
		if err != nil {
			log.Fatal(err)
		}
	default:
		blobs, err = storage.NewDiskStore(cfg.UploadDir)
		if err != nil {
			log.Fatal(err)
		}
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Fatal(err)
	}

	app := httpapi.New(cfg, db, tokens, blobs)
	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.Port)))
}
