package main

import (
	"context"
	"log"
	"os"

	"github.com/amankumarsingh77/media-studio/internal/config"
	"github.com/amankumarsingh77/media-studio/internal/server"
	"github.com/amankumarsingh77/media-studio/internal/videojobs"
	"github.com/amankumarsingh77/media-studio/internal/videojobs/generator"
	"github.com/amankumarsingh77/media-studio/pkg/db/aws"
	"github.com/amankumarsingh77/media-studio/pkg/db/postgres"
	"github.com/amankumarsingh77/media-studio/pkg/db/redis"
	"github.com/amankumarsingh77/media-studio/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("Starting server")
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	configFile := os.Getenv("CONFIG_PATH")
	if configFile == "" {
		configFile = "config.yml"
	}
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %s", err)
	}
	appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	redisClient, err := redis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Warnf("could not connect to redis, refresh locks disabled until it is reachable: %s", err)
	} else {
		appLogger.Infof("redis connected")
	}
	defer redisClient.Close()

	s3Client, err := aws.NewStorageClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not create storage client: %s", err)
	}

	var videoGenerator videojobs.Generator
	videoGenerator, err = generator.NewVertexGenerator(context.Background(), cfg)
	if err != nil {
		appLogger.Errorf("video generation backend unavailable: %s", err)
		videoGenerator = generator.NewUnavailable(err)
	}

	s := server.NewServer(cfg, psqlDB, redisClient, s3Client, videoGenerator, appLogger)
	if err = s.Run(); err != nil {
		appLogger.Errorf("could not start server: %s", err)
	}
}
