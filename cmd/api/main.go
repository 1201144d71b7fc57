package main

import (
	"context"

	"github.com/parchados/parchados-services/api/internal/config"
	"github.com/parchados/parchados-services/api/internal/server"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuración inválida", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatal("no se pudo conectar a MongoDB", zap.Error(err))
	}

	app := server.New(cfg, client, logger)
	if err := app.Run(); err != nil {
		logger.Fatal("el servidor terminó con error", zap.Error(err))
	}
}
