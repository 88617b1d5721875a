package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/meliboard/meliboard-api/infrastructure/database/postgres"
	"github.com/meliboard/meliboard-api/infrastructure/integrator/meli/meliclient"
	"github.com/meliboard/meliboard-api/infrastructure/repository"
	"github.com/meliboard/meliboard-api/internal/api"
	"github.com/meliboard/meliboard-api/internal/cache"
	"github.com/meliboard/meliboard-api/internal/config"
	"github.com/meliboard/meliboard-api/internal/scheduler"
	"github.com/meliboard/meliboard-api/internal/usecases/aggregating"
	"github.com/meliboard/meliboard-api/internal/usecases/connecting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	tokenRepo := repository.NewMeliTokenRepository(pgConn)

	meliClient := meliclient.NewClient(&cfg.Meli, cfg.Aggregation.MaxRetries)

	connector := connecting.NewService(tokenRepo, meliClient, &cfg.Meli)

	responseCache := cache.NewResponseCache(cfg.ServerCacheTTL())
	aggregator := aggregating.NewService(connector, meliClient, responseCache, &cfg.Aggregation)

	tokenRefreshSyncService := scheduler.NewTokenRefreshSyncService(tokenRepo, connector, cfg)

	if err := tokenRefreshSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de renovação de tokens")
	} else {
		logrus.Info("Agendador de renovação de tokens iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		connector,
		aggregator,
		tokenRepo,
		tokenRefreshSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
