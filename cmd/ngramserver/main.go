// Command ngramserver starts the context-sensitive word-choice scorer's
// HTTP server. Shape follows the teacher's cmd/main.go: flag-parsed
// config path, a zap logger built up front, fatal startup errors logged
// and the process exited non-zero, graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/TeoMatosevic/ngram-context-analyzer/internal/config"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/corpus"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/handler"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/predictor"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	portOverride := flag.String("port", "", "override the configured HTTP port")
	flag.Parse()

	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{"stdout"}
	logger, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if *portOverride != "" {
		cfg.Server.Port = *portOverride
	}

	confusionSet, err := corpus.LoadConfusionSet(cfg.Corpus.ConfusionSetFile)
	if err != nil {
		logger.Fatal("failed to load confusion set", zap.Error(err))
	}

	counts, err := corpus.LoadNGramCounts(cfg.Corpus.NGramCountsFile)
	if err != nil {
		logger.Fatal("failed to load n-gram counts", zap.Error(err))
	}

	var distinct corpus.DistinctNGramCounts
	if cfg.Corpus.DistinctNGramCountsFile != "" {
		distinct, err = corpus.LoadDistinctNGramCounts(cfg.Corpus.DistinctNGramCountsFile)
		if err != nil {
			logger.Fatal("failed to load distinct n-gram counts", zap.Error(err))
		}
	} else {
		distinct = corpus.DistinctNGramCounts{}
	}

	sess, err := store.Open(store.Config{
		URI:      cfg.Store.URI,
		Keyspace: cfg.Store.Keyspace,
	}, logger)
	if err != nil {
		logger.Fatal("failed to connect to corpus store", zap.Error(err))
	}
	defer sess.Close()

	rankingFunc := selectRankingFunc(cfg.Predictor)

	ngramHandler := &handler.NGramHandler{
		Session:      sess,
		ConfusionSet: confusionSet,
		Counts:       counts,
		Distinct:     distinct,
		RankingFunc:  rankingFunc,
		Logger:       logger,
	}

	router := handler.SetupRouter(ngramHandler, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func selectRankingFunc(cfg config.PredictorConfig) predictor.RankingFunc {
	switch cfg.RankingFunction {
	case "sum":
		return predictor.Sum{}
	case "power_sum":
		return predictor.PowerSum{Alpha: cfg.Alpha}
	default:
		return predictor.Max{}
	}
}
