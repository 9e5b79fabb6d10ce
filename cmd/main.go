package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vec-go/internal/config"
)

func main() {
	var appConfigPath = flag.String("app", "app.yaml", "Path to app configuration file")
	var mode = flag.String("mode", "serve", "Mode: serve, vocab, benchmark or neighbors")
	var corpusPath = flag.String("corpus", "", "Corpus directory (overrides config)")
	var embeddingsPath = flag.String("embeddings", "", "Embeddings directory (overrides config)")
	var datasetPath = flag.String("dataset", "", "Labeled dataset directory (benchmark mode)")
	var outPath = flag.String("out", "", "Destination file or folder for results")
	var windowSize = flag.Int("window", 5, "Feature window size (benchmark mode)")
	var normalize = flag.Bool("normalize", false, "Normalize embeddings before use")
	var token = flag.String("token", "", "Query token (neighbors mode)")
	flag.Parse()

	cfg, err := config.LoadConfig(*appConfigPath)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if *corpusPath != "" {
		cfg.Corpus.Path = *corpusPath
	}
	if *embeddingsPath != "" {
		cfg.Embeddings.Dir = *embeddingsPath
	}
	if *normalize {
		cfg.Embeddings.Normalize = true
	}

	cfgZap := zap.NewProductionConfig()
	cfgZap.Level.SetLevel(parseLogLevel(cfg.App.LogLevel))
	cfgZap.OutputPaths = []string{"stdout"}
	logger, err := cfgZap.Build()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully", zap.String("mode", *mode))

	switch *mode {
	case "serve":
		err = runServe(cfg, logger)
	case "vocab":
		err = runVocab(cfg, logger)
	case "benchmark":
		err = runBenchmark(cfg, *datasetPath, *outPath, *windowSize, logger)
	case "neighbors":
		err = runNeighbors(cfg, *token, logger)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal("Run failed", zap.String("mode", *mode), zap.Error(err))
	}
}

func parseLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
