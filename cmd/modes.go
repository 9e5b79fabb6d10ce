package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"vec-go/internal/benchmarks/seqlabeling"
	"vec-go/internal/config"
	"vec-go/internal/controller"
	"vec-go/internal/embeddings"
	"vec-go/internal/handler"
	"vec-go/internal/store"
	"vec-go/internal/tokenizer"
	"vec-go/internal/util"
	"vec-go/internal/vocab"
)

// runServe starts the HTTP API, loading vocabulary, embeddings and the
// vector store when configured.
func runServe(cfg *config.Config, logger *zap.Logger) error {
	registry := tokenizer.NewDefaultRegistry()

	var vocabulary *vocab.Vocabulary
	if cfg.Vocab.Dir != "" {
		v, err := vocab.LoadFromDir(cfg.Vocab.Dir)
		if err != nil {
			return fmt.Errorf("loading vocabulary: %w", err)
		}
		vocabulary = v
		logger.Info("Vocabulary loaded", zap.Int("size", v.Size()))
	}

	var emb *embeddings.WordEmbeddings
	if cfg.Embeddings.Dir != "" {
		e, err := embeddings.LoadFromDir(cfg.Embeddings.Dir)
		if err != nil {
			return fmt.Errorf("loading embeddings: %w", err)
		}
		if cfg.Embeddings.Normalize {
			e.Normalize()
		}
		emb = e
		if vocabulary == nil {
			vocabulary = e.Vocabulary()
		}
		logger.Info("Embeddings loaded",
			zap.Int("tokens", e.Vocabulary().Size()),
			zap.Int("dim", e.Dim()),
		)
	}

	var vectorStore *store.QdrantStore
	if cfg.Qdrant.Host != "" && emb != nil {
		s, err := store.NewQdrantStore(cfg.Qdrant.Host, cfg.Qdrant.Port, cfg.Qdrant.APIKey, logger)
		if err != nil {
			logger.Warn("Failed to connect to qdrant, falling back to local search", zap.Error(err))
		} else {
			defer s.Close()
			if err := s.UpsertEmbeddings(context.Background(), cfg.Qdrant.Collection, emb); err != nil {
				logger.Warn("Failed to upload embeddings to qdrant, falling back to local search", zap.Error(err))
			} else {
				vectorStore = s
			}
		}
	} else {
		logger.Info("Vector store disabled (qdrant not configured or no embeddings)")
	}

	corpusController := controller.NewCorpusController(registry, vocabulary, emb, vectorStore, cfg.Qdrant.Collection, logger)
	router := handler.SetupRouter(corpusController, logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Starting server", zap.String("addr", addr))
	return router.Run(addr)
}

// runVocab builds a vocabulary from the configured corpus and saves it.
func runVocab(cfg *config.Config, logger *zap.Logger) error {
	if cfg.Corpus.Path == "" {
		return fmt.Errorf("corpus path is required (set corpus.path or -corpus)")
	}
	tok, ok := tokenizer.NewDefaultRegistry().Get(cfg.Corpus.Language)
	if !ok {
		return fmt.Errorf("unknown corpus language %q", cfg.Corpus.Language)
	}

	v, err := vocab.CreateFromDir(cfg.Corpus.Path, tok, cfg.Vocab.MinFrequency, logger)
	if err != nil {
		return err
	}
	outDir := cfg.Vocab.Dir
	if outDir == "" {
		outDir = filepath.Join(cfg.App.WorkDir, "vocab")
	}
	if err := v.SaveToDir(outDir); err != nil {
		return err
	}
	logger.Info("Vocabulary saved",
		zap.String("dir", outDir),
		zap.Int("size", v.Size()),
		zap.Int64("tokens_total", v.TotalTokens()),
	)
	return nil
}

// runBenchmark runs the sequence-labeling driver and prints or saves the
// results JSON.
func runBenchmark(cfg *config.Config, datasetPath, outPath string, windowSize int, logger *zap.Logger) error {
	if cfg.Embeddings.Dir == "" {
		return fmt.Errorf("embeddings dir is required (set embeddings.dir or -embeddings)")
	}
	if datasetPath == "" {
		return fmt.Errorf("dataset dir is required (-dataset)")
	}

	emb, err := embeddings.LoadFromDir(cfg.Embeddings.Dir)
	if err != nil {
		return fmt.Errorf("loading embeddings: %w", err)
	}

	result, err := seqlabeling.Run(emb, datasetPath, seqlabeling.Options{
		WindowSize: windowSize,
		Normalize:  cfg.Embeddings.Normalize,
	}, logger)
	if err != nil {
		return err
	}

	if outPath == "" {
		return util.PrintJSON(result)
	}
	if isDir(outPath) || strings.HasSuffix(outPath, "/") {
		dataset := filepath.Base(filepath.Clean(datasetPath))
		return util.SaveJSON(result, filepath.Join(outPath, dataset, "results.json"))
	}
	return util.SaveJSON(result, outPath)
}

// runNeighbors prints the nearest neighbors of a token as JSON.
func runNeighbors(cfg *config.Config, token string, logger *zap.Logger) error {
	if cfg.Embeddings.Dir == "" {
		return fmt.Errorf("embeddings dir is required (set embeddings.dir or -embeddings)")
	}
	if token == "" {
		return fmt.Errorf("query token is required (-token)")
	}

	emb, err := embeddings.LoadFromDir(cfg.Embeddings.Dir)
	if err != nil {
		return fmt.Errorf("loading embeddings: %w", err)
	}
	if cfg.Embeddings.Normalize {
		emb.Normalize()
	}
	neighbors, err := emb.NearestNeighbors(token, 10)
	if err != nil {
		return err
	}
	logger.Info("Neighbor query", zap.String("token", token), zap.Int("results", len(neighbors)))
	return util.PrintJSON(neighbors)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
