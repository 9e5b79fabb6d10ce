package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vec-go/internal/corpus"
	"vec-go/internal/embeddings"
	"vec-go/internal/store"
	"vec-go/internal/tokenizer"
	"vec-go/internal/vocab"
)

// CorpusController serves tokenization, window previews, vocabulary stats
// and similarity search over HTTP. Vocabulary, embeddings and the vector
// store are optional; endpoints needing an absent one answer 503.
type CorpusController struct {
	registry    *tokenizer.Registry
	vocabulary  *vocab.Vocabulary
	emb         *embeddings.WordEmbeddings
	vectorStore *store.QdrantStore
	collection  string
	logger      *zap.Logger
}

// NewCorpusController wires a controller; vocabulary, emb and vectorStore
// may be nil.
func NewCorpusController(registry *tokenizer.Registry, vocabulary *vocab.Vocabulary, emb *embeddings.WordEmbeddings, vectorStore *store.QdrantStore, collection string, logger *zap.Logger) *CorpusController {
	return &CorpusController{
		registry:    registry,
		vocabulary:  vocabulary,
		emb:         emb,
		vectorStore: vectorStore,
		collection:  collection,
		logger:      logger,
	}
}

type TokenizeRequest struct {
	Language string `json:"language"`
	Text     string `json:"text" binding:"required"`
}

func (cc *CorpusController) Tokenize(c *gin.Context) {
	var request TokenizeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		cc.logger.Error("Invalid request payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	if request.Language == "" {
		request.Language = "eng"
	}
	tok, ok := cc.registry.Get(request.Language)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Unknown language",
			"supported": cc.registry.SupportedLanguages(),
		})
		return
	}

	sentences := tok.Tokenize(request.Text)
	c.JSON(http.StatusOK, gin.H{
		"tokenizer": tok.Name(),
		"sentences": sentences,
	})
}

type WindowRequest struct {
	Language     string `json:"language"`
	Text         string `json:"text" binding:"required"`
	LeftCtxSize  int    `json:"left_ctx_size"`
	RightCtxSize int    `json:"right_ctx_size"`
}

// Window previews the sliding-window samples a given text would produce.
func (cc *CorpusController) Window(c *gin.Context) {
	var request WindowRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		cc.logger.Error("Invalid request payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	if request.LeftCtxSize < 0 || request.RightCtxSize < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Window sizes must be non-negative",
		})
		return
	}
	if request.Language == "" {
		request.Language = "eng"
	}
	tok, ok := cc.registry.Get(request.Language)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown language"})
		return
	}

	samples := []corpus.Sample{}
	for _, sentence := range tok.Tokenize(request.Text) {
		for i := range sentence {
			samples = append(samples, corpus.WindowAt(sentence, i, request.LeftCtxSize, request.RightCtxSize))
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"left_ctx_size":  request.LeftCtxSize,
		"right_ctx_size": request.RightCtxSize,
		"samples":        samples,
	})
}

// VocabStats reports vocabulary size and provenance metadata.
func (cc *CorpusController) VocabStats(c *gin.Context) {
	if cc.vocabulary == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No vocabulary loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"size":         cc.vocabulary.Size(),
		"total_tokens": cc.vocabulary.TotalTokens(),
		"metadata":     cc.vocabulary.Metadata(),
	})
}

type SearchSimilarRequest struct {
	Token string `json:"token" binding:"required"`
	Limit int    `json:"limit"`
}

// SearchSimilar answers nearest-neighbor queries, via qdrant when configured
// and in-process cosine scan otherwise.
func (cc *CorpusController) SearchSimilar(c *gin.Context) {
	var request SearchSimilarRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		cc.logger.Error("Invalid request payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	if cc.emb == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No embeddings loaded"})
		return
	}
	if request.Limit <= 0 {
		request.Limit = 10
	}

	cc.logger.Info("Similarity search",
		zap.String("token", request.Token),
		zap.Int("limit", request.Limit),
	)

	if cc.vectorStore != nil {
		query := cc.emb.Get(request.Token)
		if query == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Token not in vocabulary"})
			return
		}
		hits, err := cc.vectorStore.SearchSimilar(c.Request.Context(), cc.collection, query, request.Limit)
		if err != nil {
			cc.logger.Error("Vector store search failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Search failed",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"backend": "qdrant", "neighbors": hits})
		return
	}

	neighbors, err := cc.emb.NearestNeighbors(request.Token, request.Limit)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"backend": "local", "neighbors": neighbors})
}
