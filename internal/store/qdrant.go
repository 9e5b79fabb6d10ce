// Package store pushes word embeddings into an external vector database so
// neighbor queries can run server-side instead of scanning the matrix
// in-process.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"vec-go/internal/embeddings"
)

// upsertBatchSize bounds a single Upsert RPC.
const upsertBatchSize = 256

// QdrantStore wraps a qdrant connection for embedding upload and similarity
// search.
type QdrantStore struct {
	client *qdrant.Client
	logger *zap.Logger
}

// SimilarToken is one similarity search hit.
type SimilarToken struct {
	Token string  `json:"token"`
	Score float32 `json:"score"`
}

// NewQdrantStore connects to a qdrant instance.
func NewQdrantStore(host string, port int, apiKey string, logger *zap.Logger) (*QdrantStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant at %s:%d: %w", host, port, err)
	}
	logger.Info("connected to qdrant",
		zap.String("host", host),
		zap.Int("port", port),
	)
	return &QdrantStore{client: client, logger: logger}, nil
}

// Close releases the qdrant connection.
func (s *QdrantStore) Close() error {
	return s.client.Close()
}

// EnsureCollection creates the collection for dim-sized vectors with cosine
// distance if it does not already exist.
func (s *QdrantStore) EnsureCollection(ctx context.Context, name string, dim int) error {
	exists, err := s.client.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("checking collection %s: %w", name, err)
	}
	if exists {
		return nil
	}
	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dim),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", name, err)
	}
	s.logger.Info("created qdrant collection",
		zap.String("collection", name),
		zap.Int("dim", dim),
	)
	return nil
}

// UpsertEmbeddings uploads one point per vocabulary token, carrying the
// token and its corpus frequency as payload.
func (s *QdrantStore) UpsertEmbeddings(ctx context.Context, collection string, emb *embeddings.WordEmbeddings) error {
	if err := s.EnsureCollection(ctx, collection, emb.Dim()); err != nil {
		return err
	}
	v := emb.Vocabulary()
	points := make([]*qdrant.PointStruct, 0, upsertBatchSize)
	flush := func() error {
		if len(points) == 0 {
			return nil
		}
		_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: collection,
			Points:         points,
			Wait:           qdrant.PtrOf(true),
		})
		if err != nil {
			return fmt.Errorf("upserting %d points: %w", len(points), err)
		}
		points = points[:0]
		return nil
	}

	for id := 0; id < v.Size(); id++ {
		token := v.GetToken(id)
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(uuid.NewString()),
			Vectors: qdrant.NewVectors(emb.GetByID(id)...),
			Payload: qdrant.NewValueMap(map[string]any{
				"token":     token,
				"frequency": v.GetFrequency(token),
			}),
		})
		if len(points) == upsertBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}
	s.logger.Info("uploaded embeddings to qdrant",
		zap.String("collection", collection),
		zap.Int("tokens", v.Size()),
	)
	return nil
}

// SearchSimilar returns the tokens whose stored vectors are closest to
// queryVector.
func (s *QdrantStore) SearchSimilar(ctx context.Context, collection string, queryVector []float32, limit int) ([]SimilarToken, error) {
	results, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("searching collection %s: %w", collection, err)
	}

	hits := make([]SimilarToken, 0, len(results))
	for _, point := range results {
		token := ""
		if val, ok := point.Payload["token"]; ok {
			token = val.GetStringValue()
		}
		if token == "" {
			continue
		}
		hits = append(hits, SimilarToken{Token: token, Score: point.Score})
	}
	return hits, nil
}
