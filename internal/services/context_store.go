package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// Doc types the ingest script writes. Retrieval filters on the same constants
// so a lookup can never miss on a type name drift.
const (
	DocTypeJobDescription      = "job_description"
	DocTypeScoringRubric       = "scoring_rubric"
	DocTypeCompanyProfile      = "company_profile"
	DocTypeInterviewGuidelines = "interview_guidelines"
)

// JobContextDocTypes lists every ingested doc type, in the order the analysis
// prompt presents them.
var JobContextDocTypes = []string{
	DocTypeJobDescription,
	DocTypeScoringRubric,
	DocTypeCompanyProfile,
	DocTypeInterviewGuidelines,
}

// ContextStoreService holds embedded job-context documents (role descriptions,
// scoring rubrics, company material) and serves similarity lookups that enrich
// the structured analysis prompt.
type ContextStoreService interface {
	InitCollection() error
	IngestDocument(ctx context.Context, docID string, docType string, text string) error
	RetrieveContext(ctx context.Context, query string, docType string, limit int) ([]SearchResult, error)
	DeleteDocument(ctx context.Context, docID string) error
}

type SearchResult struct {
	ID      string
	Score   float32
	Text    string
	DocType string
}

type contextStoreService struct {
	client         *qdrant.Client
	geminiService  GeminiService
	chunker        TextChunker
	collectionName string
	vectorSize     uint64
}

func NewContextStoreService(urlStr, apiKey, collectionName string, geminiService GeminiService) (ContextStoreService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port by default
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &contextStoreService{
		client:         client,
		geminiService:  geminiService,
		chunker:        NewTextChunker(),
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements ContextStoreService.
func (s *contextStoreService) InitCollection() error {
	ctx := context.Background()

	exists, err := s.client.CollectionExists(ctx, s.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Context collection already exists")
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", s.collectionName)
	return nil
}

// IngestDocument implements ContextStoreService. The text is chunked, each
// chunk embedded and upserted as its own point.
func (s *contextStoreService) IngestDocument(ctx context.Context, docID string, docType string, text string) error {
	chunks := s.chunker.ChunkText(text, 1000, 200)

	for i, chunk := range chunks {
		embedding, err := s.geminiService.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d of %s: %w", i+1, docID, err)
		}

		if err := s.upsertChunk(ctx, fmt.Sprintf("%s_chunk_%d", docID, i), docType, chunk, embedding); err != nil {
			return fmt.Errorf("failed to store chunk %d of %s: %w", i+1, docID, err)
		}
	}

	return nil
}

func (s *contextStoreService) upsertChunk(ctx context.Context, chunkID string, docType string, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"doc_id":   chunkID,
			"doc_type": docType,
			"text":     text,
		}),
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// RetrieveContext implements ContextStoreService.
func (s *contextStoreService) RetrieveContext(ctx context.Context, query string, docType string, limit int) ([]SearchResult, error) {
	embedding, err := s.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	var filter *qdrant.Filter
	if docType != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("doc_type", docType),
			},
		}
	}

	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []SearchResult
	for _, point := range points {
		payload := point.Payload

		result := SearchResult{
			Score: point.Score,
		}

		if docID, ok := payload["doc_id"]; ok {
			if val, ok := docID.GetKind().(*qdrant.Value_StringValue); ok {
				result.ID = val.StringValue
			}
		}

		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				result.Text = val.StringValue
			}
		}

		if dtype, ok := payload["doc_type"]; ok {
			if val, ok := dtype.GetKind().(*qdrant.Value_StringValue); ok {
				result.DocType = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// DeleteDocument implements ContextStoreService. Removes every chunk whose
// doc_id carries the given prefix-less id.
func (s *contextStoreService) DeleteDocument(ctx context.Context, docID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("doc_id", docID),
		},
	}

	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}
