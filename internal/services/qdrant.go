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

// JobIndexService maintains the similarity index over job descriptions built
// by the offline indexing run.
type JobIndexService interface {
	InitCollection() error
	UpsertJob(ctx context.Context, jobID string, text string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]JobMatch, error)
	DeleteJob(ctx context.Context, jobID string) error
}

type JobMatch struct {
	JobID string
	Score float32
	Text  string
}

type jobIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewJobIndexService(urlStr, apiKey, collectionName string) (JobIndexService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port unless the URL says otherwise
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

	return &jobIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // embedding model output size
	}, nil
}

// InitCollection implements JobIndexService.
func (q *jobIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertJob implements JobIndexService. The point id is derived from the
// job id, so re-running the indexer updates points instead of duplicating.
func (q *jobIndexService) UpsertJob(ctx context.Context, jobID string, text string, embedding []float32) error {
	pointID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(jobID))

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(pointID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"job_id": jobID,
			"text":   text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements JobIndexService.
func (q *jobIndexService) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]JobMatch, error) {
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var matches []JobMatch
	for _, point := range searchResult {
		payload := point.Payload

		match := JobMatch{Score: point.Score}

		if jobID, ok := payload["job_id"]; ok {
			if val, ok := jobID.GetKind().(*qdrant.Value_StringValue); ok {
				match.JobID = val.StringValue
			}
		}

		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				match.Text = val.StringValue
			}
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// DeleteJob implements JobIndexService.
func (q *jobIndexService) DeleteJob(ctx context.Context, jobID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("job_id", jobID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	return nil
}
