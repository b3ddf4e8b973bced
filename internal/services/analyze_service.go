package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"memoai-backend/internal/llm"
	"memoai-backend/internal/models"
	"memoai-backend/internal/store"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Rows fetched from the target database as few-shot examples.
const recentExampleLimit = 3

// AnalyzeService defines the interface for the structured-extraction flow.
type AnalyzeService interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.CompletionResponse, error)
}

type analyzeService struct {
	store        store.Store
	generator    llm.Generator
	defaultModel string
	loc          *time.Location
}

// NewAnalyzeService creates a new AnalyzeService.
func NewAnalyzeService(s store.Store, g llm.Generator, defaultModel string, loc *time.Location) AnalyzeService {
	return &analyzeService{
		store:        s,
		generator:    g,
		defaultModel: defaultModel,
		loc:          loc,
	}
}

// Analyze fetches the target's schema and recent rows, builds the
// extraction prompt, and asks the model for a JSON property bag. Schema and
// example fetches degrade independently to empty defaults; only the
// completion call itself can fail the request.
func (s *analyzeService) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.CompletionResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}

	reqID := uuid.New().String()[:8]
	log.Printf("[AnalyzeService] %s: analyzing %d chars for target %s", reqID, len(req.Text), req.TargetDBID)

	var (
		schema   *store.DatabaseSchema
		examples []store.Record
	)
	if req.TargetDBID != "" {
		// Joint fetch; a failure on one side never cancels the other.
		g := new(errgroup.Group)
		g.Go(func() error {
			sc, err := s.store.GetDatabaseSchema(ctx, req.TargetDBID)
			if err != nil {
				log.Printf("WARN [AnalyzeService] %s: schema fetch failed, continuing with empty schema: %v", reqID, err)
				return nil
			}
			schema = sc
			return nil
		})
		g.Go(func() error {
			recs, err := s.store.QueryRecentRecords(ctx, req.TargetDBID, recentExampleLimit)
			if err != nil {
				log.Printf("WARN [AnalyzeService] %s: examples fetch failed, continuing without examples: %v", reqID, err)
				return nil
			}
			examples = recs
			return nil
		})
		_ = g.Wait()
	}

	schemaJSON := "{}"
	if schema != nil {
		if b, err := json.MarshalIndent(schema.Properties, "", "  "); err == nil {
			schemaJSON = string(b)
		}
	}
	examplesJSON := "[]"
	if len(examples) > 0 {
		rows := make([]map[string]string, len(examples))
		for i, rec := range examples {
			rows[i] = rec.Properties
		}
		if b, err := json.MarshalIndent(rows, "", "  "); err == nil {
			examplesJSON = string(b)
		}
	}

	instructions := req.SystemPrompt
	if instructions == "" {
		instructions = defaultAnalyzeInstructions
	}

	messages := llm.BuildMessages(llm.BuildInput{
		Instructions: instructions,
		TimeContext:  timeContext(time.Now().In(s.loc)),
		TaskText:     buildAnalyzeTask(req.Text, schemaJSON, examplesJSON),
	})

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	result, err := s.generator.GenerateJSON(ctx, messages, model)
	if err != nil {
		log.Printf("ERROR [AnalyzeService] %s: generation failed: %v", reqID, err)
		return nil, err
	}

	log.Printf("[AnalyzeService] %s: done with model %s (%d tokens, cost %.6f)", reqID, result.Model, result.Usage.TotalTokens, result.Cost)
	return completionToResponse(result), nil
}

// --- Helper Function ---

func completionToResponse(result llm.CompletionResult) *models.CompletionResponse {
	return &models.CompletionResponse{
		Content: result.Content,
		Usage: models.UsageInfo{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.TotalTokens,
		},
		Cost:  result.Cost,
		Model: result.Model,
	}
}
