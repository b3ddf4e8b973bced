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
)

// ChatService defines the interface for the conversational flow.
type ChatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.CompletionResponse, error)
}

type chatService struct {
	store       store.Store
	generator   llm.Generator
	textModel   string
	visionModel string
	loc         *time.Location
}

// NewChatService creates a new ChatService.
func NewChatService(s store.Store, g llm.Generator, textModel, visionModel string, loc *time.Location) ChatService {
	return &chatService{
		store:       s,
		generator:   g,
		textModel:   textModel,
		visionModel: visionModel,
		loc:         loc,
	}
}

// Chat answers one turn of a conversation grounded on a Notion target.
// Unlike Analyze, a failed schema lookup is fatal here: the target defines
// what the conversation is about.
func (s *chatService) Chat(ctx context.Context, req models.ChatRequest) (*models.CompletionResponse, error) {
	if req.TargetID == "" {
		return nil, fmt.Errorf("%w: target_id is required", ErrValidation)
	}
	if strings.TrimSpace(req.Text) == "" && req.ImageData == "" {
		return nil, fmt.Errorf("%w: text or image_data is required", ErrValidation)
	}

	reqID := uuid.New().String()[:8]
	log.Printf("[ChatService] %s: target=%s history=%d image=%t", reqID, req.TargetID, len(req.SessionHistory), req.ImageData != "")

	resolved, err := resolveTargetSchema(ctx, s.store, req.TargetID)
	if err != nil {
		log.Printf("ERROR [ChatService] %s: schema fetch failed: %v", reqID, err)
		return nil, err
	}

	instructions := req.SystemPrompt
	if instructions == "" {
		instructions = defaultChatInstructions
	}
	if b, err := json.Marshal(resolved.Schema); err == nil {
		instructions = fmt.Sprintf("%s\n\n参照中のターゲット (%s) のスキーマ:\n%s", instructions, resolved.Type, b)
	}

	history := make([]llm.Message, 0, len(req.SessionHistory))
	for _, turn := range req.SessionHistory {
		history = append(history, llm.Message{
			Role:    llm.NormalizeRole(turn.Role),
			Content: llm.TextContent(turn.Content),
		})
	}

	var image *llm.ImageAttachment
	if req.ImageData != "" {
		image = &llm.ImageAttachment{Data: req.ImageData, MIMEType: req.ImageMimeType}
	}

	messages := llm.BuildMessages(llm.BuildInput{
		Instructions:     instructions,
		TimeContext:      timeContext(time.Now().In(s.loc)),
		ReferenceContext: req.ReferenceContext,
		History:          history,
		TaskText:         req.Text,
		Image:            image,
	})

	model := req.Model
	if model == "" {
		if image != nil {
			model = s.visionModel
		} else {
			model = s.textModel
		}
	}

	result, err := s.generator.GenerateJSON(ctx, messages, model)
	if err != nil {
		log.Printf("ERROR [ChatService] %s: generation failed: %v", reqID, err)
		return nil, err
	}

	log.Printf("[ChatService] %s: done with model %s (%d tokens)", reqID, result.Model, result.Usage.TotalTokens)
	return completionToResponse(result), nil
}
