package services

import (
	"context"
	"log"
	"sort"

	"memoai-backend/internal/models"
	"memoai-backend/internal/store"
)

// Rows shown in a database preview.
const databasePreviewLimit = 15

// ContentService defines the interface for target content previews.
type ContentService interface {
	PageContent(ctx context.Context, pageID string) (*models.PageContentResponse, error)
	DatabaseContent(ctx context.Context, databaseID string) (*models.DatabaseContentResponse, error)
}

type contentService struct {
	store store.Store
}

// NewContentService creates a new ContentService.
func NewContentService(s store.Store) ContentService {
	return &contentService{store: s}
}

// PageContent returns every child block of a page reduced to its type and
// plain text, so the client can render a lightweight preview.
func (s *contentService) PageContent(ctx context.Context, pageID string) (*models.PageContentResponse, error) {
	blocks, err := s.store.ListChildBlocks(ctx, pageID)
	if err != nil {
		log.Printf("ERROR [ContentService] PageContent: %v", err)
		return nil, err
	}

	out := make([]models.BlockInfo, 0, len(blocks))
	for _, b := range blocks {
		content := b.Text
		if content == "" {
			content = b.Title
		}
		out = append(out, models.BlockInfo{Type: b.Type, Content: content})
	}
	return &models.PageContentResponse{Type: models.TargetTypePage, Blocks: out}, nil
}

// DatabaseContent returns recent rows of a database as a small table:
// column names plus per-row display text. Columns come from the first row
// and are sorted for a stable order.
func (s *contentService) DatabaseContent(ctx context.Context, databaseID string) (*models.DatabaseContentResponse, error) {
	records, err := s.store.QueryRecentRecords(ctx, databaseID, databasePreviewLimit)
	if err != nil {
		log.Printf("ERROR [ContentService] DatabaseContent: %v", err)
		return nil, err
	}

	resp := &models.DatabaseContentResponse{
		Type:    models.TargetTypeDatabase,
		Columns: []string{},
		Rows:    []map[string]string{},
	}
	if len(records) == 0 {
		return resp, nil
	}

	for name := range records[0].Properties {
		resp.Columns = append(resp.Columns, name)
	}
	sort.Strings(resp.Columns)

	for _, rec := range records {
		row := make(map[string]string, len(resp.Columns))
		for _, col := range resp.Columns {
			row[col] = rec.Properties[col]
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp, nil
}
