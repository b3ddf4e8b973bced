package services

import (
	"context"
	"fmt"
	"log"

	"memoai-backend/internal/models"
	"memoai-backend/internal/store"
)

// SchemaLookupError reports that a target could not be resolved as either
// a database or a page. Both causes are kept so the client can show what
// was attempted.
type SchemaLookupError struct {
	TargetID    string
	DatabaseErr error
	PageErr     error
}

func (e *SchemaLookupError) Error() string {
	return fmt.Sprintf("schema lookup failed for %s (database: %v, page: %v)", e.TargetID, e.DatabaseErr, e.PageErr)
}

// resolveTargetSchema resolves a target as a database first and falls back
// to treating it as a page. Pages get the fixed Title/Content pseudo schema
// the save flow understands.
func resolveTargetSchema(ctx context.Context, st store.Store, targetID string) (*models.SchemaResponse, error) {
	db, dbErr := st.GetDatabaseSchema(ctx, targetID)
	if dbErr == nil {
		schema := make(map[string]models.SchemaPropertyInfo, len(db.Properties))
		for name, prop := range db.Properties {
			schema[name] = models.SchemaPropertyInfo{Type: prop.Type, Options: prop.Options}
		}
		return &models.SchemaResponse{Type: models.TargetTypeDatabase, Schema: schema}, nil
	}
	log.Printf("[Schema] Database lookup failed for %s, trying page: %v", targetID, dbErr)

	if _, pageErr := st.GetPageInfo(ctx, targetID); pageErr != nil {
		log.Printf("[Schema] Page lookup also failed for %s: %v", targetID, pageErr)
		return nil, &SchemaLookupError{TargetID: targetID, DatabaseErr: dbErr, PageErr: pageErr}
	}

	return &models.SchemaResponse{
		Type: models.TargetTypePage,
		Schema: map[string]models.SchemaPropertyInfo{
			"Title":   {Type: "title"},
			"Content": {Type: "rich_text"},
		},
	}, nil
}
