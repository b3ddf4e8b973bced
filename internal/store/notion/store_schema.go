package notion

import (
	"context"

	"memoai-backend/internal/store"

	"github.com/jomei/notionapi"
)

// GetDatabaseSchema fetches a database and flattens its property
// definitions. Options are captured for select and multi_select columns
// so prompts can steer the model toward valid values.
func (s *NotionStore) GetDatabaseSchema(ctx context.Context, databaseID string) (*store.DatabaseSchema, error) {
	db, err := s.client.Database.Get(ctx, notionapi.DatabaseID(databaseID))
	if err != nil {
		return nil, wrapErr("get_database", databaseID, err)
	}

	props := make(map[string]store.SchemaProperty, len(db.Properties))
	for name, cfg := range db.Properties {
		sp := store.SchemaProperty{Type: string(cfg.GetType())}
		switch c := cfg.(type) {
		case *notionapi.SelectPropertyConfig:
			for _, opt := range c.Select.Options {
				sp.Options = append(sp.Options, opt.Name)
			}
		case *notionapi.MultiSelectPropertyConfig:
			for _, opt := range c.MultiSelect.Options {
				sp.Options = append(sp.Options, opt.Name)
			}
		}
		props[name] = sp
	}

	return &store.DatabaseSchema{
		ID:         string(db.ID),
		Title:      richTextPlain(db.Title),
		URL:        db.URL,
		Properties: props,
	}, nil
}

// GetDatabaseInfo fetches just the identity of a database.
func (s *NotionStore) GetDatabaseInfo(ctx context.Context, databaseID string) (*store.DatabaseInfo, error) {
	db, err := s.client.Database.Get(ctx, notionapi.DatabaseID(databaseID))
	if err != nil {
		return nil, wrapErr("get_database", databaseID, err)
	}
	return &store.DatabaseInfo{
		ID:    string(db.ID),
		Title: richTextPlain(db.Title),
		URL:   db.URL,
	}, nil
}

// GetPageInfo fetches a page and resolves its title property. Pages keep
// their title under a caller-named property, so the lookup goes by type.
func (s *NotionStore) GetPageInfo(ctx context.Context, pageID string) (*store.PageInfo, error) {
	page, err := s.client.Page.Get(ctx, notionapi.PageID(pageID))
	if err != nil {
		return nil, wrapErr("get_page", pageID, err)
	}
	var title string
	for _, prop := range page.Properties {
		if tp, ok := prop.(*notionapi.TitleProperty); ok {
			title = richTextPlain(tp.Title)
			break
		}
	}
	return &store.PageInfo{ID: string(page.ID), Title: title, URL: page.URL}, nil
}
