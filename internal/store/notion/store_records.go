package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"memoai-backend/internal/store"

	"github.com/jomei/notionapi"
)

// QueryRecentRecords returns up to limit rows of a database ordered by
// last edit time, newest first, with every property flattened to display
// text. The rows serve as few-shot examples for the analyze flow and as
// the preview in the content endpoint.
func (s *NotionStore) QueryRecentRecords(ctx context.Context, databaseID string, limit int) ([]store.Record, error) {
	resp, err := s.client.Database.Query(ctx, notionapi.DatabaseID(databaseID), &notionapi.DatabaseQueryRequest{
		PageSize: limit,
		Sorts: []notionapi.SortObject{
			{Timestamp: notionapi.TimestampLastEdited, Direction: notionapi.SortOrderDESC},
		},
	})
	if err != nil {
		return nil, wrapErr("query_database", databaseID, err)
	}

	records := make([]store.Record, 0, len(resp.Results))
	for _, page := range resp.Results {
		props := make(map[string]string, len(page.Properties))
		for name, prop := range page.Properties {
			props[name] = plainPropertyValue(prop)
		}
		records = append(records, store.Record{
			ID:         string(page.ID),
			URL:        page.URL,
			Properties: props,
		})
	}
	return records, nil
}

// plainPropertyValue renders one page property as display text, the way
// the client shows row previews. Unsupported types fall back to a type tag.
func plainPropertyValue(prop notionapi.Property) string {
	switch p := prop.(type) {
	case *notionapi.TitleProperty:
		return richTextPlain(p.Title)
	case *notionapi.RichTextProperty:
		return richTextPlain(p.RichText)
	case *notionapi.SelectProperty:
		return p.Select.Name
	case *notionapi.MultiSelectProperty:
		names := make([]string, 0, len(p.MultiSelect))
		for _, opt := range p.MultiSelect {
			names = append(names, opt.Name)
		}
		return strings.Join(names, ", ")
	case *notionapi.StatusProperty:
		return p.Status.Name
	case *notionapi.DateProperty:
		if p.Date != nil && p.Date.Start != nil {
			return p.Date.Start.String()
		}
		return ""
	case *notionapi.URLProperty:
		return p.URL
	case *notionapi.CheckboxProperty:
		if p.Checkbox {
			return "✅"
		}
		return "⬜"
	case *notionapi.NumberProperty:
		return strconv.FormatFloat(p.Number, 'f', -1, 64)
	case *notionapi.PeopleProperty:
		names := make([]string, 0, len(p.People))
		for _, u := range p.People {
			names = append(names, u.Name)
		}
		return strings.Join(names, ", ")
	default:
		return fmt.Sprintf("(%s)", prop.GetType())
	}
}

// rawProperty passes a client-supplied property value through to the API
// untouched. The save flow treats property bags as opaque; Notion itself
// validates them against the database schema.
type rawProperty json.RawMessage

func (p rawProperty) GetType() notionapi.PropertyType { return "" }
func (p rawProperty) GetID() string                   { return "" }

func (p rawProperty) MarshalJSON() ([]byte, error) {
	return json.RawMessage(p).MarshalJSON()
}

// CreateRecord inserts one row into a database. Property values arrive in
// Notion's wire format and are forwarded verbatim.
func (s *NotionStore) CreateRecord(ctx context.Context, databaseID string, properties map[string]json.RawMessage) (*store.CreatedRecord, error) {
	log.Printf("[NotionStore] CreateRecord in database %s (%d properties)", databaseID, len(properties))

	props := make(notionapi.Properties, len(properties))
	for name, raw := range properties {
		props[name] = rawProperty(raw)
	}

	page, err := s.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: props,
	})
	if err != nil {
		return nil, wrapErr("create_record", databaseID, err)
	}
	return &store.CreatedRecord{ID: string(page.ID), URL: page.URL}, nil
}

// CreatePage creates an empty page titled title under the given parent page.
func (s *NotionStore) CreatePage(ctx context.Context, parentPageID, title string) (*store.PageInfo, error) {
	log.Printf("[NotionStore] CreatePage %q under %s", title, parentPageID)

	page, err := s.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(parentPageID),
		},
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Title: []notionapi.RichText{{Text: &notionapi.Text{Content: title}}},
			},
		},
	})
	if err != nil {
		return nil, wrapErr("create_page", parentPageID, err)
	}
	return &store.PageInfo{ID: string(page.ID), Title: title, URL: page.URL}, nil
}
