package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested Notion object does not exist
// or is not shared with the integration.
var ErrNotFound = errors.New("notion object not found")

// FetchError wraps a failed Notion operation with enough context to log
// and classify it. It unwraps to the underlying cause, so errors.Is with
// ErrNotFound still works through it.
type FetchError struct {
	Op     string // operation name, e.g. "get_database"
	Target string // object id the operation addressed
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("notion %s %s: %v", e.Op, e.Target, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Child block types as Notion reports them.
const (
	BlockTypeChildPage     = "child_page"
	BlockTypeChildDatabase = "child_database"
	BlockTypeLinkToPage    = "link_to_page"
)

// DatabaseSchema describes the property layout of a Notion database.
type DatabaseSchema struct {
	ID         string
	Title      string
	URL        string
	Properties map[string]SchemaProperty
}

// SchemaProperty is one column of a database schema. Options is filled
// for select-like columns so the model can pick valid values.
type SchemaProperty struct {
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

// PageInfo identifies a page plus its display title.
type PageInfo struct {
	ID    string
	Title string
	URL   string
}

// DatabaseInfo identifies a database plus its display title.
type DatabaseInfo struct {
	ID    string
	Title string
	URL   string
}

// Record is a database row with every property flattened to display text.
type Record struct {
	ID         string
	URL        string
	Properties map[string]string
}

// CreatedRecord points at a row created by a save.
type CreatedRecord struct {
	ID  string
	URL string
}

// ChildBlock is a flattened view of one child block of a page: its type,
// the inline title of child pages and databases, the plain text of
// text-bearing blocks, and the target of link_to_page blocks.
type ChildBlock struct {
	ID             string
	Type           string
	Title          string
	Text           string
	LinkPageID     string
	LinkDatabaseID string
}

// PresetConfig is one row of the user's configuration database: a named
// system prompt plus an optional preferred model.
type PresetConfig struct {
	Name   string
	Prompt string
	Model  string
}

// Store defines the interface for Notion operations.
// This allows for mocking in tests and keeps the Notion client types out
// of the service layer.
type Store interface {
	// Ping verifies the API token is usable.
	Ping(ctx context.Context) error

	// Schema and object metadata
	GetDatabaseSchema(ctx context.Context, databaseID string) (*DatabaseSchema, error)
	GetDatabaseInfo(ctx context.Context, databaseID string) (*DatabaseInfo, error)
	GetPageInfo(ctx context.Context, pageID string) (*PageInfo, error)

	// Records
	QueryRecentRecords(ctx context.Context, databaseID string, limit int) ([]Record, error)
	CreateRecord(ctx context.Context, databaseID string, properties map[string]json.RawMessage) (*CreatedRecord, error)

	// Pages and blocks
	CreatePage(ctx context.Context, parentPageID, title string) (*PageInfo, error)
	ListChildBlocks(ctx context.Context, parentID string) ([]ChildBlock, error)
	AppendParagraphs(ctx context.Context, pageID string, segments []string) error

	// Preset configurations
	ListPresetConfigs(ctx context.Context, databaseID string) ([]PresetConfig, error)
}
