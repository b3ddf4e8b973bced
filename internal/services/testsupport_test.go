package services

import (
	"context"
	"encoding/json"
	"errors"

	"memoai-backend/internal/llm"
	"memoai-backend/internal/store"
)

var errUnexpectedCall = errors.New("unexpected store call")

// fakeStore implements store.Store with per-method hooks. A method whose
// hook is unset reports an unexpected call.
type fakeStore struct {
	pingFn              func(ctx context.Context) error
	getDatabaseSchemaFn func(ctx context.Context, databaseID string) (*store.DatabaseSchema, error)
	getDatabaseInfoFn   func(ctx context.Context, databaseID string) (*store.DatabaseInfo, error)
	getPageInfoFn       func(ctx context.Context, pageID string) (*store.PageInfo, error)
	queryRecentFn       func(ctx context.Context, databaseID string, limit int) ([]store.Record, error)
	createRecordFn      func(ctx context.Context, databaseID string, properties map[string]json.RawMessage) (*store.CreatedRecord, error)
	createPageFn        func(ctx context.Context, parentPageID, title string) (*store.PageInfo, error)
	listChildBlocksFn   func(ctx context.Context, parentID string) ([]store.ChildBlock, error)
	appendParagraphsFn  func(ctx context.Context, pageID string, segments []string) error
	listPresetConfigsFn func(ctx context.Context, databaseID string) ([]store.PresetConfig, error)
}

var _ store.Store = (*fakeStore)(nil)

func (f *fakeStore) Ping(ctx context.Context) error {
	if f.pingFn == nil {
		return errUnexpectedCall
	}
	return f.pingFn(ctx)
}

func (f *fakeStore) GetDatabaseSchema(ctx context.Context, databaseID string) (*store.DatabaseSchema, error) {
	if f.getDatabaseSchemaFn == nil {
		return nil, errUnexpectedCall
	}
	return f.getDatabaseSchemaFn(ctx, databaseID)
}

func (f *fakeStore) GetDatabaseInfo(ctx context.Context, databaseID string) (*store.DatabaseInfo, error) {
	if f.getDatabaseInfoFn == nil {
		return nil, errUnexpectedCall
	}
	return f.getDatabaseInfoFn(ctx, databaseID)
}

func (f *fakeStore) GetPageInfo(ctx context.Context, pageID string) (*store.PageInfo, error) {
	if f.getPageInfoFn == nil {
		return nil, errUnexpectedCall
	}
	return f.getPageInfoFn(ctx, pageID)
}

func (f *fakeStore) QueryRecentRecords(ctx context.Context, databaseID string, limit int) ([]store.Record, error) {
	if f.queryRecentFn == nil {
		return nil, errUnexpectedCall
	}
	return f.queryRecentFn(ctx, databaseID, limit)
}

func (f *fakeStore) CreateRecord(ctx context.Context, databaseID string, properties map[string]json.RawMessage) (*store.CreatedRecord, error) {
	if f.createRecordFn == nil {
		return nil, errUnexpectedCall
	}
	return f.createRecordFn(ctx, databaseID, properties)
}

func (f *fakeStore) CreatePage(ctx context.Context, parentPageID, title string) (*store.PageInfo, error) {
	if f.createPageFn == nil {
		return nil, errUnexpectedCall
	}
	return f.createPageFn(ctx, parentPageID, title)
}

func (f *fakeStore) ListChildBlocks(ctx context.Context, parentID string) ([]store.ChildBlock, error) {
	if f.listChildBlocksFn == nil {
		return nil, errUnexpectedCall
	}
	return f.listChildBlocksFn(ctx, parentID)
}

func (f *fakeStore) AppendParagraphs(ctx context.Context, pageID string, segments []string) error {
	if f.appendParagraphsFn == nil {
		return errUnexpectedCall
	}
	return f.appendParagraphsFn(ctx, pageID, segments)
}

func (f *fakeStore) ListPresetConfigs(ctx context.Context, databaseID string) ([]store.PresetConfig, error) {
	if f.listPresetConfigsFn == nil {
		return nil, errUnexpectedCall
	}
	return f.listPresetConfigsFn(ctx, databaseID)
}

// fakeGenerator implements llm.Generator, recording every call.
type fakeGenerator struct {
	generateFn func(ctx context.Context, messages []llm.Message, model string) (llm.CompletionResult, error)
	calls      []generatorCall
}

type generatorCall struct {
	messages []llm.Message
	model    string
}

var _ llm.Generator = (*fakeGenerator)(nil)

func (f *fakeGenerator) GenerateJSON(ctx context.Context, messages []llm.Message, model string) (llm.CompletionResult, error) {
	f.calls = append(f.calls, generatorCall{messages: messages, model: model})
	if f.generateFn == nil {
		return llm.CompletionResult{Content: "{}", Model: model}, nil
	}
	return f.generateFn(ctx, messages, model)
}
