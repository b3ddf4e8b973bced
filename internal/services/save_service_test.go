package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"memoai-backend/internal/models"
	"memoai-backend/internal/sanitize"
	"memoai-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePageChunksLongText(t *testing.T) {
	text := strings.Repeat("a", 4500)
	var gotPageID string
	var gotSegments []string
	st := &fakeStore{
		appendParagraphsFn: func(_ context.Context, pageID string, segments []string) error {
			gotPageID = pageID
			gotSegments = segments
			return nil
		},
	}

	svc := NewSaveService(st)
	resp, err := svc.Save(context.Background(), models.SaveRequest{
		TargetDBID: "page-1",
		TargetType: models.TargetTypePage,
		Text:       text,
	})
	require.NoError(t, err)

	assert.Equal(t, "page-1", gotPageID)
	require.Len(t, gotSegments, 3)
	assert.Len(t, gotSegments[0], 2000)
	assert.Len(t, gotSegments[1], 2000)
	assert.Len(t, gotSegments[2], 500)
	assert.Equal(t, text, strings.Join(gotSegments, ""))

	assert.Equal(t, "success", resp.Status)
	assert.Empty(t, resp.URL, "page appends have no single created object")
}

func TestSavePageAppendFailurePropagates(t *testing.T) {
	st := &fakeStore{
		appendParagraphsFn: func(context.Context, string, []string) error {
			return &store.FetchError{Op: "append_blocks", Target: "page-1", Err: errors.New("rate limited")}
		},
	}

	svc := NewSaveService(st)
	_, err := svc.Save(context.Background(), models.SaveRequest{
		TargetDBID: "page-1",
		TargetType: models.TargetTypePage,
		Text:       "memo",
	})

	var fetchErr *store.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "append_blocks", fetchErr.Op)
}

func TestSavePageContentPropertyOverridesText(t *testing.T) {
	var gotSegments []string
	st := &fakeStore{
		appendParagraphsFn: func(_ context.Context, _ string, segments []string) error {
			gotSegments = segments
			return nil
		},
	}

	svc := NewSaveService(st)
	_, err := svc.Save(context.Background(), models.SaveRequest{
		TargetDBID: "page-1",
		TargetType: models.TargetTypePage,
		Text:       "raw text",
		Properties: map[string]json.RawMessage{
			"Content": json.RawMessage(`{"rich_text":[{"text":{"content":"from property"}}]}`),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"from property"}, gotSegments)
}

func TestSavePageDefaultsToNoContent(t *testing.T) {
	var gotSegments []string
	st := &fakeStore{
		appendParagraphsFn: func(_ context.Context, _ string, segments []string) error {
			gotSegments = segments
			return nil
		},
	}

	svc := NewSaveService(st)
	_, err := svc.Save(context.Background(), models.SaveRequest{
		TargetDBID: "page-1",
		TargetType: models.TargetTypePage,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"No content"}, gotSegments)
}

func TestSavePageTruncatesOversizedText(t *testing.T) {
	text := strings.Repeat("x", 150000)
	var gotSegments []string
	st := &fakeStore{
		appendParagraphsFn: func(_ context.Context, _ string, segments []string) error {
			gotSegments = segments
			return nil
		},
	}

	svc := NewSaveService(st)
	_, err := svc.Save(context.Background(), models.SaveRequest{
		TargetDBID: "page-1",
		TargetType: models.TargetTypePage,
		Text:       text,
	})
	require.NoError(t, err)

	joined := strings.Join(gotSegments, "")
	assert.Equal(t, text[:sanitize.MaxPayloadRunes]+sanitize.TruncationMarker, joined)
}

func TestSaveDatabaseSplitsLongTitle(t *testing.T) {
	longTitle := strings.Repeat("b", 4500)
	props := map[string]json.RawMessage{
		"タスク名": json.RawMessage(`{"title":[{"type":"text","text":{"content":` + mustJSON(t, longTitle) + `},"annotations":{"bold":true}}]}`),
		"優先度":  json.RawMessage(`{"select":{"name":"High"}}`),
	}

	var gotProps map[string]json.RawMessage
	st := &fakeStore{
		createRecordFn: func(_ context.Context, databaseID string, properties map[string]json.RawMessage) (*store.CreatedRecord, error) {
			assert.Equal(t, "db-1", databaseID)
			gotProps = properties
			return &store.CreatedRecord{ID: "rec-1", URL: "https://notion.so/rec-1"}, nil
		},
	}

	svc := NewSaveService(st)
	resp, err := svc.Save(context.Background(), models.SaveRequest{
		TargetDBID: "db-1",
		TargetType: models.TargetTypeDatabase,
		Properties: props,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://notion.so/rec-1", resp.URL)

	var title struct {
		Title []struct {
			Type string `json:"type"`
			Text struct {
				Content string `json:"content"`
			} `json:"text"`
			Annotations map[string]bool `json:"annotations"`
		} `json:"title"`
	}
	require.NoError(t, json.Unmarshal(gotProps["タスク名"], &title))
	require.Len(t, title.Title, 3)

	var rebuilt strings.Builder
	for _, item := range title.Title {
		assert.Equal(t, "text", item.Type)
		assert.True(t, item.Annotations["bold"], "annotations must survive the split")
		assert.LessOrEqual(t, len(item.Text.Content), sanitize.SegmentLimit)
		rebuilt.WriteString(item.Text.Content)
	}
	assert.Equal(t, longTitle, rebuilt.String())

	assert.JSONEq(t, `{"select":{"name":"High"}}`, string(gotProps["優先度"]))
}

func TestSaveDatabaseStripsImagePayloads(t *testing.T) {
	props := map[string]json.RawMessage{
		"メモ": json.RawMessage(`{"rich_text":[{"text":{"content":"before ![img](data:image/png;base64,AAAA) after"}}]}`),
	}

	var gotProps map[string]json.RawMessage
	st := &fakeStore{
		createRecordFn: func(_ context.Context, _ string, properties map[string]json.RawMessage) (*store.CreatedRecord, error) {
			gotProps = properties
			return &store.CreatedRecord{ID: "rec-1"}, nil
		},
	}

	svc := NewSaveService(st)
	_, err := svc.Save(context.Background(), models.SaveRequest{
		TargetDBID: "db-1",
		TargetType: models.TargetTypeDatabase,
		Properties: props,
	})
	require.NoError(t, err)

	var memo struct {
		RichText []struct {
			Text struct {
				Content string `json:"content"`
			} `json:"text"`
		} `json:"rich_text"`
	}
	require.NoError(t, json.Unmarshal(gotProps["メモ"], &memo))
	require.Len(t, memo.RichText, 1)
	assert.Equal(t, "before  after", memo.RichText[0].Text.Content)
}

func TestSaveDatabaseKeepsItemsWithoutText(t *testing.T) {
	props := map[string]json.RawMessage{
		"メモ": json.RawMessage(`{"rich_text":[{"mention":{"page":{"id":"p-1"}}},{"text":{"content":"note"}}]}`),
	}

	var gotProps map[string]json.RawMessage
	st := &fakeStore{
		createRecordFn: func(_ context.Context, _ string, properties map[string]json.RawMessage) (*store.CreatedRecord, error) {
			gotProps = properties
			return &store.CreatedRecord{ID: "rec-1"}, nil
		},
	}

	svc := NewSaveService(st)
	_, err := svc.Save(context.Background(), models.SaveRequest{
		TargetDBID: "db-1",
		TargetType: models.TargetTypeDatabase,
		Properties: props,
	})
	require.NoError(t, err)

	var memo struct {
		RichText []map[string]json.RawMessage `json:"rich_text"`
	}
	require.NoError(t, json.Unmarshal(gotProps["メモ"], &memo))
	require.Len(t, memo.RichText, 2)
	assert.Contains(t, memo.RichText[0], "mention")
	assert.Contains(t, memo.RichText[1], "text")
}

func TestSaveValidation(t *testing.T) {
	svc := NewSaveService(&fakeStore{})

	_, err := svc.Save(context.Background(), models.SaveRequest{Text: "memo"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Save(context.Background(), models.SaveRequest{
		TargetDBID: "db-1",
		TargetType: models.TargetTypeDatabase,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
