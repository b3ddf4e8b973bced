package notion

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"memoai-backend/internal/store"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rts(text string) []notionapi.RichText {
	return []notionapi.RichText{{PlainText: text}}
}

func TestRichTextPlainJoinsFragments(t *testing.T) {
	got := richTextPlain([]notionapi.RichText{
		{PlainText: "Hello, "},
		{PlainText: "world"},
	})
	assert.Equal(t, "Hello, world", got)
	assert.Equal(t, "", richTextPlain(nil))
}

func TestPlainPropertyValue(t *testing.T) {
	date := notionapi.Date(time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		name string
		prop notionapi.Property
		want string
	}{
		{"title", &notionapi.TitleProperty{Title: rts("Buy milk")}, "Buy milk"},
		{"rich_text", &notionapi.RichTextProperty{RichText: rts("some note")}, "some note"},
		{"select", &notionapi.SelectProperty{Select: notionapi.Option{Name: "High"}}, "High"},
		{"multi_select", &notionapi.MultiSelectProperty{MultiSelect: []notionapi.Option{{Name: "go"}, {Name: "api"}}}, "go, api"},
		{"status", &notionapi.StatusProperty{Status: notionapi.Status{Name: "In progress"}}, "In progress"},
		{"url", &notionapi.URLProperty{URL: "https://example.com"}, "https://example.com"},
		{"checkbox_on", &notionapi.CheckboxProperty{Checkbox: true}, "✅"},
		{"checkbox_off", &notionapi.CheckboxProperty{Checkbox: false}, "⬜"},
		{"number_int", &notionapi.NumberProperty{Number: 42}, "42"},
		{"number_fraction", &notionapi.NumberProperty{Number: 3.5}, "3.5"},
		{"people", &notionapi.PeopleProperty{People: []notionapi.User{{Name: "Alice"}, {Name: "Bob"}}}, "Alice, Bob"},
		{"unsupported_falls_back_to_type_tag", &notionapi.FormulaProperty{Type: "formula"}, "(formula)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plainPropertyValue(tt.prop))
		})
	}

	t.Run("date", func(t *testing.T) {
		got := plainPropertyValue(&notionapi.DateProperty{Date: &notionapi.DateObject{Start: &date}})
		assert.NotEmpty(t, got)
		assert.Contains(t, got, "2026-08-24")
	})
	t.Run("date_empty", func(t *testing.T) {
		assert.Equal(t, "", plainPropertyValue(&notionapi.DateProperty{}))
	})
}

func TestFlattenBlockChildPage(t *testing.T) {
	var b notionapi.ChildPageBlock
	b.BasicBlock = notionapi.BasicBlock{ID: "blk-1", Type: "child_page"}
	b.ChildPage.Title = "Meeting Notes"

	got := flattenBlock(&b)
	assert.Equal(t, store.ChildBlock{ID: "blk-1", Type: store.BlockTypeChildPage, Title: "Meeting Notes"}, got)
}

func TestFlattenBlockChildDatabase(t *testing.T) {
	var b notionapi.ChildDatabaseBlock
	b.BasicBlock = notionapi.BasicBlock{ID: "blk-2", Type: "child_database"}
	b.ChildDatabase.Title = "Tasks"

	got := flattenBlock(&b)
	assert.Equal(t, store.ChildBlock{ID: "blk-2", Type: store.BlockTypeChildDatabase, Title: "Tasks"}, got)
}

func TestFlattenBlockLinkToPage(t *testing.T) {
	var b notionapi.LinkToPageBlock
	b.BasicBlock = notionapi.BasicBlock{ID: "blk-3", Type: "link_to_page"}
	b.LinkToPage.PageID = "page-9"

	got := flattenBlock(&b)
	assert.Equal(t, "page-9", got.LinkPageID)
	assert.Empty(t, got.LinkDatabaseID)
	assert.Equal(t, store.BlockTypeLinkToPage, got.Type)
}

func TestFlattenBlockTextKinds(t *testing.T) {
	var para notionapi.ParagraphBlock
	para.BasicBlock = notionapi.BasicBlock{ID: "blk-4", Type: "paragraph"}
	para.Paragraph.RichText = rts("plain paragraph")

	var heading notionapi.Heading2Block
	heading.BasicBlock = notionapi.BasicBlock{ID: "blk-5", Type: "heading_2"}
	heading.Heading2.RichText = rts("Section")

	var todo notionapi.ToDoBlock
	todo.BasicBlock = notionapi.BasicBlock{ID: "blk-6", Type: "to_do"}
	todo.ToDo.RichText = rts("ship it")

	assert.Equal(t, "plain paragraph", flattenBlock(&para).Text)
	assert.Equal(t, "Section", flattenBlock(&heading).Text)
	assert.Equal(t, "ship it", flattenBlock(&todo).Text)
}

func TestFlattenBlockUnknownKeepsIdentity(t *testing.T) {
	b := &notionapi.BasicBlock{ID: "blk-7", Type: "embed"}

	got := flattenBlock(b)
	assert.Equal(t, store.ChildBlock{ID: "blk-7", Type: "embed"}, got)
}

func TestWrapErrMapsNotFound(t *testing.T) {
	cause := &notionapi.Error{Status: http.StatusNotFound, Message: "Could not find database with ID: db-1."}

	err := wrapErr("get_database", "db-1", cause)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)

	var fe *store.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "get_database", fe.Op)
	assert.Equal(t, "db-1", fe.Target)
	assert.Contains(t, fe.Error(), "get_database")
}

func TestWrapErrPassesThroughOtherStatuses(t *testing.T) {
	cause := &notionapi.Error{Status: http.StatusTooManyRequests, Message: "rate limited"}

	err := wrapErr("query_database", "db-1", cause)
	assert.False(t, errors.Is(err, store.ErrNotFound))

	var apiErr *notionapi.Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
}
