package notion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"memoai-backend/internal/store"

	"github.com/jomei/notionapi"
)

// Compile-time check that NotionStore satisfies the store.Store interface.
var _ store.Store = (*NotionStore)(nil)

// NotionStore implements store.Store against the Notion REST API.
type NotionStore struct {
	client *notionapi.Client
}

// NewNotionStore creates a store over the given integration token.
func NewNotionStore(apiKey string) *NotionStore {
	return &NotionStore{client: notionapi.NewClient(notionapi.Token(apiKey))}
}

// Ping verifies the token by asking the API which integration it belongs to.
func (s *NotionStore) Ping(ctx context.Context) error {
	user, err := s.client.User.Me(ctx)
	if err != nil {
		return wrapErr("me", "", err)
	}
	log.Printf("[NotionStore] Connected as integration %q", user.Name)
	return nil
}

// wrapErr classifies a Notion API failure. 404 responses are folded into
// store.ErrNotFound so callers can branch with errors.Is; everything else
// passes through inside a FetchError.
func wrapErr(op, target string, err error) error {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		err = fmt.Errorf("%w: %s", store.ErrNotFound, apiErr.Message)
	}
	return &store.FetchError{Op: op, Target: target, Err: err}
}

// richTextPlain joins the plain text of a rich text array.
func richTextPlain(rts []notionapi.RichText) string {
	var b strings.Builder
	for _, rt := range rts {
		b.WriteString(rt.PlainText)
	}
	return b.String()
}
