package notion

import (
	"context"
	"log"

	"memoai-backend/internal/store"

	"github.com/jomei/notionapi"
)

// Notion rejects append requests carrying more than 100 blocks.
const maxBlocksPerAppend = 100

// ListChildBlocks lists every child block of a page, following
// pagination. The result feeds both target discovery (child pages,
// databases, links) and page content previews (text blocks).
func (s *NotionStore) ListChildBlocks(ctx context.Context, parentID string) ([]store.ChildBlock, error) {
	var out []store.ChildBlock
	var cursor notionapi.Cursor
	for {
		resp, err := s.client.Block.GetChildren(ctx, notionapi.BlockID(parentID), &notionapi.Pagination{
			StartCursor: cursor,
			PageSize:    100,
		})
		if err != nil {
			return nil, wrapErr("list_children", parentID, err)
		}
		for _, b := range resp.Results {
			out = append(out, flattenBlock(b))
		}
		if !resp.HasMore {
			return out, nil
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}
}

// flattenBlock reduces one block to the fields the rest of the backend
// cares about. Text-bearing block types keep their plain text; container
// and media types keep only their id and type.
func flattenBlock(b notionapi.Block) store.ChildBlock {
	cb := store.ChildBlock{ID: string(b.GetID()), Type: string(b.GetType())}
	switch blk := b.(type) {
	case *notionapi.ChildPageBlock:
		cb.Title = blk.ChildPage.Title
	case *notionapi.ChildDatabaseBlock:
		cb.Title = blk.ChildDatabase.Title
	case *notionapi.LinkToPageBlock:
		cb.LinkPageID = string(blk.LinkToPage.PageID)
		cb.LinkDatabaseID = string(blk.LinkToPage.DatabaseID)
	case *notionapi.ParagraphBlock:
		cb.Text = richTextPlain(blk.Paragraph.RichText)
	case *notionapi.Heading1Block:
		cb.Text = richTextPlain(blk.Heading1.RichText)
	case *notionapi.Heading2Block:
		cb.Text = richTextPlain(blk.Heading2.RichText)
	case *notionapi.Heading3Block:
		cb.Text = richTextPlain(blk.Heading3.RichText)
	case *notionapi.BulletedListItemBlock:
		cb.Text = richTextPlain(blk.BulletedListItem.RichText)
	case *notionapi.NumberedListItemBlock:
		cb.Text = richTextPlain(blk.NumberedListItem.RichText)
	case *notionapi.ToDoBlock:
		cb.Text = richTextPlain(blk.ToDo.RichText)
	case *notionapi.ToggleBlock:
		cb.Text = richTextPlain(blk.Toggle.RichText)
	case *notionapi.QuoteBlock:
		cb.Text = richTextPlain(blk.Quote.RichText)
	case *notionapi.CalloutBlock:
		cb.Text = richTextPlain(blk.Callout.RichText)
	case *notionapi.CodeBlock:
		cb.Text = richTextPlain(blk.Code.RichText)
	}
	return cb
}

// AppendParagraphs appends one paragraph block per segment to a page,
// batching calls to stay under the API's per-request block limit.
// Segments must already fit Notion's rich text length cap.
func (s *NotionStore) AppendParagraphs(ctx context.Context, pageID string, segments []string) error {
	if len(segments) == 0 {
		return nil
	}
	log.Printf("[NotionStore] AppendParagraphs to %s: %d segment(s)", pageID, len(segments))

	for start := 0; start < len(segments); start += maxBlocksPerAppend {
		end := start + maxBlocksPerAppend
		if end > len(segments) {
			end = len(segments)
		}
		children := make([]notionapi.Block, 0, end-start)
		for _, seg := range segments[start:end] {
			children = append(children, &notionapi.ParagraphBlock{
				BasicBlock: notionapi.BasicBlock{
					Object: notionapi.ObjectTypeBlock,
					Type:   notionapi.BlockTypeParagraph,
				},
				Paragraph: notionapi.Paragraph{
					RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: seg}}},
				},
			})
		}
		if _, err := s.client.Block.AppendChildren(ctx, notionapi.BlockID(pageID), &notionapi.AppendBlockChildrenRequest{
			Children: children,
		}); err != nil {
			return wrapErr("append_blocks", pageID, err)
		}
	}
	return nil
}
