package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"memoai-backend/internal/models"
	"memoai-backend/internal/store"

	"golang.org/x/sync/errgroup"
)

// Upper bound on concurrent per-child lookups during target listing.
const targetLookupConcurrency = 8

// TargetsService defines the interface for save-target discovery.
type TargetsService interface {
	List(ctx context.Context) (*models.TargetsResponse, error)
	Schema(ctx context.Context, targetID string) (*models.SchemaResponse, error)
	CreatePage(ctx context.Context, req models.CreatePageRequest) (*models.CreatePageResponse, error)
}

type targetsService struct {
	store      store.Store
	rootPageID string
}

// NewTargetsService creates a new TargetsService.
func NewTargetsService(s store.Store, rootPageID string) TargetsService {
	return &targetsService{store: s, rootPageID: rootPageID}
}

// List returns the pages, databases, and resolved page links directly under
// the root page. Link lookups fan out concurrently; a failed lookup drops
// only that entry.
func (s *targetsService) List(ctx context.Context) (*models.TargetsResponse, error) {
	if s.rootPageID == "" {
		return nil, ErrRootPageNotConfigured
	}

	blocks, err := s.store.ListChildBlocks(ctx, s.rootPageID)
	if err != nil {
		log.Printf("ERROR [TargetsService] List: children fetch failed: %v", err)
		return nil, err
	}

	resolved := make([]*models.TargetInfo, len(blocks))
	g := new(errgroup.Group)
	g.SetLimit(targetLookupConcurrency)
	for i, block := range blocks {
		i, block := i, block
		g.Go(func() error {
			resolved[i] = s.resolveTarget(ctx, block)
			return nil
		})
	}
	_ = g.Wait()

	targets := make([]models.TargetInfo, 0, len(blocks))
	for _, t := range resolved {
		if t != nil {
			targets = append(targets, *t)
		}
	}
	log.Printf("[TargetsService] List: %d target(s) under root page", len(targets))
	return &models.TargetsResponse{Targets: targets}, nil
}

// resolveTarget maps one child block to a target entry. Blocks that are not
// pages, databases, or page links resolve to nil and are skipped.
func (s *targetsService) resolveTarget(ctx context.Context, block store.ChildBlock) *models.TargetInfo {
	switch block.Type {
	case store.BlockTypeChildDatabase:
		title := block.Title
		if title == "" {
			title = "Untitled Database"
		}
		return &models.TargetInfo{ID: block.ID, Type: models.TargetTypeDatabase, Title: title}

	case store.BlockTypeChildPage:
		title := block.Title
		if title == "" {
			title = "Untitled Page"
		}
		return &models.TargetInfo{ID: block.ID, Type: models.TargetTypePage, Title: title}

	case store.BlockTypeLinkToPage:
		if block.LinkPageID != "" {
			page, err := s.store.GetPageInfo(ctx, block.LinkPageID)
			if err != nil {
				log.Printf("WARN [TargetsService] List: linked page %s lookup failed, skipping: %v", block.LinkPageID, err)
				return nil
			}
			title := page.Title
			if title == "" {
				title = "Untitled Linked Page"
			}
			return &models.TargetInfo{ID: block.LinkPageID, Type: models.TargetTypePage, Title: title + " (Link)"}
		}
		if block.LinkDatabaseID != "" {
			db, err := s.store.GetDatabaseInfo(ctx, block.LinkDatabaseID)
			if err != nil {
				log.Printf("WARN [TargetsService] List: linked database %s lookup failed, skipping: %v", block.LinkDatabaseID, err)
				return nil
			}
			title := db.Title
			if title == "" {
				title = "Untitled Linked DB"
			}
			return &models.TargetInfo{ID: block.LinkDatabaseID, Type: models.TargetTypeDatabase, Title: title + " (Link)"}
		}
	}
	return nil
}

// Schema resolves a target's schema, treating it as a database first and
// falling back to the page pseudo schema.
func (s *targetsService) Schema(ctx context.Context, targetID string) (*models.SchemaResponse, error) {
	return resolveTargetSchema(ctx, s.store, targetID)
}

// CreatePage creates an empty page under the root page.
func (s *targetsService) CreatePage(ctx context.Context, req models.CreatePageRequest) (*models.CreatePageResponse, error) {
	name := strings.TrimSpace(req.PageName)
	if name == "" {
		return nil, fmt.Errorf("%w: page_name is required", ErrValidation)
	}
	if s.rootPageID == "" {
		return nil, ErrRootPageNotConfigured
	}

	page, err := s.store.CreatePage(ctx, s.rootPageID, name)
	if err != nil {
		log.Printf("ERROR [TargetsService] CreatePage: %v", err)
		return nil, err
	}

	log.Printf("[TargetsService] CreatePage: created %q (%s)", name, page.ID)
	return &models.CreatePageResponse{ID: page.ID, Title: name, Type: models.TargetTypePage}, nil
}
