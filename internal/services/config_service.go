package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"memoai-backend/internal/models"
	"memoai-backend/internal/store"
)

// ConfigService defines the interface for workspace preset configuration.
type ConfigService interface {
	Presets(ctx context.Context) (*models.ConfigResponse, error)
}

type configService struct {
	store      store.Store
	rootPageID string
	envDBID    string

	// resolved holds the discovered config database id; written at most
	// once, read on every request.
	resolved atomic.Pointer[string]
}

// NewConfigService creates a new ConfigService. envDBID, when non-empty,
// wins over root-page discovery.
func NewConfigService(s store.Store, rootPageID, envDBID string) ConfigService {
	return &configService{store: s, rootPageID: rootPageID, envDBID: envDBID}
}

// Presets returns the prompt presets stored in the configuration database.
func (s *configService) Presets(ctx context.Context) (*models.ConfigResponse, error) {
	dbID, err := s.configDBID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListPresetConfigs(ctx, dbID)
	if err != nil {
		log.Printf("ERROR [ConfigService] Presets: %v", err)
		return nil, err
	}

	configs := make([]models.PresetInfo, 0, len(rows))
	for _, row := range rows {
		configs = append(configs, models.PresetInfo{Name: row.Name, Prompt: row.Prompt, Model: row.Model})
	}
	return &models.ConfigResponse{Configs: configs}, nil
}

// configDBID resolves the configuration database id at most once per
// process. The environment override wins; otherwise the root page's
// children are scanned for a database whose title mentions "config".
// Failed resolution is not memoized, so a later request can retry.
func (s *configService) configDBID(ctx context.Context) (string, error) {
	if id := s.resolved.Load(); id != nil {
		return *id, nil
	}

	if s.envDBID != "" {
		s.resolved.CompareAndSwap(nil, &s.envDBID)
		return s.envDBID, nil
	}

	if s.rootPageID == "" {
		return "", ErrConfigDBNotFound
	}
	blocks, err := s.store.ListChildBlocks(ctx, s.rootPageID)
	if err != nil {
		return "", fmt.Errorf("config database discovery failed: %w", err)
	}
	for _, b := range blocks {
		if b.Type == store.BlockTypeChildDatabase && strings.Contains(strings.ToLower(b.Title), "config") {
			id := b.ID
			s.resolved.CompareAndSwap(nil, &id)
			log.Printf("[ConfigService] Discovered config database %s (%q)", b.ID, b.Title)
			return *s.resolved.Load(), nil
		}
	}
	return "", ErrConfigDBNotFound
}
