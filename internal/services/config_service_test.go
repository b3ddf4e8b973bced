package services

import (
	"context"
	"errors"
	"testing"

	"memoai-backend/internal/models"
	"memoai-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPresetsUsesEnvOverride(t *testing.T) {
	scans := 0
	st := &fakeStore{
		listChildBlocksFn: func(context.Context, string) ([]store.ChildBlock, error) {
			scans++
			return nil, nil
		},
		listPresetConfigsFn: func(_ context.Context, databaseID string) ([]store.PresetConfig, error) {
			assert.Equal(t, "env-db", databaseID)
			return []store.PresetConfig{
				{Name: "タスク整理", Prompt: "タスクを整理して", Model: "gemini-2.0-flash"},
			}, nil
		},
	}

	svc := NewConfigService(st, "root-1", "env-db")
	resp, err := svc.Presets(context.Background())
	require.NoError(t, err)

	assert.Zero(t, scans, "env override must skip root-page discovery")
	require.Len(t, resp.Configs, 1)
	assert.Equal(t, models.PresetInfo{Name: "タスク整理", Prompt: "タスクを整理して", Model: "gemini-2.0-flash"}, resp.Configs[0])
}

func TestConfigPresetsDiscoversDatabaseOnce(t *testing.T) {
	scans := 0
	st := &fakeStore{
		listChildBlocksFn: func(_ context.Context, parentID string) ([]store.ChildBlock, error) {
			scans++
			assert.Equal(t, "root-1", parentID)
			return []store.ChildBlock{
				{ID: "page-1", Type: store.BlockTypeChildPage, Title: "Notes"},
				{ID: "cfg-db", Type: store.BlockTypeChildDatabase, Title: "Memo Config"},
			}, nil
		},
		listPresetConfigsFn: func(_ context.Context, databaseID string) ([]store.PresetConfig, error) {
			assert.Equal(t, "cfg-db", databaseID)
			return nil, nil
		},
	}

	svc := NewConfigService(st, "root-1", "")
	_, err := svc.Presets(context.Background())
	require.NoError(t, err)
	_, err = svc.Presets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, scans, "discovery result must be memoized")
}

func TestConfigPresetsRetriesAfterFailedDiscovery(t *testing.T) {
	scans := 0
	st := &fakeStore{
		listChildBlocksFn: func(context.Context, string) ([]store.ChildBlock, error) {
			scans++
			return []store.ChildBlock{
				{ID: "page-1", Type: store.BlockTypeChildPage, Title: "Notes"},
			}, nil
		},
	}

	svc := NewConfigService(st, "root-1", "")
	_, err := svc.Presets(context.Background())
	assert.ErrorIs(t, err, ErrConfigDBNotFound)
	_, err = svc.Presets(context.Background())
	assert.ErrorIs(t, err, ErrConfigDBNotFound)

	assert.Equal(t, 2, scans, "a miss is not memoized so the database can appear later")
}

func TestConfigPresetsWithoutRootOrEnv(t *testing.T) {
	svc := NewConfigService(&fakeStore{}, "", "")
	_, err := svc.Presets(context.Background())
	assert.ErrorIs(t, err, ErrConfigDBNotFound)
}

func TestConfigPresetsDiscoveryErrorPropagates(t *testing.T) {
	st := &fakeStore{
		listChildBlocksFn: func(context.Context, string) ([]store.ChildBlock, error) {
			return nil, errors.New("notion down")
		},
	}

	svc := NewConfigService(st, "root-1", "")
	_, err := svc.Presets(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigDBNotFound)
}
