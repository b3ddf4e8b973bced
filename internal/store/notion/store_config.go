package notion

import (
	"context"

	"memoai-backend/internal/store"

	"github.com/jomei/notionapi"
)

// Property names the preset configuration database is expected to carry.
const (
	configNameProperty   = "Name"
	configPromptProperty = "Prompt"
	configModelProperty  = "Model"
)

// ListPresetConfigs reads the rows of the preset configuration database.
// Rows with neither a name nor a prompt are skipped.
func (s *NotionStore) ListPresetConfigs(ctx context.Context, databaseID string) ([]store.PresetConfig, error) {
	resp, err := s.client.Database.Query(ctx, notionapi.DatabaseID(databaseID), &notionapi.DatabaseQueryRequest{
		PageSize: 100,
	})
	if err != nil {
		return nil, wrapErr("query_config", databaseID, err)
	}

	configs := make([]store.PresetConfig, 0, len(resp.Results))
	for _, page := range resp.Results {
		var cfg store.PresetConfig
		for name, prop := range page.Properties {
			switch name {
			case configNameProperty:
				cfg.Name = plainPropertyValue(prop)
			case configPromptProperty:
				cfg.Prompt = plainPropertyValue(prop)
			case configModelProperty:
				cfg.Model = plainPropertyValue(prop)
			}
		}
		// Users sometimes rename the title column, so fall back to it by type.
		if cfg.Name == "" {
			for _, prop := range page.Properties {
				if tp, ok := prop.(*notionapi.TitleProperty); ok {
					cfg.Name = richTextPlain(tp.Title)
					break
				}
			}
		}
		if cfg.Name == "" && cfg.Prompt == "" {
			continue
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}
