package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rulekit/rulekit/internal/domain"
)

const historyFile = ".rulekit/history/health.json"

// FileHistory implements domain.HistoryStore using JSON file storage
// under the scanned root.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

func (h *FileHistory) Append(root string, entry domain.HealthEntry) error {
	entries, err := h.Load(root)
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	fp := filepath.Join(root, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

func (h *FileHistory) Load(root string) ([]domain.HealthEntry, error) {
	fp := filepath.Join(root, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.HealthEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
