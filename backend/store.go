package backend

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"analysis-web/models"
)

// Store persists analyses with gorm.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, record *models.AnalysisRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// Search lists analyses newest first. A non-blank topic keeps only records
// with that topic or keyword, compared case-insensitively.
func (s *Store) Search(ctx context.Context, topic string) ([]models.AnalysisRecord, error) {
	var records []models.AnalysisRecord
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return records, nil
	}

	filtered := make([]models.AnalysisRecord, 0, len(records))
	for _, r := range records {
		if containsFold(r.Topics, topic) || containsFold(r.Keywords, topic) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.ToLower(v) == target {
			return true
		}
	}
	return false
}
