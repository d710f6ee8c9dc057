package database

import (
	"context"
	"fmt"

	"github.com/benvon/diary-bot/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EntryRepository handles diary entry database operations
type EntryRepository struct {
	db *DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create appends one diary entry. Entries are immutable once written; the
// tags column is a Postgres text[].
func (r *EntryRepository) Create(ctx context.Context, entry *models.DiaryEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	query := `
		INSERT INTO diary_messages (id, telegram_id, username, ts, text, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Username,
		entry.Timestamp,
		entry.Text,
		pq.Array(normalizeTags(entry.Tags)),
	)

	if err != nil {
		return fmt.Errorf("failed to create diary entry: %w", err)
	}

	return nil
}

// normalizeTags maps a nil tag slice to an empty one so an entry saved with
// no tags stores an empty array rather than NULL.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
