package database

import (
	"context"

	"github.com/benvon/diary-bot/internal/models"
)

// EntryRepositoryInterface defines the interface for diary entry repository
// operations. This interface enables better testability by allowing mock
// implementations.
type EntryRepositoryInterface interface {
	Create(ctx context.Context, entry *models.DiaryEntry) error
}

// Ensure concrete types implement the interfaces
var _ EntryRepositoryInterface = (*EntryRepository)(nil)
