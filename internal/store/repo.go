package store

import (
	"context"
	"errors"

	"github.com/lyricss1/WeatherBot/internal/domain"
)

// ErrNotFound is returned when no profile row exists for a chat.
var ErrNotFound = errors.New("profile not found")

// Repo defines storage operations for user profiles.
type Repo interface {
	GetProfile(ctx context.Context, chatID int64) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, p *domain.Profile) error
	DeleteProfile(ctx context.Context, chatID int64) error
	Close() error
}
