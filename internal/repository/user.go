package repository

import (
	"context"

	"twitter-clone/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SearchByUsername(ctx context.Context, query string, limit int) ([]domain.User, error)
	UpdateAvatarURL(ctx context.Context, id int64, avatarURL string) error
	ExistsWithID(ctx context.Context, id int64) (bool, error)
}
