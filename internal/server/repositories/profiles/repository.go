package profiles

import (
	"context"

	"github.com/tableorderhq/tableorder/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	UpdateLastLogin(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, id, name, role string) error
	UpdateAvatarKey(ctx context.Context, id, key string) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}
