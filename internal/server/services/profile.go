package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tableorderhq/tableorder/internal/common"
	"github.com/tableorderhq/tableorder/internal/server/models"
	"github.com/tableorderhq/tableorder/internal/server/repositories/profiles"
	"github.com/tableorderhq/tableorder/internal/server/repositories/repomanager"
)

// ProfileService bridges an authenticated session to the application-level
// user row.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

// EnsureProfile makes sure a profile row exists for the session identity and
// returns it. An existing row is returned untouched, so replaying the call
// neither duplicates nor mutates anything. When two requests race to create
// the same row, the unique constraint picks a winner and the loser reads the
// winner's row back.
func (s *ProfileService) EnsureProfile(ctx context.Context, userID, email, name string) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)

	existing, err := repo.GetByID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error loading profile: %v", err)
	}

	if name == "" {
		name = displayNameFromEmail(email)
	}
	created, err := repo.Create(ctx, &models.Profile{
		ID:    userID,
		Email: email,
		Name:  name,
		Role:  models.RoleManager,
	})
	if err == nil {
		return created, nil
	}
	if errors.Is(err, profiles.ErrDuplicate) {
		return repo.GetByID(ctx, userID)
	}
	return nil, fmt.Errorf("error creating profile: %v", err)
}

// GetProfile loads the profile and stamps last_login_at, so the back office
// can show account activity.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)
	profile, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := repo.UpdateLastLogin(ctx, userID); err != nil {
		return nil, fmt.Errorf("error updating last login: %v", err)
	}
	return profile, nil
}

// UpdateProfile changes the display name and role.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID, name, role string) error {
	if role != models.RoleOwner && role != models.RoleManager {
		return common.ErrorValidation
	}
	return s.repomanager.Profiles(s.db).UpdateProfile(ctx, userID, name, role)
}

// UpdateAvatarKey stores the avatar's object storage key after the client
// finished its presigned upload.
func (s *ProfileService) UpdateAvatarKey(ctx context.Context, userID, key string) error {
	return s.repomanager.Profiles(s.db).UpdateAvatarKey(ctx, userID, key)
}

func displayNameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
