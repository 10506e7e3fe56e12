package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/tableorderhq/tableorder/internal/common"
	"github.com/tableorderhq/tableorder/internal/server/auth"
	"github.com/tableorderhq/tableorder/internal/server/config"
	"github.com/tableorderhq/tableorder/internal/server/models"
	"github.com/tableorderhq/tableorder/internal/server/repositories/profiles"
	"github.com/tableorderhq/tableorder/internal/server/repositories/repomanager"
)

func newUserService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	return h
}

func TestRegister_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newUserService(t, db, &fakeRepoManager{p: &fakeProfilesRepo{}})

	if _, err := s.Register(context.Background(), "", "pw", "n", models.RoleOwner); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("empty email: want ErrorValidation, got %v", err)
	}
	if _, err := s.Register(context.Background(), "a@b.c", "", "n", models.RoleOwner); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("empty password: want ErrorValidation, got %v", err)
	}
	if _, err := s.Register(context.Background(), "a@b.c", "pw", "n", "ADMIN"); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("bad role: want ErrorValidation, got %v", err)
	}
}

func TestRegister_SuccessAndDuplicate(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeProfilesRepo{}
	s := newUserService(t, db, &fakeRepoManager{p: repo})

	p, err := s.Register(context.Background(), "alice@example.com", "pw", "Alice", models.RoleOwner)
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if p.ID == "" || p.PasswordHash == "" || p.PasswordHash == "pw" {
		t.Fatalf("expected minted id and hashed password, got %+v", p)
	}

	repoDup := &fakeProfilesRepo{createErr: profiles.ErrDuplicate}
	sDup := newUserService(t, db, &fakeRepoManager{p: repoDup})
	if _, err := sDup.Register(context.Background(), "alice@example.com", "pw", "Alice", models.RoleOwner); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("duplicate: want ErrorValidation, got %v", err)
	}
}

func TestLogin_Flows(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	// not found → unauthorized
	rmNF := &fakeRepoManager{p: &fakeProfilesRepo{byEmailErr: common.ErrorNotFound}, r: &fakeRefreshRepo{}}
	if _, _, err := newUserService(t, db, rmNF).Login(context.Background(), "ghost@x", "pw"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("notfound → unauthorized, got %v", err)
	}

	// internal error
	rmIE := &fakeRepoManager{p: &fakeProfilesRepo{byEmailErr: errBoom{}}, r: &fakeRefreshRepo{}}
	if _, _, err := newUserService(t, db, rmIE).Login(context.Background(), "u@x", "pw"); !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("internal → ErrorInternal, got %v", err)
	}

	// wrong password → unauthorized
	hash := mustHash(t, "right")
	rmWP := &fakeRepoManager{
		p: &fakeProfilesRepo{byEmail: &models.Profile{ID: "u1", Email: "u@x", PasswordHash: hash}},
		r: &fakeRefreshRepo{},
	}
	if _, _, err := newUserService(t, db, rmWP).Login(context.Background(), "u@x", "wrong"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("wrong password → unauthorized, got %v", err)
	}

	// success stamps last login and mints both tokens
	repoOK := &fakeProfilesRepo{byEmail: &models.Profile{ID: "u1", Email: "u@x", PasswordHash: hash}}
	rmOK := &fakeRepoManager{p: repoOK, r: &fakeRefreshRepo{}}
	profile, pair, err := newUserService(t, db, rmOK).Login(context.Background(), "u@x", "right")
	if err != nil || pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("Login success: pair=%+v err=%v", pair, err)
	}
	if profile.ID != "u1" || repoOK.lastLoginID != "u1" {
		t.Fatalf("expected last login stamped for u1, got %q", repoOK.lastLoginID)
	}
}

func TestRefreshToken_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		p: &fakeProfilesRepo{byID: &models.Profile{ID: "u1", Email: "u@x"}},
		r: &fakeRefreshRepo{findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)}},
	}
	pair, err := newUserService(t, db, rm).RefreshToken(context.Background(), "refresh-xyz")
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty tokens: %+v", pair)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRefreshToken_Expired(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		p: &fakeProfilesRepo{byID: &models.Profile{ID: "u1"}},
		r: &fakeRefreshRepo{findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(-1 * time.Minute)}},
	}
	if _, err := newUserService(t, db, rm).RefreshToken(context.Background(), "r"); !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("want ErrRefreshTokenExpired, got %v", err)
	}
}

func TestRefreshToken_DeleteErr(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		p: &fakeProfilesRepo{byID: &models.Profile{ID: "u1"}},
		r: &fakeRefreshRepo{
			findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)},
			delErr:  errBoom{},
		},
	}
	_, err := newUserService(t, db, rm).RefreshToken(context.Background(), "r")
	if err == nil || !regexp.MustCompile(`error deleting refresh token: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped delete error, got %v", err)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRefreshRepo{delErr: common.ErrorNotFound}}
	s := newUserService(t, db, rm)

	if err := s.Logout(context.Background(), "gone"); err != nil {
		t.Fatalf("missing token should not fail logout: %v", err)
	}
	if err := s.Logout(context.Background(), ""); err != nil {
		t.Fatalf("empty token should not fail logout: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash := mustHash(t, "old")
	repo := &fakeProfilesRepo{byID: &models.Profile{ID: "u1", PasswordHash: hash}}
	s := newUserService(t, db, &fakeRepoManager{p: repo})

	if err := s.ChangePassword(context.Background(), "u1", "wrong", "new"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("wrong current password: want unauthorized, got %v", err)
	}
	if err := s.ChangePassword(context.Background(), "u1", "old", ""); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("empty new password: want validation, got %v", err)
	}
	if err := s.ChangePassword(context.Background(), "u1", "old", "new"); err != nil {
		t.Fatalf("ChangePassword error: %v", err)
	}
	if repo.passwordSet == "" || repo.passwordSet == "new" {
		t.Fatalf("expected new hash stored, got %q", repo.passwordSet)
	}
}

func TestDeleteAccount_RemovesTokensAndProfile(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	refresh := &fakeRefreshRepo{}
	rm := &fakeRepoManager{p: &fakeProfilesRepo{}, r: refresh}
	if err := newUserService(t, db, rm).DeleteAccount(context.Background(), "u1"); err != nil {
		t.Fatalf("DeleteAccount error: %v", err)
	}
	if refresh.deletedForUser != "u1" {
		t.Fatalf("expected refresh tokens purged for u1, got %q", refresh.deletedForUser)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
