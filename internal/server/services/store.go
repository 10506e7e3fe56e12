package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tableorderhq/tableorder/internal/common"
	"github.com/tableorderhq/tableorder/internal/server/models"
	"github.com/tableorderhq/tableorder/internal/server/repositories/repomanager"
)

// StoreService manages the restaurant profile, its spaces and its tables.
type StoreService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStoreService(db *sql.DB, m repomanager.RepositoryManager) *StoreService {
	return &StoreService{db: db, repomanager: m}
}

// GetStore returns the owner's store, creating an empty one on first
// access so the settings screen always has a row to edit.
func (s *StoreService) GetStore(ctx context.Context, ownerID string) (*models.Store, error) {
	repo := s.repomanager.Stores(s.db)
	store, err := repo.GetByOwner(ctx, ownerID)
	if err == nil {
		return store, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error loading store: %v", err)
	}
	return repo.Create(ctx, &models.Store{ID: uuid.NewString(), OwnerID: ownerID})
}

// UpdateStore saves the store profile fields.
func (s *StoreService) UpdateStore(ctx context.Context, ownerID string, name, address, phone, businessHours string) (*models.Store, error) {
	store, err := s.GetStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	store.Name = name
	store.Address = address
	store.Phone = phone
	store.BusinessHours = businessHours
	if err := s.repomanager.Stores(s.db).Update(ctx, store); err != nil {
		return nil, fmt.Errorf("error updating store: %v", err)
	}
	return store, nil
}

func (s *StoreService) ListSpaces(ctx context.Context, ownerID string) ([]models.Space, error) {
	store, err := s.GetStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Stores(s.db).ListSpaces(ctx, store.ID)
}

func (s *StoreService) CreateSpace(ctx context.Context, ownerID, name string, position int) (*models.Space, error) {
	if name == "" {
		return nil, common.ErrorValidation
	}
	store, err := s.GetStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Stores(s.db).CreateSpace(ctx, &models.Space{
		ID:       uuid.NewString(),
		StoreID:  store.ID,
		Name:     name,
		Position: position,
	})
}

func (s *StoreService) UpdateSpace(ctx context.Context, space *models.Space) error {
	return s.repomanager.Stores(s.db).UpdateSpace(ctx, space)
}

// DeleteSpace removes the space; its tables go with it (FK cascade).
func (s *StoreService) DeleteSpace(ctx context.Context, id string) error {
	return s.repomanager.Stores(s.db).DeleteSpace(ctx, id)
}

func (s *StoreService) ListTables(ctx context.Context, ownerID string) ([]models.Table, error) {
	store, err := s.GetStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Stores(s.db).ListTables(ctx, store.ID)
}

// CreateTable places a table in a space. Each table receives a fresh QR
// token that the QR-ordering entry point resolves back to the table.
func (s *StoreService) CreateTable(ctx context.Context, table *models.Table) (*models.Table, error) {
	if table.SpaceID == "" || table.Label == "" {
		return nil, common.ErrorValidation
	}
	table.ID = uuid.NewString()
	table.QRToken = uuid.NewString()
	table.Active = true
	return s.repomanager.Stores(s.db).CreateTable(ctx, table)
}

// UpdateTable saves the label, active flag and layout geometry. The QR
// token is never rewritten here; printed codes stay valid.
func (s *StoreService) UpdateTable(ctx context.Context, table *models.Table) error {
	return s.repomanager.Stores(s.db).UpdateTable(ctx, table)
}

func (s *StoreService) DeleteTable(ctx context.Context, id string) error {
	return s.repomanager.Stores(s.db).DeleteTable(ctx, id)
}
