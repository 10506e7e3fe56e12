package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/tableorderhq/tableorder/internal/dbx"
	"github.com/tableorderhq/tableorder/internal/logging"
	"github.com/tableorderhq/tableorder/internal/server/models"
	healthrepo "github.com/tableorderhq/tableorder/internal/server/repositories/health"
	menusrepo "github.com/tableorderhq/tableorder/internal/server/repositories/menus"
	ordersrepo "github.com/tableorderhq/tableorder/internal/server/repositories/orders"
	profilesrepo "github.com/tableorderhq/tableorder/internal/server/repositories/profiles"
	refreshtokensrepo "github.com/tableorderhq/tableorder/internal/server/repositories/refreshtokens"
	storesrepo "github.com/tableorderhq/tableorder/internal/server/repositories/stores"
)

// --- shared test doubles ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return p.err
}
func (p *fakePublisher) Close() {}

func (p *fakePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

type fakeProfilesRepo struct {
	createOut *models.Profile
	createErr error

	byID    *models.Profile
	byIDErr error

	byEmail    *models.Profile
	byEmailErr error

	lastLoginErr error
	deleteErr    error
	updateErr    error

	created     []*models.Profile
	lastLoginID string
	passwordSet string
}

func (f *fakeProfilesRepo) Create(_ context.Context, p *models.Profile) (*models.Profile, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, p)
	if f.createOut != nil {
		return f.createOut, nil
	}
	return p, nil
}
func (f *fakeProfilesRepo) GetByID(context.Context, string) (*models.Profile, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}
func (f *fakeProfilesRepo) GetByEmail(context.Context, string) (*models.Profile, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmail, nil
}
func (f *fakeProfilesRepo) UpdateLastLogin(_ context.Context, id string) error {
	f.lastLoginID = id
	return f.lastLoginErr
}
func (f *fakeProfilesRepo) UpdateProfile(context.Context, string, string, string) error {
	return f.updateErr
}
func (f *fakeProfilesRepo) UpdateAvatarKey(context.Context, string, string) error {
	return f.updateErr
}
func (f *fakeProfilesRepo) UpdatePasswordHash(_ context.Context, _ string, hash string) error {
	f.passwordSet = hash
	return f.updateErr
}
func (f *fakeProfilesRepo) Delete(context.Context, string) error { return f.deleteErr }

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	createErr error

	deletedForUser string
}

func (f *fakeRefreshRepo) Create(context.Context, string, string, time.Duration) error {
	return f.createErr
}
func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeRefreshRepo) Delete(context.Context, string) error { return f.delErr }
func (f *fakeRefreshRepo) DeleteForUser(_ context.Context, userID string) error {
	f.deletedForUser = userID
	return nil
}

type fakeStoresRepo struct {
	store    *models.Store
	storeErr error

	table    *models.Table
	tableErr error

	tables []models.Table
	spaces []models.Space
}

func (f *fakeStoresRepo) GetByOwner(context.Context, string) (*models.Store, error) {
	if f.storeErr != nil {
		return nil, f.storeErr
	}
	return f.store, nil
}
func (f *fakeStoresRepo) Create(_ context.Context, s *models.Store) (*models.Store, error) {
	f.store = s
	return s, nil
}
func (f *fakeStoresRepo) Update(context.Context, *models.Store) error { return nil }
func (f *fakeStoresRepo) ListSpaces(context.Context, string) ([]models.Space, error) {
	return f.spaces, nil
}
func (f *fakeStoresRepo) CreateSpace(_ context.Context, s *models.Space) (*models.Space, error) {
	f.spaces = append(f.spaces, *s)
	return s, nil
}
func (f *fakeStoresRepo) UpdateSpace(context.Context, *models.Space) error { return nil }
func (f *fakeStoresRepo) DeleteSpace(context.Context, string) error        { return nil }
func (f *fakeStoresRepo) ListTables(context.Context, string) ([]models.Table, error) {
	return f.tables, nil
}
func (f *fakeStoresRepo) GetTable(context.Context, string) (*models.Table, error) {
	if f.tableErr != nil {
		return nil, f.tableErr
	}
	return f.table, nil
}
func (f *fakeStoresRepo) CreateTable(_ context.Context, tb *models.Table) (*models.Table, error) {
	f.tables = append(f.tables, *tb)
	return tb, nil
}
func (f *fakeStoresRepo) UpdateTable(context.Context, *models.Table) error { return nil }
func (f *fakeStoresRepo) DeleteTable(context.Context, string) error        { return nil }

type fakeMenusRepo struct {
	menu    *models.Menu
	menuErr error
}

func (f *fakeMenusRepo) ListCategories(context.Context, string) ([]models.Category, error) {
	return nil, nil
}
func (f *fakeMenusRepo) CreateCategory(_ context.Context, c *models.Category) (*models.Category, error) {
	return c, nil
}
func (f *fakeMenusRepo) UpdateCategory(context.Context, *models.Category) error { return nil }
func (f *fakeMenusRepo) DeleteCategory(context.Context, string) error           { return nil }
func (f *fakeMenusRepo) ListMenus(context.Context, string) ([]models.Menu, error) {
	return nil, nil
}
func (f *fakeMenusRepo) GetMenu(context.Context, string) (*models.Menu, error) {
	if f.menuErr != nil {
		return nil, f.menuErr
	}
	return f.menu, nil
}
func (f *fakeMenusRepo) CreateMenu(_ context.Context, m *models.Menu) (*models.Menu, error) {
	return m, nil
}
func (f *fakeMenusRepo) UpdateMenu(context.Context, *models.Menu) error { return nil }
func (f *fakeMenusRepo) DeleteMenu(context.Context, string) error       { return nil }
func (f *fakeMenusRepo) ListOptionGroups(context.Context, string) ([]models.OptionGroup, error) {
	return nil, nil
}
func (f *fakeMenusRepo) CreateOptionGroup(_ context.Context, g *models.OptionGroup) (*models.OptionGroup, error) {
	return g, nil
}
func (f *fakeMenusRepo) UpdateOptionGroup(context.Context, *models.OptionGroup) error { return nil }
func (f *fakeMenusRepo) DeleteOptionGroup(context.Context, string) error              { return nil }
func (f *fakeMenusRepo) ListPromotions(context.Context, string) ([]models.Promotion, error) {
	return nil, nil
}
func (f *fakeMenusRepo) CreatePromotion(_ context.Context, p *models.Promotion) (*models.Promotion, error) {
	return p, nil
}
func (f *fakeMenusRepo) UpdatePromotion(context.Context, *models.Promotion) error { return nil }
func (f *fakeMenusRepo) DeletePromotion(context.Context, string) error            { return nil }

type fakeOrdersRepo struct {
	nextNumber    string
	nextNumberErr error

	createErr  error
	createdOut *models.Order

	listOut []models.Order
	listErr error

	markPaidErr error

	cancelChanged bool
	cancelErr     error

	payments []*models.Payment
}

func (f *fakeOrdersRepo) NextNumber(context.Context, int) (string, error) {
	if f.nextNumberErr != nil {
		return "", f.nextNumberErr
	}
	return f.nextNumber, nil
}
func (f *fakeOrdersRepo) Create(_ context.Context, o *models.Order) (*models.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdOut = o
	return o, nil
}
func (f *fakeOrdersRepo) GetByID(context.Context, string) (*models.Order, error) {
	return f.createdOut, nil
}
func (f *fakeOrdersRepo) List(context.Context, string) ([]models.Order, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}
func (f *fakeOrdersRepo) MarkPaid(context.Context, string, string) error { return f.markPaidErr }
func (f *fakeOrdersRepo) Cancel(context.Context, string) (bool, error) {
	if f.cancelErr != nil {
		return false, f.cancelErr
	}
	return f.cancelChanged, nil
}
func (f *fakeOrdersRepo) CreatePayment(_ context.Context, p *models.Payment) error {
	f.payments = append(f.payments, p)
	return nil
}

type fakeRepoManager struct {
	p *fakeProfilesRepo
	r *fakeRefreshRepo
	s *fakeStoresRepo
	m *fakeMenusRepo
	o *fakeOrdersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profilesrepo.Repository    { return m.p }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository {
	return m.r
}
func (m *fakeRepoManager) Stores(dbx.DBTX) storesrepo.Repository { return m.s }
func (m *fakeRepoManager) Menus(dbx.DBTX) menusrepo.Repository   { return m.m }
func (m *fakeRepoManager) Orders(dbx.DBTX) ordersrepo.Repository { return m.o }
func (m *fakeRepoManager) Health(db dbx.DBTX) *healthrepo.PostgresRepository {
	return healthrepo.NewPostgresRepository(db)
}
