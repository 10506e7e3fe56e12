package orders

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/tableorderhq/tableorder/internal/common"
	"github.com/tableorderhq/tableorder/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestNextNumber_Format(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(42)
	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s*\+\s*1\s+FROM\s+orders`).
		WithArgs("O-2026-%").
		WillReturnRows(rows)

	number, err := repo.NextNumber(context.Background(), 2026)
	if err != nil {
		t.Fatalf("NextNumber error: %v", err)
	}
	if number != "O-2026-0042" {
		t.Fatalf("unexpected number: %q", number)
	}
}

func TestCreate_WithItemsAndOptions(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT\s+INTO\s+orders`).
		WithArgs("o1", "O-2026-0001", "s1", "t1", "Window 1", models.OrderStatusPending, int64(15000)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`INSERT\s+INTO\s+order_items`).
		WithArgs("i1", "o1", "m1", "Latte", int64(5000), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT\s+INTO\s+order_item_options`).
		WithArgs("op1", "i1", "c1", "extra shot", int64(500)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	order := &models.Order{
		ID: "o1", Number: "O-2026-0001", StoreID: "s1", TableID: "t1",
		TableName: "Window 1", Status: models.OrderStatusPending, Total: 15000,
		Items: []models.OrderItem{{
			ID: "i1", MenuID: "m1", Name: "Latte", UnitPrice: 5000, Quantity: 3,
			Options: []models.OrderItemOption{{ID: "op1", ChoiceID: "c1", Name: "extra shot", PriceDelta: 500}},
		}},
	}
	got, err := repo.Create(context.Background(), order)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.CreatedAt.IsZero() || got.Items[0].OrderID != "o1" || got.Items[0].Options[0].OrderItemID != "i1" {
		t.Fatalf("links not populated: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestMarkPaid_GuardZeroRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+orders\s+SET\s+status\s*=\s*'paid'`).
		WithArgs("o1", "card").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkPaid(context.Background(), "o1", "card")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("non-pending order: want ErrorNotFound, got %v", err)
	}
}

func TestCancel_TransitionAndRepeat(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+orders\s+SET\s+status\s*=\s*'cancelled'`).
		WithArgs("o1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE\s+orders\s+SET\s+status\s*=\s*'cancelled'`).
		WithArgs("o1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	changed, err := repo.Cancel(context.Background(), "o1")
	if err != nil || !changed {
		t.Fatalf("first cancel: changed=%v err=%v", changed, err)
	}

	changed, err = repo.Cancel(context.Background(), "o1")
	if err != nil || changed {
		t.Fatalf("repeat cancel must be a no-op: changed=%v err=%v", changed, err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*number`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "number", "store_id", "table_id", "table_name", "status", "total", "method", "created_at", "updated_at"}).
		AddRow("o2", "O-2026-0002", "s1", "t1", "Window 1", "paid", int64(8000), "cash", now, now).
		AddRow("o1", "O-2026-0001", "s1", "t2", "Patio 3", "cancelled", int64(15000), "", now.Add(-time.Hour), now)
	mock.ExpectQuery(`SELECT\s+id,\s*number`).
		WithArgs("s1").
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), "s1")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 2 || list[0].ID != "o2" || list[1].Status != "cancelled" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestCreatePayment(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+payments`).
		WithArgs("p1", "o1", "card", int64(15000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreatePayment(context.Background(), &models.Payment{ID: "p1", OrderID: "o1", Method: "card", Amount: 15000})
	if err != nil {
		t.Fatalf("CreatePayment error: %v", err)
	}
}
