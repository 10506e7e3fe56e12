package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tableorderhq/tableorder/internal/common"
	"github.com/tableorderhq/tableorder/internal/dbx"
	"github.com/tableorderhq/tableorder/internal/draft"
	"github.com/tableorderhq/tableorder/internal/ledger"
	"github.com/tableorderhq/tableorder/internal/logging"
	"github.com/tableorderhq/tableorder/internal/payment"
	"github.com/tableorderhq/tableorder/internal/server/events"
	"github.com/tableorderhq/tableorder/internal/server/models"
	"github.com/tableorderhq/tableorder/internal/server/repositories/repomanager"
)

// OrderService runs the point of sale: per-table drafts, the payment flow,
// order submission and the order ledger.
type OrderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	stores      *StoreService
	publisher   events.Publisher
	logger      logging.Logger
	drafts      *draft.Registry

	mu    sync.Mutex
	flows map[string]*payment.Flow
}

func NewOrderService(db *sql.DB, m repomanager.RepositoryManager, stores *StoreService,
	publisher events.Publisher, logger logging.Logger) *OrderService {
	return &OrderService{
		db:          db,
		repomanager: m,
		stores:      stores,
		publisher:   publisher,
		logger:      logger,
		drafts:      draft.NewRegistry(),
		flows:       make(map[string]*payment.Flow),
	}
}

// Draft returns the table's current draft lines and total.
func (s *OrderService) Draft(tableID string) ([]draft.Line, int64) {
	return s.drafts.Snapshot(tableID)
}

// AddItem looks the menu item up and adds it to the table's draft. Sold-out
// items are rejected.
func (s *OrderService) AddItem(ctx context.Context, tableID, menuID string) error {
	menu, err := s.repomanager.Menus(s.db).GetMenu(ctx, menuID)
	if err != nil {
		return err
	}
	if menu.SoldOut {
		return common.ErrorValidation
	}
	s.drafts.Update(tableID, func(d *draft.Draft) {
		d.Add(menu.ID, menu.Name, menu.Price)
	})
	return nil
}

// SetQuantity changes a draft line's quantity (clamped to at least 1).
func (s *OrderService) SetQuantity(tableID, menuID string, quantity int) {
	s.drafts.Update(tableID, func(d *draft.Draft) {
		d.SetQuantity(menuID, quantity)
	})
}

// RemoveItem drops the draft line entirely.
func (s *OrderService) RemoveItem(tableID, menuID string) {
	s.drafts.Update(tableID, func(d *draft.Draft) {
		d.Remove(menuID)
	})
}

// ClearDraft discards the table's draft.
func (s *OrderService) ClearDraft(tableID string) {
	s.drafts.Update(tableID, func(d *draft.Draft) {
		d.Clear()
	})
}

// PaymentState reports the flow's stage, selected method, entered amount
// and whether submission is currently allowed.
func (s *OrderService) PaymentState(tableID string) (stage string, method string, amount string, canPay bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.flowLocked(tableID)
	return f.Stage().String(), string(f.Method()), f.Amount(), f.CanPay()
}

// SelectMethod opens the amount form for the chosen payment method.
func (s *OrderService) SelectMethod(tableID, method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flowLocked(tableID).SelectMethod(payment.Method(method))
}

// EnterAmount records the raw entered amount.
func (s *OrderService) EnterAmount(tableID, amount string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flowLocked(tableID).EnterAmount(amount)
}

// CancelPayment collapses the amount form; the method stays selected.
func (s *OrderService) CancelPayment(tableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flowLocked(tableID).Cancel()
}

func (s *OrderService) flowLocked(tableID string) *payment.Flow {
	f, ok := s.flows[tableID]
	if !ok {
		f = payment.NewFlow()
		s.flows[tableID] = f
	}
	return f
}

// SubmitPayment turns the table's draft into a persisted order with its
// payment, all in one transaction: order number, order row with items and
// options, payment row, paid status. On success the draft is cleared, the
// flow resets for the next customer, and order.created/order.paid events go
// out. Event publishing failures are logged, never surfaced.
func (s *OrderService) SubmitPayment(ctx context.Context, tableID string) (*models.Order, error) {
	lines, total := s.drafts.Snapshot(tableID)
	if len(lines) == 0 {
		return nil, common.ErrEmptyDraft
	}

	s.mu.Lock()
	f := s.flowLocked(tableID)
	if !f.CanPay() {
		s.mu.Unlock()
		return nil, common.ErrorValidation
	}
	method := string(f.Method())
	amountRaw := f.Amount()
	s.mu.Unlock()

	amount, err := strconv.ParseInt(amountRaw, 10, 64)
	if err != nil || amount <= 0 {
		return nil, common.ErrorValidation
	}
	if amount != total {
		// Operator-entered amount wins; mismatch is worth a trace, not a failure.
		s.logger.Warn(ctx, "payment amount differs from draft total",
			"table_id", tableID, "amount", amount, "total", total)
	}

	table, err := s.repomanager.Stores(s.db).GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ordersRepo := s.repomanager.Orders(tx)

		number, err := ordersRepo.NextNumber(ctx, time.Now().Year())
		if err != nil {
			return err
		}

		o := &models.Order{
			ID:        uuid.NewString(),
			Number:    number,
			StoreID:   table.StoreID,
			TableID:   table.ID,
			TableName: table.Label,
			Status:    models.OrderStatusPending,
			Total:     total,
		}
		for _, l := range lines {
			o.Items = append(o.Items, models.OrderItem{
				ID:        uuid.NewString(),
				OrderID:   o.ID,
				MenuID:    l.MenuID,
				Name:      l.Name,
				UnitPrice: l.UnitPrice,
				Quantity:  l.Quantity,
			})
		}
		order, err = ordersRepo.Create(ctx, o)
		if err != nil {
			return err
		}

		if err := ordersRepo.CreatePayment(ctx, &models.Payment{
			ID:      uuid.NewString(),
			OrderID: o.ID,
			Method:  method,
			Amount:  amount,
		}); err != nil {
			return err
		}
		return ordersRepo.MarkPaid(ctx, o.ID, method)
	})
	if err != nil {
		return nil, fmt.Errorf("error submitting order: %v", err)
	}
	order.Status = models.OrderStatusPaid
	order.Method = method

	s.drafts.Update(tableID, func(d *draft.Draft) { d.Clear() })
	s.mu.Lock()
	delete(s.flows, tableID)
	s.mu.Unlock()

	s.publish(ctx, events.OrderCreated, order)
	s.publish(ctx, events.OrderPaid, order)
	return order, nil
}

// Ledger loads the store's order history and applies the filter and
// pagination in memory.
func (s *OrderService) Ledger(ctx context.Context, ownerID string, f ledger.Filter, page int) (*ledger.Page, error) {
	store, err := s.stores.GetStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.repomanager.Orders(s.db).List(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	records := make([]ledger.Record, 0, len(orders))
	for _, o := range orders {
		records = append(records, ledger.Record{
			ID:        o.ID,
			Number:    o.Number,
			TableName: o.TableName,
			Status:    o.Status,
			Method:    o.Method,
			Total:     o.Total,
			OrderedAt: o.CreatedAt,
		})
	}

	p := ledger.Paginate(ledger.Apply(records, f), page)
	return &p, nil
}

// CancelOrder moves the order to cancelled. Repeat cancels are no-ops and
// publish nothing; the transition is one-way.
func (s *OrderService) CancelOrder(ctx context.Context, id string) error {
	changed, err := s.repomanager.Orders(s.db).Cancel(ctx, id)
	if err != nil {
		return err
	}
	if changed {
		s.publish(ctx, events.OrderCancelled, map[string]string{"order_id": id})
	}
	return nil
}

func (s *OrderService) publish(ctx context.Context, routingKey string, payload any) {
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		s.logger.Error(ctx, "event publish failed", "routing_key", routingKey, "error", err)
	}
}
