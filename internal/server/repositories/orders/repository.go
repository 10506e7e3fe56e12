package orders

import (
	"context"

	"github.com/tableorderhq/tableorder/internal/server/models"
)

type Repository interface {
	NextNumber(ctx context.Context, year int) (string, error)
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, storeID string) ([]models.Order, error)
	MarkPaid(ctx context.Context, id, method string) error
	Cancel(ctx context.Context, id string) (bool, error)
	CreatePayment(ctx context.Context, p *models.Payment) error
}
