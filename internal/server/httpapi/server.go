package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/tableorderhq/tableorder/internal/logging"
	"github.com/tableorderhq/tableorder/internal/server/config"
	"github.com/tableorderhq/tableorder/internal/server/services"
)

// Server wires the services to the HTTP surface and owns the listener
// lifecycle.
type Server struct {
	config   *config.Config
	logger   logging.Logger
	users    *services.UserService
	profiles *services.ProfileService
	stores   *services.StoreService
	menus    *services.MenuService
	orders   *services.OrderService
	health   *services.HealthService
	media    *services.MediaService

	httpServer *http.Server
}

func NewServer(cfg *config.Config, logger logging.Logger,
	users *services.UserService, profiles *services.ProfileService,
	stores *services.StoreService, menus *services.MenuService,
	orders *services.OrderService, health *services.HealthService,
	media *services.MediaService) *Server {

	s := &Server{
		config:   cfg,
		logger:   logger,
		users:    users,
		profiles: profiles,
		stores:   stores,
		menus:    menus,
		orders:   orders,
		health:   health,
		media:    media,
	}
	s.httpServer = &http.Server{Addr: cfg.EndpointAddrHTTP, Handler: s.Handler()}
	return s
}

// Handler builds the route table wrapped in the route guard.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/refresh", s.handleRefresh)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/profile", s.handleGetProfile)
	mux.HandleFunc("POST /api/auth/profile", s.handleEnsureProfile)
	mux.HandleFunc("POST /api/account/delete", s.handleDeleteAccount)

	mux.HandleFunc("GET /api/health/database", s.handleHealthDatabase)
	mux.HandleFunc("GET /api/health/database-simple", s.handleHealthDatabaseSimple)

	mux.HandleFunc("GET /api/store", s.handleGetStore)
	mux.HandleFunc("PUT /api/store", s.handleUpdateStore)
	mux.HandleFunc("GET /api/store/spaces", s.handleListSpaces)
	mux.HandleFunc("POST /api/store/spaces", s.handleCreateSpace)
	mux.HandleFunc("PUT /api/store/spaces/{id}", s.handleUpdateSpace)
	mux.HandleFunc("DELETE /api/store/spaces/{id}", s.handleDeleteSpace)
	mux.HandleFunc("GET /api/store/tables", s.handleListTables)
	mux.HandleFunc("POST /api/store/tables", s.handleCreateTable)
	mux.HandleFunc("PUT /api/store/tables/{id}", s.handleUpdateTable)
	mux.HandleFunc("DELETE /api/store/tables/{id}", s.handleDeleteTable)

	mux.HandleFunc("GET /api/menu/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/menu/categories", s.handleCreateCategory)
	mux.HandleFunc("PUT /api/menu/categories/{id}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/menu/categories/{id}", s.handleDeleteCategory)
	mux.HandleFunc("GET /api/menu/items", s.handleListMenus)
	mux.HandleFunc("POST /api/menu/items", s.handleCreateMenu)
	mux.HandleFunc("PUT /api/menu/items/{id}", s.handleUpdateMenu)
	mux.HandleFunc("DELETE /api/menu/items/{id}", s.handleDeleteMenu)
	mux.HandleFunc("GET /api/menu/options", s.handleListOptionGroups)
	mux.HandleFunc("POST /api/menu/options", s.handleCreateOptionGroup)
	mux.HandleFunc("PUT /api/menu/options/{id}", s.handleUpdateOptionGroup)
	mux.HandleFunc("DELETE /api/menu/options/{id}", s.handleDeleteOptionGroup)
	mux.HandleFunc("GET /api/menu/promotions", s.handleListPromotions)
	mux.HandleFunc("POST /api/menu/promotions", s.handleCreatePromotion)
	mux.HandleFunc("PUT /api/menu/promotions/{id}", s.handleUpdatePromotion)
	mux.HandleFunc("DELETE /api/menu/promotions/{id}", s.handleDeletePromotion)

	mux.HandleFunc("GET /api/pos/tables/{id}/draft", s.handleGetDraft)
	mux.HandleFunc("POST /api/pos/tables/{id}/draft/items", s.handleAddDraftItem)
	mux.HandleFunc("PATCH /api/pos/tables/{id}/draft/items/{menu}", s.handleSetDraftQuantity)
	mux.HandleFunc("DELETE /api/pos/tables/{id}/draft/items/{menu}", s.handleRemoveDraftItem)
	mux.HandleFunc("POST /api/pos/tables/{id}/draft/clear", s.handleClearDraft)
	mux.HandleFunc("POST /api/pos/tables/{id}/payment/method", s.handleSelectMethod)
	mux.HandleFunc("POST /api/pos/tables/{id}/payment/amount", s.handleEnterAmount)
	mux.HandleFunc("POST /api/pos/tables/{id}/payment/cancel", s.handleCancelPayment)
	mux.HandleFunc("POST /api/pos/tables/{id}/payment/submit", s.handleSubmitPayment)

	mux.HandleFunc("GET /api/orders", s.handleListOrders)
	mux.HandleFunc("POST /api/orders/{id}/cancel", s.handleCancelOrder)

	mux.HandleFunc("POST /api/media/upload-url", s.handleUploadURL)
	mux.HandleFunc("GET /api/media/url", s.handleMediaURL)

	return s.routeGuard(mux)
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.httpServer.ListenAndServe() }()
	s.logger.Info(ctx, "http server listening", "addr", s.config.EndpointAddrHTTP)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
