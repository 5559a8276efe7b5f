package handlers

import (
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jmoiron/sqlx"

	"github.com/3DMakc/3d-makc-fishing-store/internal/config"
	"github.com/3DMakc/3d-makc-fishing-store/internal/notify"
	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
	"github.com/3DMakc/3d-makc-fishing-store/internal/services"
)

type Deps struct {
	Catalog      *CatalogHandler
	Cart         *CartHandler
	Checkout     *CheckoutHandler
	Auth         *AuthHandler
	Admin        *AdminHandler
	Availability *AvailabilityHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, store *session.Store) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	adminRepo := repos.NewAdminRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	orderSvc := services.NewOrderService(orderRepo, notify.NewTelegram(cfg.BotToken, cfg.BotChatID))
	authSvc := services.NewAuthService(adminRepo)
	importSvc := services.NewImportService(prodRepo, catRepo)
	availSvc := services.NewAvailabilityService(prodRepo)

	return &Deps{
		Catalog:      &CatalogHandler{Catalog: catalogSvc},
		Cart:         &CartHandler{Store: store, Prods: prodRepo},
		Checkout:     &CheckoutHandler{Store: store, Order: orderSvc},
		Auth:         &AuthHandler{Store: store, Auth: authSvc},
		Admin:        &AdminHandler{Store: store, Prods: prodRepo, Cats: catRepo, Orders: orderRepo, Importer: importSvc},
		Availability: &AvailabilityHandler{Avail: availSvc},
	}
}
