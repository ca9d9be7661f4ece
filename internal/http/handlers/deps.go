package handlers

import (
	"storefront/internal/config"
	"storefront/internal/mail"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type Deps struct {
	Auth    *services.AuthService
	Catalog *services.CatalogService

	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	AdminHandler   *AdminHandler
	OrderHandler   *OrderHandler
	ContactHandler *ContactHandler
	OAuthHandler   *OAuthHandler
	PaymentHandler *PaymentHandler
}

// NewDeps builds every repo, service and handler once. store may be nil to
// run without persistence.
func NewDeps(cfg config.Config, store repos.SnapshotStore, sender mail.Sender) (*Deps, error) {
	prodRepo := repos.NewProductRepo()
	orderRepo := repos.NewOrderRepo()
	userRepo := repos.NewUserRepo()
	msgRepo := repos.NewMessageRepo()

	authSvc, err := services.NewAuthService(userRepo, services.AuthConfig{
		AdminEmail:        cfg.AdminEmail,
		AdminPassword:     cfg.AdminPassword,
		AdminPasswordHash: cfg.AdminPasswordHash,
		AdminSecret:       cfg.AdminSecret,
		AdminTokenTTL:     cfg.AdminTokenTTL,
		CustomerSecret:    cfg.CustomerSecret,
		BcryptCost:        cfg.BcryptCost,
	})
	if err != nil {
		return nil, err
	}
	catalogSvc := services.NewCatalogService(prodRepo, store, services.ParsePersistPolicy(cfg.PersistErrors))
	orderSvc := services.NewOrderService(prodRepo, orderRepo)
	contactSvc := services.NewContactService(sender, cfg.ContactRecipient, msgRepo)
	oauthSvc := services.NewOAuthService(authSvc, cfg.OAuthDevAutoLogin, config.OAuthClient)
	paySvc := services.NewPaymentService(orderSvc, services.StubProvider{}, cfg.Payoneer.Configured(), cfg.Payoneer.WebhookSecret)

	return &Deps{
		Auth:    authSvc,
		Catalog: catalogSvc,

		AuthHandler:    &AuthHandler{Auth: authSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc, Auth: authSvc},
		AdminHandler:   &AdminHandler{Catalog: catalogSvc},
		OrderHandler:   &OrderHandler{Orders: orderSvc},
		ContactHandler: &ContactHandler{Contact: contactSvc},
		OAuthHandler:   &OAuthHandler{OAuth: oauthSvc},
		PaymentHandler: &PaymentHandler{Payments: paySvc},
	}, nil
}
