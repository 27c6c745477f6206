package handlers

import (
	"spartanmarket/internal/auth"
	"spartanmarket/internal/config"
	"spartanmarket/internal/repos"
	"spartanmarket/internal/services"
	"spartanmarket/internal/storage"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	UserService *services.UserService

	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	ListingHandler *ListingHandler
	MessageHandler *MessageHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, tokens *auth.TokenService, blobs storage.BlobStore) *Deps {
	userRepo := repos.NewUserRepo(db)
	listingRepo := repos.NewListingRepo(db)
	messageRepo := repos.NewMessageRepo(db)

	userSvc := services.NewUserService(userRepo, tokens, blobs, cfg.EmailDomain)
	listingSvc := services.NewListingService(listingRepo, userRepo, blobs)
	messageSvc := services.NewMessageService(messageRepo, userRepo, listingRepo)

	return &Deps{
		UserService:    userSvc,
		AuthHandler:    &AuthHandler{Users: userSvc},
		UserHandler:    &UserHandler{Users: userSvc},
		ListingHandler: &ListingHandler{Listings: listingSvc},
		MessageHandler: &MessageHandler{Messages: messageSvc},
	}
}
