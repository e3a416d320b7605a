package app

import (
	"github.com/go-chi/oauth"

	"github.com/formdesk/formdesk/config"
	"github.com/formdesk/formdesk/store"
)

type App struct {
	store.Store
	*oauth.BearerServer
	config.Config
}
