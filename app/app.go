package app

import (
	"database/sql"

	"github.com/go-chi/oauth"
	"github.com/mbolis/quick-form/config"
)

// App bundles what every handler needs.
type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config
}
