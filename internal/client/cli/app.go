// Package cli is the terminal front end: a REPL whose command set depends
// on the authentication state, and plain-text renderings of the login,
// register, dashboard and admin views.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/avolkovs/shopdeck/internal/client/api"
	"github.com/avolkovs/shopdeck/internal/client/config"
	"github.com/avolkovs/shopdeck/internal/client/pages"
	"github.com/avolkovs/shopdeck/internal/client/routes"
	"github.com/avolkovs/shopdeck/internal/client/session"
	"github.com/avolkovs/shopdeck/internal/client/storage"
	"github.com/avolkovs/shopdeck/internal/logging"
)

type App struct {
	cfg *config.Config
	log logging.Logger

	db     *sql.DB
	store  *session.Store
	router *routes.Router

	login     *pages.Login
	register  *pages.Register
	dashboard *pages.Dashboard
	admin     *pages.Admin

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, cfg.StateDBPath)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(storage.NewSQLiteRepository(db), log)
	store.Hydrate(ctx)

	apiClient := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout, store.Token)

	a := &App{
		cfg:    cfg,
		log:    log,
		db:     db,
		store:  store,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	a.router = routes.NewRouter(store, a.renderPath)
	a.login = pages.NewLogin(apiClient, store, a.router)
	a.register = pages.NewRegister(apiClient, a.router)
	a.dashboard = pages.NewDashboard(apiClient, store, log)
	a.admin = pages.NewAdmin(apiClient, log)

	return a, nil
}

// Close releases the upload widget, the router subscription and the state DB.
func (a *App) Close() {
	a.dashboard.Close()
	a.router.Close()
	_ = a.db.Close()
}

// Run shows the initial view and hands control to the REPL until EOF or an
// exit command.
func (a *App) Run(ctx context.Context) {
	printlnFn("Shopdeck (type 'help' for commands)")
	a.router.Navigate(routes.PathRoot)
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

func (a *App) status() string {
	who := "anonymous"
	if u, ok := a.store.CurrentUser(); ok {
		who = u.Username
	}
	return who + " " + a.router.Current()
}
