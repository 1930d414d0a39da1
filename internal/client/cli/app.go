package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/authstate"
	"github.com/evercare/planhub/internal/client/cache"
	"github.com/evercare/planhub/internal/client/config"
	"github.com/evercare/planhub/internal/client/localstate"
	"github.com/evercare/planhub/internal/client/queries"
	"github.com/evercare/planhub/internal/client/services"
	"github.com/evercare/planhub/internal/client/tokenstore"
	"github.com/evercare/planhub/internal/logging"
)

// App wires the CLI: local state, token store, API client, query cache and
// the auth service, plus the stdin reader the interactive commands share.
type App struct {
	config  *config.Config
	auth    *services.Auth
	state   *authstate.Store
	kv      localstate.KV
	queries *queries.Queries
	poller  *cache.Poller
	logger  logging.Logger
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := localstate.Open(ctx, c.StatePath)
	if err != nil {
		logger.Error(ctx, "opening local state", "path", c.StatePath, "error", err)
		return nil, err
	}

	kv := localstate.NewEncryptedKV(localstate.NewSQLiteStore(db), []byte(c.StateSecret))
	tokens := tokenstore.New(kv)
	state := authstate.New(kv, tokens)
	apiClient := api.New(c.APIBaseURL, tokens)

	store := cache.New(c.CacheTTL)
	poller := cache.NewPoller()
	q := queries.New(apiClient, store, poller)

	return &App{
		config:  c,
		auth:    services.NewAuth(apiClient, state, q, logger),
		state:   state,
		kv:      kv,
		queries: q,
		poller:  poller,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.poller.StopAll()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.state.IsAuthenticated(context.Background())
}
