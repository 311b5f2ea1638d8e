// Package cli implements the interactive dispatch client: a small REPL over
// the lifecycle manager and the list/selection coordinator.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/oauth2"

	"github.com/paperdispatch/paperdispatch/internal/client/config"
	"github.com/paperdispatch/paperdispatch/internal/client/coordinator"
	"github.com/paperdispatch/paperdispatch/internal/client/repositories/files"
	"github.com/paperdispatch/paperdispatch/internal/client/repositories/organizations"
	"github.com/paperdispatch/paperdispatch/internal/client/repositories/recipients"
	"github.com/paperdispatch/paperdispatch/internal/client/repositories/requests"
	"github.com/paperdispatch/paperdispatch/internal/client/services"
	"github.com/paperdispatch/paperdispatch/internal/client/transport"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	transport   transport.Client
	lifecycle   *services.Lifecycle
	coordinator *coordinator.Coordinator
	reader      *bufio.Reader
	Mode        Mode
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	var tokens oauth2.TokenSource
	if c.TokenURL != "" {
		tokens = transport.ClientCredentialsTokenSource(ctx, c.TokenURL, c.ClientID, c.ClientSecret, nil)
	} else {
		token := c.Token
		if token == "" {
			var err error
			token, err = GetToken(os.Stdout)
			if err != nil {
				return nil, fmt.Errorf("error reading token: %w", err)
			}
		}
		tokens = transport.StaticTokenSource(token)
	}

	tc := transport.NewHTTPClient(c.EntryPointURL, tokens, c.RequestTimeout)

	requestRepo := requests.NewRESTRepository(tc)
	recipientRepo := recipients.NewRESTRepository(tc)
	fileRepo := files.NewRESTRepository(tc)
	orgRepo := organizations.NewRESTRepository(tc)

	lifecycle := services.NewLifecycle(requestRepo, recipientRepo, fileRepo, orgRepo, c.SenderOrganizationID)
	if c.Optimistic {
		lifecycle.SetOptimistic(true)
	}

	coord := coordinator.New(requestRepo, lifecycle)

	return &App{
		config:      c,
		transport:   tc,
		lifecycle:   lifecycle,
		coordinator: coord,
		reader:      reader,
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) getStatus() string {
	if a.Mode == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.Mode)
}

func (a *App) Run(ctx context.Context) {

	log.Println("Welcome to the dispatch CLI (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	if err := a.coordinator.RefreshList(ctx); err != nil {
		log.Printf("initial list load failed: %v", err)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.transport.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
