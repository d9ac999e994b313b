package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-dash-server/content"
	"github.com/jrsteele09/go-dash-server/content/githubstore"
	"github.com/jrsteele09/go-dash-server/editgate"
	"github.com/jrsteele09/go-dash-server/identity"
	"github.com/jrsteele09/go-dash-server/internal/config"
	"github.com/jrsteele09/go-dash-server/server"
	"github.com/jrsteele09/go-dash-server/sessions"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	provider, err := newIdentityProvider(c)
	if err != nil {
		return fmt.Errorf("identity provider: %w", err)
	}

	sessionRepo, err := newSessionRepo(c)
	if err != nil {
		return fmt.Errorf("session repo: %w", err)
	}

	syncClient := content.NewSyncClient(githubstore.New(c))

	handler, err := server.New(c, provider, sessionRepo, editgate.New(c), syncClient)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// newIdentityProvider uses OIDC discovery when an issuer URL is configured,
// otherwise the plain authorization-code endpoints (e.g. Discord).
func newIdentityProvider(c config.Config) (*identity.Provider, error) {
	if c.GetIssuerURL() != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return identity.NewOIDCProvider(ctx, c)
	}
	return identity.NewProvider(c), nil
}

// newSessionRepo keeps sessions in redis when REDIS_URL is set, otherwise in
// process memory. In-memory sessions do not survive a restart.
func newSessionRepo(c config.Config) (sessions.Repo, error) {
	if url := c.GetRedisURL(); url != "" {
		return sessions.NewRedisRepo(url)
	}
	return sessions.NewInMemoryRepo(), nil
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
