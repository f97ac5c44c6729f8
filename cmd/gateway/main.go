// The gateway binary fronts the back office: every request passes through
// the access gate, which routes each authenticated caller to the area its
// role maps to.
package main

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	cloudspanner "cloud.google.com/go/spanner"
	"github.com/crealaunch/gate"
	"github.com/crealaunch/gate/oidc"
	"github.com/crealaunch/gate/sessions"
	"github.com/crealaunch/gate/userstore"
	"github.com/go-playground/errors/v5"
	"github.com/gorilla/securecookie"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(logger); err != nil {
		logger.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	secureCookie, err := newSecureCookie(cfg)
	if err != nil {
		return err
	}

	store, closeStore, err := newRoleStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sessionClient := sessions.NewClient(secureCookie,
		sessions.WithLifetime(cfg.SessionLifetime),
		sessions.WithRefreshWindow(cfg.RefreshWindow),
		sessions.WithCookieDomain(cfg.CookieDomain),
	)

	var oidcOptions []oidc.Option
	if cfg.OIDC.InsecureCookie {
		oidcOptions = append(oidcOptions, oidc.WithInsecureCookie())
	}
	authenticator, err := oidc.New(ctx, secureCookie, cfg.OIDC.IssuerURL, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL, oidcOptions...)
	if err != nil {
		return err
	}

	g := gate.New(sessionClient, store)
	a := gate.NewAuth(authenticator, sessionClient)

	upstream, err := newUpstream(cfg.UpstreamURL)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(g, a, store, upstream),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gateway listening", "addr", cfg.Addr, "backend", cfg.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http.Server.ListenAndServe()")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http.Server.Shutdown()")
	}

	return nil
}

func newSecureCookie(cfg appConfig) (*securecookie.SecureCookie, error) {
	hashKey, err := base64.StdEncoding.DecodeString(cfg.CookieHashKey)
	if err != nil {
		return nil, errors.Wrap(err, "base64.StdEncoding.DecodeString()")
	}

	var blockKey []byte
	if cfg.CookieBlockKey != "" {
		blockKey, err = base64.StdEncoding.DecodeString(cfg.CookieBlockKey)
		if err != nil {
			return nil, errors.Wrap(err, "base64.StdEncoding.DecodeString()")
		}
	}

	return securecookie.New(hashKey, blockKey), nil
}

// newUpstream builds the pass-through proxy for the back-office application.
// Without an upstream URL the gateway serves local area stubs instead.
func newUpstream(rawURL string) (http.Handler, error) {
	if rawURL == "" {
		return nil, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "url.Parse()")
	}

	return httputil.NewSingleHostReverseProxy(u), nil
}

// roleStore is the full user-record surface the gateway needs: role lookup
// for routing and role assignment for the admin area.
type roleStore interface {
	userstore.Store
	userstore.Writer
}

func newRoleStore(ctx context.Context, cfg appConfig) (roleStore, func(), error) {
	switch cfg.Backend {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "pgxpool.New()")
		}

		return userstore.NewPostgres(pool), pool.Close, nil
	case "spanner":
		client, err := cloudspanner.NewClient(ctx, cfg.Spanner.Database)
		if err != nil {
			return nil, nil, errors.Wrap(err, "spanner.NewClient()")
		}

		return userstore.NewSpanner(client), client.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		return userstore.NewRedis(client), func() { _ = client.Close() }, nil
	default:
		return nil, nil, errors.Newf("unknown backend %q", cfg.Backend)
	}
}
