// Package oidc is the client half of the auth-backend collaboration: it
// drives the OIDC login flow that establishes the session the gate later
// reads from cookies.
package oidc

import (
	"context"
	"net/http"
	"strings"

	"github.com/cccteam/httpio"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-playground/errors/v5"
	"github.com/gofrs/uuid"
	"github.com/gorilla/securecookie"
	"golang.org/x/oauth2"
)

var _ Authenticator = &OIDC{}

// OIDC authenticates against the identity provider using the authorization
// code flow with PKCE.
type OIDC struct {
	provider
	config
	s      *securecookie.SecureCookie
	secure bool
}

// Option sets optional OIDC settings.
type Option func(*OIDC)

// WithInsecureCookie drops the Secure attribute from the state cookie so
// the login flow works over plain HTTP in local development.
func WithInsecureCookie() Option {
	return func(o *OIDC) {
		o.secure = false
	}
}

// New returns a new OIDC Authenticator.
func New(ctx context.Context, s *securecookie.SecureCookie, issuerURL, clientID, clientSecret, redirectURL string, options ...Option) (*OIDC, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, errors.Wrap(err, "oidc.NewProvider()")
	}

	o := &OIDC{
		provider: provider,
		config: &oAuth2{
			config: oauth2.Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				RedirectURL:  redirectURL,
				Endpoint:     provider.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			},
		},
		s:      s,
		secure: true,
	}
	for _, opt := range options {
		opt(o)
	}

	return o, nil
}

// Claims are the ID Token claims the back office cares about. Subject is
// the identity key the user store is queried with.
type Claims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// AuthCodeURL returns the URL to redirect to in order to initiate the OIDC
// authentication process.
func (o *OIDC) AuthCodeURL(w http.ResponseWriter, returnURL string) (string, error) {
	// PKCE protects against authorization code interception attacks
	pkceVerifier := oauth2.GenerateVerifier()

	// Random state to protect against CSRF attacks
	state, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "uuid.NewV4()")
	}

	cval := map[stKey]string{
		stState:        state.String(),
		stPkceVerifier: pkceVerifier,
		stReturnURL:    returnURL,
	}

	if err := o.writeOidcCookie(w, cval); err != nil {
		return "", errors.Wrap(err, "writeOidcCookie()")
	}

	return o.config.AuthCodeURL(state.String(), oauth2.S256ChallengeOption(pkceVerifier)), nil
}

// Verify performs the verification and processing of the OIDC callback
// request. It populates 'claims' with the ID Token's claims and returns the
// URL to redirect to following successful authentication.
func (o *OIDC) Verify(ctx context.Context, w http.ResponseWriter, r *http.Request, claims any) (returnURL string, err error) {
	cval, ok := o.readOidcCookie(r)
	if !ok {
		return "", httpio.NewForbiddenMessage("No OIDC cookie")
	}
	o.deleteOidcCookie(w)

	returnURL = cval[stReturnURL]
	if strings.TrimSpace(returnURL) == "" {
		returnURL = "/"
	}

	// Validate state parameter
	if r.URL.Query().Get("state") != cval[stState] {
		return "", httpio.NewForbiddenMessage("Invalid 'state' parameter value")
	}

	oauth2Token, err := o.config.Exchange(ctx, r.URL.Query().Get("code"), oauth2.VerifierOption(cval[stPkceVerifier]))
	if err != nil {
		return "", httpio.NewInternalServerErrorMessageWithError(err, "Failed to exchange token")
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return "", httpio.NewInternalServerErrorMessage("No id_token in token response")
	}

	verifier := o.provider.Verifier(&oidc.Config{ClientID: o.config.ClientID()})

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", httpio.NewInternalServerErrorMessageWithError(err, "Failed to verify ID token")
	}

	if err := idToken.Claims(&claims); err != nil {
		return "", httpio.NewInternalServerErrorMessageWithError(err, "Failed to parse ID token claims")
	}

	return returnURL, nil
}
