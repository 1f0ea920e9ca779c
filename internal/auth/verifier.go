package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

const verifyTimeout = 5 * time.Second

// Identity is the authenticated shopper extracted from a verified ID
// token issued by the external identity provider.
type Identity struct {
	UID   string
	Email string
	Admin bool
}

// TokenVerifier abstracts the identity provider so handlers and tests do
// not depend on the Firebase SDK.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

// FirebaseVerifier verifies bearer tokens against Firebase via the Admin
// SDK. Token issuance and refresh stay entirely with the provider; this
// service only ever checks tokens it is handed.
type FirebaseVerifier struct {
	client  *firebaseauth.Client
	timeout time.Duration
}

func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (*FirebaseVerifier, error) {
	if projectID == "" {
		return nil, errors.New("firebase project id required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}

	return &FirebaseVerifier{client: client, timeout: verifyTimeout}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	return identityFromToken(token), nil
}

func identityFromToken(token *firebaseauth.Token) *Identity {
	ident := &Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		ident.Email = email
	}
	if role, ok := token.Claims["role"].(string); ok && strings.EqualFold(role, "admin") {
		ident.Admin = true
	}
	if admin, ok := token.Claims["admin"].(bool); ok && admin {
		ident.Admin = true
	}
	return ident
}
