package FirebaseAuth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/AnmolGhill/Halo/ApiErrors"
	"github.com/AnmolGhill/Halo/Config"
)

// UserRecord is the reshaped view of an identity-provider account. It is
// fetched on demand and never stored locally.
type UserRecord struct {
	UID           string
	Email         string
	DisplayName   string
	EmailVerified bool
	PhoneNumber   string
	PhotoURL      string
}

type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Identity is the full contract against the identity provider. Handlers and
// middleware depend on this interface so tests can substitute doubles.
type Identity interface {
	Register(ctx context.Context, p RegisterParams) (*UserRecord, error)
	Login(ctx context.Context, idToken string) (*UserRecord, error)
	Verify(ctx context.Context, idToken string) (string, error)
	Profile(ctx context.Context, uid string) (*UserRecord, error)
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
	Delete(ctx context.Context, uid string) error
}

// Gateway implements Identity over the Firebase Admin SDK.
type Gateway struct {
	client  *auth.Client
	timeout time.Duration
}

// Setup initializes the Firebase app from service-account credentials carried
// in the environment (the deployment has no credentials file on disk).
func Setup(ctx context.Context, cfg *Config.Config) (*Gateway, error) {
	serviceAccount := map[string]string{
		"type":                        "service_account",
		"project_id":                  cfg.FirebaseProjectID,
		"private_key_id":              cfg.FirebasePrivateKeyID,
		"private_key":                 strings.ReplaceAll(cfg.FirebasePrivateKey, `\n`, "\n"),
		"client_email":                cfg.FirebaseClientEmail,
		"client_id":                   cfg.FirebaseClientID,
		"auth_uri":                    "https://accounts.google.com/o/oauth2/auth",
		"token_uri":                   "https://oauth2.googleapis.com/token",
		"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
	}
	credentials, err := json.Marshal(serviceAccount)
	if err != nil {
		return nil, fmt.Errorf("marshal service account: %w", err)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth client: %w", err)
	}

	return &Gateway{client: client, timeout: 10 * time.Second}, nil
}

func (g *Gateway) Register(ctx context.Context, p RegisterParams) (*UserRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := (&auth.UserToCreate{}).
		Email(p.Email).
		Password(p.Password).
		DisplayName(strings.TrimSpace(p.FirstName + " " + p.LastName))

	user, err := g.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, ApiErrors.Wrap(ApiErrors.Conflict, "Email already exists", err)
		}
		return nil, ApiErrors.Wrap(ApiErrors.Upstream, "Registration failed", err)
	}
	return reshape(user), nil
}

func (g *Gateway) Login(ctx context.Context, idToken string) (*UserRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// Expired, malformed and revoked tokens all collapse into the same
	// unauthorized answer; the caller never learns which.
	token, err := g.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ApiErrors.Wrap(ApiErrors.Unauthorized, "Invalid token", err)
	}

	user, err := g.client.GetUser(ctx, token.UID)
	if err != nil {
		return nil, ApiErrors.Wrap(ApiErrors.Upstream, "Failed to resolve user", err)
	}
	return reshape(user), nil
}

func (g *Gateway) Verify(ctx context.Context, idToken string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	token, err := g.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", ApiErrors.Wrap(ApiErrors.Unauthorized, "Invalid authentication token", err)
	}
	return token.UID, nil
}

func (g *Gateway) Profile(ctx context.Context, uid string) (*UserRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// The token already verified, so a lookup failure here is an upstream
	// inconsistency, not an auth problem. Surfaced, never retried.
	user, err := g.client.GetUser(ctx, uid)
	if err != nil {
		return nil, ApiErrors.Wrap(ApiErrors.Upstream, "Failed to get profile", err)
	}
	return reshape(user), nil
}

func (g *Gateway) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := (&auth.UserToUpdate{}).DisplayName(displayName)
	if _, err := g.client.UpdateUser(ctx, uid, params); err != nil {
		return ApiErrors.Wrap(ApiErrors.Upstream, "Failed to update profile", err)
	}
	return nil
}

func (g *Gateway) Delete(ctx context.Context, uid string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// Deleting an already-deleted account fails loudly here; there is no
	// silent-success path.
	if err := g.client.DeleteUser(ctx, uid); err != nil {
		return ApiErrors.Wrap(ApiErrors.Upstream, "Failed to delete account", err)
	}
	return nil
}

func reshape(user *auth.UserRecord) *UserRecord {
	return &UserRecord{
		UID:           user.UID,
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		EmailVerified: user.EmailVerified,
		PhoneNumber:   user.PhoneNumber,
		PhotoURL:      user.PhotoURL,
	}
}
