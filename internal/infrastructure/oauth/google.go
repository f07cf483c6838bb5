package oauth

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

const googleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// GoogleProvider implements domain.OAuthProvider for Google
type GoogleProvider struct {
	config     *oauth2.Config
	userinfoURL string
}

// NewGoogleProvider creates a Google OAuth provider adapter
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userinfoURL: googleUserinfoURL,
	}
}

// Name implements domain.OAuthProvider
func (p *GoogleProvider) Name() string { return "google" }

// Configured implements domain.OAuthProvider
func (p *GoogleProvider) Configured() bool {
	return p.config.ClientID != "" && p.config.ClientSecret != ""
}

// AuthCodeURL implements domain.OAuthProvider
func (p *GoogleProvider) AuthCodeURL(state, verifier string) string {
	return p.config.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

// Exchange implements domain.OAuthProvider
func (p *GoogleProvider) Exchange(ctx context.Context, code, verifier string) (string, error) {
	return exchange(ctx, p.config, code, verifier)
}

// FetchProfile implements domain.OAuthProvider. Google's OIDC userinfo
// endpoint reports email_verified, which the callback enforces.
func (p *GoogleProvider) FetchProfile(ctx context.Context, accessToken string) (*domain.OAuthProfile, error) {
	body, err := fetchJSON(ctx, p.userinfoURL, accessToken)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode google profile: %w", err)
	}

	return &domain.OAuthProfile{
		Email:         payload.Email,
		Name:          payload.Name,
		EmailVerified: payload.EmailVerified,
	}, nil
}

var _ domain.OAuthProvider = (*GoogleProvider)(nil)
