package oauth

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

const microsoftProfileURL = "https://graph.microsoft.com/v1.0/me"

// MicrosoftProvider implements domain.OAuthProvider for Microsoft
type MicrosoftProvider struct {
	config     *oauth2.Config
	profileURL string
}

// NewMicrosoftProvider creates a Microsoft OAuth provider adapter against the
// common (multi-tenant) Azure AD endpoint.
func NewMicrosoftProvider(clientID, clientSecret, redirectURL string) *MicrosoftProvider {
	return &MicrosoftProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     microsoft.AzureADEndpoint("common"),
			Scopes:       []string{"User.Read", "email", "profile", "openid"},
		},
		profileURL: microsoftProfileURL,
	}
}

// Name implements domain.OAuthProvider
func (p *MicrosoftProvider) Name() string { return "microsoft" }

// Configured implements domain.OAuthProvider
func (p *MicrosoftProvider) Configured() bool {
	return p.config.ClientID != "" && p.config.ClientSecret != ""
}

// AuthCodeURL implements domain.OAuthProvider
func (p *MicrosoftProvider) AuthCodeURL(state, verifier string) string {
	return p.config.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

// Exchange implements domain.OAuthProvider
func (p *MicrosoftProvider) Exchange(ctx context.Context, code, verifier string) (string, error) {
	return exchange(ctx, p.config, code, verifier)
}

// FetchProfile implements domain.OAuthProvider. Graph reports mail only for
// mailbox-backed accounts; userPrincipalName is the fallback. The profile
// email may come back empty, which the callback rejects.
func (p *MicrosoftProvider) FetchProfile(ctx context.Context, accessToken string) (*domain.OAuthProfile, error) {
	body, err := fetchJSON(ctx, p.profileURL, accessToken)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Mail              string `json:"mail"`
		UserPrincipalName string `json:"userPrincipalName"`
		DisplayName       string `json:"displayName"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode microsoft profile: %w", err)
	}

	email := payload.Mail
	if email == "" {
		email = payload.UserPrincipalName
	}

	return &domain.OAuthProfile{
		Email:         email,
		Name:          payload.DisplayName,
		EmailVerified: true,
	}, nil
}

var _ domain.OAuthProvider = (*MicrosoftProvider)(nil)
