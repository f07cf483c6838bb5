package mocks

import (
	"context"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// MockOAuthProvider implements domain.OAuthProvider interface for testing
type MockOAuthProvider struct {
	ProviderName   string
	IsConfigured   bool
	AuthCodeFunc   func(state, verifier string) string
	ExchangeFunc   func(ctx context.Context, code, verifier string) (string, error)
	ProfileFunc    func(ctx context.Context, accessToken string) (*domain.OAuthProfile, error)

	// ExchangeCalls counts Exchange invocations, letting tests assert that a
	// rejected callback never reached the token exchange.
	ExchangeCalls int
}

// NewMockOAuthProvider creates a configured MockOAuthProvider
func NewMockOAuthProvider(name string) *MockOAuthProvider {
	return &MockOAuthProvider{
		ProviderName: name,
		IsConfigured: true,
	}
}

// Name returns the provider name
func (m *MockOAuthProvider) Name() string { return m.ProviderName }

// Configured reports whether client credentials are present
func (m *MockOAuthProvider) Configured() bool { return m.IsConfigured }

// AuthCodeURL builds the authorization URL
func (m *MockOAuthProvider) AuthCodeURL(state, verifier string) string {
	if m.AuthCodeFunc != nil {
		return m.AuthCodeFunc(state, verifier)
	}
	// Default behavior: recognizable URL carrying the state
	return "https://provider.example/authorize?state=" + state
}

// Exchange redeems an authorization code
func (m *MockOAuthProvider) Exchange(ctx context.Context, code, verifier string) (string, error) {
	m.ExchangeCalls++
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code, verifier)
	}
	// Default behavior: success
	return "access_token", nil
}

// FetchProfile fetches the provider profile
func (m *MockOAuthProvider) FetchProfile(ctx context.Context, accessToken string) (*domain.OAuthProfile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, accessToken)
	}
	// Default behavior: verified profile
	return &domain.OAuthProfile{
		Email:         "user@example.com",
		Name:          "Example User",
		EmailVerified: true,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.OAuthProvider = (*MockOAuthProvider)(nil)
