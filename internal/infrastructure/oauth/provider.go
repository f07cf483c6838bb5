package oauth

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// exchange redeems an authorization code bound to its PKCE verifier and
// returns the resulting access token.
func exchange(ctx context.Context, config *oauth2.Config, code, verifier string) (string, error) {
	token, err := config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	return token.AccessToken, nil
}

// fetchJSON performs an authenticated GET against a provider profile
// endpoint. Any non-2xx status or transport failure is an error; timeouts
// arrive through ctx and surface the same way.
func fetchJSON(ctx context.Context, url, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("profile fetch returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
