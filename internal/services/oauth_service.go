package services

import (
	"fmt"
	"net/url"
)

type OAuthStart struct {
	Status  string `json:"status"`
	AuthURL string `json:"auth_url,omitempty"`
}

type OAuthResult struct {
	Status      string `json:"status,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
}

// OAuthService stands in for real OAuth providers: it only builds the
// authorize redirect and, in dev mode, logs a caller in by email.
type OAuthService struct {
	Auth         *AuthService
	DevAutoLogin bool
	// Client returns the configured client id and redirect url for a provider.
	Client func(provider string) (clientID, redirectURL string)
	// AuthBase is the authorize endpoint prefix; the provider name is appended.
	AuthBase string
}

func NewOAuthService(auth *AuthService, devAutoLogin bool, client func(string) (string, string)) *OAuthService {
	return &OAuthService{Auth: auth, DevAutoLogin: devAutoLogin, Client: client, AuthBase: "https://auth.example/"}
}

func (s *OAuthService) Start(provider string) OAuthStart {
	clientID, redirect := s.Client(provider)
	if clientID == "" || redirect == "" {
		return OAuthStart{Status: "disabled"}
	}
	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("redirect_uri", redirect)
	q.Set("response_type", "code")
	q.Set("scope", "basic")
	return OAuthStart{Status: "ok", AuthURL: s.AuthBase + url.PathEscape(provider) + "?" + q.Encode()}
}

func (s *OAuthService) Callback(provider, code, email string) OAuthResult {
	if !s.DevAutoLogin || (code == "" && email == "") {
		return OAuthResult{Status: "disabled"}
	}
	if email == "" {
		email = fmt.Sprintf("user+%s@example.com", provider)
	}
	return OAuthResult{AccessToken: s.Auth.SignCustomer(normalizeEmail(email))}
}
