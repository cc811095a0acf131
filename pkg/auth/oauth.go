package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// ClientSecretsFile is the installed-app OAuth client downloaded from the
	// Google Cloud console, looked up in the config home when no credentials
	// file is configured.
	ClientSecretsFile = "credentials.json"

	// TokenFile caches the user's access and refresh token next to it.
	TokenFile = "token.json"

	// LocalhostAuthPort receives the OAuth redirect.
	LocalhostAuthPort = "6789"

	xdgAppName = "tasksheet"

	serviceAccountType = "service_account"
)

// Credentials says where to find the Google credentials.
type Credentials struct {
	// File is either a service-account key or an OAuth client secrets file.
	File string
	// TokenDir holds token.json for the OAuth flow. Defaults to GetXdgHome().
	TokenDir string
}

func (c Credentials) file() (string, error) {
	if c.File != "" {
		if _, err := os.Stat(c.File); err == nil {
			return c.File, nil
		}
	}
	home, err := GetXdgHome()
	if err != nil {
		return "", err
	}
	fallback := filepath.Join(home, ClientSecretsFile)
	if _, err := os.Stat(fallback); err != nil {
		if c.File != "" {
			return "", fmt.Errorf("credentials file %s not found (also tried %s)", c.File, fallback)
		}
		return "", fmt.Errorf("credentials file %s not found", fallback)
	}
	return fallback, nil
}

// TokenPath returns where the OAuth token is cached.
func (c Credentials) TokenPath() (string, error) {
	dir := c.TokenDir
	if dir == "" {
		home, err := GetXdgHome()
		if err != nil {
			return "", err
		}
		dir = home
	}
	return filepath.Join(dir, TokenFile), nil
}

// IsServiceAccount reports whether a credentials JSON is a service-account key.
func IsServiceAccount(b []byte) bool {
	var probe struct {
		Type string `json:"type"`
	}
	return json.Unmarshal(b, &probe) == nil && probe.Type == serviceAccountType
}

// ServiceAccountEmail returns client_email of a service-account key, the
// address a spreadsheet must be shared with.
func ServiceAccountEmail(c Credentials) string {
	path, err := c.file()
	if err != nil {
		return ""
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var key struct {
		Email string `json:"client_email"`
	}
	if json.Unmarshal(b, &key) != nil {
		return ""
	}
	return key.Email
}

// GetConfig creates an oauth2.Config from client secrets and forces the
// redirect onto LocalhostAuthPort.
func GetConfig(secrets []byte, scopes []string) (*oauth2.Config, error) {
	config, err := google.ConfigFromJSON(secrets, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}

	parsedURL, parseErr := url.Parse(config.RedirectURL)
	switch {
	case parseErr != nil:
		log.Warnf("could not parse RedirectURL '%s': %v, using it as is", config.RedirectURL, parseErr)
	case config.RedirectURL == "urn:ietf:wg:oauth:2.0:oob":
		config.RedirectURL = fmt.Sprintf("http://localhost:%s/oauth2callback", LocalhostAuthPort)
		log.Infof("overriding out-of-band RedirectURL to %s", config.RedirectURL)
	case parsedURL.Hostname() == "localhost" || parsedURL.Hostname() == "127.0.0.1":
		if parsedURL.Port() != LocalhostAuthPort {
			if parsedURL.Port() != "" {
				log.Warnf("credentials redirect port %s differs from %s, forcing %s", parsedURL.Port(), LocalhostAuthPort, LocalhostAuthPort)
			}
			parsedURL.Host = fmt.Sprintf("%s:%s", parsedURL.Hostname(), LocalhostAuthPort)
			config.RedirectURL = parsedURL.String()
		}
	default:
		log.Warnf("RedirectURL %s is not a localhost callback, make sure it matches your OAuth client", config.RedirectURL)
	}
	return config, nil
}

// GetClient returns an authenticated *http.Client. Service-account keys are
// used directly; OAuth client secrets go through the cached token, running
// the browser flow when there is none.
func GetClient(ctx context.Context, creds Credentials, scopes []string) (*http.Client, error) {
	path, err := creds.file()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file %s: %w", path, err)
	}

	if IsServiceAccount(b) {
		jwt, err := google.JWTConfigFromJSON(b, scopes...)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account %s: %w", path, err)
		}
		return jwt.Client(ctx), nil
	}

	config, err := GetConfig(b, scopes)
	if err != nil {
		return nil, err
	}
	tokenFile, err := creds.TokenPath()
	if err != nil {
		return nil, err
	}
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		log.Infof("no token found at %s, starting web authorization flow", tokenFile)
		tok, err = getTokenFromWeb(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("failed to get token from web: %w", err)
		}
		if err := saveToken(tokenFile, tok); err != nil {
			log.Warnf("could not cache token: %v", err)
		}
	}

	// Persist refreshed tokens so the next run does not hit the flow again.
	src := config.TokenSource(ctx, tok)
	if current, err := src.Token(); err == nil && (current.AccessToken != tok.AccessToken || current.RefreshToken != tok.RefreshToken) {
		log.Debugf("token refreshed, saving to %s", tokenFile)
		if err := saveToken(tokenFile, current); err != nil {
			log.Warnf("could not cache refreshed token: %v", err)
		}
	}
	return oauth2.NewClient(ctx, src), nil
}

// Reauthorize discards the cached token and runs the browser flow again,
// returning where the new token was saved. Service-account keys need no
// authorization and return an empty path.
func Reauthorize(ctx context.Context, creds Credentials, scopes []string) (string, error) {
	path, err := creds.file()
	if err != nil {
		return "", err
	}
	if b, err := os.ReadFile(path); err == nil && IsServiceAccount(b) {
		return "", nil
	}
	tokenFile, err := creds.TokenPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tokenFile); err == nil {
		log.Infof("removing existing token file at '%s'", tokenFile)
		if err := os.Remove(tokenFile); err != nil {
			return "", fmt.Errorf("could not delete token file '%s', error %w. Please delete it manually", tokenFile, err)
		}
	} else if !os.IsNotExist(err) {
		log.Warnf("could not check token file '%s', error %v", tokenFile, err)
	}
	if _, err := GetClient(ctx, creds, scopes); err != nil {
		return "", err
	}
	return tokenFile, nil
}

// getTokenFromWeb runs the authorization code flow, capturing the redirect on
// a local listener.
func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", LocalhostAuthPort))
	if err != nil {
		return nil, fmt.Errorf("failed to start listener on port %s: %w", LocalhostAuthPort, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Authorization code not found", http.StatusBadRequest)
				errCh <- fmt.Errorf("authorization code not found in redirect URL")
				return
			}
			fmt.Fprintf(w, "Authentication successful! You can close this window.")
			codeCh <- code
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	go func() {
		log.Infof("listening on %s for the OAuth2 redirect", config.RedirectURL)
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()
	defer server.Shutdown(context.Background())

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Printf("Please open the following URL in your browser to authorize tasksheet:\n%s\n", authURL)

	select {
	case code := <-codeCh:
		exCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := config.Exchange(exCtx, code)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token from Google: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Minute):
		return nil, fmt.Errorf("authorization timed out. Please try again")
	}
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", file, err)
	}
	return tok, nil
}

func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("could not create token directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token to %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// GetXdgHome returns ~/.config/tasksheet.
func GetXdgHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}
