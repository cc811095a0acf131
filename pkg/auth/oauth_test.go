package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const installedSecrets = `{"installed":{"client_id":"id.apps.googleusercontent.com","client_secret":"secret",
"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token",
"redirect_uris":["%s"]}}`

func secretsWithRedirect(redirect string) []byte {
	return []byte(fmt.Sprintf(installedSecrets, redirect))
}

func TestIsServiceAccount(t *testing.T) {
	assert.True(t, IsServiceAccount([]byte(`{"type":"service_account","client_email":"svc@p.iam.gserviceaccount.com"}`)))
	assert.False(t, IsServiceAccount(secretsWithRedirect("http://localhost")))
	assert.False(t, IsServiceAccount([]byte("not json")))
}

func TestGetConfigRedirects(t *testing.T) {
	cases := map[string]string{
		"http://localhost":                     "http://localhost:6789",
		"http://localhost:8080/cb":             "http://localhost:6789/cb",
		"http://127.0.0.1:6789/oauth2callback": "http://127.0.0.1:6789/oauth2callback",
		"urn:ietf:wg:oauth:2.0:oob":            "http://localhost:6789/oauth2callback",
		"https://example.com/callback":         "https://example.com/callback",
	}
	for in, want := range cases {
		cfg, err := GetConfig(secretsWithRedirect(in), []string{"scope"})
		require.NoError(t, err, in)
		assert.Equal(t, want, cfg.RedirectURL, in)
	}
	_, err := GetConfig([]byte(`{}`), nil)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", TokenFile)
	tok := &oauth2.Token{AccessToken: "a", RefreshToken: "r", Expiry: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, saveToken(path, tok))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := tokenFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a", got.AccessToken)
	assert.Equal(t, "r", got.RefreshToken)
	assert.True(t, tok.Expiry.Equal(got.Expiry))
}

func TestCredentialsLookup(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	_, err := Credentials{File: "missing.json"}.file()
	assert.Error(t, err)

	xdg, err := GetXdgHome()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(xdg, 0700))
	fallback := filepath.Join(xdg, ClientSecretsFile)
	require.NoError(t, os.WriteFile(fallback, secretsWithRedirect("http://localhost"), 0600))

	got, err := Credentials{File: "missing.json"}.file()
	require.NoError(t, err)
	assert.Equal(t, fallback, got)

	key := filepath.Join(home, "service-account.json")
	require.NoError(t, os.WriteFile(key, []byte(`{"type":"service_account","client_email":"svc@p.iam.gserviceaccount.com"}`), 0600))
	got, err = Credentials{File: key}.file()
	require.NoError(t, err)
	assert.Equal(t, key, got)
	assert.Equal(t, "svc@p.iam.gserviceaccount.com", ServiceAccountEmail(Credentials{File: key}))

	tokenPath, err := Credentials{}.TokenPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, TokenFile), tokenPath)
}
