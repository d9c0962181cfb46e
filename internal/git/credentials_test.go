package git

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/stretchr/testify/require"
	cryptossh "golang.org/x/crypto/ssh"
)

// testAuth is a stand-in transport credential for negotiator tests.
type testAuth struct{ name string }

func (a *testAuth) Name() string   { return a.name }
func (a *testAuth) String() string { return a.name }

// writeTestSSHKey writes a throwaway ed25519 private key and returns its path.
func writeTestSSHKey(t *testing.T) string {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	block, err := cryptossh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0600))
	return path
}

func TestChallengeExhaustsMethodsInOrder(t *testing.T) {
	neg := newCredentialNegotiator(writeTestSSHKey(t))
	neg.helper = func(rawURL, username string) (transport.AuthMethod, error) {
		return &http.BasicAuth{Username: username, Password: "secret"}, nil
	}
	neg.agent = func(username string) (transport.AuthMethod, error) {
		return &testAuth{name: "agent"}, nil
	}

	allowed := kindSSHKey | kindUserPass | kindDefault
	url := "ssh://git@example.com/ideas.git"

	auth, err := neg.challenge(url, "git", allowed)
	require.NoError(t, err)
	require.IsType(t, &gitssh.PublicKeys{}, auth)

	auth, err = neg.challenge(url, "git", allowed)
	require.NoError(t, err)
	require.IsType(t, &http.BasicAuth{}, auth)

	auth, err = neg.challenge(url, "git", allowed)
	require.NoError(t, err)
	require.Equal(t, "agent", auth.Name())

	// every method already spent
	_, err = neg.challenge(url, "git", allowed)
	require.ErrorIs(t, err, ErrAllAuthMethodsExhausted)
}

func TestChallengeRequiresUsername(t *testing.T) {
	neg := newCredentialNegotiator(writeTestSSHKey(t))

	allowed := kindUsername | kindSSHKey | kindDefault
	_, err := neg.challenge("ssh://example.com/ideas.git", "", allowed)
	require.ErrorIs(t, err, ErrMissingUsername)

	// the username check never consumes a fallback slot
	require.False(t, neg.triedSSHKey)
	require.False(t, neg.triedHelper)
	require.False(t, neg.triedDefault)

	// with a username supplied the chain proceeds normally
	auth, err := neg.challenge("ssh://git@example.com/ideas.git", "git", allowed)
	require.NoError(t, err)
	require.IsType(t, &gitssh.PublicKeys{}, auth)
}

func TestChallengeEachFlagConsultedOnce(t *testing.T) {
	helperCalls := 0
	neg := newCredentialNegotiator(writeTestSSHKey(t))
	neg.helper = func(rawURL, username string) (transport.AuthMethod, error) {
		helperCalls++
		return &http.BasicAuth{Username: username, Password: "secret"}, nil
	}

	allowed := kindUserPass
	_, err := neg.challenge("https://example.com/ideas.git", "user", allowed)
	require.NoError(t, err)

	_, err = neg.challenge("https://example.com/ideas.git", "user", allowed)
	require.ErrorIs(t, err, ErrAllAuthMethodsExhausted)
	require.Equal(t, 1, helperCalls)
}

func TestChallengeUnreadableKeySpendsSlot(t *testing.T) {
	neg := newCredentialNegotiator(filepath.Join(t.TempDir(), "missing-key"))
	neg.helper = func(rawURL, username string) (transport.AuthMethod, error) {
		return nil, errors.New("no helper configured")
	}

	allowed := kindSSHKey | kindDefault
	url := "https://example.com/ideas.git"

	_, err := neg.challenge(url, "git", allowed)
	require.Error(t, err)
	require.True(t, neg.triedSSHKey)

	// the next challenge falls through to the default method; a non-ssh
	// url authenticates anonymously
	auth, err := neg.challenge(url, "git", allowed)
	require.NoError(t, err)
	require.Nil(t, auth)
}

func TestAllowedCredentialsByEndpoint(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want credentialKind
	}{
		{"scp-like ssh", "git@github.com:user/ideas.git", kindUsername | kindSSHKey | kindDefault},
		{"explicit ssh", "ssh://git@github.com/user/ideas.git", kindUsername | kindSSHKey | kindDefault},
		{"https", "https://github.com/user/ideas.git", kindUserPass | kindDefault},
		{"local path", "/tmp/ideas.git", kindDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := transport.NewEndpoint(tt.url)
			require.NoError(t, err)
			require.Equal(t, tt.want, allowedCredentials(ep))
		})
	}
}
