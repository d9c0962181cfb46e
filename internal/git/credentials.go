package git

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// credentialKind enumerates the authentication mechanisms a push endpoint
// can accept. Kinds combine as a bitmask.
type credentialKind uint8

const (
	// kindUsername marks an endpoint that needs a username carried in
	// the remote URL; it is a requirement, not a fallback method.
	kindUsername credentialKind = 1 << iota
	kindSSHKey
	kindUserPass
	kindDefault
)

func (k credentialKind) has(flag credentialKind) bool { return k&flag != 0 }

// credentialNegotiator answers authentication challenges within a single
// push call. Every method is attempted at most once per push, in the fixed
// order ssh key, credential helper, default; the transport may re-challenge
// after a rejected credential and the one-shot flags guarantee the chain
// terminates instead of retrying a rejected method forever. A fresh
// negotiator is constructed for every push.
type credentialNegotiator struct {
	keyPath string

	triedSSHKey  bool
	triedHelper  bool
	triedDefault bool

	// indirections so unit tests can negotiate without a system
	// credential helper or a running ssh agent
	helper func(rawURL, username string) (transport.AuthMethod, error)
	agent  func(username string) (transport.AuthMethod, error)
}

func newCredentialNegotiator(keyPath string) *credentialNegotiator {
	return &credentialNegotiator{
		keyPath: keyPath,
		helper:  credentialHelperAuth,
		agent:   sshAgentAuth,
	}
}

// challenge answers one authentication challenge. The username-required
// check runs first on every challenge and never consumes a fallback slot.
// A method whose credential cannot be built returns its error with the
// method's flag already spent, so the next challenge moves on.
func (n *credentialNegotiator) challenge(rawURL, username string, allowed credentialKind) (transport.AuthMethod, error) {
	if allowed.has(kindUsername) && username == "" {
		return nil, fmt.Errorf("%w: remote %s", ErrMissingUsername, rawURL)
	}

	if allowed.has(kindSSHKey) && !n.triedSSHKey {
		n.triedSSHKey = true
		auth, err := gitssh.NewPublicKeysFromFile(username, n.keyPath, "")
		if err != nil {
			return nil, fmt.Errorf("loading ssh key %s: %w", n.keyPath, err)
		}
		return auth, nil
	}

	if allowed.has(kindUserPass) && !n.triedHelper {
		n.triedHelper = true
		return n.helper(rawURL, username)
	}

	if allowed.has(kindDefault) && !n.triedDefault {
		n.triedDefault = true
		if strings.HasPrefix(rawURL, "ssh://") {
			return n.agent(username)
		}
		// local and file endpoints authenticate anonymously
		return nil, nil
	}

	return nil, ErrAllAuthMethodsExhausted
}

// credentialHelperAuth asks the system's configured git credential helper
// for a username/password pair, the same exchange `git push` performs over
// http remotes.
func credentialHelperAuth(rawURL, username string) (transport.AuthMethod, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing remote url: %w", err)
	}

	var in bytes.Buffer
	fmt.Fprintf(&in, "protocol=%s\n", u.Scheme)
	fmt.Fprintf(&in, "host=%s\n", u.Host)
	if username != "" {
		fmt.Fprintf(&in, "username=%s\n", username)
	}
	in.WriteByte('\n')

	cmd := exec.Command("git", "credential", "fill")
	cmd.Stdin = &in
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("credential helper: %w", err)
	}

	basic := &http.BasicAuth{Username: username}
	for _, line := range strings.Split(string(out), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "username":
			basic.Username = value
		case "password":
			basic.Password = value
		}
	}
	if basic.Password == "" {
		return nil, errors.New("credential helper returned no password")
	}
	return basic, nil
}

func sshAgentAuth(username string) (transport.AuthMethod, error) {
	return gitssh.NewSSHAgentAuth(username)
}
