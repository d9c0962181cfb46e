package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"go.uber.org/zap"
)

// remoteName is the only remote eureka pushes to. It must already be
// configured on the idea repository.
const remoteName = "origin"

// Push pushes refs/heads/<branchName> to the branch of the same name on
// origin. Authentication runs through the credential fallback chain: the
// negotiator is re-challenged after every rejected credential until a
// method succeeds or the chain is exhausted. There are no other retries.
func (g *Git) Push(branchName string) error {
	repo, err := g.handle()
	if err != nil {
		return err
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRemoteNotFound, remoteName, err)
	}

	rawURL := remote.Config().URLs[0]
	ep, err := transport.NewEndpoint(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPush, rawURL, err)
	}
	allowed := allowedCredentials(ep)

	neg := newCredentialNegotiator(g.sshKeyPath)
	refspec := gitconfig.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branchName, branchName))

	var lastErr error
	for {
		auth, err := neg.challenge(ep.String(), ep.User, allowed)
		switch {
		case errors.Is(err, ErrMissingUsername):
			return err
		case errors.Is(err, ErrAllAuthMethodsExhausted):
			if lastErr != nil {
				return fmt.Errorf("%w: last attempt: %w", ErrAllAuthMethodsExhausted, lastErr)
			}
			return err
		case err != nil:
			// could not build this credential; the flag is spent, the
			// next challenge moves on to the following method
			lastErr = err
			continue
		}

		err = remote.Push(&gogit.PushOptions{
			RemoteName: remoteName,
			RefSpecs:   []gitconfig.RefSpec{refspec},
			Auth:       auth,
		})
		switch {
		case err == nil, errors.Is(err, gogit.NoErrAlreadyUpToDate):
			g.logger.Debug("pushed branch",
				zap.String("branch", branchName),
				zap.String("remote", remoteName))
			return nil
		case isAuthRejection(err):
			lastErr = err
		default:
			return fmt.Errorf("%w: %s: %w", ErrPush, branchName, err)
		}
	}
}

// allowedCredentials maps an endpoint to the credential kinds its
// transport can accept, standing in for the methods the remote would
// advertise in a challenge.
func allowedCredentials(ep *transport.Endpoint) credentialKind {
	switch ep.Protocol {
	case "ssh":
		// ssh transports cannot prompt for a username, so the URL has
		// to carry one
		return kindUsername | kindSSHKey | kindDefault
	case "http", "https":
		return kindUserPass | kindDefault
	default:
		// local and file remotes need no credentials
		return kindDefault
	}
}

func isAuthRejection(err error) bool {
	return errors.Is(err, transport.ErrAuthenticationRequired) ||
		errors.Is(err, transport.ErrAuthorizationFailed)
}
