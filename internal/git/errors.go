package git

import "errors"

// Sentinel errors for the idea-persistence pipeline. Underlying go-git
// failures are wrapped behind these so callers match with errors.Is and
// never depend on a third-party error type.
var (
	// ErrRepoAccess indicates Open was pointed at a path that does not
	// contain a valid git repository.
	ErrRepoAccess = errors.New("cannot access repository")

	// ErrNotInitialized indicates an operation was invoked before a
	// successful Open.
	ErrNotInitialized = errors.New("repository not opened")

	// ErrReferenceLookup indicates HEAD (or the commit it points at)
	// could not be resolved. On a fresh repository this means the
	// initial commit is missing.
	ErrReferenceLookup = errors.New("cannot resolve reference")

	// ErrBranchCreate indicates branch creation or checkout failed for a
	// reason other than the branch already existing.
	ErrBranchCreate = errors.New("cannot create branch")

	// ErrIndex indicates a staging or tree/commit write failure.
	ErrIndex = errors.New("index operation failed")

	// ErrSignature indicates the repository has no usable commit
	// identity (user.name / user.email).
	ErrSignature = errors.New("commit signature unavailable")

	// ErrMissingUsername indicates the remote requires a username and
	// the remote URL carries none.
	ErrMissingUsername = errors.New("no username specified in remote URL")

	// ErrAllAuthMethodsExhausted indicates every applicable credential
	// method was attempted once and rejected.
	ErrAllAuthMethodsExhausted = errors.New("no authentication method succeeded")

	// ErrRemoteNotFound indicates the repository has no remote named
	// origin.
	ErrRemoteNotFound = errors.New("remote not found")

	// ErrPush indicates a transport failure that is not an
	// authentication rejection.
	ErrPush = errors.New("push failed")
)
