package api

import "errors"

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAuthError reports whether err means the stored token is missing,
// expired, or rejected.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsUnavailable reports whether err is a transport or server failure
// worth retrying later (the outbox re-queues these).
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable)
}
