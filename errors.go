package betbook

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors raised by Book mutations before any remote call is made. When one
// of these is returned, neither local nor remote state has changed.
var (
	// ErrNotFound reports that the mutation target is not in the local collection.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidState reports a settlement attempt on a record that is not active.
	ErrInvalidState = errors.New("only an active record can be settled")
	// ErrInsufficientFunds reports that the bankroll cannot cover the stake
	// of a record being activated.
	ErrInsufficientFunds = errors.New("bankroll is below the stake")
)

// RemoteError is a transport or server failure surfaced by the Remote
// collaborator. Message carries the server's human-readable detail.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote error (status %d)", e.Status)
	}
	return fmt.Sprintf("remote error (status %d): %s", e.Status, e.Message)
}

// Unauthorized reports whether the failure means "no valid session".
func (e *RemoteError) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

// IsUnauthorized reports whether err is an authorization failure from the
// remote store. The sync controller absorbs these on reads by resetting the
// local collection instead of propagating them.
func IsUnauthorized(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Unauthorized()
}
