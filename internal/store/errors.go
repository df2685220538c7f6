package store

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotInitialized is returned by every store operation when the
// Firestore client could not be acquired. It is recoverable by fixing
// credentials and re-running initialization, never by blind retry.
var ErrNotInitialized = errors.New("trade store not initialized")

// ErrMissingCredential is returned by the secret-based credential
// provider when no service account key is configured.
var ErrMissingCredential = errors.New("gcp_service_account credential not configured")

// OpError wraps a failed store operation. Faults never cross the
// store boundary raw; callers inspect the kind and render a message.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("trade store %s failed: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// UserMessage classifies the underlying fault into a human-readable
// message suitable for inline display.
func (e *OpError) UserMessage() string {
	switch status.Code(e.Err) {
	case codes.PermissionDenied, codes.Unauthenticated:
		return "the database rejected the request: check service account permissions"
	case codes.Unavailable, codes.DeadlineExceeded:
		return "the database is unreachable: try again shortly"
	case codes.InvalidArgument, codes.FailedPrecondition:
		return "the database rejected the trade entry as malformed"
	default:
		return fmt.Sprintf("trade store %s failed: %v", e.Op, e.Err)
	}
}

func opError(op string, err error) error {
	return &OpError{Op: op, Err: err}
}
