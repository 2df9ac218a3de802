package monday

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTitle indicates a create was attempted with a blank item
	// title. Detected locally, before any request is made.
	ErrEmptyTitle = errors.New("item title cannot be empty")

	// ErrMissingID indicates the board reported success but omitted the
	// identifier of the created item.
	ErrMissingID = errors.New("no item ID returned by board")
)

// RejectError is a rejection reported by the board as a single error
// message (the relay's top-level "error" field).
type RejectError struct {
	Message string
}

func (e *RejectError) Error() string {
	return "board rejected request: " + e.Message
}

// RejectBatchError is a rejection reported by the board as a list of
// error messages (GraphQL-style "errors" array).
type RejectBatchError struct {
	Messages []string
}

func (e *RejectBatchError) Error() string {
	return "board rejected request: " + strings.Join(e.Messages, "; ")
}

// TransportError wraps a failure to complete the HTTP exchange itself:
// connection errors, timeouts, or a response body that could not be
// decoded. It is distinct from the board-reported rejection kinds.
type TransportError struct {
	Op  string // "create-item", "create-subitem", "upload"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
