package pipeline

import "fmt"

// InputError reports bad caller input (missing/empty fields).
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// NotFoundError reports an unknown certificate or institution id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// PreconditionError reports a pipeline step invoked before its
// dependency step has completed.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

// ValidationError reports a pre-flight content check failure. It is
// raised before the ledger is contacted, never after.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UploadError wraps a content-store transport or HTTP failure.
type UploadError struct {
	Op  string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed (%s): %v", e.Op, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// LedgerError reports a failure from the external minting service,
// carrying the HTTP status and raw body when available.
type LedgerError struct {
	Message    string
	StatusCode int
	Body       string
}

func (e *LedgerError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Message, e.StatusCode, e.Body)
	}
	return e.Message
}

// EncodingError wraps a QR encoding failure.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("qr encoding failed: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// PersistenceError wraps a database write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
