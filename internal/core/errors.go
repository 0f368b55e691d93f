package core

import (
	"context"
	"errors"

	"auracore/internal/bootimage"
	"auracore/internal/manager"
	"auracore/internal/mempool"
)

// ErrNullInput matches every NullInputError.
var ErrNullInput = errors.New("null input")

// NullInputError reports a nil argument at the boundary. Code names the
// argument: null_request, null_prompt or null_data.
type NullInputError struct{ Code string }

func (e *NullInputError) Error() string { return "null input: " + e.Code }

func (e *NullInputError) Is(target error) bool { return target == ErrNullInput }

// Failure codes surfaced in boundary payloads.
const (
	CodeNullRequest     = "null_request"
	CodeNullPrompt      = "null_prompt"
	CodeNullData        = "null_data"
	CodeModelLoadFailed = "model_load_failed"
	CodeSessionNotReady = "session_not_ready"
	CodeTooBusy         = "too_busy"
	CodeTimeout         = "timeout"
	CodeCanceled        = "canceled"
	CodeMemAccess       = "mem_access"
	CodeInternal        = "internal"
)

// Code maps err to its stable failure code, or "" for nil.
func Code(err error) string {
	if err == nil {
		return ""
	}
	var ne *NullInputError
	if errors.As(err, &ne) {
		return ne.Code
	}
	if c := bootimage.Code(err); c != "" {
		return c
	}
	switch {
	case mempool.IsAccessError(err):
		return CodeMemAccess
	case manager.IsModelLoadError(err):
		return CodeModelLoadFailed
	case manager.IsSessionNotReady(err):
		return CodeSessionNotReady
	case manager.IsTooBusy(err):
		return CodeTooBusy
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	}
	return CodeInternal
}
