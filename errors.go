package codec

import (
	"errors"
	"fmt"
)

// ErrNeedMore is returned by a resumable decode step when the stream does not
// yet hold enough bytes to make progress. It is not a failure: the caller is
// expected to feed more bytes into the underlying stream and call Poll again.
var ErrNeedMore = errors.New("codec: need more bytes from stream")

// EncodingError reports a violation of the wire format's rules: an oversize
// field, an unknown tag, a non-optional field left UNSET, a frame whose
// length does not match its contents, and so on. It always wraps the
// underlying cause, if any, so callers can still errors.Is/As through it.
type EncodingError struct {
	Message string
	Cause   error
}

func newEncodingError(format string, args ...any) *EncodingError {
	return &EncodingError{Message: fmt.Sprintf(format, args...)}
}

func wrapEncodingError(cause error, format string, args ...any) *EncodingError {
	return &EncodingError{Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *EncodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}

// StreamIOError wraps a failure reported by the underlying byte stream
// (short write, read error, bad seek) so callers can distinguish transport
// failures from wire-format violations.
type StreamIOError struct {
	Op    string
	Cause error
}

func (e *StreamIOError) Error() string {
	return fmt.Sprintf("codec: stream %s failed: %v", e.Op, e.Cause)
}

func (e *StreamIOError) Unwrap() error {
	return e.Cause
}

func streamIOError(op string, cause error) *StreamIOError {
	return &StreamIOError{Op: op, Cause: cause}
}
