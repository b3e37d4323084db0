package fetch

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"syscall"
)

// Kind is the closed set of transport failures a retrieval can end with.
type Kind int

const (
	// KindConnection covers every transport failure without a more specific kind.
	KindConnection Kind = iota
	KindTimeout
	KindAborted
	KindReset
	KindRefused
	KindBrokenPipe
)

var kindMessages = map[Kind]string{
	KindTimeout:    "Connection to server run out!",
	KindAborted:    "Connection aborted by server!",
	KindConnection: "An unexpected error occurred!",
	KindReset:      "Connection reset!",
	KindRefused:    "Connection refused by error!",
	KindBrokenPipe: "Pipe was broken!",
}

// Message is the text shown to the user for k.
func (k Kind) Message() string {
	if m, ok := kindMessages[k]; ok {
		return m
	}
	return kindMessages[KindConnection]
}

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindAborted:
		return "aborted"
	case KindReset:
		return "reset"
	case KindRefused:
		return "refused"
	case KindBrokenPipe:
		return "broken_pipe"
	default:
		return "connection"
	}
}

// TransportError is a failure below HTTP: the request never produced a
// complete response.
type TransportError struct {
	Kind Kind
	Err  error
}

func (e *TransportError) Error() string {
	return "transport " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// Classify wraps err in a *TransportError with the most specific Kind that
// applies. An err that already is a *TransportError is returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Kind: kindOf(err), Err: err}
}

func kindOf(err error) Kind {
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return KindTimeout
	case errors.As(err, &ne) && ne.Timeout():
		return KindTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return KindRefused
	case errors.Is(err, syscall.ECONNRESET):
		return KindReset
	case errors.Is(err, syscall.EPIPE):
		return KindBrokenPipe
	case errors.Is(err, syscall.ECONNABORTED), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return KindAborted
	default:
		return KindConnection
	}
}
