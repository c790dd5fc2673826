package httpclient

import (
	"errors"
	"fmt"
)

// Kind es la taxonomía cerrada de fallos que ve el llamador.
type Kind int

const (
	KindInvalidURL Kind = iota + 1
	KindNoResponseBody
	KindDecoding
	KindServer
	KindUnauthorized
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindNoResponseBody:
		return "no_response_body"
	case KindDecoding:
		return "decoding_error"
	case KindServer:
		return "server_error"
	case KindUnauthorized:
		return "unauthorized"
	case KindTransport:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Error es el único tipo de error que devuelve DoJSON.
// - StatusCode solo aplica a KindServer / KindUnauthorized / KindDecoding / KindNoResponseBody.
// - Message solo es relevante para KindServer.
// - Err guarda la causa subyacente (p.ej. error de red o de json).
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindServer:
		return e.Message
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidURL:
		if e.Err != nil {
			return fmt.Sprintf("invalid url: %v", e.Err)
		}
		return "invalid url"
	case KindNoResponseBody:
		return "no response body"
	case KindDecoding:
		if e.Err != nil {
			return fmt.Sprintf("decoding error: %v", e.Err)
		}
		return "decoding error"
	case KindTransport:
		if e.Err != nil {
			return fmt.Sprintf("transport error: %v", e.Err)
		}
		return "transport error"
	default:
		return "httpclient: unknown error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is permite errors.Is(err, httpclient.ErrUnauthorized) etc.: compara solo por Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels para errors.Is.
var (
	ErrInvalidURL     = &Error{Kind: KindInvalidURL}
	ErrNoResponseBody = &Error{Kind: KindNoResponseBody}
	ErrDecoding       = &Error{Kind: KindDecoding}
	ErrServer         = &Error{Kind: KindServer}
	ErrUnauthorized   = &Error{Kind: KindUnauthorized}
	ErrTransport      = &Error{Kind: KindTransport}
)

// KindOf devuelve el Kind de err, o 0 si err no viene de este paquete.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
