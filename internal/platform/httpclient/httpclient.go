package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultTimeout = 30 * time.Second

	// maxBodyBytes limita lo que se lee de una respuesta (decode y mensajes de error).
	maxBodyBytes = 4 << 20
)

// Client envuelve *http.Client con el mapeo status -> Error.
type Client struct {
	HTTP    *http.Client
	BaseURL string // opcional; si se define, DoJSON puede recibir paths relativos
}

// New crea un Client con timeout razonable.
func New(timeout time.Duration) *Client {
	return NewWithTransport(timeout, nil)
}

// NewWithBaseURL crea un Client con BaseURL + timeout.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	if err := c.SetBaseURL(baseURL); err != nil {
		return nil, err
	}
	return c, nil
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}
}

// SetBaseURL valida y normaliza la base (sin "/" final). Vacío la limpia.
func (c *Client) SetBaseURL(baseURL string) error {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		c.BaseURL = ""
		return nil
	}
	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return &Error{Kind: KindInvalidURL, Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return &Error{Kind: KindInvalidURL, Err: fmt.Errorf("base url %q must be absolute", baseURL)}
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return nil
}

// errorBody es el cuerpo de error estructurado que devuelve el backend.
type errorBody struct {
	Message string `json:"message"`
}

// DoJSON hace un request JSON.
// - method: GET/POST/etc
// - pathOrURL: URL absoluta o path relativo si BaseURL está seteado
// - headers: headers extra (opcional)
// - in: body a enviar (opcional). Si nil => no body.
// - out: donde decodificar JSON (opcional). Si nil => ignora body.
//
// Mapeo de respuesta:
// - 2xx: decode en out (cuerpo vacío => KindNoResponseBody, json inválido o tags `validate` incumplidos => KindDecoding)
// - 401: KindUnauthorized, sin mirar el cuerpo
// - resto: {"message": ...} => KindServer con ese mensaje; si no, mensaje genérico con status
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	if c == nil || c.HTTP == nil {
		return &Error{Kind: KindTransport, Err: errors.New("nil client")}
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return &Error{Kind: KindInvalidURL, Err: err}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindDecoding, Err: fmt.Errorf("marshal request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return &Error{Kind: KindInvalidURL, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := readAtMost(resp.Body, maxBodyBytes)
	if err != nil {
		return &Error{Kind: KindTransport, Err: fmt.Errorf("read body: %w", err)}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// sigue abajo
	case resp.StatusCode == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, StatusCode: resp.StatusCode}
	default:
		return serverError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &Error{Kind: KindNoResponseBody, StatusCode: resp.StatusCode}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindDecoding, StatusCode: resp.StatusCode, Err: err}
	}
	if err := validate(out); err != nil {
		return &Error{Kind: KindDecoding, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

// shape valida los tags `validate:"..."` de la respuesta decodificada.
// encoding/json deja en cero lo que falta; los tags marcan qué no puede faltar.
var shape = newShapeValidator()

func newShapeValidator() *validator.Validate {
	v := validator.New()
	// los errores nombran el campo como viaja en el wire
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validate aplica shape a out o, si out apunta a un slice, a cada elemento struct.
func validate(out any) error {
	rv := reflect.Indirect(reflect.ValueOf(out))
	switch rv.Kind() {
	case reflect.Struct:
		return shape.Struct(out)
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			item := reflect.Indirect(rv.Index(i))
			if item.Kind() != reflect.Struct {
				return nil
			}
			if err := shape.Struct(item.Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

func serverError(status int, raw []byte) *Error {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil && strings.TrimSpace(eb.Message) != "" {
		return &Error{Kind: KindServer, StatusCode: status, Message: eb.Message}
	}
	return &Error{
		Kind:       KindServer,
		StatusCode: status,
		Message:    fmt.Sprintf("server error: %d", status),
	}
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("empty url")
	}

	// Si ya es URL absoluta, úsala tal cual.
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		if _, err := url.ParseRequestURI(pathOrURL); err != nil {
			return "", err
		}
		return pathOrURL, nil
	}

	// Si no es absoluta, requiere BaseURL.
	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("relative path requires BaseURL")
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	full := c.BaseURL + pathOrURL
	if _, err := url.ParseRequestURI(full); err != nil {
		return "", err
	}
	return full, nil
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = maxBodyBytes
	}
	lr := io.LimitReader(r, max)
	return io.ReadAll(lr)
}
