package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pong struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := NewWithBaseURL(ts.URL+"/api", 0)
	require.NoError(t, err)
	return c
}

func TestDoJSON_DecodesSuccess_AndSendsJSONHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pets", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "x", r.Header.Get("X-Extra"))
		_, _ = w.Write([]byte(`{"name":"Max","age":3}`))
	})

	var out pong
	err := c.DoJSON(context.Background(), http.MethodGet, "pets", map[string]string{"X-Extra": "x"}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, pong{Name: "Max", Age: 3}, out)
}

func TestDoJSON_401_IsUnauthorized_RegardlessOfBody(t *testing.T) {
	bodies := []string{"", `{"message":"token expired"}`, "<html>nope</html>"}
	for _, b := range bodies {
		body := b
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(body))
		})

		err := c.DoJSON(context.Background(), http.MethodGet, "/user/profile", nil, nil, &pong{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnauthorized), "body %q: got %v", body, err)
		assert.Equal(t, KindUnauthorized, KindOf(err))
	}
}

func TestDoJSON_200_WithWrongShape_IsDecodingError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": 42}`))
	})

	err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, &pong{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecoding))
}

type named struct {
	Name string `json:"name" validate:"required"`
}

func TestDoJSON_200_MissingRequiredField_IsDecodingError(t *testing.T) {
	cases := []struct {
		name string
		body string
		out  any
		ok   bool
	}{
		{"object ok", `{"name":"Max"}`, &named{}, true},
		{"object missing field", `{"unexpected":true}`, &named{}, false},
		{"slice ok", `[{"name":"Max"},{"name":"Luna"}]`, &[]named{}, true},
		{"slice with bad item", `[{"name":"Max"},{}]`, &[]named{}, false},
		{"empty slice", `[]`, &[]named{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})

			err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, tc.out)
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDecoding))
			assert.Equal(t, http.StatusOK, err.(*Error).StatusCode)
			assert.Contains(t, err.Error(), "name")
		})
	}
}

func TestDoJSON_200_EmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Sin out: ok.
	require.NoError(t, c.DoJSON(context.Background(), http.MethodDelete, "/pets/1", nil, nil, nil))

	// Con out: no hay cuerpo que decodificar.
	err := c.DoJSON(context.Background(), http.MethodGet, "/pets/1", nil, nil, &pong{})
	assert.True(t, errors.Is(err, ErrNoResponseBody))
}

func TestDoJSON_ServerError_UsesStructuredMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"email already registered"}`))
	})

	err := c.DoJSON(context.Background(), http.MethodPost, "/auth/register", nil, map[string]string{"a": "b"}, &pong{})
	require.Error(t, err)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, KindServer, e.Kind)
	assert.Equal(t, http.StatusConflict, e.StatusCode)
	assert.Equal(t, "email already registered", e.Message)
	assert.Equal(t, "email already registered", err.Error())
}

func TestDoJSON_ServerError_FallsBackToStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	err := c.DoJSON(context.Background(), http.MethodGet, "/clinics", nil, nil, &pong{})
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, KindServer, e.Kind)
	assert.Equal(t, "server error: 502", e.Message)
}

func TestDoJSON_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()

	c, err := NewWithBaseURL(base, 0)
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.NotNil(t, errors.Unwrap(err))
}

func TestDoJSON_InvalidURL(t *testing.T) {
	c := New(0)

	err := c.DoJSON(context.Background(), http.MethodGet, "/relative", nil, nil, nil)
	assert.True(t, errors.Is(err, ErrInvalidURL))

	err = c.DoJSON(context.Background(), http.MethodGet, "", nil, nil, nil)
	assert.True(t, errors.Is(err, ErrInvalidURL))

	_, err = NewWithBaseURL("not a url", 0)
	assert.True(t, errors.Is(err, ErrInvalidURL))
}

func TestError_IsComparesKindOnly(t *testing.T) {
	err := &Error{Kind: KindServer, StatusCode: 500, Message: "boom"}
	assert.True(t, errors.Is(err, ErrServer))
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, "server_error", KindServer.String())
}
