package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenSource struct {
	token   string
	cleared bool
}

func (f *fakeTokenSource) AccessToken(context.Context) string { return f.token }

func (f *fakeTokenSource) Clear(context.Context) error {
	f.cleared = true
	f.token = ""
	return nil
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := New(srv.URL, &fakeTokenSource{token: "abc"})
	require.NoError(t, c.Get(context.Background(), "/api/v1/participants", nil))
	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestClient_SkipAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := New(srv.URL, &fakeTokenSource{token: "abc"})
	require.NoError(t, c.Post(context.Background(), "/api/v1/auth/login", map[string]string{}, nil, WithSkipAuth()))
	assert.Empty(t, gotAuth)
}

func TestClient_NoHeaderWithoutUsableToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := New(srv.URL, &fakeTokenSource{token: ""})
	require.NoError(t, c.Get(context.Background(), "/x", nil))
	assert.Empty(t, gotAuth)
}

func TestClient_QueryParamsOmitEmpty(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.Get(context.Background(), "/x", nil, WithParams(map[string]string{
		"status": "pending",
		"search": "",
	}))
	require.NoError(t, err)
	assert.Equal(t, "status=pending", gotQuery)
}

func TestClient_DecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"entities":[{"id":"p1"}],"total":1,"limit":20,"offset":0}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	list, err := c.ListParticipants(context.Background(), ParticipantListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "p1", list.Items[0].ID)
}

func TestClient_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	assert.NoError(t, c.Delete(context.Background(), "/api/v1/participants/p1", nil))
}

func TestClient_ErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"validation failed","details":{"email":["already taken"]}}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.Post(context.Background(), "/api/v1/participants", map[string]string{}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, "validation failed", apiErr.Message)
	assert.Equal(t, "already taken", apiErr.FieldError("email"))
}

func TestClient_ErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `not json at all`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.Get(context.Background(), "/x", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindServer, apiErr.Kind)
	assert.Equal(t, "HTTP 502: Bad Gateway", apiErr.Message)
}

func TestClient_RateLimitRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "17")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"message":"slow down"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.Get(context.Background(), "/x", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindRateLimit, apiErr.Kind)
	assert.Equal(t, 17, apiErr.RetryAfter)
}

func TestClient_UnauthorizedClearsTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"token expired"}`)
	}))
	defer srv.Close()

	tokens := &fakeTokenSource{token: "stale"}
	c := New(srv.URL, tokens)
	err := c.Get(context.Background(), "/api/v1/auth/me", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindAuthentication, apiErr.Kind)
	assert.True(t, tokens.cleared, "401 must clear the token store")
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, nil)
	err := c.Get(context.Background(), "/x", nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_RequestInterceptorOrderAndUnregister(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Trace")
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	c.AddRequestInterceptor(func(r *http.Request) (*http.Request, error) {
		r.Header.Set("X-Trace", "first")
		return r, nil
	})
	unregister := c.AddRequestInterceptor(func(r *http.Request) (*http.Request, error) {
		r.Header.Set("X-Trace", r.Header.Get("X-Trace")+",second")
		return r, nil
	})

	require.NoError(t, c.Get(context.Background(), "/x", nil))
	assert.Equal(t, "first,second", gotHeader, "interceptors run in registration order")

	unregister()
	require.NoError(t, c.Get(context.Background(), "/x", nil))
	assert.Equal(t, "first", gotHeader)
}

func TestClient_RequestInterceptorErrorAborts(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	boom := errors.New("boom")
	c.AddRequestInterceptor(func(r *http.Request) (*http.Request, error) {
		return nil, boom
	})

	err := c.Get(context.Background(), "/x", nil)
	assert.ErrorIs(t, err, boom)
	assert.False(t, called, "request must not be sent")
}

func TestClient_ResponseInterceptorSeesErrorResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"gone"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	var seen []int
	c.AddResponseInterceptor(func(resp *http.Response) {
		seen = append(seen, resp.StatusCode)
	})

	_ = c.Get(context.Background(), "/x", nil)
	assert.Equal(t, []int{404}, seen)
}

func TestClient_ErrorInterceptorTransforms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message":"oops"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	wrapped := errors.New("wrapped")
	unregister := c.AddErrorInterceptor(func(err error) error {
		return fmt.Errorf("%w: %v", wrapped, err)
	})

	err := c.Get(context.Background(), "/x", nil)
	assert.ErrorIs(t, err, wrapped)

	unregister()
	err = c.Get(context.Background(), "/x", nil)
	assert.NotErrorIs(t, err, wrapped)
}

func TestClient_DetailNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"invoice not found"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.GetInvoice(context.Background(), "nope")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindNotFound, apiErr.Kind)
	assert.Equal(t, "invoice not found", apiErr.Message)
}
