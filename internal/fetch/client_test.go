package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sdui-go/interpreter/internal/fallback"
	"github.com/sdui-go/interpreter/internal/logger"
	"github.com/sdui-go/interpreter/internal/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"components":[{"id":"1","type":"galaxyStats","properties":{"statName":"Known Exoplanets","value":"4,395"}}]}`)
	c := New(srv.URL, WithLogger(logger.Discard()))

	resp, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Components, 1)
	assert.Equal(t, "Known Exoplanets", resp.Components[0].Prop("statName"))

	resp, src, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, src)
	assert.Len(t, resp.Components, 1)
}

func TestFetchStatus(t *testing.T) {
	srv := serve(t, http.StatusInternalServerError, `oops`)
	c := New(srv.URL, WithLogger(logger.Discard()))

	_, err := c.Fetch(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Status)

	resp, src, err := c.Load(context.Background())
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, SourceFallback, src)
	assert.Equal(t, fallback.Response(), resp)
}

func TestFetchMalformedBody(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"components":[{"id":"1","type":"galaxyStats","properties":{"value":4395}}]}`)
	c := New(srv.URL, WithLogger(logger.Discard()))

	_, err := c.Fetch(context.Background())
	var de *payload.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, payload.StageSchema, de.Stage)

	resp, src, err := c.Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, SourceFallback, src)
	assert.NotEmpty(t, resp.Components)
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, WithLogger(logger.Discard()), WithTimeout(time.Second))
	_, err := c.Fetch(context.Background())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, url, te.Endpoint)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestLoadWithoutEndpoint(t *testing.T) {
	resp, src, err := New("", WithLogger(logger.Discard())).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, src)
	assert.NotEmpty(t, resp.Components)
}
