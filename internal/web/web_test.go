package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-rileyj/gen-cyber-front-end/internal/deck"
)

func testServer(t *testing.T, opts Options) *Server {
	t.Helper()

	p, err := deck.Load(fstest.MapFS{
		"deck.yaml":  {Data: []byte("title: Test Deck\nauthor: Riley\nslides: [a.md, b.md]\n")},
		"a.md":       {Data: []byte("# Title\n")},
		"b.md":       {Data: []byte("![Google Homepage](google.png)\n")},
		"google.png": {Data: []byte("not really a png")},
	})
	require.NoError(t, err)

	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s, err := New(p, opts)
	require.NoError(t, err)
	return s
}

func do(s *Server, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func TestStaticFileServing(t *testing.T) {
	s := testServer(t, Options{})

	t.Run("only GET is handled", func(t *testing.T) {
		rr := do(s, http.MethodPost, "/test", nil, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})

	t.Run("unknown path asking for json is not found", func(t *testing.T) {
		rr := do(s, http.MethodGet, "/test", nil, map[string]string{"Content-Type": "JSON"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("existing asset is served", func(t *testing.T) {
		rr := do(s, http.MethodGet, "/google.png", nil, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "not really a png", rr.Body.String())
	})

	t.Run("unknown path falls back to the deck", func(t *testing.T) {
		rr := do(s, http.MethodGet, "/i_dont_exist", nil, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, string(s.index), rr.Body.String())
	})

	t.Run("root serves the deck", func(t *testing.T) {
		rr := do(s, http.MethodGet, "/", nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		body := rr.Body.String()
		assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Equal(t, 2, strings.Count(body, `<section class="slide"`))
		assert.Contains(t, body, "<h1>Title</h1>")
		assert.Equal(t, 1, strings.Count(body, "<img"))
		assert.Contains(t, body, "<title>Test Deck</title>")
	})
}

func TestHello(t *testing.T) {
	s := testServer(t, Options{})

	rr := do(s, http.MethodGet, "/api/hello", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hello", rr.Body.String())

	rr = do(s, http.MethodPost, "/api/hello", strings.NewReader(`{"name": "rj"}`), map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hello rj", rr.Body.String())

	rr = do(s, http.MethodPost, "/api/hello", strings.NewReader(`{"notname": "ha"}`), map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Err)
	assert.True(t, strings.HasPrefix(env.Msg, "Failed to say hello:"))

	rr = do(s, http.MethodPost, "/api/hello", strings.NewReader(`not json`), nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = do(s, http.MethodPost, "/api/hello", strings.NewReader(`{"name": null}`), map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, `Failed to say hello: missing "name"`, env.Msg)
	assert.NotContains(t, rr.Body.String(), "<nil>")
}

func TestAuthenticate(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("test"))
	})

	allow := Authenticate(func(*http.Request) bool { return true })(ok)
	deny := Authenticate(func(*http.Request) bool { return false })(ok)

	rr := httptest.NewRecorder()
	allow.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "test", rr.Body.String())

	rr = httptest.NewRecorder()
	deny.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"data": {}, "err": true, "msg": "not authenticated"}`, rr.Body.String())
}

func TestSlidesAPI(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{"no token configured", "", "Bearer ", http.StatusForbidden},
		{"missing header", "secret", "", http.StatusForbidden},
		{"wrong token", "secret", "Bearer nope", http.StatusForbidden},
		{"valid token", "secret", "Bearer secret", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testServer(t, Options{Token: tc.token})
			rr := do(s, http.MethodGet, "/api/slides", nil, map[string]string{"Authorization": tc.header})
			assert.Equal(t, tc.want, rr.Code)
		})
	}

	s := testServer(t, Options{Token: "secret"})
	rr := do(s, http.MethodGet, "/api/slides", nil, map[string]string{"Authorization": "Bearer secret"})

	var resp struct {
		Data deckJSON `json:"data"`
		Err  bool     `json:"err"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Err)
	assert.Equal(t, 2, resp.Data.Count)
	require.Len(t, resp.Data.Slides, 2)
	assert.Equal(t, "# Title\n", resp.Data.Slides[0].Text)
	assert.Equal(t, []string{"google.png"}, resp.Data.Slides[1].Images)
	assert.Equal(t, "#03A9FC", resp.Data.Colors["tertiary"])
}

func TestCORS(t *testing.T) {
	headers := map[string]string{"Origin": "http://example.com"}

	rr := do(testServer(t, Options{Debug: true}), http.MethodGet, "/api/hello", nil, headers)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = do(testServer(t, Options{}), http.MethodGet, "/api/hello", nil, headers)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoverer(t *testing.T) {
	handler := Recoverer(log.New(io.Discard))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/crash", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Internal Server Error")
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf strings.Builder
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})

	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tea", nil))

	assert.Contains(t, buf.String(), "status=418")
	assert.Contains(t, buf.String(), "path=/tea")
}
