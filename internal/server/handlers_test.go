package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/college-advisor/internal/catalog"
	"github.com/jonathan/college-advisor/internal/llm"
	"github.com/jonathan/college-advisor/internal/router"
	"github.com/jonathan/college-advisor/internal/types"
)

type stubClient struct {
	response string
}

func (s *stubClient) Generate(context.Context, string, llm.Options) (string, error) {
	return s.response, nil
}

func (s *stubClient) Close() error { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cat, err := catalog.New([]types.CollegeRecord{
		{
			Name:     "Alpha Institute of Technology",
			Location: "Jaipur",
			Rating:   4.5,
			Admission: types.Admission{
				Exam:   "JEE Main",
				Cutoff: map[string]float64{"2023": 1000},
			},
		},
	})
	require.NoError(t, err)

	rt := router.New(cat, &stubClient{response: "generated answer"}, nil)
	return New(Config{Port: 0}, rt, nil)
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleInit(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/init", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp initResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "Welcome to the Rajasthan Engineering College Chatbot!")
	assert.NotEmpty(t, resp.SessionID)
}

func TestHandleQuery(t *testing.T) {
	s := newTestServer(t)

	body, _ := json.Marshal(queryRequest{Input: "hello"})
	rec := do(s, httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp queryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, "How can I assist you")
	assert.NotEmpty(t, resp.SessionID)
}

func TestHandleQuery_EmptyInput(t *testing.T) {
	s := newTestServer(t)

	body, _ := json.Marshal(queryRequest{Input: "   "})
	rec := do(s, httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleQuery_InvalidJSON(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader([]byte("{nope"))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleQuery_SessionsAreIsolated(t *testing.T) {
	s := newTestServer(t)

	// First client establishes an eligible set in its own session.
	body, _ := json.Marshal(queryRequest{Input: "which colleges can i get with 3000 in jee main"})
	rec := do(s, httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	var first queryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.Contains(t, first.Response, "Alpha Institute of Technology")

	// A second client with no session id must not see the first client's set.
	body, _ = json.Marshal(queryRequest{Input: "which college is best for me"})
	rec = do(s, httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	var second queryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Contains(t, second.Response, "Please specify a score and exam first")
	assert.NotEqual(t, first.SessionID, second.SessionID)

	// The first client continues where it left off.
	body, _ = json.Marshal(queryRequest{Input: "which college is best for me", SessionID: first.SessionID})
	rec = do(s, httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	var third queryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &third))
	assert.Contains(t, third.Response, "The best college is Alpha Institute of Technology")
	assert.Equal(t, first.SessionID, third.SessionID)
}

func TestHandleQuery_ConcurrentSameSession(t *testing.T) {
	s := newTestServer(t)

	// Establish a session first.
	body, _ := json.Marshal(queryRequest{Input: "hello"})
	rec := do(s, httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	var opened queryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opened))

	// Parallel requests carrying the same session id must all succeed; the
	// session serializes its turns.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, _ := json.Marshal(queryRequest{
				Input:     "which colleges can i get with 3000 in jee main",
				SessionID: opened.SessionID,
			})
			rec := do(s, httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body)))
			assert.Equal(t, http.StatusOK, rec.Code)
		}()
	}
	wg.Wait()

	// The session state is consistent afterwards.
	body, _ = json.Marshal(queryRequest{Input: "which college is best for me", SessionID: opened.SessionID})
	rec = do(s, httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	var final queryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &final))
	assert.Contains(t, final.Response, "The best college is Alpha Institute of Technology")
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodOptions, "/query", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
