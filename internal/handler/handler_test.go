package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/naveenreddy007/jira-llm-web/internal/config"
	"github.com/naveenreddy007/jira-llm-web/internal/service/jira"
	"github.com/naveenreddy007/jira-llm-web/internal/service/llm"
	"github.com/naveenreddy007/jira-llm-web/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// scriptedCompletion returns a fixed sequence of responses, one per call
type scriptedCompletion struct {
	responses []string
	err       error
	calls     int
}

func (f *scriptedCompletion) Complete(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.calls > len(f.responses) {
		return "", errors.New("no scripted response left")
	}
	return f.responses[f.calls-1], nil
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: config.Development,
		Port:        "8080",
		LLMProvider: "deepseek",
		LLMModel:    "deepseek-chat",
		LogLevel:    "info",
	}
}

func newTestHandler(llmClient llm.CompletionService, tokenStore storage.TokenStore) *APIHandler {
	return New(testConfig(), jira.NewClient(), llmClient, tokenStore)
}

// fakeJiraServer serves the handful of Jira REST endpoints the handlers
// touch, with canned data.
func fakeJiraServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/serverInfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer valid-pat" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"baseUrl":"http://jira.local","version":"9.4.0","serverTitle":"Team Jira"}`))
	})
	mux.HandleFunc("/rest/api/2/project", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"10000","key":"DEMO","name":"Demo Project"}]`))
	})
	mux.HandleFunc("/rest/api/2/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":2,"issues":[
			{"key":"DEMO-1","fields":{"summary":"First","status":{"name":"Open"}}},
			{"key":"DEMO-2","fields":{"summary":"Second","status":{"name":"Open"}}}
		]}`))
	})
	mux.HandleFunc("/rest/api/2/issue/DEMO-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"key":"DEMO-1","fields":{"summary":"First","description":"details","status":{"name":"Open"}}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(r *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// login performs a successful login and returns the session cookie
func login(t *testing.T, r *gin.Engine, jiraURL string) *http.Cookie {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/login",
		`{"jira_url":"`+jiraURL+`","pat":"valid-pat"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set on login")
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestLoginSuccess(t *testing.T) {
	srv := fakeJiraServer(t)
	r := newTestHandler(nil, nil).Router()

	w := doJSON(r, http.MethodPost, "/api/login",
		`{"jira_url":"`+srv.URL+`/","pat":"valid-pat"}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "connected", body["status"])
	assert.Equal(t, "Team Jira", body["server_title"])
	// trailing slash on the URL is normalized away
	assert.Equal(t, srv.URL, body["jira_url"])
	// the PAT never appears in the response
	assert.NotContains(t, w.Body.String(), "valid-pat")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := fakeJiraServer(t)
	r := newTestHandler(nil, nil).Router()

	w := doJSON(r, http.MethodPost, "/api/login",
		`{"jira_url":"`+srv.URL+`","pat":"wrong-pat"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "wrong-pat")
}

func TestLoginRequiresBothFields(t *testing.T) {
	r := newTestHandler(nil, nil).Router()

	w := doJSON(r, http.MethodPost, "/api/login", `{"jira_url":"http://jira.local"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthedRoutesRejectMissingSession(t *testing.T) {
	r := newTestHandler(nil, nil).Router()

	for _, path := range []string{"/api/projects", "/api/diagnostics", "/api/llm/status"} {
		w := doJSON(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAuthedRoutesRejectStaleSession(t *testing.T) {
	r := newTestHandler(nil, nil).Router()

	cookie := &http.Cookie{Name: sessionCookieName, Value: "stale-id"}
	w := doJSON(r, http.MethodGet, "/api/projects", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	srv := fakeJiraServer(t)
	r := newTestHandler(nil, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodPost, "/api/logout", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/projects", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListProjects(t *testing.T) {
	srv := fakeJiraServer(t)
	r := newTestHandler(nil, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodGet, "/api/projects", "", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["llm_available"])
	projects := body["projects"].([]any)
	require.Len(t, projects, 1)
	assert.Equal(t, "DEMO", projects[0].(map[string]any)["key"])
}

func TestGetTicket(t *testing.T) {
	srv := fakeJiraServer(t)
	r := newTestHandler(nil, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodGet, "/api/tickets/DEMO-1", "", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	ticket := body["ticket"].(map[string]any)
	assert.Equal(t, "DEMO-1", ticket["key"])
	assert.Equal(t, "Open", ticket["status"])
}

func TestGetTicketNotFound(t *testing.T) {
	srv := fakeJiraServer(t)
	r := newTestHandler(nil, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodGet, "/api/tickets/GONE-1", "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQueryWithoutLLMReturns503(t *testing.T) {
	srv := fakeJiraServer(t)
	r := newTestHandler(nil, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodPost, "/api/query", `{"request":"show open bugs"}`, cookie)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestQueryEndToEnd(t *testing.T) {
	srv := fakeJiraServer(t)
	// first completion translates, second analyzes
	fake := &scriptedCompletion{responses: []string{
		"project = DEMO",
		"<h3>Overview</h3><p>Two open tickets.</p>",
	}}
	r := newTestHandler(fake, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodPost, "/api/query", `{"request":"show open bugs"}`, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "project = DEMO", body["jql"])
	assert.Equal(t, float64(2), body["total"])
	assert.Equal(t, "<h3>Overview</h3><p>Two open tickets.</p>", body["analysis"])
	assert.Len(t, body["tickets"].([]any), 2)
}

func TestQueryRequiresRequestField(t *testing.T) {
	srv := fakeJiraServer(t)
	fake := &scriptedCompletion{responses: []string{"project = DEMO"}}
	r := newTestHandler(fake, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodPost, "/api/query", `{}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, fake.calls)
}

func TestChatGroundsAnswerInTickets(t *testing.T) {
	srv := fakeJiraServer(t)
	fake := &scriptedCompletion{responses: []string{"Both tickets are open."}}
	r := newTestHandler(fake, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodPost, "/api/chat", `{"question":"what is open?"}`, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Both tickets are open.", body["response"])
	assert.Equal(t, float64(2), body["tickets_found"])
	assert.Equal(t, true, body["context_loaded"])
}

func TestChatSurvivesCompletionFailure(t *testing.T) {
	srv := fakeJiraServer(t)
	fake := &scriptedCompletion{err: errors.New("provider down")}
	r := newTestHandler(fake, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodPost, "/api/chat", `{"question":"anything"}`, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["response"], "I'm sorry")
	assert.Contains(t, body["error"], "provider down")
}

func TestTicketInsightsWithoutLLM(t *testing.T) {
	srv := fakeJiraServer(t)
	r := newTestHandler(nil, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodGet, "/api/tickets/DEMO-1/insights", "", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "LLM service not available", body["error"])
	assert.Equal(t, "N/A", body["category"])
}

func TestTicketInsights(t *testing.T) {
	srv := fakeJiraServer(t)
	fake := &scriptedCompletion{responses: []string{
		"Short summary.",
		"Bug",
		"Suggested reply.",
	}}
	r := newTestHandler(fake, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodGet, "/api/tickets/DEMO-1/insights", "", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Short summary.", body["summary"])
	assert.Equal(t, "Bug", body["category"])
	assert.Equal(t, "Suggested reply.", body["response_suggestion"])
}

func TestLLMStatusUnavailable(t *testing.T) {
	srv := fakeJiraServer(t)
	r := newTestHandler(nil, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodGet, "/api/llm/status", "", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unavailable", decodeBody(t, w)["status"])
}

func TestLLMStatusTruncatesTestResponse(t *testing.T) {
	srv := fakeJiraServer(t)
	fake := &scriptedCompletion{responses: []string{strings.Repeat("a", 80)}}
	r := newTestHandler(fake, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodGet, "/api/llm/status", "", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "available", body["status"])
	assert.Equal(t, strings.Repeat("a", 50)+"...", body["test_response"])
}

func TestDiagnosticsOmitsCredentials(t *testing.T) {
	srv := fakeJiraServer(t)
	r := newTestHandler(nil, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodGet, "/api/diagnostics", "", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["jira_connected"])
	assert.Equal(t, srv.URL, body["jira_url"])
	assert.NotContains(t, w.Body.String(), "valid-pat")
}

func TestSetupPersonalToken(t *testing.T) {
	srv := fakeJiraServer(t)
	store := storage.NewMemoryTokenStore()
	r := newTestHandler(nil, store).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodPost, "/api/token",
		`{"user_id":"alice","token":"a-long-enough-token"}`, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	token, err := store.GetToken(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "a-long-enough-token", token)
}

func TestSetupPersonalTokenRejectsShortToken(t *testing.T) {
	srv := fakeJiraServer(t)
	r := newTestHandler(nil, storage.NewMemoryTokenStore()).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodPost, "/api/token", `{"user_id":"alice","token":"short"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetupPersonalTokenWithoutStore(t *testing.T) {
	srv := fakeJiraServer(t)
	r := newTestHandler(nil, nil).Router()
	cookie := login(t, r, srv.URL)

	w := doJSON(r, http.MethodPost, "/api/token",
		`{"user_id":"alice","token":"a-long-enough-token"}`, cookie)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthzNeedsNoSession(t *testing.T) {
	r := newTestHandler(nil, nil).Router()
	w := doJSON(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
