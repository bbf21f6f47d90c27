package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopyhq/canopy"
	"github.com/canopyhq/canopy/pkg/adapters/httpapi"
	"github.com/canopyhq/canopy/pkg/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := httpapi.NewHandler(canopy.New())
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestPostAnswer(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/sessions/s1/answers", map[string]any{
		"question_id": "welcome",
		"answer":      "we keep losing customers after their first order",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decode[domain.TurnResult](t, resp)
	require.NotNil(t, result.NextQuestion)
	assert.Equal(t, "business_overview", result.NextQuestion.ID)
	assert.NotEmpty(t, result.RenderedMessage)
	assert.Equal(t, 8, result.State.Progress)
}

func TestPostAnswer_ListPayload(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/sessions/s1/answers", map[string]any{
		"question_id": "growth_metrics",
		"answer":      []string{"revenue", "churn_rate"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decode[domain.TurnResult](t, resp)
	got, ok := result.State.Context.Answer("growth_metrics")
	require.True(t, ok)
	assert.Equal(t, domain.AnswerList, got.Kind)
	assert.Equal(t, []string{"revenue", "churn_rate"}, got.List)
}

func TestPostAnswer_UnmatchedChoiceContinues(t *testing.T) {
	srv := newTestServer(t)

	// Free-form replies to choice questions are accepted; the flow
	// falls through to the next question in sequence.
	resp := postJSON(t, srv.URL+"/sessions/s1/answers", map[string]any{
		"question_id": "growth_strategy",
		"answer":      "honestly we improvise",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decode[domain.TurnResult](t, resp)
	require.NotNil(t, result.NextQuestion)
	assert.Equal(t, "challenge_followup", result.NextQuestion.ID)
}

func TestPostAnswer_CallerTimestamp(t *testing.T) {
	srv := newTestServer(t)
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	resp := postJSON(t, srv.URL+"/sessions/s1/answers", map[string]any{
		"question_id": "welcome",
		"answer":      "hello",
		"timestamp":   at.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decode[domain.TurnResult](t, resp)
	require.NotEmpty(t, result.State.History)
	assert.True(t, result.State.History[0].Timestamp.Equal(at))
}

func TestPostAnswer_Errors(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"unknown question", map[string]any{"question_id": "nope", "answer": "x"}, http.StatusBadRequest},
		{"missing question_id", map[string]any{"answer": "x"}, http.StatusBadRequest},
		{"missing answer", map[string]any{"question_id": "welcome"}, http.StatusBadRequest},
		{"list for single choice", map[string]any{"question_id": "growth_strategy", "answer": []string{"a", "b"}}, http.StatusBadRequest},
		{"wrong shape", map[string]any{"question_id": "business_priorities", "answer": "growth"}, http.StatusBadRequest},
		{"bad timestamp", map[string]any{"question_id": "welcome", "answer": "hi", "timestamp": "yesterday"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/sessions/s1/answers", tc.body)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestGetSession(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/sessions/s9/answers", map[string]any{
		"question_id": "welcome",
		"answer":      "hello",
	})
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/sessions/s9")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	state := decode[domain.ConversationState](t, resp)
	assert.Equal(t, "s9", state.SessionID)
	assert.True(t, state.Context.Answered("welcome"))
}

func TestGetSession_UnknownReturnsFreshState(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/sessions/never-seen")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	state := decode[domain.ConversationState](t, resp)
	assert.Equal(t, "welcome", state.ActiveQuestionID)
	assert.Equal(t, 0, state.Progress)
}

func TestDeleteAndList(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/sessions/gone/answers", map[string]any{
		"question_id": "welcome", "answer": "hi",
	})
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/sessions/")
	require.NoError(t, err)
	listing := decode[map[string][]string](t, resp)
	assert.Contains(t, listing["sessions"], "gone")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/gone", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/sessions/")
	require.NoError(t, err)
	listing = decode[map[string][]string](t, resp)
	assert.NotContains(t, listing["sessions"], "gone")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
