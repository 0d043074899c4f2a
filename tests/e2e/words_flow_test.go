//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWordLifecycle walks a word through capture, fetch, list, and delete.
func TestWordLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := newUserToken(t, ts)

	id := ts.captureWord(t, token, "saudade", "longing")

	// Fetch by id.
	status, body := ts.doJSON(t, http.MethodGet, "/api/words/"+id, nil, token)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "saudade", body["originalText"])
	require.Equal(t, "longing", body["translation"])
	require.Equal(t, "learning", body["masteryStatus"])
	require.EqualValues(t, 0, body["reviewCount"])

	// List contains it.
	status, body = ts.doJSON(t, http.MethodGet, "/api/words", nil, token)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 1, body["total"])

	// Delete.
	status, _ = ts.doJSON(t, http.MethodDelete, "/api/words/"+id, nil, token)
	require.Equal(t, http.StatusOK, status)

	// Gone.
	status, _ = ts.doJSON(t, http.MethodGet, "/api/words/"+id, nil, token)
	require.Equal(t, http.StatusNotFound, status)
}

func TestWordCapture_DuplicateConflict(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := newUserToken(t, ts)

	ts.captureWord(t, token, "obrigado", "thanks")

	status, _ := ts.doJSON(t, http.MethodPost, "/api/words", map[string]any{
		"text": "obrigado",
	}, token)
	require.Equal(t, http.StatusConflict, status)
}

func TestWordList_FilterAndSearch(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := newUserToken(t, ts)

	status, _ := ts.doJSON(t, http.MethodPost, "/api/words", map[string]any{
		"text": "padaria", "translation": "bakery", "category": "food",
	}, token)
	require.Equal(t, http.StatusCreated, status)
	status, _ = ts.doJSON(t, http.MethodPost, "/api/words", map[string]any{
		"text": "rodoviária", "translation": "bus station", "category": "travel",
	}, token)
	require.Equal(t, http.StatusCreated, status)

	// Category filter.
	status, body := ts.doJSON(t, http.MethodGet, "/api/words?category=food", nil, token)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 1, body["total"])

	// Search matches both original text and translation, case-insensitive.
	status, body = ts.doJSON(t, http.MethodGet, "/api/words?search=BAKERY", nil, token)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 1, body["total"])

	// Categories endpoint lists both.
	status, body = ts.doJSON(t, http.MethodGet, "/api/words/categories", nil, token)
	require.Equal(t, http.StatusOK, status)
	cats, ok := body["categories"].([]any)
	require.True(t, ok)
	require.ElementsMatch(t, []any{"food", "travel"}, cats)
}

func TestWordStats(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := newUserToken(t, ts)

	ts.captureWord(t, token, "janela", "window")
	ts.captureWord(t, token, "porta", "door")

	status, body := ts.doJSON(t, http.MethodGet, "/api/words/stats", nil, token)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 2, body["totalWords"])
	require.EqualValues(t, 2, body["learningCount"])
	require.EqualValues(t, 0, body["masteredCount"])
	// Both words are new and due immediately.
	require.EqualValues(t, 2, body["dueToday"])
}
