//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/llyli-app/llyli-backend/internal/adapter/postgres"
	sessionrepo "github.com/llyli-app/llyli-backend/internal/adapter/postgres/session"
	"github.com/llyli-app/llyli-backend/internal/adapter/postgres/testhelper"
	wordrepo "github.com/llyli-app/llyli-backend/internal/adapter/postgres/word"
	"github.com/llyli-app/llyli-backend/internal/adapter/provider/translate"
	authpkg "github.com/llyli-app/llyli-backend/internal/auth"
	"github.com/llyli-app/llyli-backend/internal/config"
	"github.com/llyli-app/llyli-backend/internal/service/review"
	"github.com/llyli-app/llyli-backend/internal/service/review/fsrs"
	"github.com/llyli-app/llyli-backend/internal/service/word"
	"github.com/llyli-app/llyli-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL      string
	Client   *http.Client
	Pool     *pgxpool.Pool
	verifier *authpkg.Verifier
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	words := wordrepo.New(pool)
	sessions := sessionrepo.New(pool)

	// Fuzz disabled: tests assert exact intervals.
	params := fsrs.DefaultParams()
	params.EnableFuzz = false

	reviewSvc, err := review.NewService(logger, words, sessions, txm, review.Config{
		FSRS:              params,
		NewWordsPerDay:    15,
		DefaultQueueLimit: 20,
		MaxBatchSize:      10,
	}, nil)
	if err != nil {
		t.Fatalf("create review service: %v", err)
	}

	wordSvc := word.NewService(logger, words, translate.NewStub(), nil, word.DefaultConfig())

	verifier := authpkg.NewVerifier(
		"test-secret-at-least-32-chars-long!!",
		"https://test.supabase.co/auth/v1",
		"authenticated",
	)

	handlers := rest.Handlers{
		Health:  rest.NewHealthHandler(pool, "test-version"),
		Reviews: rest.NewReviewsHandler(reviewSvc, logger),
		Words:   rest.NewWordsHandler(wordSvc, logger),
	}
	router := rest.NewRouter(handlers, verifier, config.CORSConfig{
		AllowedOrigins:   "*",
		AllowedMethods:   "GET,POST,DELETE,OPTIONS",
		AllowedHeaders:   "Authorization,Content-Type",
		AllowCredentials: true,
		MaxAge:           86400,
	}, nil, 0, logger)

	srv := httptest.NewServer(router)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:      srv.URL,
		Client:   srv.Client(),
		Pool:     pool,
		verifier: verifier,
	}
}

// newUserToken mints a token for a fresh user. Words reference users only
// by id, so no row needs to exist up front.
func newUserToken(t *testing.T, ts *testServer) (string, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	token, err := ts.verifier.SignAccessToken(userID, "authenticated", 15*time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token, userID
}

// newForeignVerifier returns a verifier with a different signing secret.
func newForeignVerifier(t *testing.T) *authpkg.Verifier {
	t.Helper()
	return authpkg.NewVerifier(
		"another-secret-also-32-chars-long!!!",
		"https://test.supabase.co/auth/v1",
		"authenticated",
	)
}

// doJSON sends a JSON request and decodes the JSON response body.
// A nil body sends an empty request; a nil result skips decoding.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	var result map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			t.Fatalf("decode response %q: %v", raw, err)
		}
	}
	return resp.StatusCode, result
}

// captureWord creates a word over the API and returns its id.
func (ts *testServer) captureWord(t *testing.T, token, text, translation string) string {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/api/words", map[string]any{
		"text":        text,
		"translation": translation,
		"language":    "pt",
	}, token)
	if status != http.StatusCreated {
		t.Fatalf("capture %q: status %d, body %v", text, status, body)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		t.Fatalf("capture %q: missing id in %v", text, body)
	}
	return id
}
