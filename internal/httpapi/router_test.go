package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptlab/promptlab/internal/ai"
	"github.com/promptlab/promptlab/internal/auth"
	"github.com/promptlab/promptlab/internal/config"
	"github.com/promptlab/promptlab/internal/httpapi/handlers"
	"github.com/promptlab/promptlab/internal/httpapi/middleware"
	"github.com/promptlab/promptlab/internal/logger"
	"github.com/promptlab/promptlab/internal/thread"
	"github.com/promptlab/promptlab/internal/workspace"
)

type testEnv struct {
	router  *gin.Engine
	cookies []*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "demo"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "demo", "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := config.Config{
		WorkspaceRoot:    root,
		ProjectWhitelist: []string{"demo"},
		SessionTTLDays:   7,
	}
	log := logger.NewNop()

	authSvc := auth.NewService(
		auth.NewMemoryStore(), "test-secret", "hunter2", "",
		7*24*time.Hour, false,
	)
	ws := workspace.NewService(root, cfg.ProjectWhitelist, log)
	threads := thread.NewStore(root, log)

	h := handlers.NewHandler(cfg, log, authSvc, ws, threads, ai.NewRegistry(), nil)
	limiter := middleware.NewRateLimiter(10000, time.Minute)
	t.Cleanup(limiter.Stop)

	return &testEnv{router: NewRouter(h, limiter)}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if cs := w.Result().Cookies(); len(cs) > 0 {
		e.cookies = cs
	}
	return w
}

func data(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Code    int            `json:"code"`
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return envelope.Data
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/login", `{"password":"hunter2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", w.Code, w.Body.String())
	}
}

func TestHealthUnauthenticated(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status %d", w.Code)
	}
	d := data(t, w)
	if d["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", d)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	e := newTestEnv(t)
	for _, path := range []string{"/api/projects", "/api/projects/demo/threads", "/api/personas"} {
		w := e.do(t, http.MethodGet, path, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, w.Code)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodPost, "/api/auth/login", `{"password":"nope"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthStatusFlow(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/api/auth/status", "")
	if d := data(t, w); d["authenticated"] != false {
		t.Fatalf("expected unauthenticated, got %v", d)
	}

	e.login(t)
	w = e.do(t, http.MethodGet, "/api/auth/status", "")
	if d := data(t, w); d["authenticated"] != true {
		t.Fatalf("expected authenticated, got %v", d)
	}

	e.do(t, http.MethodPost, "/api/auth/logout", "")
	w = e.do(t, http.MethodGet, "/api/auth/status", "")
	if d := data(t, w); d["authenticated"] != false {
		t.Fatalf("expected unauthenticated after logout, got %v", d)
	}
}

func TestThreadLifecycle(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	// create
	w := e.do(t, http.MethodPost, "/api/projects/demo/threads",
		`{"title":"t1","modelIds":["m1","m2"]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", w.Code, w.Body.String())
	}
	th := data(t, w)["thread"].(map[string]any)
	id, _ := th["id"].(string)
	if !regexp.MustCompile(`^thread_\d+_[0-9a-f]{6}$`).MatchString(id) {
		t.Fatalf("unexpected thread id %q", id)
	}

	// append an iteration with an arbitrary payload
	w = e.do(t, http.MethodPost, "/api/projects/demo/threads/"+id+"/iterations", `{"foo":1}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add iteration status %d: %s", w.Code, w.Body.String())
	}

	// read back
	w = e.do(t, http.MethodGet, "/api/projects/demo/threads/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status %d", w.Code)
	}
	got := data(t, w)["thread"].(map[string]any)
	iters := got["iterations"].([]any)
	if len(iters) != 1 {
		t.Fatalf("expected 1 iteration, got %d", len(iters))
	}
	if iters[0].(map[string]any)["foo"] != float64(1) {
		t.Fatalf("iteration payload lost: %v", iters[0])
	}

	// list shows it
	w = e.do(t, http.MethodGet, "/api/projects/demo/threads", "")
	if threads := data(t, w)["threads"].([]any); len(threads) != 1 {
		t.Fatalf("expected 1 thread in listing, got %d", len(threads))
	}

	// update merges fields, keeps identity
	w = e.do(t, http.MethodPut, "/api/projects/demo/threads/"+id, `{"title":"renamed","project":"hijack"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status %d", w.Code)
	}
	updated := data(t, w)["thread"].(map[string]any)
	if updated["title"] != "renamed" || updated["project"] != "demo" {
		t.Fatalf("unexpected update result: %v", updated)
	}

	// delete, then 404
	w = e.do(t, http.MethodDelete, "/api/projects/demo/threads/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status %d", w.Code)
	}
	w = e.do(t, http.MethodDelete, "/api/projects/demo/threads/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on re-delete, got %d", w.Code)
	}
}

func TestProjectRoutes(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	w := e.do(t, http.MethodGet, "/api/projects", "")
	projects := data(t, w)["projects"].([]any)
	if len(projects) != 1 || projects[0] != "demo" {
		t.Fatalf("unexpected projects: %v", projects)
	}

	w = e.do(t, http.MethodGet, "/api/projects/unknown/tree", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown project, got %d", w.Code)
	}

	w = e.do(t, http.MethodGet, "/api/projects/demo/file?path=main.go", "")
	if d := data(t, w); d["content"] != "package main\n" {
		t.Fatalf("unexpected file content: %v", d)
	}

	w = e.do(t, http.MethodGet, "/api/projects/demo/file?path=../../etc/passwd", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("traversal must 404, got %d", w.Code)
	}

	w = e.do(t, http.MethodGet, "/api/projects/demo/file", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing path must 400, got %d", w.Code)
	}
}

func TestPersonaRoutes(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	w := e.do(t, http.MethodGet, "/api/personas", "")
	if ps := data(t, w)["personas"].([]any); len(ps) == 0 {
		t.Fatalf("expected personas")
	}

	w = e.do(t, http.MethodPost, "/api/analyze", `{"query":"audit the security of our api"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("analyze status %d", w.Code)
	}

	w = e.do(t, http.MethodPost, "/api/estimate", `{"modelIds":["gpt-4o"],"query":"hello"}`)
	est := data(t, w)["estimate"].(map[string]any)
	if est["totalUsd"].(float64) <= 0 {
		t.Fatalf("expected positive estimate, got %v", est)
	}

	w = e.do(t, http.MethodPost, "/api/analyze", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing query must 400, got %d", w.Code)
	}
}

func TestRunsUnavailableWithoutQueue(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	w := e.do(t, http.MethodPost, "/api/projects/demo/threads/thread_1_abcdef/runs",
		`{"model":"m1","prompt":"x"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without queue, got %d", w.Code)
	}
}
