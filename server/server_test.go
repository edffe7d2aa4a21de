package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bkocaman/harbor/component"
	"github.com/bkocaman/harbor/logger"
)

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) > 0 {
		if p, ok := dest[0].(*string); ok {
			*p = r.value
		}
	}
	return nil
}

type fakePool struct {
	row     fakeRow
	lastSQL string
}

func (p *fakePool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (p *fakePool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	p.lastSQL = sql
	return p.row
}

func (p *fakePool) Ping(ctx context.Context) error { return nil }

func (p *fakePool) Close() {}

func testLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Output: "stderr"}, "test")
}

func newTestService(t *testing.T, cfg Config, pool *fakePool) *Service {
	t.Helper()
	cfg.ApplyDefaults()
	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>home</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	return New(cfg, pool, staticDir, testLogger())
}

func doRequest(svc *Service, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	svc.engine.ServeHTTP(w, req)
	return w
}

func TestHello(t *testing.T) {
	svc := newTestService(t, Config{}, &fakePool{})

	w := doRequest(svc, http.MethodGet, "/hello")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "Hello, world!" {
		t.Errorf("body = %q, want %q", got, "Hello, world!")
	}
}

func TestMessageReturnsRow(t *testing.T) {
	pool := &fakePool{row: fakeRow{value: "Hello from harbor!"}}
	svc := newTestService(t, Config{}, pool)

	w := doRequest(svc, http.MethodGet, "/message")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "Hello from harbor!" {
		t.Errorf("body = %q", got)
	}
	if !strings.Contains(pool.lastSQL, "SELECT message FROM messages LIMIT 1") {
		t.Errorf("unexpected query: %q", pool.lastSQL)
	}
}

func TestMessageErrorDetailInBody(t *testing.T) {
	pool := &fakePool{row: fakeRow{err: errors.New("relation does not exist")}}
	svc := newTestService(t, Config{MessageErrorDetail: DetailInBody}, pool)

	w := doRequest(svc, http.MethodGet, "/message")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if got := w.Body.String(); got != "relation does not exist" {
		t.Errorf("body = %q, want the error text", got)
	}
}

func TestMessageErrorLogOnly(t *testing.T) {
	pool := &fakePool{row: fakeRow{err: errors.New("relation does not exist")}}
	svc := newTestService(t, Config{MessageErrorDetail: DetailLogOnly}, pool)

	w := doRequest(svc, http.MethodGet, "/message")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if got := w.Body.String(); strings.Contains(got, "relation") {
		t.Errorf("body %q leaks the error text", got)
	}
}

func TestStaticServesIndexAtRoot(t *testing.T) {
	svc := newTestService(t, Config{}, &fakePool{})

	w := doRequest(svc, http.MethodGet, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "<h1>home</h1>" {
		t.Errorf("body = %q", got)
	}
}

func TestStaticMissingFileIs404(t *testing.T) {
	svc := newTestService(t, Config{}, &fakePool{})

	w := doRequest(svc, http.MethodGet, "/nope.txt")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestStaticTraversalStaysInsideRoot(t *testing.T) {
	svc := newTestService(t, Config{}, &fakePool{})

	w := doRequest(svc, http.MethodGet, "/../../etc/passwd")
	if w.Code == http.StatusOK && strings.Contains(w.Body.String(), "root:") {
		t.Fatal("path traversal escaped the static directory")
	}
}

func TestComponentHealthNamesServer(t *testing.T) {
	svc := newTestService(t, Config{}, &fakePool{})
	comp := NewComponent(svc, "127.0.0.1:0")

	h := comp.Health(context.Background())
	if h.Name != "http-server" {
		t.Errorf("health name = %q, want http-server", h.Name)
	}
	if h.Status != component.StatusUnhealthy {
		t.Errorf("status = %q, want unhealthy before Bind", h.Status)
	}

	if err := comp.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer comp.Stop(context.Background())

	h = comp.Health(context.Background())
	if h.Name != "http-server" || h.Status != component.StatusHealthy {
		t.Errorf("health = %+v, want named healthy report after Bind", h)
	}
}

func TestBindServesAndShutsDown(t *testing.T) {
	svc := newTestService(t, Config{}, &fakePool{})

	if err := svc.Bind("127.0.0.1:0"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	addr := svc.Addr()
	if addr == "" {
		t.Fatal("Addr empty after Bind")
	}

	resp, err := http.Get("http://" + addr + "/hello")
	if err != nil {
		t.Fatalf("GET /hello: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svc.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if err := svc.Bind(addr); err == nil {
		t.Error("second Bind succeeded, want error")
	}
}
