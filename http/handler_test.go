package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foorensic/ddns-server/nsupdate"
	"github.com/foorensic/ddns-server/types"

	"github.com/gin-gonic/gin"
)

// captureRunner implements nsupdate.Runner and records every transaction
// it receives.
type captureRunner struct {
	rendered []string
	err      error
}

func (r *captureRunner) Run(_ context.Context, tx *nsupdate.Transaction) (*nsupdate.Outcome, error) {
	r.rendered = append(r.rendered, tx.Render())
	if r.err != nil {
		return nil, r.err
	}
	return &nsupdate.Outcome{}, nil
}

func setupTestRouter(t *testing.T, runner nsupdate.Runner) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := nsupdate.NewService(nsupdate.Builder{Server: "127.0.0.1", Zone: "example.com", TTL: 3600}, runner)
	srv, err := NewServer(ServerConfig{Listen: ":0", Username: "admin", Password: "secret"}, svc)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return srv.Engine()
}

func doRequest(router *gin.Engine, path, user, pass string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != "" {
		req.SetBasicAuth(user, pass)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseResult(t *testing.T, w *httptest.ResponseRecorder) types.UpdateResult {
	t.Helper()
	var result types.UpdateResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response: %v, body: %s", err, w.Body.String())
	}
	return result
}

// --- Health & Status ---

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t, &captureRunner{})
	w := doRequest(router, "/health", "", "")

	if w.Code != 200 {
		t.Fatalf("GET /health status = %d, want 200", w.Code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	router := setupTestRouter(t, &captureRunner{})
	w := doRequest(router, "/status", "", "")

	if w.Code != 200 {
		t.Fatalf("GET /status status = %d, want 200", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupTestRouter(t, &captureRunner{})
	w := doRequest(router, "/metrics", "", "")

	if w.Code != 200 {
		t.Fatalf("GET /metrics status = %d, want 200", w.Code)
	}
}

// --- Auth ---

func TestAuthMissingCredentials(t *testing.T) {
	router := setupTestRouter(t, &captureRunner{})
	w := doRequest(router, "/api/v1/A/update?host=foo&value=10.0.0.5", "", "")

	if w.Code != 401 {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := w.Header().Get("WWW-Authenticate"); !strings.HasPrefix(got, "Basic") {
		t.Errorf("WWW-Authenticate = %q, want Basic challenge", got)
	}
}

func TestAuthWrongPassword(t *testing.T) {
	runner := &captureRunner{}
	router := setupTestRouter(t, runner)
	w := doRequest(router, "/api/v1/A/update?host=foo&value=10.0.0.5", "admin", "wrong")

	if w.Code != 401 {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if len(runner.rendered) != 0 {
		t.Error("runner invoked despite failed auth")
	}
}

func TestAuthValidCredentials(t *testing.T) {
	router := setupTestRouter(t, &captureRunner{})
	w := doRequest(router, "/api/v1/A/update?host=foo&value=10.0.0.5", "admin", "secret")

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
}

// --- Client IP ---

func TestIPEndpoint(t *testing.T) {
	router := setupTestRouter(t, &captureRunner{})
	w := doRequest(router, "/api/v1/ip", "", "")

	if w.Code != 200 {
		t.Fatalf("GET /api/v1/ip status = %d, want 200", w.Code)
	}
	// httptest.NewRequest always sets RemoteAddr to 192.0.2.1:1234.
	if got := w.Body.String(); got != "192.0.2.1" {
		t.Errorf("body = %q, want 192.0.2.1", got)
	}
}

// --- Record updates ---

func TestUpdateRecord(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantSuccess bool
		wantMessage string
		wantLine    string
	}{
		{
			name:        "A update with explicit value",
			path:        "/api/v1/A/update?host=foo&value=10.0.0.5",
			wantStatus:  200,
			wantSuccess: true,
			wantMessage: "Updated record: foo A 10.0.0.5",
			wantLine:    "update add foo.example.com 3600 A 10.0.0.5",
		},
		{
			name:        "A update defaults to client address",
			path:        "/api/v1/A/update?host=foo",
			wantStatus:  200,
			wantSuccess: true,
			wantMessage: "Updated record: foo A 192.0.2.1",
			wantLine:    "update add foo.example.com 3600 A 192.0.2.1",
		},
		{
			name:        "multiple hosts",
			path:        "/api/v1/A/update?host=foo&host=bar&value=10.0.0.5",
			wantStatus:  200,
			wantSuccess: true,
			wantMessage: "Updated record: foo, bar A 10.0.0.5",
			wantLine:    "update add bar.example.com 3600 A 10.0.0.5",
		},
		{
			name:        "TXT update",
			path:        "/api/v1/TXT/update?host=foo&value=hello",
			wantStatus:  200,
			wantSuccess: true,
			wantMessage: `Updated record: foo TXT "hello"`,
			wantLine:    `update add foo.example.com 3600 TXT "hello"`,
		},
		{
			name:        "TXT delete omits value",
			path:        "/api/v1/TXT/delete?host=foo",
			wantStatus:  200,
			wantSuccess: true,
			wantMessage: "Deleted record: foo TXT",
			wantLine:    "update delete foo.example.com TXT",
		},
		{
			name:       "invalid IP value",
			path:       "/api/v1/A/update?host=foo&value=not-an-ip",
			wantStatus: 400,
		},
		{
			name:       "unknown record type",
			path:       "/api/v1/MX/update?host=foo&value=10.0.0.5",
			wantStatus: 400,
		},
		{
			name:       "unknown method",
			path:       "/api/v1/A/upsert?host=foo&value=10.0.0.5",
			wantStatus: 400,
		},
		{
			name:       "missing host",
			path:       "/api/v1/A/update?value=10.0.0.5",
			wantStatus: 400,
		},
		{
			name:       "invalid host",
			path:       "/api/v1/A/update?host=-foo&value=10.0.0.5",
			wantStatus: 400,
		},
		{
			name:       "empty TXT value",
			path:       "/api/v1/TXT/update?host=foo",
			wantStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &captureRunner{}
			router := setupTestRouter(t, runner)
			w := doRequest(router, tt.path, "admin", "secret")

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			result := parseResult(t, w)
			if result.Success != tt.wantSuccess {
				t.Errorf("success = %v, want %v", result.Success, tt.wantSuccess)
			}

			if tt.wantStatus != 200 {
				if len(runner.rendered) != 0 {
					t.Error("runner invoked despite validation failure")
				}
				return
			}

			if result.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", result.Message, tt.wantMessage)
			}
			if len(runner.rendered) != 1 {
				t.Fatalf("runner invoked %d times, want 1", len(runner.rendered))
			}
			if !strings.Contains(runner.rendered[0], tt.wantLine) {
				t.Errorf("transaction %q missing line %q", runner.rendered[0], tt.wantLine)
			}
		})
	}
}

func TestUpdateRecordToolFailure(t *testing.T) {
	runner := &captureRunner{err: &types.ExecError{ExitCode: 2, Stderr: "REFUSED"}}
	router := setupTestRouter(t, runner)
	w := doRequest(router, "/api/v1/A/update?host=foo&value=10.0.0.5", "admin", "secret")

	if w.Code != 500 {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	result := parseResult(t, w)
	if result.Success {
		t.Error("success = true, want false")
	}
	if strings.Contains(result.Message, "REFUSED") {
		t.Errorf("message = %q leaks tool diagnostics", result.Message)
	}
}
