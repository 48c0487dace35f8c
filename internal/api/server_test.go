package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fakeinput/internal/actions"
	"fakeinput/internal/input"
	"fakeinput/internal/protocol"

	"github.com/gorilla/websocket"
)

type fakeExecutor struct {
	mu    sync.Mutex
	runs  [][]actions.Action
	err   error
	panic atomic.Bool
}

func (f *fakeExecutor) Execute(ctx context.Context, acts []actions.Action) (int, error) {
	if f.panic.Load() {
		panic("backend exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, acts)
	if f.err != nil {
		return 1, f.err
	}
	return len(acts), nil
}

func (f *fakeExecutor) runCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.runs)
}

type fakeDescriber struct{}

func (fakeDescriber) Describe() []input.KeyInfo {
	return []input.KeyInfo{{Key: "A", Supported: true, Native: 0x41, Code: 0x1E, Virtual: 0x41, Name: "A"}}
}

func newTestServer(t *testing.T, token string) (*Server, *fakeExecutor, *httptest.Server) {
	t.Helper()
	exec := &fakeExecutor{}
	s := NewServer(exec, fakeDescriber{}, "test", token)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return s, exec, ts
}

func doRequest(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeResult(t *testing.T, resp *http.Response) protocol.ResultPayload {
	t.Helper()
	var res protocol.ResultPayload
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	return res
}

func TestHealthSkipsAuth(t *testing.T) {
	_, _, ts := newTestServer(t, "secret")

	resp := doRequest(t, http.MethodGet, ts.URL+"/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	_, _, ts := newTestServer(t, "secret")

	for _, token := range []string{"", "wrong"} {
		resp := doRequest(t, http.MethodGet, ts.URL+"/api/status", token, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Token %q: expected 401, got %d", token, resp.StatusCode)
		}
	}

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/status", "secret", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 with token, got %d", resp.StatusCode)
	}
}

func TestPostActions(t *testing.T) {
	_, exec, ts := newTestServer(t, "")

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/actions", "", protocol.RunPayload{
		ID:      "r1",
		Actions: []actions.Action{{Op: actions.OpTap, Key: "A"}},
		Script:  "wait 5\nclick right",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	res := decodeResult(t, resp)
	if !res.OK || res.ID != "r1" || res.Steps != 3 {
		t.Errorf("Unexpected result %+v", res)
	}
	if exec.runCount() != 1 {
		t.Fatalf("Expected 1 run, got %d", exec.runCount())
	}
	got := exec.runs[0]
	if len(got) != 3 || got[0].Op != actions.OpTap || got[1].Op != actions.OpWait || got[2].Button != "right" {
		t.Errorf("Expected actions then script, got %+v", got)
	}
}

func TestPostActionsInvalid(t *testing.T) {
	_, exec, ts := newTestServer(t, "")

	tests := []protocol.RunPayload{
		{ID: "bad-script", Script: "tap A\nfly away"},
		{ID: "bad-action", Actions: []actions.Action{{Op: actions.OpTap, Key: "Hyper"}}},
	}
	for _, req := range tests {
		resp := doRequest(t, http.MethodPost, ts.URL+"/api/actions", "", req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", req.ID, resp.StatusCode)
		}
		res := decodeResult(t, resp)
		if res.OK || res.Error == "" {
			t.Errorf("%s: expected error result, got %+v", req.ID, res)
		}
	}
	if exec.runCount() != 0 {
		t.Errorf("Expected nothing to run, got %d runs", exec.runCount())
	}
}

func TestPostActionsExecutionFailure(t *testing.T) {
	_, exec, ts := newTestServer(t, "secret")
	exec.err = errors.New("command not found")

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/actions", "secret", protocol.RunPayload{
		Script: "tap A\nrun missing",
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", resp.StatusCode)
	}
	res := decodeResult(t, resp)
	if res.OK || res.Steps != 1 || !strings.Contains(res.Error, "command not found") {
		t.Errorf("Unexpected result %+v", res)
	}
}

func TestPostActionsBadBody(t *testing.T) {
	_, _, ts := newTestServer(t, "")

	resp, err := http.Post(ts.URL+"/api/actions", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, _, ts := newTestServer(t, "")

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/actions", "", nil)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", resp.StatusCode)
	}
	resp = doRequest(t, http.MethodPost, ts.URL+"/api/keys", "", nil)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", resp.StatusCode)
	}
}

func TestKeys(t *testing.T) {
	_, _, ts := newTestServer(t, "")

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/keys", "", nil)
	var body struct {
		Backend string          `json:"backend"`
		Keys    []input.KeyInfo `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Backend != "test" || len(body.Keys) != 1 || body.Keys[0].Code != 0x1E {
		t.Errorf("Unexpected key table %+v", body)
	}
}

func TestStatusCountsRuns(t *testing.T) {
	_, _, ts := newTestServer(t, "")

	doRequest(t, http.MethodPost, ts.URL+"/api/actions", "", protocol.RunPayload{Script: "tap A"})

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/status", "", nil)
	var status map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status["backend"] != "test" || status["runs"] != float64(1) || status["busy"] != false {
		t.Errorf("Unexpected status %v", status)
	}
}

func TestRecoverFromPanic(t *testing.T) {
	_, exec, ts := newTestServer(t, "")
	exec.panic.Store(true)

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/actions", "", protocol.RunPayload{Script: "tap A"})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", resp.StatusCode)
	}

	exec.panic.Store(false)
	resp = doRequest(t, http.MethodPost, ts.URL+"/api/actions", "", protocol.RunPayload{Script: "tap A"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected server to keep working after a panic, got %d", resp.StatusCode)
	}
}

func dialWS(t *testing.T, ts *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendWS(t *testing.T, conn *websocket.Conn, typ protocol.MessageType, payload interface{}) {
	t.Helper()
	msg, err := protocol.NewMessage(typ, payload)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatal(err)
	}
}

// readWS returns the next message of type typ
func readWS(t *testing.T, conn *websocket.Conn, typ protocol.MessageType) protocol.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var msg protocol.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if msg.Type == typ {
			return msg
		}
	}
}

func TestWebSocketRun(t *testing.T) {
	_, exec, ts := newTestServer(t, "secret")
	conn := dialWS(t, ts, nil)

	sendWS(t, conn, protocol.TypeAuth, protocol.AuthPayload{Token: "secret"})
	sendWS(t, conn, protocol.TypeRun, protocol.RunPayload{ID: "ws1", Script: "chord Ctrl+C"})

	var res protocol.ResultPayload
	if err := readWS(t, conn, protocol.TypeResult).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if !res.OK || res.ID != "ws1" || res.Steps != 1 {
		t.Errorf("Unexpected result %+v", res)
	}
	if exec.runCount() != 1 {
		t.Errorf("Expected 1 run, got %d", exec.runCount())
	}
}

func TestWebSocketKeysAndPing(t *testing.T) {
	_, _, ts := newTestServer(t, "secret")
	header := http.Header{}
	header.Set("Authorization", "Bearer secret")
	conn := dialWS(t, ts, header)

	sendWS(t, conn, protocol.TypeKeysRequest, nil)
	var keys struct {
		Backend string          `json:"backend"`
		Keys    []input.KeyInfo `json:"keys"`
	}
	if err := readWS(t, conn, protocol.TypeKeysResponse).Decode(&keys); err != nil {
		t.Fatal(err)
	}
	if keys.Backend != "test" || len(keys.Keys) != 1 {
		t.Errorf("Unexpected key table %+v", keys)
	}

	sendWS(t, conn, protocol.TypePing, nil)
	readWS(t, conn, protocol.TypePing)
}

func TestWebSocketRejectsUnauthenticated(t *testing.T) {
	_, exec, ts := newTestServer(t, "secret")
	conn := dialWS(t, ts, nil)

	sendWS(t, conn, protocol.TypeRun, protocol.RunPayload{ID: "x", Script: "tap A"})

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("Expected the server to close the connection")
	}
	if exec.runCount() != 0 {
		t.Errorf("Expected nothing to run, got %d runs", exec.runCount())
	}
}

func TestWebSocketBroadcastsHTTPRuns(t *testing.T) {
	_, _, ts := newTestServer(t, "")
	conn := dialWS(t, ts, nil)

	// Wait until the hub has registered the client.
	sendWS(t, conn, protocol.TypePing, nil)
	readWS(t, conn, protocol.TypePing)

	doRequest(t, http.MethodPost, ts.URL+"/api/actions", "", protocol.RunPayload{ID: "http1", Script: "tap A"})

	var res protocol.ResultPayload
	if err := readWS(t, conn, protocol.TypeResult).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.ID != "http1" || !res.OK {
		t.Errorf("Unexpected broadcast %+v", res)
	}
}

func TestConsoleSkipsAuth(t *testing.T) {
	_, _, ts := newTestServer(t, "secret")

	resp := doRequest(t, http.MethodGet, ts.URL+"/", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	resp = doRequest(t, http.MethodGet, ts.URL+"/other", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 for other paths, got %d", resp.StatusCode)
	}
}

func TestRunNeedsToken(t *testing.T) {
	_, exec, ts := newTestServer(t, "")

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/actions", "", protocol.RunPayload{Script: "tap A\nrun calc"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
	res := decodeResult(t, resp)
	if res.OK || !strings.Contains(res.Error, "token") {
		t.Errorf("Expected token error, got %+v", res)
	}
	if exec.runCount() != 0 {
		t.Errorf("Expected nothing to run, got %d runs", exec.runCount())
	}

	_, exec, ts = newTestServer(t, "secret")
	resp = doRequest(t, http.MethodPost, ts.URL+"/api/actions", "secret", protocol.RunPayload{Script: "run calc"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 with a token, got %d", resp.StatusCode)
	}
	if exec.runCount() != 1 {
		t.Errorf("Expected 1 run, got %d", exec.runCount())
	}
}

func TestCrossOriginPostRejected(t *testing.T) {
	_, exec, ts := newTestServer(t, "")

	tests := []struct {
		name        string
		origin      string
		contentType string
		want        int
	}{
		{"foreign origin", "http://evil.example", "application/json", http.StatusForbidden},
		{"foreign origin text", "http://evil.example", "text/plain", http.StatusForbidden},
		{"simple form type", "", "text/plain", http.StatusUnsupportedMediaType},
		{"no type", "", "", http.StatusUnsupportedMediaType},
		{"same origin", ts.URL, "application/json; charset=utf-8", http.StatusOK},
	}
	for _, tt := range tests {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/actions", strings.NewReader(`{"script":"tap A"}`))
		if err != nil {
			t.Fatal(err)
		}
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		if tt.contentType != "" {
			req.Header.Set("Content-Type", tt.contentType)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, resp.StatusCode)
		}
	}
	if exec.runCount() != 1 {
		t.Errorf("Expected only the same-origin request to run, got %d runs", exec.runCount())
	}
}

func TestCrossOriginGetRejected(t *testing.T) {
	_, _, ts := newTestServer(t, "")

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/keys", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Origin", "http://evil.example")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", resp.StatusCode)
	}
}

func TestCrossOriginWebSocketRejected(t *testing.T) {
	_, exec, ts := newTestServer(t, "")
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		conn.Close()
		t.Fatal("Expected the upgrade to be refused")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403, got %v", resp)
	}
	if exec.runCount() != 0 {
		t.Errorf("Expected nothing to run, got %d runs", exec.runCount())
	}

	header.Set("Origin", ts.URL)
	conn = dialWS(t, ts, header)
	sendWS(t, conn, protocol.TypePing, nil)
	readWS(t, conn, protocol.TypePing)
}

func TestWebSocketRunNeedsToken(t *testing.T) {
	_, exec, ts := newTestServer(t, "")
	conn := dialWS(t, ts, nil)

	sendWS(t, conn, protocol.TypeRun, protocol.RunPayload{ID: "cmd", Script: "run calc"})

	var res protocol.ResultPayload
	if err := readWS(t, conn, protocol.TypeResult).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.OK || res.ID != "cmd" || !strings.Contains(res.Error, "token") {
		t.Errorf("Expected token error, got %+v", res)
	}
	if exec.runCount() != 0 {
		t.Errorf("Expected nothing to run, got %d runs", exec.runCount())
	}
}
