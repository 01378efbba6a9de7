package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ReceivedRequest is what the mock saw for one call.
type ReceivedRequest struct {
	Headers map[string]string
	Queries map[string]string
}

type stubResponse struct {
	status int
	body   any
}

// ApiMock stands in for the external record sources.
// Unknown paths answer 200 with an empty JSON array.
type ApiMock struct {
	mu        sync.Mutex
	responses map[string]stubResponse
	received  map[string][]ReceivedRequest
	server    *httptest.Server
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		responses: map[string]stubResponse{},
		received:  map[string][]ReceivedRequest{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	if a.server == nil {
		return ""
	}
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	got := ReceivedRequest{Headers: map[string]string{}, Queries: map[string]string{}}
	for k, v := range r.Header {
		got.Headers[k] = v[0]
	}
	for k, v := range r.URL.Query() {
		got.Queries[k] = v[0]
	}

	a.mu.Lock()
	a.received[key] = append(a.received[key], got)
	stub, ok := a.responses[key]
	a.mu.Unlock()

	if !ok {
		stub = stubResponse{status: http.StatusOK, body: []any{}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(stub.status)
	_ = json.NewEncoder(w).Encode(stub.body)
}

// SetResponse makes every call to method+path answer with status and body.
func (a *ApiMock) SetResponse(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+path] = stubResponse{status: status, body: body}
}

// GetRequests returns the calls received on method+path, oldest first.
func (a *ApiMock) GetRequests(method, path string) []ReceivedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]ReceivedRequest, len(a.received[method+path]))
	copy(out, a.received[method+path])
	return out
}

// Reset drops stubs and recorded calls.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses = map[string]stubResponse{}
	a.received = map[string][]ReceivedRequest{}
}
