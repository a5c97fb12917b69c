package embedclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	codenames "github.com/bcspragu/spymaster"
	"github.com/google/go-cmp/cmp"
)

type fakeService struct {
	t      *testing.T
	vecs   map[string][]float32
	secret string

	mu      sync.Mutex
	prompts []string
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/api/embeddings" {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if f.secret != "" && r.Header.Get("Authorization") != f.secret {
		http.Error(w, "bad secret", http.StatusUnauthorized)
		return
	}
	var req struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}
	if req.Model != "nomic-embed-text" {
		http.Error(w, "unknown model", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.prompts = append(f.prompts, req.Prompt)
	f.mu.Unlock()

	v, ok := f.vecs[req.Prompt]
	if !ok {
		http.Error(w, "no such word", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"embedding": v})
}

func TestEmbed(t *testing.T) {
	svc := &fakeService{
		t: t,
		vecs: map[string][]float32{
			"ocean": {1, 0, 0},
			"river": {0.9, 0.2, 0.1},
			"fire":  {0, 1, 0},
		},
		secret: "hunter2",
	}
	srv := httptest.NewServer(svc)
	defer srv.Close()

	c := New(srv.URL+"/", "nomic-embed-text", WithSecret("hunter2"), WithHTTPClient(srv.Client()), WithParallelism(2))
	got, err := c.Embed(context.Background(), []string{"OCEAN", "River", "fire"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	want := []codenames.Vector{{1, 0, 0}, {0.9, 0.2, 0.1}, {0, 1, 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected vectors (-want +got)\n%s", diff)
	}
	if n := len(svc.prompts); n != 3 {
		t.Errorf("service got %d requests, want 3", n)
	}
}

func TestEmbedErrors(t *testing.T) {
	svc := &fakeService{
		t:      t,
		vecs:   map[string][]float32{"ocean": {1, 0}, "void": {}},
		secret: "hunter2",
	}
	srv := httptest.NewServer(svc)
	defer srv.Close()

	tests := []struct {
		desc    string
		client  *Client
		words   []string
		wantMsg string
	}{
		{
			desc:    "unknown word",
			client:  New(srv.URL, "nomic-embed-text", WithSecret("hunter2")),
			words:   []string{"ocean", "xyzzy"},
			wantMsg: "[500] error from server: no such word",
		},
		{
			desc:    "wrong secret",
			client:  New(srv.URL, "nomic-embed-text", WithSecret("nope")),
			words:   []string{"ocean"},
			wantMsg: "[401] error from server: bad secret",
		},
		{
			desc:    "empty embedding",
			client:  New(srv.URL, "nomic-embed-text", WithSecret("hunter2")),
			words:   []string{"void"},
			wantMsg: "empty embedding",
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			_, err := test.client.Embed(context.Background(), test.words)
			if !errors.Is(err, codenames.ErrEmbedding) {
				t.Fatalf("Embed returned %v, want ErrEmbedding", err)
			}
			if !strings.Contains(err.Error(), test.wantMsg) {
				t.Errorf("error %q doesn't mention %q", err, test.wantMsg)
			}
		})
	}
}

func TestEmbedCanceled(t *testing.T) {
	srv := httptest.NewServer(&fakeService{t: t})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(srv.URL, "nomic-embed-text").Embed(ctx, []string{"ocean"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Embed with a canceled context returned %v, want context.Canceled", err)
	}
}

func TestWithParallelism(t *testing.T) {
	tests := []struct {
		desc string
		n    int
		want int
	}{
		{desc: "positive", n: 9, want: 9},
		{desc: "zero is ignored", n: 0, want: DefaultParallelism},
		{desc: "negative is ignored", n: -3, want: DefaultParallelism},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			c := New("http://localhost:11434", "nomic-embed-text", WithParallelism(test.n))
			if c.parallel != test.want {
				t.Errorf("parallel = %d, want %d", c.parallel, test.want)
			}
		})
	}
}
