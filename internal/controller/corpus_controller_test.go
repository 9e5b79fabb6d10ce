package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vec-go/internal/corpus"
	"vec-go/internal/tokenizer"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cc := NewCorpusController(tokenizer.NewDefaultRegistry(), nil, nil, nil, "", zap.NewNop())
	router := gin.New()
	router.POST("/tokenize", cc.Tokenize)
	router.POST("/window", cc.Window)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWindow_RejectsNegativeSizes(t *testing.T) {
	router := newTestRouter()

	for _, body := range []string{
		`{"text":"a b c","left_ctx_size":-1,"right_ctx_size":1}`,
		`{"text":"a b c","left_ctx_size":1,"right_ctx_size":-1}`,
	} {
		w := postJSON(t, router, "/window", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d: %s", body, w.Code, w.Body.String())
		}
	}
}

func TestWindow_PreviewsSamples(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/window", `{"text":"The dog runs.","left_ctx_size":2,"right_ctx_size":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Samples []corpus.Sample `json:"samples"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(response.Samples) != 4 {
		t.Fatalf("expected 4 samples, got %v", response.Samples)
	}
	second := response.Samples[1]
	if second.Current != "dog" {
		t.Fatalf("expected center dog, got %q", second.Current)
	}
	want := []string{"The", "runs", "."}
	if len(second.Context) != len(want) {
		t.Fatalf("expected context %v, got %v", want, second.Context)
	}
	for i := range want {
		if second.Context[i] != want[i] {
			t.Fatalf("context position %d: expected %q, got %q", i, want[i], second.Context[i])
		}
	}
}

func TestTokenize_UnknownLanguage(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/tokenize", `{"text":"hello","language":"xx"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown language, got %d", w.Code)
	}
}
