package embeddings

import (
	"math"
	"path/filepath"
	"testing"

	"vec-go/internal/vocab"
)

func testEmbeddings(t *testing.T) *WordEmbeddings {
	t.Helper()
	v, err := vocab.FromTokens([]string{"king", "queen", "apple"})
	if err != nil {
		t.Fatalf("FromTokens failed: %v", err)
	}
	e, err := New(v, [][]float32{
		{1, 0, 0.1},
		{0.9, 0.1, 0},
		{0, 1, 0},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func TestNew_RejectsMismatch(t *testing.T) {
	v, _ := vocab.FromTokens([]string{"a", "b"})
	if _, err := New(v, [][]float32{{1, 0}}); err == nil {
		t.Fatal("expected error on row count mismatch")
	}
	if _, err := New(v, [][]float32{{1, 0}, {1}}); err == nil {
		t.Fatal("expected error on ragged matrix")
	}
}

func TestGet(t *testing.T) {
	e := testEmbeddings(t)
	if e.Dim() != 3 {
		t.Fatalf("expected dim 3, got %d", e.Dim())
	}
	if vec := e.Get("queen"); vec == nil || vec[0] != 0.9 {
		t.Fatalf("unexpected vector for queen: %v", vec)
	}
	if e.Get("unknown") != nil {
		t.Fatal("expected nil for OOV token")
	}
}

func TestNearestNeighbors(t *testing.T) {
	e := testEmbeddings(t)
	neighbors, err := e.NearestNeighbors("king", 2)
	if err != nil {
		t.Fatalf("NearestNeighbors failed: %v", err)
	}
	if len(neighbors) != 2 {
		t.Fatalf("expected 2 neighbors, got %v", neighbors)
	}
	if neighbors[0].Token != "queen" {
		t.Fatalf("expected queen closest to king, got %v", neighbors)
	}
	for _, n := range neighbors {
		if n.Token == "king" {
			t.Fatal("query token must not appear in its own neighbors")
		}
	}

	if _, err := e.NearestNeighbors("unknown", 2); err == nil {
		t.Fatal("expected error for OOV query")
	}
}

func TestNormalize(t *testing.T) {
	e := testEmbeddings(t)
	e.Normalize()
	for id := 0; id < 3; id++ {
		row := e.GetByID(id)
		var sum float64
		for _, x := range row {
			sum += float64(x) * float64(x)
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("row %d not unit length: %v", id, row)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	e := testEmbeddings(t)
	for _, gzipped := range []bool{false, true} {
		dir := filepath.Join(t.TempDir(), "emb")
		if err := e.SaveToDir(dir, gzipped); err != nil {
			t.Fatalf("SaveToDir(gzip=%v) failed: %v", gzipped, err)
		}
		loaded, err := LoadFromDir(dir)
		if err != nil {
			t.Fatalf("LoadFromDir(gzip=%v) failed: %v", gzipped, err)
		}
		if loaded.Dim() != e.Dim() {
			t.Fatalf("dim mismatch: %d vs %d", loaded.Dim(), e.Dim())
		}
		for _, token := range []string{"king", "queen", "apple"} {
			want := e.Get(token)
			got := loaded.Get(token)
			if got == nil {
				t.Fatalf("token %q lost in round trip", token)
			}
			for i := range want {
				if math.Abs(float64(want[i]-got[i])) > 1e-6 {
					t.Fatalf("vector mismatch for %q: %v vs %v", token, got, want)
				}
			}
		}
	}
}
