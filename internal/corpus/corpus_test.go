package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"vec-go/internal/tokenizer"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func writeGzipFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	defer f.Close()
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatalf("gzip write failed: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close failed: %v", err)
	}
}

func drain[T any](t *testing.T, it Iterator[T]) []T {
	t.Helper()
	var out []T
	for {
		sample, err := it.Next()
		if err == Done {
			return out
		}
		if err != nil {
			t.Fatalf("unexpected iteration error: %v", err)
		}
		out = append(out, sample)
	}
}

func TestFileIterator_YieldsPathOnce(t *testing.T) {
	it := NewFileIterator("/some/file.txt")

	path, err := it.Next()
	if err != nil {
		t.Fatalf("first Next failed: %v", err)
	}
	if path != "/some/file.txt" {
		t.Fatalf("expected /some/file.txt, got %s", path)
	}
	if _, err := it.Next(); err != Done {
		t.Fatalf("expected Done after single path, got %v", err)
	}
	if _, err := it.Next(); err != Done {
		t.Fatalf("Done must be sticky, got %v", err)
	}
}

func TestDirIterator_YieldsAllFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "sub", "deep", "c.txt"), "c")

	paths := drain[string](t, NewDirIterator(dir, zap.NewNop()))
	if len(paths) != 3 {
		t.Fatalf("expected 3 paths, got %d: %v", len(paths), paths)
	}
	// order is filesystem-dependent; check set membership
	seen := make(map[string]bool)
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			t.Errorf("expected absolute path, got %s", p)
		}
		seen[filepath.Base(p)] = true
	}
	for _, want := range []string{"a.txt", "b.txt", "c.txt"} {
		if !seen[want] {
			t.Errorf("missing file %s in %v", want, paths)
		}
	}
}

func TestDirIterator_DanglingSymlinkErrorsAtOpen(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "hello\n")
	if err := os.Symlink(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "z-dangling.txt")); err != nil {
		t.Skipf("symlinks not supported here: %v", err)
	}

	// the walk lists the dangling link like any other file
	paths := drain[string](t, NewDirIterator(dir, zap.NewNop()))
	if len(paths) != 2 {
		t.Fatalf("expected dangling link among listed paths, got %v", paths)
	}

	// the failure belongs to the stage that opens the file
	lines := NewLineIterator(NewDirIterator(dir, zap.NewNop()))
	sawErr := false
	for {
		_, err := lines.Next()
		if err == Done {
			break
		}
		if err != nil {
			sawErr = true
			break
		}
	}
	if !sawErr {
		t.Fatal("expected an open error for the dangling link, got clean exhaustion")
	}
}

func TestDirIterator_EmptyDir(t *testing.T) {
	paths := drain[string](t, NewDirIterator(t.TempDir(), zap.NewNop()))
	if len(paths) != 0 {
		t.Fatalf("expected no paths from empty dir, got %v", paths)
	}
}

func TestLineIterator_StripsAndSkipsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "  first line  \n\n\t\nsecond line\n   \n")

	lines := drain[string](t, NewDirCorpus(dir, zap.NewNop()))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "first line" || lines[1] != "second line" {
		t.Fatalf("unexpected lines: %v", lines)
	}
	for _, l := range lines {
		if l == "" {
			t.Fatal("line iterator yielded an empty string")
		}
	}
}

func TestLineIterator_TransparentGzip(t *testing.T) {
	dir := t.TempDir()
	writeGzipFile(t, filepath.Join(dir, "corpus.txt.gz"), "compressed line one\ncompressed line two\n")

	lines := drain[string](t, NewDirCorpus(dir, zap.NewNop()))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines from gzip file, got %v", lines)
	}
	if lines[0] != "compressed line one" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
}

func TestLineIterator_GzipDetectedBySignature(t *testing.T) {
	dir := t.TempDir()
	// gzip content behind a plain .txt name must still decompress
	writeGzipFile(t, filepath.Join(dir, "disguised.txt"), "hidden line\n")

	lines := drain[string](t, NewFileCorpus(filepath.Join(dir, "disguised.txt")))
	if len(lines) != 1 || lines[0] != "hidden line" {
		t.Fatalf("signature detection failed, got %v", lines)
	}
}

func TestLineIterator_MissingFileErrorsAtIteration(t *testing.T) {
	it := NewFileCorpus("/nonexistent/path/xyz.txt")
	// construction must not touch the filesystem; only Next surfaces the error
	if _, err := it.Next(); err == nil || err == Done {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestTokenizedSequenceIterator_ExpandsLines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "First one. Second one.\n")

	it := NewTokenizedSequenceIterator(NewDirCorpus(dir, zap.NewNop()), tokenizer.NewWordTokenizer())
	sentences := drain[[]string](t, it)
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences from one line, got %d: %v", len(sentences), sentences)
	}
}

func TestTokenIterator_Flattens(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "one two. three\n")

	tokens := drain[string](t, NewDirTokenCorpus(dir, tokenizer.NewWordTokenizer(), zap.NewNop()))
	want := []string{"one", "two", ".", "three"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %v, got %v", want, tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d: expected %q, got %q", i, want[i], tokens[i])
		}
	}
}

func TestIterator_Idempotence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha beta gamma. delta epsilon.\n")

	first := drain[string](t, NewDirTokenCorpus(dir, tokenizer.NewWordTokenizer(), zap.NewNop()))
	second := drain[string](t, NewDirTokenCorpus(dir, tokenizer.NewWordTokenizer(), zap.NewNop()))
	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("runs differ at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestMetadata_NestedAndStable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "x y z.\n")

	it := NewDirTokenCorpus(dir, tokenizer.NewWordTokenizer(), zap.NewNop())
	before := it.Metadata()
	if before["class"] != "TokenIterator" {
		t.Fatalf("unexpected class: %v", before["class"])
	}
	nested, ok := before["base_corpus"].(Metadata)
	if !ok {
		t.Fatalf("base_corpus not nested metadata: %T", before["base_corpus"])
	}
	if nested["class"] != "TokenizedSequenceIterator" {
		t.Fatalf("unexpected nested class: %v", nested["class"])
	}
	if nested["tokenizer"] != "word" {
		t.Fatalf("expected tokenizer identity in metadata, got %v", nested["tokenizer"])
	}

	drain[string](t, it)

	after := it.Metadata()
	if after["class"] != before["class"] {
		t.Fatal("metadata changed after consumption")
	}
	nestedAfter := after["base_corpus"].(Metadata)
	if nestedAfter["tokenizer"] != nested["tokenizer"] {
		t.Fatal("nested metadata changed after consumption")
	}
}

func TestChainIterator(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFile(t, filepath.Join(dirA, "a.txt"), "a1\na2\n")
	writeFile(t, filepath.Join(dirB, "b.txt"), "b1\n")

	chained := NewChainIterator[string](
		NewDirCorpus(dirA, zap.NewNop()),
		NewDirCorpus(dirB, zap.NewNop()),
	)
	lines := drain[string](t, chained)
	if len(lines) != 3 {
		t.Fatalf("expected 3 chained lines, got %v", lines)
	}
	if lines[0] != "a1" || lines[2] != "b1" {
		t.Fatalf("chain order wrong: %v", lines)
	}
}

func TestTruncatedIterator(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "1\n2\n3\n4\n5\n")

	lines := drain[string](t, NewTruncatedIterator[string](NewDirCorpus(dir, zap.NewNop()), 3))
	if len(lines) != 3 {
		t.Fatalf("expected 3 truncated lines, got %v", lines)
	}
}
