package arxiv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title type="html">ArXiv Query: search_query=all:ppo</title>
  <entry>
    <id>http://arxiv.org/abs/1707.06347v2</id>
    <title>Proximal Policy Optimization
 Algorithms</title>
    <summary>  We propose a new family of policy gradient methods.
</summary>
    <link href="http://arxiv.org/abs/1707.06347v2" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/1707.06347v2" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/9999.00001v1</id>
    <title>Entry Without PDF</title>
    <summary>No file here.</summary>
    <link href="http://arxiv.org/abs/9999.00001v1" rel="alternate" type="text/html"/>
  </entry>
</feed>`

func TestSearchParsesAtomFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all:ppo", r.URL.Query().Get("search_query"))
		assert.Equal(t, "10", r.URL.Query().Get("max_results"))
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	p := New(Config{BaseURL: server.URL})
	results, err := p.Search(context.Background(), "ppo", 10)
	require.NoError(t, err)

	// Entries without a PDF link are skipped.
	require.Len(t, results, 1)
	assert.Equal(t, "Proximal Policy Optimization Algorithms", results[0].Title)
	assert.Equal(t, "We propose a new family of policy gradient methods.", results[0].Abstract)
	assert.Equal(t, "http://arxiv.org/abs/1707.06347v2", results[0].URL)
	assert.Equal(t, "http://arxiv.org/pdf/1707.06347v2", results[0].SourceURL)
}

func TestSearchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := New(Config{BaseURL: server.URL})
	_, err := p.Search(context.Background(), "anything", 5)
	assert.Error(t, err)
}

func TestDownloadWritesProviderNamedFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("%PDF-1.5 fake body"))
	}))
	defer server.Close()

	dir := t.TempDir()
	p := New(Config{})
	result := driven.PaperResult{
		Title:     "Some Paper",
		SourceURL: server.URL + "/pdf/1707.06347v2",
	}

	local, err := p.Download(context.Background(), result, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "1707.06347v2.pdf"), local)

	data, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.5 fake body", string(data))
}

func TestDownloadRequiresSourceURL(t *testing.T) {
	p := New(Config{})
	_, err := p.Download(context.Background(), driven.PaperResult{Title: "x"}, t.TempDir())
	assert.Error(t, err)
}

func TestDefaultFileName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://arxiv.org/pdf/1707.06347v2", "1707.06347v2.pdf"},
		{"http://arxiv.org/pdf/1707.06347v2.pdf", "1707.06347v2.pdf"},
		{"", "paper.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, defaultFileName(tt.url))
	}
}
