package sitemap

import (
	"strings"
	"testing"
	"time"

	"github.com/glosskit/glossflow/internal/model"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	terms := []model.Term{
		{ID: "machine-learning", English: "Machine Learning"},
		{ID: "", English: "draft entry without slug"},
		{ID: "q&a", English: "Q&A"},
	}

	out := Generate("https://glossary.example.org/", terms, now)

	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Error("missing urlset element")
	}

	// The trailing slash on the base URL must not double up.
	if !strings.Contains(out, "<loc>https://glossary.example.org/</loc>") {
		t.Error("missing home page URL")
	}
	if strings.Contains(out, "example.org//") {
		t.Error("base URL slash doubled")
	}

	if !strings.Contains(out, "<loc>https://glossary.example.org/term/machine-learning</loc>") {
		t.Error("missing term URL")
	}
	if strings.Contains(out, "/term/</loc>") {
		t.Error("term without an ID must be skipped")
	}
	if !strings.Contains(out, "/term/q&a") {
		t.Error("term ID not path-escaped")
	}

	if !strings.Contains(out, "<lastmod>2025-03-14</lastmod>") {
		t.Error("missing lastmod date")
	}
	if !strings.HasSuffix(out, "</urlset>\n") {
		t.Error("missing closing urlset")
	}
}

func TestGenerateStaticPages(t *testing.T) {
	out := Generate("https://glossary.example.org", nil, time.Now())
	for _, path := range []string{"/search", "/about", "/contribute", "/workflow", "/contributors", "/organizations"} {
		if !strings.Contains(out, "<loc>https://glossary.example.org"+path+"</loc>") {
			t.Errorf("missing static page %s", path)
		}
	}
	// 7 static pages, 6 category pages, 26 index pages.
	if got := strings.Count(out, "<url>"); got != 39 {
		t.Errorf("url count = %d, want 39", got)
	}
}

func TestGenerateCategoryAndIndexPages(t *testing.T) {
	out := Generate("https://glossary.example.org", nil, time.Now())

	for _, slug := range []string{"ml", "dl", "nlp", "cv", "rl", "gai"} {
		if !strings.Contains(out, "<loc>https://glossary.example.org/category/"+slug+"</loc>") {
			t.Errorf("missing category page %s", slug)
		}
	}
	for c := 'a'; c <= 'z'; c++ {
		if !strings.Contains(out, "<loc>https://glossary.example.org/index/"+string(c)+"</loc>") {
			t.Errorf("missing index page %c", c)
		}
	}

	categoryBlock := strings.Index(out, "/category/ml</loc>")
	if categoryBlock < 0 {
		t.Fatal("missing category block")
	}
	rest := out[categoryBlock:]
	if !strings.Contains(rest[:strings.Index(rest, "</url>")], "<priority>0.7</priority>") {
		t.Error("category page priority != 0.7")
	}
	indexBlock := strings.Index(out, "/index/a</loc>")
	rest = out[indexBlock:]
	if !strings.Contains(rest[:strings.Index(rest, "</url>")], "<priority>0.5</priority>") {
		t.Error("index page priority != 0.5")
	}
	if !strings.Contains(rest[:strings.Index(rest, "</url>")], "<changefreq>weekly</changefreq>") {
		t.Error("index page changefreq != weekly")
	}
}
