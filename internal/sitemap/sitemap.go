// Package sitemap renders the site map for the published glossary: the
// static pages, one URL per term, the category pages and the alphabetical
// index pages.
package sitemap

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/glosskit/glossflow/internal/model"
)

// staticPage is one fixed site page with its crawl hints.
type staticPage struct {
	path       string
	priority   string
	changeFreq string
}

var staticPages = []staticPage{
	{"/", "1.0", "weekly"},
	{"/search", "0.9", "daily"},
	{"/about", "0.7", "monthly"},
	{"/contribute", "0.7", "monthly"},
	{"/workflow", "0.6", "monthly"},
	{"/contributors", "0.6", "weekly"},
	{"/organizations", "0.6", "weekly"},
}

// categorySlugs are the browsable category pages, in site navigation order.
var categorySlugs = []string{"ml", "dl", "nlp", "cv", "rl", "gai"}

// Generate renders the sitemap XML for the given base URL and term set.
func Generate(baseURL string, terms []model.Term, now time.Time) string {
	lastMod := now.Format("2006-01-02")
	base := strings.TrimSuffix(baseURL, "/")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	for _, page := range staticPages {
		writeURL(&b, base+page.path, lastMod, page.changeFreq, page.priority)
	}

	for _, term := range terms {
		if term.ID == "" {
			continue
		}
		loc := fmt.Sprintf("%s/term/%s", base, url.PathEscape(term.ID))
		writeURL(&b, loc, lastMod, "monthly", "0.8")
	}

	for _, slug := range categorySlugs {
		writeURL(&b, base+"/category/"+slug, lastMod, "weekly", "0.7")
	}

	for c := 'a'; c <= 'z'; c++ {
		writeURL(&b, base+"/index/"+string(c), lastMod, "weekly", "0.5")
	}

	b.WriteString("</urlset>\n")
	return b.String()
}

func writeURL(b *strings.Builder, loc, lastMod, changeFreq, priority string) {
	fmt.Fprintf(b, "  <url>\n")
	fmt.Fprintf(b, "    <loc>%s</loc>\n", loc)
	fmt.Fprintf(b, "    <lastmod>%s</lastmod>\n", lastMod)
	fmt.Fprintf(b, "    <changefreq>%s</changefreq>\n", changeFreq)
	fmt.Fprintf(b, "    <priority>%s</priority>\n", priority)
	fmt.Fprintf(b, "  </url>\n")
}
