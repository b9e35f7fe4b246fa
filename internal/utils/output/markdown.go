package output

import (
	"fmt"
	"html"
	"io"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/jobhub/pkg/models"
	xhtml "golang.org/x/net/html"
)

// WriteMarkdown renders each site as a heading plus a GitHub-flavored table.
// Rows are built as HTML first so cell text is escaped consistently, then
// converted.
func WriteMarkdown(w io.Writer, results []models.SiteResult) error {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	cleaned, err := CleanHTML(resultsHTML(results))
	if err != nil {
		return err
	}

	mdStr, err := converter.ConvertString(cleaned)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, strings.TrimSpace(mdStr)+"\n")
	return err
}

func resultsHTML(results []models.SiteResult) string {
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "<h2>%s</h2>\n", html.EscapeString(r.Site))
		if len(r.Jobs) == 0 {
			sb.WriteString("<p>No results</p>\n")
			continue
		}

		cols := Columns(r.Jobs)
		sb.WriteString("<table><thead><tr>")
		for _, c := range cols {
			fmt.Fprintf(&sb, "<th>%s</th>", html.EscapeString(heading(c)))
		}
		sb.WriteString("</tr></thead><tbody>\n")

		for _, job := range r.Jobs {
			sb.WriteString("<tr>")
			for _, c := range cols {
				v := html.EscapeString(job[c])
				if c == models.FieldURL && v != "" && v != models.NoURL {
					v = fmt.Sprintf(`<a href="%s">link</a>`, v)
				}
				fmt.Fprintf(&sb, "<td>%s</td>", v)
			}
			sb.WriteString("</tr>\n")
		}
		sb.WriteString("</tbody></table>\n")
	}
	return sb.String()
}

// CleanHTML strips scripts, styles and every attribute except link targets
func CleanHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, link, meta, noscript, iframe, svg, form").Remove()

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		node := s.Nodes[0]
		var kept []xhtml.Attribute
		for _, attr := range node.Attr {
			if node.Data == "a" && (attr.Key == "href" || attr.Key == "title") {
				kept = append(kept, attr)
			}
		}
		node.Attr = kept
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
