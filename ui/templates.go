package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"strconv"

	"maridash/app"
	"maridash/domain/topic"
	"maridash/ui/templates/fragments"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// parseTemplates loads every registered template from fsys, naming each by
// its path so fragments can be addressed as "fragments/x.html".
func parseTemplates(fsys fs.FS) (*template.Template, error) {
	tmpl := template.New("").Funcs(template.FuncMap{
		"markdown":     renderMarkdown,
		"number":       formatNumber,
		"tableSection": newTableSection,
	})

	for _, name := range fragments.GetAllTemplatePaths() {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", name, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
	}
	return tmpl, nil
}

// renderMarkdown turns a topic description into HTML. Raw HTML in the
// source is dropped.
func renderMarkdown(md string) template.HTML {
	if md == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.HrefTargetBlank,
	})
	return template.HTML(markdown.ToHTML([]byte(md), p, r))
}

// tableSection is the data of fragments/table_section.html
type tableSection struct {
	app.Section
	ExportURL string
}

func newTableSection(s app.Section, t topic.Topic) tableSection {
	return tableSection{
		Section:   s,
		ExportURL: "/export/" + s.Category.Name + "?topic=" + url.QueryEscape(t.Label),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// renderTemplate executes a template into a buffer first so a failing
// template never leaves a half-written response.
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("template %s failed: %v", templateName, err)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("writing %s response: %v", templateName, err)
	}
}
