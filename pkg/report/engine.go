package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Engine renders a Layout into document bytes, entirely in memory.
type Engine interface {
	Name() string
	Ext() string // File extension including the dot
	MediaType() string
	Render(ctx context.Context, l Layout) ([]byte, error)
}

// Engine names.
const (
	EngineHTML = "html"
	EnginePDF  = "pdf"
)

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
  <head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>img { width: 100%; max-width: 400px; height: auto; }</style>
  </head>
  <body>
{{.Body}}
  </body>
</html>
`))

var bodyTemplate = template.Must(template.New("body").Parse(`    <h1>{{.Title}}</h1>
{{- range .Fields}}
    <p><strong>{{.Label}}:</strong> {{.Value}}</p>
{{- end}}
    <h2>{{.Photo.Heading}}:</h2>
    <img src="{{.PhotoSrc}}" alt="{{.Photo.Ref}}">`))

// bodyPolicy is the allowlist applied to the rendered report body.
// Images must be base64 data URIs; every other URL is dropped.
var bodyPolicy = newBodyPolicy()

func newBodyPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h1", "h2", "p", "strong")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.RequireParseableURLs(true)
	p.AllowDataURIImages()
	return p
}

// HTMLEngine renders reports as standalone HTML documents.
type HTMLEngine struct{}

// NewHTMLEngine creates the HTML engine.
func NewHTMLEngine() *HTMLEngine {
	return &HTMLEngine{}
}

func (e *HTMLEngine) Name() string      { return EngineHTML }
func (e *HTMLEngine) Ext() string       { return ".html" }
func (e *HTMLEngine) MediaType() string { return "text/html; charset=utf-8" }

// Render executes the page template. Field values are escaped by the
// template and the body is passed through bodyPolicy, so only the photo
// may carry a URL and only as an image data URI.
func (e *HTMLEngine) Render(ctx context.Context, l Layout) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(l.Photo.DataURI, "data:image/") {
		return nil, fmt.Errorf("photo is not an image data URI")
	}

	data := struct {
		Layout
		PhotoSrc template.URL
	}{
		Layout:   l,
		PhotoSrc: template.URL(l.Photo.DataURI),
	}

	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	clean := bodyPolicy.SanitizeBytes(body.Bytes())
	if !bytes.Contains(clean, []byte(`src="data:image/`)) {
		return nil, fmt.Errorf("photo data URI rejected by sanitizer")
	}

	var buf bytes.Buffer
	page := struct {
		Lang  string
		Title string
		Body  template.HTML
	}{
		Lang:  l.Lang,
		Title: l.Title,
		Body:  template.HTML(clean),
	}
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

var _ Engine = (*HTMLEngine)(nil)
