package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"munidocs/internal/domain"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>body{font-family:Georgia,serif;max-width:800px;margin:2em auto;line-height:1.5}</style>
</head>
<body>
%s</body>
</html>
`

// RenderDocument renders doc in the requested format.
func RenderDocument(doc *domain.Document, format domain.ExportFormat) ([]byte, error) {
	switch format {
	case domain.ExportFormatText:
		return []byte(doc.Body), nil
	case domain.ExportFormatMarkdown:
		return []byte(toMarkdown(doc)), nil
	case domain.ExportFormatHTML:
		var body bytes.Buffer
		if err := markdown.Convert([]byte(toMarkdown(doc)), &body); err != nil {
			return nil, fmt.Errorf("rendering html: %w", err)
		}
		return []byte(fmt.Sprintf(htmlTemplate, html.EscapeString(doc.Title), body.String())), nil
	default:
		return nil, domain.ErrUnsupportedFormat
	}
}

func toMarkdown(doc *domain.Document) string {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString("# ")
		b.WriteString(doc.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(doc.Body)
	if !strings.HasSuffix(doc.Body, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}
