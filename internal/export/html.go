package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const htmlPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Transaction Logs</title></head>
<body>
%s</body>
</html>
`

// HTML converts a Markdown report into a standalone page.
func HTML(w io.Writer, markdown string) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return fmt.Errorf("failed to convert markdown: %w", err)
	}
	_, err := fmt.Fprintf(w, htmlPage, body.Bytes())
	return err
}
