// Package views contains the templ components for the web GUI. The
// components are plain Go so the page markup and its view model stay in
// one place; all dynamic text is escaped, raw emission is reserved for
// HTML the web adapter already sanitized.
package views

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps a page component in the full HTML document shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		buf.WriteString("<meta charset=\"utf-8\">\n")
		buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		fmt.Fprintf(&buf, "<title>%s</title>\n", templ.EscapeString(title))
		buf.WriteString("<link rel=\"stylesheet\" href=\"/static/app.css\">\n")
		buf.WriteString("<script src=\"/static/js/app.js\" defer></script>\n")
		buf.WriteString("</head>\n<body>\n")

		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n</body>\n</html>\n")
		return err
	})
}
