package views

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	vm "github.com/credpanel/credpanel/internal/adapter/driving/web/viewmodel"
)

// CredentialsPage renders the credential list: toolbar, table (or the
// content error in its place), pagination footer, and the deletion error
// modal when open.
func CredentialsPage(m vm.CredentialListViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer

		buf.WriteString("<main class=\"credential-list\">\n")
		buf.WriteString("<h1>Credentials</h1>\n")

		renderToolbar(&buf, m)

		if m.ContentError != "" {
			fmt.Fprintf(&buf,
				"<div class=\"content-error\" role=\"alert\">Failed to load credentials: %s</div>\n",
				templ.EscapeString(m.ContentError))
		} else {
			renderTable(&buf, m)
			renderPagination(&buf, m.Pagination)
		}

		if m.ErrorModal.Open {
			renderErrorModal(&buf, m)
		}

		buf.WriteString("</main>\n")

		_, err := w.Write(buf.Bytes())
		return err
	})
}

func renderToolbar(buf *bytes.Buffer, m vm.CredentialListViewModel) {
	t := m.Toolbar

	buf.WriteString("<div class=\"toolbar\">\n")

	fmt.Fprintf(buf, "<form method=\"post\" action=\"/app/credentials/select-all\" class=\"select-all-form\">\n")
	writeActionFields(buf, m)
	fmt.Fprintf(buf,
		"<label><input type=\"checkbox\" name=\"all\" data-submit-on-change%s%s> Select all</label>\n",
		checkedAttr(t.AllSelected), disabledAttr(t.Disabled))
	buf.WriteString("<noscript><button type=\"submit\">Apply</button></noscript>\n")
	buf.WriteString("</form>\n")

	if t.CanAdd {
		fmt.Fprintf(buf, "<button type=\"button\" class=\"add-credential\"%s>Add credential</button>\n",
			disabledAttr(t.Disabled))
	}

	fmt.Fprintf(buf, "<form method=\"post\" action=\"/app/credentials/delete\" class=\"delete-form\" data-confirm=\"Delete %d selected credential(s)?\">\n", t.SelectedCount)
	writeActionFields(buf, m)
	fmt.Fprintf(buf, "<button type=\"submit\" class=\"delete-selected\"%s>Delete selected (%d)</button>\n",
		disabledAttr(t.Disabled || t.SelectedCount == 0), t.SelectedCount)
	buf.WriteString("</form>\n")

	buf.WriteString("</div>\n")
}

func renderTable(buf *bytes.Buffer, m vm.CredentialListViewModel) {
	if len(m.Rows) == 0 {
		buf.WriteString("<p class=\"empty\">No credentials.</p>\n")
		return
	}

	buf.WriteString("<table>\n<thead><tr>")
	buf.WriteString("<th></th><th>Name</th><th>Kind</th><th>Description</th><th>Notes</th><th>Modified</th>")
	buf.WriteString("</tr></thead>\n<tbody>\n")

	for _, row := range m.Rows {
		fmt.Fprintf(buf, "<tr data-credential-id=\"%s\"%s>\n",
			templ.EscapeString(row.ID), selectedClassAttr(row.Selected))

		buf.WriteString("<td><form method=\"post\" action=\"/app/credentials/select\">\n")
		writeActionFields(buf, m)
		fmt.Fprintf(buf, "<input type=\"hidden\" name=\"id\" value=\"%s\">\n", templ.EscapeString(row.ID))
		fmt.Fprintf(buf,
			"<input type=\"checkbox\" name=\"selected\" data-submit-on-change%s%s>\n",
			checkedAttr(row.Selected), disabledAttr(m.Toolbar.Disabled))
		buf.WriteString("<noscript><button type=\"submit\">Toggle</button></noscript>\n")
		buf.WriteString("</form></td>\n")

		fmt.Fprintf(buf, "<td>%s</td>\n", templ.EscapeString(row.Name))
		fmt.Fprintf(buf, "<td>%s</td>\n", templ.EscapeString(row.Kind))
		fmt.Fprintf(buf, "<td>%s</td>\n", templ.EscapeString(row.Description))
		// NotesHTML is already sanitized markdown output.
		fmt.Fprintf(buf, "<td class=\"notes\">%s</td>\n", row.NotesHTML)
		fmt.Fprintf(buf, "<td>%s</td>\n", templ.EscapeString(row.ModifiedAt))

		buf.WriteString("</tr>\n")
	}

	buf.WriteString("</tbody>\n</table>\n")
}

func renderPagination(buf *bytes.Buffer, p vm.PaginationViewModel) {
	buf.WriteString("<nav class=\"pagination\">\n")

	if p.HasPrev {
		fmt.Fprintf(buf, "<a rel=\"prev\" href=\"%s\">Previous</a>\n", templ.EscapeString(p.PrevURL))
	}

	if p.TotalCount == 0 {
		buf.WriteString("<span class=\"range\">0 of 0</span>\n")
	} else {
		fmt.Fprintf(buf, "<span class=\"range\">%d&ndash;%d of %d</span>\n",
			p.StartIndex, p.EndIndex, p.TotalCount)
	}

	if p.HasNext {
		fmt.Fprintf(buf, "<a rel=\"next\" href=\"%s\">Next</a>\n", templ.EscapeString(p.NextURL))
	}

	buf.WriteString("</nav>\n")
}

func renderErrorModal(buf *bytes.Buffer, m vm.CredentialListViewModel) {
	buf.WriteString("<div class=\"modal-backdrop\">\n")
	buf.WriteString("<div class=\"modal error-modal\" role=\"alertdialog\" aria-modal=\"true\">\n")
	buf.WriteString("<h2>Deletion failed</h2>\n")
	fmt.Fprintf(buf, "<p>%s</p>\n", templ.EscapeString(m.ErrorModal.Detail))

	buf.WriteString("<form method=\"post\" action=\"/app/credentials/dismiss-error\">\n")
	writeActionFields(buf, m)
	buf.WriteString("<button type=\"submit\">Dismiss</button>\n")
	buf.WriteString("</form>\n")

	buf.WriteString("</div>\n</div>\n")
}

// writeActionFields emits the hidden fields every mutation form carries:
// the CSRF token and the current list query, so the handler can redirect
// back to the same page.
func writeActionFields(buf *bytes.Buffer, m vm.CredentialListViewModel) {
	fmt.Fprintf(buf, "<input type=\"hidden\" name=\"csrf_token\" value=\"%s\">\n",
		templ.EscapeString(m.CSRFToken))
	fmt.Fprintf(buf, "<input type=\"hidden\" name=\"q\" value=\"%s\">\n",
		templ.EscapeString(m.ActionQuery))
}

func checkedAttr(on bool) string {
	if on {
		return " checked"
	}
	return ""
}

func disabledAttr(on bool) string {
	if on {
		return " disabled"
	}
	return ""
}

func selectedClassAttr(on bool) string {
	if on {
		return " class=\"selected\""
	}
	return ""
}
