package template

import (
	"bytes"
	"embed"
	"html/template"
	"path"
)

const (
	MailConfirm = "mail/confirm.html"
	MailContact = "mail/contact.html"
)

//go:embed mail/*.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "mail/*.html"))

// Render executes an embedded template with the given data and returns the result as a string.
func Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, path.Base(name), data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
