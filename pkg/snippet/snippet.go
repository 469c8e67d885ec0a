// Package snippet renders partner-supplied code snippets. Stored snippets are
// untrusted: they are only ever emitted as the escaped srcdoc of a sandboxed
// iframe without allow-same-origin, so a snippet cannot read the host page,
// its cookies, or another tenant's content.
package snippet

import (
	"bytes"
	"html/template"
	"strings"
)

// Sandbox flags granted to snippet frames.
const Sandbox = "allow-scripts allow-popups"

var frameTemplate = template.Must(template.New("frame").Parse(
	`<iframe sandbox="` + Sandbox + `" referrerpolicy="no-referrer" loading="lazy" title="{{.Title}}" style="border:0;width:0;height:0;position:absolute" srcdoc="{{.Code}}"></iframe>`,
))

// Slot is where a snippet is placed on a partner page.
type Slot string

const (
	SlotHeader Slot = "header"
	SlotBody   Slot = "body"
	SlotFooter Slot = "footer"
)

// Rendered holds ready-to-embed markup per slot; empty snippets stay empty.
type Rendered struct {
	Header string `json:"header"`
	Body   string `json:"body"`
	Footer string `json:"footer"`
}

// Frame renders one snippet.
func Frame(slot Slot, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	err := frameTemplate.Execute(&buf, struct {
		Title string
		Code  string
	}{Title: "partner-" + string(slot) + "-snippet", Code: code})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render renders all three slots.
func Render(header, body, footer string) (*Rendered, error) {
	var out Rendered
	var err error
	if out.Header, err = Frame(SlotHeader, header); err != nil {
		return nil, err
	}
	if out.Body, err = Frame(SlotBody, body); err != nil {
		return nil, err
	}
	if out.Footer, err = Frame(SlotFooter, footer); err != nil {
		return nil, err
	}
	return &out, nil
}
