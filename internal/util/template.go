// Package util holds small internal helpers shared by public packages.
package util

import (
	"bytes"
	"strings"
	"text/template"
)

// RenderTemplate renders a prompt template against data using text/template.
// This lives in internal to avoid committing to public API stability prematurely.
func RenderTemplate(name, text string, data any) (string, error) {
	if !strings.Contains(text, "{{") { // fast path: no template markers
		return text, nil
	}

	tmpl, err := template.New(name).Option("missingkey=error").Funcs(template.FuncMap{
		"default": func(defaultVal any, val any) any {
			if val == nil || val == "" {
				return defaultVal
			}
			return val
		},
		"trim":  strings.TrimSpace,
		"upper": strings.ToUpper,
	}).Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
