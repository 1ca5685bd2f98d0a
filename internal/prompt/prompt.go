// Package prompt renders the instruction sent to the completion provider
// from an on-disk template.
package prompt

import (
	"fmt"
	"os"
	"strings"
	"text/template"
)

type Data struct {
	TotalQuestions int
	Subject        string
	Language       string
	Theme          string
}

type Builder struct {
	tmpl *template.Template
}

// Load reads and parses the template file. A missing or malformed
// template is fatal to quiz creation, so callers should load once at
// startup.
func Load(path string) (*Builder, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt template %s: %w", path, err)
	}
	tmpl, err := template.New("quiz_prompt").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %s: %w", path, err)
	}
	return &Builder{tmpl: tmpl}, nil
}

func (b *Builder) Render(d Data) (string, error) {
	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, d); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return sb.String(), nil
}
