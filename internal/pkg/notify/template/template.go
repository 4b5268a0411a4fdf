// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package template

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateType represents the flow a template belongs to
type TemplateType string

const (
	TemplateTypeOnboarding TemplateType = "onboarding"
)

// Template is one email layout: a fixed subject and an html/template body.
type Template struct {
	ID          string
	Type        TemplateType
	Subject     string
	Content     string
	Variables   []string
	Description string
}

// TemplateEngine parses templates once and renders them with HTML escaping.
type TemplateEngine struct {
	funcMap template.FuncMap
	mu      sync.RWMutex
	parsed  map[string]*template.Template
	byId    map[string]*Template
}

func NewTemplateEngine(templates ...*Template) (*TemplateEngine, error) {
	titleCaser := cases.Title(language.English)
	e := &TemplateEngine{
		funcMap: template.FuncMap{
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
			"title": titleCaser.String,
			"trim":  strings.TrimSpace,
		},
		parsed: make(map[string]*template.Template),
		byId:   make(map[string]*Template),
	}
	for _, t := range templates {
		if err := e.Register(t); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *TemplateEngine) Register(t *Template) error {
	if t.ID == "" {
		return fmt.Errorf("template id is required")
	}
	tmpl, err := template.New(t.ID).Funcs(e.funcMap).Option("missingkey=error").Parse(t.Content)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", t.ID, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.parsed[t.ID] = tmpl
	e.byId[t.ID] = t
	return nil
}

// Render returns the subject and HTML body of template id.
func (e *TemplateEngine) Render(id string, data map[string]any) (string, string, error) {
	e.mu.RLock()
	tmpl, ok := e.parsed[id]
	t := e.byId[id]
	e.mu.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("template %s not found", id)
	}
	for _, v := range t.Variables {
		if _, ok := data[v]; !ok {
			return "", "", fmt.Errorf("template %s: missing variable %s", id, v)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", id, err)
	}
	return t.Subject, buf.String(), nil
}
