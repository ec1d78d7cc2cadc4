package catalog

import (
	"desafiabrasil/internal/model"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gosimple/slug"
)

// Catalog is the immutable set of exam templates, built once at startup
type Catalog struct {
	templates map[string]model.ExamTemplate
	order     []string
}

// New validates templates and builds a catalog. A template without an ID
// gets one derived from its name.
func New(templates []model.ExamTemplate) (*Catalog, error) {
	if len(templates) == 0 {
		return nil, errors.New("catalog has no templates")
	}

	c := &Catalog{
		templates: make(map[string]model.ExamTemplate, len(templates)),
		order:     make([]string, 0, len(templates)),
	}
	for _, t := range templates {
		if t.ID == "" {
			t.ID = slug.Make(t.Name)
		}
		if err := validate(t); err != nil {
			return nil, fmt.Errorf("template %q: %w", t.ID, err)
		}
		if _, dup := c.templates[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		c.templates[t.ID] = clone(t)
		c.order = append(c.order, t.ID)
	}
	return c, nil
}

// Default returns the compiled-in catalog
func Default() *Catalog {
	c, err := New(DefaultTemplates())
	if err != nil {
		panic("catalog: invalid default templates: " + err.Error())
	}
	return c
}

// LoadFile reads a JSON array of templates. An empty path yields the default catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var templates []model.ExamTemplate
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return New(templates)
}

// Get returns a copy of the template with the given id
func (c *Catalog) Get(id string) (model.ExamTemplate, bool) {
	t, ok := c.templates[id]
	if !ok {
		return model.ExamTemplate{}, false
	}
	return clone(t), true
}

// List returns copies of all templates in declaration order
func (c *Catalog) List() []model.ExamTemplate {
	out := make([]model.ExamTemplate, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, clone(c.templates[id]))
	}
	return out
}

// Len returns the number of templates
func (c *Catalog) Len() int {
	return len(c.order)
}

func validate(t model.ExamTemplate) error {
	var errs []string
	if t.ID != slug.Make(t.ID) {
		errs = append(errs, "id must be a lowercase slug")
	}
	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, "name is required")
	}
	if !t.Type.Valid() {
		errs = append(errs, fmt.Sprintf("unknown type %q", t.Type))
	}
	if len(t.Quotas) == 0 {
		errs = append(errs, "at least one subject quota is required")
	}
	seen := make(map[model.Subject]bool)
	for _, q := range t.Quotas {
		if !q.Subject.Valid() {
			errs = append(errs, fmt.Sprintf("unknown subject %q", q.Subject))
		}
		if seen[q.Subject] {
			errs = append(errs, fmt.Sprintf("subject %q listed twice", q.Subject))
		}
		seen[q.Subject] = true
		if q.Count <= 0 {
			errs = append(errs, fmt.Sprintf("quota for %q must be positive", q.Subject))
		}
	}
	for _, d := range t.Difficulties {
		if !d.Valid() {
			errs = append(errs, fmt.Sprintf("unknown difficulty %q", d))
		}
	}
	if t.TimeLimitMinutes <= 0 {
		errs = append(errs, "time limit must be positive")
	}
	if t.PointsPerQuestion <= 0 {
		errs = append(errs, "points per question must be positive")
	}
	if t.BonusBadge != "" && t.Type != model.TemplateSimulado {
		errs = append(errs, "only simulado templates carry a bonus badge")
	}
	if t.BonusBadge == "" && t.Type == model.TemplateSimulado {
		errs = append(errs, "simulado templates need a bonus badge")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func clone(t model.ExamTemplate) model.ExamTemplate {
	t.Quotas = append([]model.SubjectQuota(nil), t.Quotas...)
	t.Difficulties = append([]model.Difficulty(nil), t.Difficulties...)
	return t
}
