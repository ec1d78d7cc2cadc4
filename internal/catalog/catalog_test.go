package catalog

import (
	"desafiabrasil/internal/model"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != len(DefaultTemplates()) {
		t.Fatalf("Len() = %d, want %d", c.Len(), len(DefaultTemplates()))
	}

	tmpl, ok := c.Get("matematica-intensivo")
	if !ok {
		t.Fatal("matematica-intensivo missing from default catalog")
	}
	if got := tmpl.TotalQuestions(); got != 30 {
		t.Errorf("TotalQuestions() = %d, want 30", got)
	}
	if tmpl.AllowsDifficulty(model.DifficultyEasy) {
		t.Error("matematica-intensivo should not allow easy questions")
	}

	for _, tmpl := range c.List() {
		if tmpl.BonusBadge != "" && tmpl.Type != model.TemplateSimulado {
			t.Errorf("%s: bonus badge on non-simulado template", tmpl.ID)
		}
	}
}

func TestGetReturnsCopy(t *testing.T) {
	c := Default()
	tmpl, _ := c.Get("enem-completo")
	tmpl.Quotas[0].Count = 999
	tmpl.Difficulties[0] = model.DifficultyHard

	again, _ := c.Get("enem-completo")
	if again.Quotas[0].Count == 999 {
		t.Error("mutating a returned template changed the catalog quotas")
	}
	if again.Difficulties[0] == model.DifficultyHard {
		t.Error("mutating a returned template changed the catalog difficulties")
	}
}

func TestNewDerivesIDFromName(t *testing.T) {
	c, err := New([]model.ExamTemplate{{
		Name:              "Química Básica",
		Type:              model.TemplatePractice,
		Quotas:            []model.SubjectQuota{{Subject: model.SubjectChemistry, Count: 5}},
		TimeLimitMinutes:  10,
		PointsPerQuestion: 5,
	}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := c.Get("quimica-basica"); !ok {
		t.Errorf("expected slug id quimica-basica, have %v", c.List())
	}
}

func TestNewRejectsInvalidTemplates(t *testing.T) {
	base := model.ExamTemplate{
		ID:                "ok",
		Name:              "Ok",
		Type:              model.TemplatePractice,
		Quotas:            []model.SubjectQuota{{Subject: model.SubjectBiology, Count: 3}},
		TimeLimitMinutes:  10,
		PointsPerQuestion: 10,
	}

	tests := []struct {
		name   string
		mutate func(*model.ExamTemplate)
		want   string
	}{
		{"zero quota", func(t *model.ExamTemplate) { t.Quotas[0].Count = 0 }, "must be positive"},
		{"unknown subject", func(t *model.ExamTemplate) { t.Quotas[0].Subject = "astrologia" }, "unknown subject"},
		{"no points", func(t *model.ExamTemplate) { t.PointsPerQuestion = 0 }, "points per question"},
		{"no time", func(t *model.ExamTemplate) { t.TimeLimitMinutes = 0 }, "time limit"},
		{"bad difficulty", func(t *model.ExamTemplate) { t.Difficulties = []model.Difficulty{"extreme"} }, "unknown difficulty"},
		{"bonus on practice", func(t *model.ExamTemplate) { t.BonusBadge = "Nope" }, "bonus badge"},
		{"simulado without bonus", func(t *model.ExamTemplate) { t.Type = model.TemplateSimulado }, "need a bonus badge"},
		{"bad id", func(t *model.ExamTemplate) { t.ID = "Not A Slug" }, "slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := clone(base)
			tt.mutate(&tmpl)
			_, err := New([]model.ExamTemplate{tmpl})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("New() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}

	if _, err := New([]model.ExamTemplate{base, base}); err == nil {
		t.Error("expected duplicate id error")
	}
	if _, err := New(nil); err == nil {
		t.Error("expected error for empty catalog")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	body := `[{"id":"bio-rapido","name":"Bio Rápido","type":"treino",
		"quotas":[{"subject":"biologia","count":4}],
		"difficulties":["easy"],"timeLimitMinutes":8,"pointsPerQuestion":5}]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	tmpl, ok := c.Get("bio-rapido")
	if !ok || tmpl.TotalQuestions() != 4 {
		t.Fatalf("unexpected catalog contents: %+v", c.List())
	}

	if c, err := LoadFile(""); err != nil || c.Len() != len(DefaultTemplates()) {
		t.Errorf("LoadFile(\"\") = %v, %v; want default catalog", c, err)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
