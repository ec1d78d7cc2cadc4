package catalog

import "desafiabrasil/internal/model"

var allDifficulties = []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}

// DefaultTemplates is the compiled-in exam catalog
func DefaultTemplates() []model.ExamTemplate {
	return []model.ExamTemplate{
		{
			ID:          "enem-completo",
			Name:        "ENEM Completo",
			Description: "Simulado no formato do ENEM com todas as áreas do conhecimento.",
			Type:        model.TemplateSimulado,
			Quotas: []model.SubjectQuota{
				{Subject: model.SubjectMathematics, Count: 15},
				{Subject: model.SubjectPortuguese, Count: 10},
				{Subject: model.SubjectLiterature, Count: 5},
				{Subject: model.SubjectEnglish, Count: 5},
				{Subject: model.SubjectHistory, Count: 5},
				{Subject: model.SubjectGeography, Count: 5},
				{Subject: model.SubjectPhysics, Count: 5},
				{Subject: model.SubjectChemistry, Count: 5},
				{Subject: model.SubjectBiology, Count: 5},
			},
			Difficulties:      allDifficulties,
			TimeLimitMinutes:  180,
			PointsPerQuestion: 10,
			BonusBadge:        "ENEM Ready",
		},
		{
			ID:          "vestibular-fuvest",
			Name:        "Vestibular FUVEST",
			Description: "Primeira fase no estilo FUVEST, questões médias e difíceis.",
			Type:        model.TemplateSimulado,
			Quotas: []model.SubjectQuota{
				{Subject: model.SubjectMathematics, Count: 10},
				{Subject: model.SubjectPortuguese, Count: 10},
				{Subject: model.SubjectHistory, Count: 5},
				{Subject: model.SubjectGeography, Count: 5},
				{Subject: model.SubjectPhysics, Count: 5},
				{Subject: model.SubjectChemistry, Count: 5},
				{Subject: model.SubjectBiology, Count: 5},
				{Subject: model.SubjectEnglish, Count: 5},
			},
			Difficulties:      []model.Difficulty{model.DifficultyMedium, model.DifficultyHard},
			TimeLimitMinutes:  150,
			PointsPerQuestion: 20,
			BonusBadge:        "Vestibular Ready",
		},
		{
			ID:                "matematica-intensivo",
			Name:              "Matemática Intensivo",
			Description:       "Trinta questões de matemática de nível médio e difícil.",
			Type:              model.TemplateIntensive,
			Quotas:            []model.SubjectQuota{{Subject: model.SubjectMathematics, Count: 30}},
			Difficulties:      []model.Difficulty{model.DifficultyMedium, model.DifficultyHard},
			TimeLimitMinutes:  90,
			PointsPerQuestion: 20,
		},
		{
			ID:          "ciencias-natureza",
			Name:        "Ciências da Natureza",
			Description: "Física, química e biologia.",
			Type:        model.TemplateIntensive,
			Quotas: []model.SubjectQuota{
				{Subject: model.SubjectPhysics, Count: 8},
				{Subject: model.SubjectChemistry, Count: 8},
				{Subject: model.SubjectBiology, Count: 8},
			},
			Difficulties:      allDifficulties,
			TimeLimitMinutes:  60,
			PointsPerQuestion: 15,
		},
		{
			ID:          "humanas-essencial",
			Name:        "Humanas Essencial",
			Description: "História, geografia, filosofia e sociologia.",
			Type:        model.TemplatePractice,
			Quotas: []model.SubjectQuota{
				{Subject: model.SubjectHistory, Count: 6},
				{Subject: model.SubjectGeography, Count: 6},
				{Subject: model.SubjectPhilosophy, Count: 4},
				{Subject: model.SubjectSociology, Count: 4},
			},
			Difficulties:      allDifficulties,
			TimeLimitMinutes:  50,
			PointsPerQuestion: 10,
		},
		{
			ID:          "linguagens-rapido",
			Name:        "Linguagens Rápido",
			Description: "Dez questões fáceis e médias para aquecer.",
			Type:        model.TemplatePractice,
			Quotas: []model.SubjectQuota{
				{Subject: model.SubjectPortuguese, Count: 5},
				{Subject: model.SubjectLiterature, Count: 3},
				{Subject: model.SubjectEnglish, Count: 2},
			},
			Difficulties:      []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium},
			TimeLimitMinutes:  20,
			PointsPerQuestion: 10,
		},
	}
}
