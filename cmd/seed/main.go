package main

import (
	"context"
	"desafiabrasil/internal/config"
	"desafiabrasil/internal/model"
	"desafiabrasil/internal/repository"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	questionsFile := flag.String("questions", "", "JSON file with an array of questions to import")
	adminEmail := flag.String("admin-email", "admin@desafiabrasil.local", "email of the admin account")
	adminPassword := flag.String("admin-password", os.Getenv("ADMIN_PASSWORD"), "password of the admin account")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	for _, ensure := range []func(context.Context, *mongo.Database) error{
		repository.EnsureQuestionIndexes,
		repository.EnsureUserIndexes,
		repository.EnsureExamResultIndexes,
	} {
		if err := ensure(ctx, db); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
	}

	users := repository.NewUserRepo(db)
	if *adminPassword == "" {
		log.Println("No admin password given, skipping admin account")
	} else if err := seedAdmin(ctx, users, *adminEmail, *adminPassword); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	questions := sampleQuestions()
	if *questionsFile != "" {
		questions, err = readQuestions(*questionsFile)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *questionsFile, err)
		}
	}

	repo := repository.NewQuestionRepo(db)
	created, skipped := 0, 0
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			log.Printf("Skipping question %q: %v", q.Prompt, err)
			skipped++
			continue
		}
		q.Active = true
		q.Approved = true
		if err := repo.Create(ctx, q); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				skipped++
				continue
			}
			log.Fatalf("Failed to insert question: %v", err)
		}
		created++
	}
	log.Printf("Seed finished: %d questions created, %d skipped", created, skipped)
}

func seedAdmin(ctx context.Context, users repository.UserRepo, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Name:         "Administrador",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			log.Printf("Admin %s already exists", email)
			return nil
		}
		return err
	}
	log.Printf("Admin %s created", email)
	return nil
}

func readQuestions(path string) ([]*model.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var questions []*model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func opts(texts ...string) []model.Option {
	out := make([]model.Option, len(texts))
	for i, t := range texts {
		out[i] = model.Option{Label: model.OptionLabels[i], Text: t}
	}
	return out
}

// sampleQuestions is a small bank so every subject can be drawn in development
func sampleQuestions() []*model.Question {
	return []*model.Question{
		{
			ID: "seed-mat-1", Subject: model.SubjectMathematics, Difficulty: model.DifficultyEasy,
			Prompt:        "Qual é o valor de 3² + 4²?",
			Options:       opts("7", "12", "25", "49", "14"),
			CorrectOption: "C", Explanation: "9 + 16 = 25.", Source: "ENEM", Year: 2019,
		},
		{
			ID: "seed-mat-2", Subject: model.SubjectMathematics, Difficulty: model.DifficultyMedium,
			Prompt:        "Uma loja dá 20% de desconto sobre R$ 250,00. Qual o preço final?",
			Options:       opts("R$ 200,00", "R$ 230,00", "R$ 180,00", "R$ 210,00", "R$ 50,00"),
			CorrectOption: "A", Explanation: "250 × 0,8 = 200.",
		},
		{
			ID: "seed-mat-3", Subject: model.SubjectMathematics, Difficulty: model.DifficultyHard,
			Prompt:        "Quantos anagramas tem a palavra BRASIL?",
			Options:       opts("120", "360", "720", "5040", "36"),
			CorrectOption: "C", Explanation: "6! = 720, todas as letras são distintas.", Source: "FUVEST",
		},
		{
			ID: "seed-por-1", Subject: model.SubjectPortuguese, Difficulty: model.DifficultyEasy,
			Prompt:        "Em \"Os meninos correram\", o sujeito é:",
			Options:       opts("oculto", "os meninos", "indeterminado", "correram"),
			CorrectOption: "B",
		},
		{
			ID: "seed-lit-1", Subject: model.SubjectLiterature, Difficulty: model.DifficultyMedium,
			Prompt:        "Quem escreveu \"Dom Casmurro\"?",
			Options:       opts("José de Alencar", "Machado de Assis", "Aluísio Azevedo", "Graciliano Ramos"),
			CorrectOption: "B", Explanation: "Romance de Machado de Assis publicado em 1899.",
		},
		{
			ID: "seed-ing-1", Subject: model.SubjectEnglish, Difficulty: model.DifficultyEasy,
			Prompt:        "Choose the correct form: \"She ___ to school every day.\"",
			Options:       opts("go", "goes", "going", "gone"),
			CorrectOption: "B",
		},
		{
			ID: "seed-his-1", Subject: model.SubjectHistory, Difficulty: model.DifficultyEasy,
			Prompt:        "Em que ano foi proclamada a República no Brasil?",
			Options:       opts("1822", "1888", "1889", "1930", "1964"),
			CorrectOption: "C", Source: "ENEM",
		},
		{
			ID: "seed-geo-1", Subject: model.SubjectGeography, Difficulty: model.DifficultyMedium,
			Prompt:        "Qual é o maior bioma brasileiro em extensão?",
			Options:       opts("Cerrado", "Caatinga", "Amazônia", "Mata Atlântica", "Pampa"),
			CorrectOption: "C",
		},
		{
			ID: "seed-fil-1", Subject: model.SubjectPhilosophy, Difficulty: model.DifficultyMedium,
			Prompt:        "\"Penso, logo existo\" é atribuída a:",
			Options:       opts("Platão", "Descartes", "Kant", "Nietzsche"),
			CorrectOption: "B",
		},
		{
			ID: "seed-soc-1", Subject: model.SubjectSociology, Difficulty: model.DifficultyMedium,
			Prompt:        "O conceito de \"fato social\" foi formulado por:",
			Options:       opts("Max Weber", "Karl Marx", "Émile Durkheim", "Auguste Comte"),
			CorrectOption: "C",
		},
		{
			ID: "seed-fis-1", Subject: model.SubjectPhysics, Difficulty: model.DifficultyMedium,
			Prompt:        "Um carro percorre 120 km em 2 h. Sua velocidade média é:",
			Options:       opts("40 km/h", "60 km/h", "80 km/h", "240 km/h"),
			CorrectOption: "B",
		},
		{
			ID: "seed-qui-1", Subject: model.SubjectChemistry, Difficulty: model.DifficultyEasy,
			Prompt:        "Qual é a fórmula da água?",
			Options:       opts("CO2", "H2O", "O2", "NaCl"),
			CorrectOption: "B",
		},
		{
			ID: "seed-bio-1", Subject: model.SubjectBiology, Difficulty: model.DifficultyHard,
			Prompt:        "Em que organela ocorre a respiração celular aeróbica?",
			Options:       opts("Ribossomo", "Complexo de Golgi", "Mitocôndria", "Lisossomo", "Cloroplasto"),
			CorrectOption: "C",
		},
	}
}
