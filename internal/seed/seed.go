// Package seed loads a question bank and quiz catalog from YAML.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/services"
)

type File struct {
	Questions []Question `yaml:"questions"`
	Quizzes   []Quiz     `yaml:"quizzes"`
}

// Question is a bank entry. Key is how quizzes in the same file refer to it.
type Question struct {
	Key         string          `yaml:"key"`
	Topic       string          `yaml:"topic"`
	Difficulty  string          `yaml:"difficulty"`
	Text        string          `yaml:"question"`
	Options     []models.Option `yaml:"options"`
	Points      int             `yaml:"points"`
	Explanation string          `yaml:"explanation"`
	Tags        []string        `yaml:"tags"`
}

type Quiz struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Topic       string   `yaml:"topic"`
	Difficulty  string   `yaml:"difficulty"`
	TimeLimit   int      `yaml:"timeLimit"`
	MaxAttempts int      `yaml:"maxAttempts"`
	Questions   []string `yaml:"questions"`
	Inactive    bool     `yaml:"inactive"`
}

type Result struct {
	Questions int
	Quizzes   int
}

// Parse decodes a seed file, rejecting unknown fields and dangling question keys.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	keys := make(map[string]bool, len(f.Questions))
	for i, q := range f.Questions {
		if q.Key == "" {
			return nil, fmt.Errorf("question %d: key is required", i)
		}
		if keys[q.Key] {
			return nil, fmt.Errorf("question %d: duplicate key %q", i, q.Key)
		}
		keys[q.Key] = true
	}
	for i, quiz := range f.Quizzes {
		for _, key := range quiz.Questions {
			if !keys[key] {
				return nil, fmt.Errorf("quiz %d (%s): unknown question key %q", i, quiz.Title, key)
			}
		}
	}
	return &f, nil
}

func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Parse(fh)
}

// Apply stores every question as approved and every quiz in file order.
// Rows already written stay written if a later entry fails.
func Apply(ctx context.Context, f *File, questionRepo repository.QuestionRepository, quizRepo repository.QuizRepository) (Result, error) {
	log := logger.FromContext(ctx).WithPrefix("seed")
	var res Result

	ids := make(map[string]int64, len(f.Questions))
	for _, sq := range f.Questions {
		q := models.Question{
			Topic:       models.Topic(sq.Topic),
			Difficulty:  models.Difficulty(sq.Difficulty),
			Text:        sq.Text,
			Options:     sq.Options,
			Points:      sq.Points,
			Explanation: sq.Explanation,
			Tags:        sq.Tags,
			IsApproved:  true,
		}
		if err := services.ValidateQuestion(&q); err != nil {
			return res, fmt.Errorf("question %q: %w", sq.Key, err)
		}
		id, err := questionRepo.Create(ctx, q)
		if err != nil {
			return res, fmt.Errorf("question %q: %w", sq.Key, err)
		}
		ids[sq.Key] = id
		res.Questions++
	}

	for _, sq := range f.Quizzes {
		quiz := models.Quiz{
			Title:       sq.Title,
			Description: sq.Description,
			Topic:       models.Topic(sq.Topic),
			Difficulty:  models.Difficulty(sq.Difficulty),
			TimeLimit:   sq.TimeLimit,
			MaxAttempts: sq.MaxAttempts,
			IsActive:    !sq.Inactive,
		}
		for _, key := range sq.Questions {
			quiz.QuestionIDs = append(quiz.QuestionIDs, ids[key])
		}
		if err := services.ValidateQuiz(&quiz); err != nil {
			return res, fmt.Errorf("quiz %q: %w", sq.Title, err)
		}
		if _, err := quizRepo.Create(ctx, quiz); err != nil {
			return res, fmt.Errorf("quiz %q: %w", sq.Title, err)
		}
		res.Quizzes++
	}

	log.Info("seeded %d questions and %d quizzes", res.Questions, res.Quizzes)
	return res, nil
}
