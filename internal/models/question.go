package models

import "time"

type Topic string

const (
	TopicOperatingSystems     Topic = "Operating Systems"
	TopicDatabases            Topic = "Databases"
	TopicNetworks             Topic = "Networks"
	TopicAlgorithms           Topic = "Algorithms"
	TopicDataStructures       Topic = "Data Structures"
	TopicComputerArchitecture Topic = "Computer Architecture"
)

// Topics lists every supported topic in display order.
var Topics = []Topic{
	TopicOperatingSystems,
	TopicDatabases,
	TopicNetworks,
	TopicAlgorithms,
	TopicDataStructures,
	TopicComputerArchitecture,
}

func (t Topic) Valid() bool {
	for _, known := range Topics {
		if t == known {
			return true
		}
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
	// DifficultyMixed is only valid on quizzes.
	DifficultyMixed Difficulty = "Mixed"
)

// ValidForQuestion reports whether d can be set on a question.
func (d Difficulty) ValidForQuestion() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// ValidForQuiz reports whether d can be set on a quiz.
func (d Difficulty) ValidForQuiz() bool {
	return d.ValidForQuestion() || d == DifficultyMixed
}

// DefaultPoints returns the points awarded for a correct answer at difficulty d.
func DefaultPoints(d Difficulty) int {
	switch d {
	case DifficultyMedium:
		return 20
	case DifficultyHard:
		return 30
	default:
		return 10
	}
}

type Option struct {
	Text      string `json:"text" yaml:"text"`
	IsCorrect bool   `json:"isCorrect" yaml:"isCorrect"`
}

type Question struct {
	ID          int64      `json:"id"`
	Topic       Topic      `json:"topic"`
	Difficulty  Difficulty `json:"difficulty"`
	Text        string     `json:"question"`
	Options     []Option   `json:"options"`
	Points      int        `json:"points"`
	Explanation string     `json:"explanation,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedBy   *int64     `json:"createdBy,omitempty"`
	IsApproved  bool       `json:"isApproved"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// EffectivePoints returns the stored points, or the difficulty default when unset.
func (q Question) EffectivePoints() int {
	if q.Points > 0 {
		return q.Points
	}
	return DefaultPoints(q.Difficulty)
}

type QuestionFilter struct {
	Topic      string
	Difficulty string
	Approved   *bool
	Limit      int
}
