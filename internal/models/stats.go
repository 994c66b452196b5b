package models

type AggregateStats struct {
	TotalQuizzes        int     `json:"totalQuizzes"`
	TotalScore          int     `json:"totalScore"`
	AverageScore        float64 `json:"averageScore"`
	TotalCorrectAnswers int     `json:"totalCorrectAnswers"`
	TotalQuestions      int     `json:"totalQuestions"`
}

type TopicStat struct {
	Topic        Topic   `json:"topic"`
	Count        int     `json:"count"`
	AverageScore float64 `json:"averageScore"`
}

type PerformanceStats struct {
	Overall AggregateStats `json:"overall"`
	ByTopic []TopicStat    `json:"byTopic"`
}

type LeaderboardEntry struct {
	Rank     int       `json:"rank"`
	UserID   int64     `json:"userId"`
	Username string    `json:"username"`
	Profile  Profile   `json:"profile"`
	Stats    UserStats `json:"stats"`
}
