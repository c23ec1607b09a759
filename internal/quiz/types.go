package quiz

import (
	"fmt"

	"github.com/abhisek/dongwha/internal/vocab"
)

// WordInfo is the public view of a vocabulary entry.
type WordInfo struct {
	ID              int     `json:"id"`
	Word            string  `json:"word"`
	POS             string  `json:"pos"`
	AgeGroup        int     `json:"age_group"`
	DifficultyScore float64 `json:"difficulty_score"`
	Frequency       int     `json:"frequency"`
}

func wordInfo(e vocab.Entry) WordInfo {
	return WordInfo{
		ID:              e.ID,
		Word:            e.Word,
		POS:             e.POS,
		AgeGroup:        e.AgeGroup,
		DifficultyScore: e.DifficultyScore,
		Frequency:       e.Frequency,
	}
}

// Request asks for a batch of quiz questions.
type Request struct {
	AgeGroup     int    `json:"age_group" binding:"required"`
	NumQuestions int    `json:"num_questions"`
	UserID       string `json:"user_id"`
}

// ValidationError reports a malformed request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Question is one fill-in-the-blank item.
type Question struct {
	QuestionID    int      `json:"question_id"`
	Sentence      string   `json:"sentence"`
	BlankPosition int      `json:"blank_position"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	WordInfo      WordInfo `json:"word_info"`
}

// Quiz is a batch of questions.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Submission is a learner's answer to a quiz question.
type Submission struct {
	UserID        string `json:"user_id"`
	QuestionID    int    `json:"question_id"`
	UserAnswer    string `json:"user_answer" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required"`
	Word          string `json:"word"`
	Sentence      string `json:"sentence"`
	AgeGroup      int    `json:"age_group"`
}

// Result grades a submission.
type Result struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// AgeAccuracy is the accuracy within one age group.
type AgeAccuracy struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// UserStats summarises one user's history.
type UserStats struct {
	TotalQuestions int                    `json:"total_questions"`
	CorrectCount   int                    `json:"correct_count"`
	Accuracy       float64                `json:"accuracy"`
	ByAgeGroup     map[string]AgeAccuracy `json:"by_age_group"`
}

// AllStats summarises every user's history.
type AllStats struct {
	TotalSubmissions int     `json:"total_submissions"`
	CorrectAnswers   int     `json:"correct_answers"`
	OverallAccuracy  float64 `json:"overall_accuracy"`
	UniqueUsers      int     `json:"unique_users"`
}

// AgeStats is the per-age vocabulary summary.
type AgeStats struct {
	AgeStatistics   map[int]vocab.AgeStat `json:"age_statistics"`
	TotalVocabulary int                   `json:"total_vocabulary"`
}

// Status reports which artifacts are loaded.
type Status struct {
	VocabularyLoaded bool `json:"vocabulary_loaded"`
	ModelLoaded      bool `json:"model_loaded"`
	SentencesLoaded  bool `json:"sentences_loaded"`
	TotalWords       int  `json:"total_words"`
}
