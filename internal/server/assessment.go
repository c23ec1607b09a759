package server

import (
	"fmt"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/dongwha/internal/assessment"
	"github.com/abhisek/dongwha/internal/store"
)

var (
	vocabularyTypes    = []assessment.QuestionType{"", assessment.TypeContext, assessment.TypeDefinition, assessment.TypeSynonym}
	comprehensionTypes = []assessment.QuestionType{"", assessment.TypeAuto, assessment.TypeWho, assessment.TypeWhat, assessment.TypeWhere, assessment.TypeWhy, assessment.TypeHow}
)

type vocabularyRequest struct {
	Age  int                     `json:"age"`
	Type assessment.QuestionType `json:"type"`
}

type comprehensionRequest struct {
	Age          int                     `json:"age"`
	QuestionType assessment.QuestionType `json:"question_type"`
}

type answerRequest struct {
	UserID       string          `json:"user_id"`
	Kind         assessment.Kind `json:"kind" binding:"required"`
	AgeLevel     int             `json:"age_level" binding:"required"`
	Choices      []string        `json:"choices" binding:"required"`
	CorrectIndex int             `json:"correct_index"`
	ChoiceIndex  int             `json:"choice_index"`
}

type answerResponse struct {
	assessment.Result
	NextLevel int `json:"next_level"`
}

func (s *Server) checkAge(age int) error {
	if age < s.deps.Staircase.Min || age > s.deps.Staircase.Max {
		return invalid(fmt.Errorf("age must be between %d and %d", s.deps.Staircase.Min, s.deps.Staircase.Max))
	}
	return nil
}

func (s *Server) vocabularyQuestion(c *gin.Context) {
	var req vocabularyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, invalid(err))
		return
	}
	if err := s.checkAge(req.Age); err != nil {
		RespondError(c, err)
		return
	}
	if !slices.Contains(vocabularyTypes, req.Type) {
		RespondError(c, invalid(fmt.Errorf("unknown vocabulary question type %q", req.Type)))
		return
	}
	q, err := s.deps.Vocabulary.Generate(c.Request.Context(), req.Age, req.Type)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, q)
}

func (s *Server) comprehensionQuestion(c *gin.Context) {
	var req comprehensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, invalid(err))
		return
	}
	if err := s.checkAge(req.Age); err != nil {
		RespondError(c, err)
		return
	}
	if !slices.Contains(comprehensionTypes, req.QuestionType) {
		RespondError(c, invalid(fmt.Errorf("unknown comprehension question type %q", req.QuestionType)))
		return
	}
	qt := req.QuestionType
	if qt == "" {
		qt = assessment.TypeAuto
	}
	q, err := s.deps.Comprehension.Generate(c.Request.Context(), req.Age, qt)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, q)
}

// assessmentAnswer grades one answer and returns the next staircase level,
// so a client can drive an adaptive test without server-side sessions.
func (s *Server) assessmentAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, invalid(err))
		return
	}
	c.Set("user_id", req.UserID)

	var kind string
	switch req.Kind {
	case assessment.KindVocabulary:
		kind = store.KindVocabulary
	case assessment.KindComprehension:
		kind = store.KindComprehension
	default:
		RespondError(c, invalid(fmt.Errorf("unknown assessment kind %q", req.Kind)))
		return
	}
	if err := s.checkAge(req.AgeLevel); err != nil {
		RespondError(c, err)
		return
	}

	q := &assessment.Question{Kind: req.Kind, AgeLevel: req.AgeLevel, Choices: req.Choices, CorrectIndex: req.CorrectIndex}
	if req.CorrectIndex >= 0 && req.CorrectIndex < len(req.Choices) {
		q.CorrectAnswer = req.Choices[req.CorrectIndex]
	}
	if err := q.Validate(); err != nil {
		RespondError(c, invalid(err))
		return
	}
	res, err := q.Check(req.ChoiceIndex)
	if err != nil {
		RespondError(c, invalid(err))
		return
	}

	err = s.deps.Events.AppendAnswer(c.Request.Context(), store.AnswerEventData{
		UserID:        req.UserID,
		Kind:          kind,
		AgeGroup:      req.AgeLevel,
		CorrectAnswer: res.CorrectAnswer,
		UserAnswer:    res.UserAnswer,
		Correct:       res.Correct,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, answerResponse{Result: res, NextLevel: s.deps.Staircase.Next(req.AgeLevel, res.Correct)})
}
