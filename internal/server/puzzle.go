package server

import (
	"github.com/gin-gonic/gin"

	"github.com/abhisek/dongwha/internal/puzzle"
	"github.com/abhisek/dongwha/internal/store"
)

type generatePuzzleRequest struct {
	Age        int    `json:"age"`
	Difficulty string `json:"difficulty"`
}

type verifyPuzzleRequest struct {
	PuzzleID         string  `json:"puzzle_id"`
	OriginalSentence string  `json:"original_sentence" binding:"required"`
	UserAnswer       string  `json:"user_answer"`
	Threshold        float64 `json:"threshold"`
	UserID           string  `json:"user_id"`
	Age              int     `json:"age"`
}

type hintRequest struct {
	OriginalSentence string `json:"original_sentence" binding:"required"`
	CurrentAnswer    string `json:"current_answer"`
}

type levelRequest struct {
	History []puzzle.Attempt `json:"history"`
}

type levelResponse struct {
	puzzle.Level
	Description string `json:"description"`
}

func (s *Server) generatePuzzle(c *gin.Context) {
	var req generatePuzzleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, invalid(err))
		return
	}
	d, err := puzzle.ParseDifficulty(req.Difficulty)
	if err != nil {
		RespondError(c, invalid(err))
		return
	}
	p, err := s.deps.Puzzles.Generate(c.Request.Context(), puzzle.GenerateInput{Age: req.Age, Difficulty: d})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, p)
}

func (s *Server) verifyPuzzle(c *gin.Context) {
	var req verifyPuzzleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, invalid(err))
		return
	}
	c.Set("user_id", req.UserID)

	ctx := c.Request.Context()
	v, err := s.deps.Puzzles.Verify(ctx, req.OriginalSentence, req.UserAnswer, req.Threshold)
	if err != nil {
		RespondError(c, err)
		return
	}
	err = s.deps.Events.AppendAnswer(ctx, store.AnswerEventData{
		UserID:        req.UserID,
		Kind:          store.KindPuzzle,
		AgeGroup:      req.Age,
		Word:          req.PuzzleID,
		Sentence:      req.OriginalSentence,
		CorrectAnswer: req.OriginalSentence,
		UserAnswer:    req.UserAnswer,
		Correct:       v.Passed,
		Similarity:    v.Similarity,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, v)
}

func (s *Server) puzzleHint(c *gin.Context) {
	var req hintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, invalid(err))
		return
	}
	RespondOK(c, puzzle.GetHint(req.OriginalSentence, req.CurrentAnswer))
}

func (s *Server) puzzleLevel(c *gin.Context) {
	var req levelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, invalid(err))
		return
	}
	lvl := puzzle.FinalLevel(req.History)
	RespondOK(c, levelResponse{Level: lvl, Description: lvl.Describe()})
}
