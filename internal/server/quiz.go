package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/dongwha/internal/quiz"
)

func (s *Server) createQuiz(c *gin.Context) {
	var req quiz.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, invalid(err))
		return
	}
	c.Set("user_id", req.UserID)
	q, err := s.deps.Quiz.BuildQuiz(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, q)
}

func (s *Server) submit(c *gin.Context) {
	var sub quiz.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		RespondError(c, invalid(err))
		return
	}
	c.Set("user_id", sub.UserID)
	res, err := s.deps.Quiz.Submit(c.Request.Context(), sub)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, res)
}

func (s *Server) userStats(c *gin.Context) {
	userID := c.Param("user_id")
	c.Set("user_id", userID)
	stats, err := s.deps.Quiz.UserStats(c.Request.Context(), userID, c.Query("kind"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, stats)
}

func (s *Server) allStats(c *gin.Context) {
	stats, err := s.deps.Quiz.AllStats(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	if stats.TotalSubmissions == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "아직 제출된 답안이 없습니다."})
		return
	}
	RespondOK(c, stats)
}

func (s *Server) reset(c *gin.Context) {
	removed, err := s.deps.Quiz.Reset(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	s.deps.Log.Info("history reset", "removed", removed)
	c.JSON(http.StatusOK, gin.H{"message": "모든 히스토리가 초기화되었습니다."})
}

func (s *Server) words(c *gin.Context) {
	age, err := queryInt(c, "age_group", 0)
	if err != nil {
		RespondError(c, err)
		return
	}
	limit, err := queryInt(c, "limit", 100)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, s.deps.Quiz.Words(age, limit))
}

func (s *Server) ageStats(c *gin.Context) {
	RespondOK(c, s.deps.Quiz.AgeStats())
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(errors.New(key + " must be an integer"))
	}
	return n, nil
}
