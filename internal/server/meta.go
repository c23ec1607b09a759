package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) index(c *gin.Context) {
	st := s.deps.Quiz.Status()
	c.JSON(http.StatusOK, gin.H{
		"message":          "어휘력 학습 API (실제 동화 문장 사용)",
		"version":          Version,
		"total_words":      st.TotalWords,
		"model_loaded":     st.ModelLoaded,
		"sentences_loaded": st.SentencesLoaded,
		"endpoints": gin.H{
			"quiz":           "/api/quiz (POST)",
			"submit":         "/api/submit (POST)",
			"stats":          "/api/stats/{user_id} (GET)",
			"words":          "/api/words (GET)",
			"age_stats":      "/api/age-stats (GET)",
			"puzzle":         "/api/puzzle/generate (POST)",
			"verify":         "/api/puzzle/verify (POST)",
			"vocabulary":     "/api/assessment/vocabulary (POST)",
			"comprehension":  "/api/assessment/comprehension (POST)",
			"assessment_ans": "/api/assessment/answer (POST)",
		},
	})
}

func (s *Server) health(c *gin.Context) {
	st := s.deps.Quiz.Status()
	total, err := s.deps.Quiz.Submissions(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"vocabulary_loaded": st.VocabularyLoaded,
		"model_loaded":      st.ModelLoaded,
		"sentences_loaded":  st.SentencesLoaded,
		"corpus_loaded":     s.deps.Puzzles != nil,
		"total_words":       st.TotalWords,
		"total_submissions": total,
	})
}
