package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"travelplanner/backend/voice"
)

// parseVoice 將語音辨識的文字轉成規劃表單欄位
// POST /api/voice/parse
func (s *server) parseVoice(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing text"})
		return
	}

	c.JSON(http.StatusOK, voice.ParseTranscript(req.Text))
}
