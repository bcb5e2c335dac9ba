package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"postcraft/pipeline"
	"postcraft/types"

	"github.com/gin-gonic/gin"
)

// RegisterGenerateRoutes registers the JSON generation endpoint.
func RegisterGenerateRoutes(r *gin.Engine, gen Generator) {
	g := r.Group("/api")
	g.POST("/generate", handleAPIGenerate(gen))
}

// GenerateRequest is the JSON body of POST /api/generate
type GenerateRequest struct {
	VideoID     string   `json:"video_id"`
	Instruction string   `json:"instruction"`
	Platforms   []string `json:"platforms"`
	Languages   []string `json:"languages"`
}

// GenerateResponse carries the posts envelope plus the video it came from
type GenerateResponse struct {
	VideoID  string       `json:"video_id"`
	Title    string       `json:"title"`
	Response []types.Post `json:"response"`
}

func handleAPIGenerate(gen Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		req.VideoID = strings.TrimSpace(req.VideoID)
		if req.VideoID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": MsgMissingVideoID})
			return
		}

		platforms, err := types.ParsePlatforms(req.Platforms)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(platforms) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": MsgMissingPlatform})
			return
		}

		res, err := gen.Run(c.Request.Context(), pipeline.Request{
			VideoID:     req.VideoID,
			Languages:   req.Languages,
			Platforms:   platforms,
			Instruction: strings.TrimSpace(req.Instruction),
		})
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, pipeline.ErrInvalidRequest) {
				status = http.StatusBadRequest
			}
			log.Printf("❌ API generation failed for %s: %v", req.VideoID, err)
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, GenerateResponse{
			VideoID:  res.VideoID,
			Title:    res.Title,
			Response: res.Posts,
		})
	}
}
