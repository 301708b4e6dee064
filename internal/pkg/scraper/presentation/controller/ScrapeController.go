package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SutharYagnesh/EduPath/internal/pkg/scraper/application/usecase"
	"github.com/SutharYagnesh/EduPath/internal/pkg/scraper/port"
)

// ScrapeController handles one catalogue's scrape endpoint (one controller per endpoint)
type ScrapeController struct {
	Kind port.Kind
	UC   *usecase.ScrapeUseCase
}

func NewScrapeController(kind port.Kind, uc *usecase.ScrapeUseCase) *ScrapeController {
	return &ScrapeController{Kind: kind, UC: uc}
}

type scrapeRequest struct {
	Query    string `json:"query"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`
}

func (h *ScrapeController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		// An empty body is a valid "no filters" request.
		var req scrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 25*time.Second)
		defer cancel()

		result, err := h.UC.Execute(ctx, h.Kind, port.Query{
			Term:     req.Query,
			Location: req.Location,
			Limit:    req.Limit,
		})
		if err != nil {
			if errors.Is(err, usecase.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Scraper unavailable"})
			return
		}

		c.Data(http.StatusOK, "application/json", result)
	}
}
