// Package domain holds DTOs for analyze http and service contracts
package domain

import (
	"slopmeter/internal/core/answerspan"
	"slopmeter/internal/core/ranking"
	"slopmeter/internal/core/slop"
)

// TextRequest carries a bare text
type TextRequest struct {
	Text string `json:"text" validate:"max=4096" example:"I walked the dog and made pancakes"`
}

// PerplexityRequest is the raw scoring input
type PerplexityRequest struct {
	Text string `json:"text" validate:"required,notblank,max=4096" example:"q:What did you do today? a:nothing much"`
}

// AnalyzeRequest is an answer to one question
// text length and content rules are enforced by admission, not here
type AnalyzeRequest struct {
	Text       string `json:"text" validate:"max=4096" example:"I walked the dog and made pancakes"`
	QuestionID int    `json:"question_id" validate:"min=0" example:"0"`
}

// SubmitRequest stores an answer that was scored elsewhere
type SubmitRequest struct {
	Text       string  `json:"text" validate:"max=4096" example:"I walked the dog and made pancakes"`
	Perplexity float64 `json:"perplexity" validate:"gte=0" example:"41.7"`
	QuestionID int     `json:"question_id" validate:"min=0" example:"0"`
	ModelID    int     `json:"model_id,omitempty" validate:"min=0" example:"0"`
}

// AnalyzeResponse is the scored answer placed among its question's population
type AnalyzeResponse struct {
	Perplexity   float64                 `json:"perplexity"`
	ByToken      []answerspan.TokenScore `json:"by_token"`
	Placement    ranking.Placement       `json:"placement"`
	Neighbors    ranking.Neighbors       `json:"neighbors"`
	Histogram    ranking.Hist            `json:"histogram"`
	SubmissionID int64                   `json:"submission_id"`
	TextHash     string                  `json:"text_hash"`
	Verdict      slop.Verdict            `json:"verdict"`
}
