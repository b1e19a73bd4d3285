package models

import "time"

type SummarizeRequest struct {
	ExtractedText string   `json:"extractedText"`
	Language      Language `json:"language"`
}

type SummarizeResponse struct {
	BulletSummary []string `json:"bulletSummary"`
	OneLiner      string   `json:"oneLiner"`
	Keywords      []string `json:"keywords"`
}

type ProofreadRequest struct {
	ExtractedText string   `json:"extractedText"`
	Language      Language `json:"language"`
	TargetRole    *string  `json:"targetRole,omitempty"`
}

type ProofreadComment struct {
	LineOrSection string `json:"lineOrSection"`
	Comment       string `json:"comment"`
}

type ProofreadResponse struct {
	CorrectedText string             `json:"correctedText"`
	Comments      []ProofreadComment `json:"comments"`
}

type ErrorResponse struct {
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
