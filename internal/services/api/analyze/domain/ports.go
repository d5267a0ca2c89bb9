package domain

import (
	"context"

	"slopmeter/internal/adapters/inference"
	"slopmeter/internal/core/admission"
	subdom "slopmeter/internal/services/submissions/domain"
)

// Admitter is the admission gate
type Admitter interface {
	Admit(raw string) admission.Result
}

// ServicePort defines the service contract for analyze
type ServicePort interface {
	Analyze(ctx context.Context, in AnalyzeRequest) (AnalyzeResponse, error)
	Validate(ctx context.Context, in TextRequest) admission.Result
	Perplexity(ctx context.Context, in PerplexityRequest) (inference.Result, error)
	Submit(ctx context.Context, in SubmitRequest) (subdom.Submission, error)
}
