// Package apperrors defines the error taxonomy for the analysis pipeline.
//
// Four categories exist, and the transport layer maps them to HTTP status
// codes via errors.As:
//
//   - ValidationError: bad caller input. Fatal, surfaced immediately.
//   - DataProcessingError: a required extraction step failed with no
//     fallback path enabled. Fatal for the request.
//   - ExternalServiceError: a collaborator (completion or embedding
//     service) failed. Always recoverable through a fallback tier.
//   - AnalysisError: catch-all for unexpected failures in orchestration,
//     carrying the stage name for diagnosis.
package apperrors

import "fmt"

// ValidationError represents invalid caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// DataProcessingError represents a failed extraction step without a
// configured fallback. DataType names the source document ("resume" or
// "job description").
type DataProcessingError struct {
	DataType string
	Step     string
	Cause    error
}

func (e *DataProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed for %s: %v", e.Step, e.DataType, e.Cause)
	}
	return fmt.Sprintf("%s failed for %s", e.Step, e.DataType)
}

func (e *DataProcessingError) Unwrap() error {
	return e.Cause
}

// ExternalServiceError represents a failure of an external collaborator.
type ExternalServiceError struct {
	Service string
	Cause   error
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("external service %s failed: %v", e.Service, e.Cause)
	}
	return fmt.Sprintf("external service %s failed", e.Service)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Cause
}

// AnalysisError wraps an unexpected failure from the orchestration layer.
type AnalysisError struct {
	Stage string
	Cause error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis failed at stage %s: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("analysis failed at stage %s", e.Stage)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}
