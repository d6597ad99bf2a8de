package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeGraph represents graph store errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeLLM represents LLM invocation errors
	ErrorTypeLLM ErrorType = "llm"
	// ErrorTypeParse represents structured output that failed to parse or validate
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeValidation represents invalid caller input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Graph Errors

// StoreConnectionError is returned when the graph store cannot be reached
type StoreConnectionError struct {
	*BaseError
	URI string
}

func NewStoreConnectionError(uri string, err error) *StoreConnectionError {
	msg := "failed to connect to graph store"
	if uri != "" {
		msg = fmt.Sprintf("failed to connect to graph store: %s", uri)
	}
	return &StoreConnectionError{
		BaseError: NewBaseError(ErrorTypeGraph, msg, err),
		URI:       uri,
	}
}

// StoreQueryError is returned when one of the fixed graph operations fails
// for a reason other than connectivity
type StoreQueryError struct {
	*BaseError
	Operation string
}

func NewStoreQueryError(operation string, err error) *StoreQueryError {
	return &StoreQueryError{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("graph operation failed: %s", operation), err),
		Operation: operation,
	}
}

// LLM Errors

// LLMInvocationError is returned when the model call fails or yields nothing usable
type LLMInvocationError struct {
	*BaseError
	Provider string
	Model    string
}

func NewLLMInvocationError(provider, model string, err error) *LLMInvocationError {
	return &LLMInvocationError{
		BaseError: NewBaseError(ErrorTypeLLM, fmt.Sprintf("%s request failed (model %s)", provider, model), err),
		Provider:  provider,
		Model:     model,
	}
}

// ErrEmptyCompletion is wrapped by LLMInvocationError when the provider
// answers without any candidate text
var ErrEmptyCompletion = stderrors.New("no content in LLM response")

// Parse Errors

// OutputParseError is returned when LLM output does not match the expected schema
type OutputParseError struct {
	*BaseError
	Schema string
	Raw    string
	Reason string
}

func NewOutputParseError(schema, raw, reason string, err error) *OutputParseError {
	return &OutputParseError{
		BaseError: NewBaseError(ErrorTypeParse, fmt.Sprintf("invalid %s output: %s", schema, reason), err),
		Schema:    schema,
		Raw:       raw,
		Reason:    reason,
	}
}

// Validation Errors

// ValidationError is returned when a request is missing or has invalid fields
type ValidationError struct {
	*BaseError
	Field string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("%s: %s", field, reason), nil),
		Field:     field,
	}
}

// Config Errors

// ConfigValidationError is returned when configuration validation fails
type ConfigValidationError struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ConfigValidationError {
	return &ConfigValidationError{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

func NewConfigMissingRequired(field string) *ConfigValidationError {
	return &ConfigValidationError{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
		Reason:    "required",
	}
}

// Helper functions

// typed is satisfied by every error in this package through the embedded *BaseError.
type typed interface {
	error
	errorType() ErrorType
}

func (e *BaseError) errorType() ErrorType { return e.Type }

// IsErrorType reports whether any error in err's chain is of errType
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if t, ok := err.(typed); ok && t.errorType() == errType {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}
