package services

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindBadRequest
	KindUpstream
)

// AnalysisError carries the HTTP classification of a pipeline failure.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func (e *AnalysisError) StatusCode() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(message string, err error) *AnalysisError {
	return &AnalysisError{Kind: KindBadRequest, Message: message, Err: err}
}

func upstreamError(message string, err error) *AnalysisError {
	return &AnalysisError{Kind: KindUpstream, Message: message, Err: err}
}

func internalError(message string, err error) *AnalysisError {
	return &AnalysisError{Kind: KindInternal, Message: message, Err: err}
}

// AsAnalysisError unwraps err to an *AnalysisError when one is present.
func AsAnalysisError(err error) (*AnalysisError, bool) {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
