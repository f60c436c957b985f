package tools

import (
	"errors"
	"fmt"

	"n8nmcp/internal/n8n"
)

// FailureKind classifies why a tool call failed.
type FailureKind string

const (
	// FailureInvalidInput means the arguments did not decode or validate.
	FailureInvalidInput FailureKind = "invalid_input"
	// FailureRemote means the n8n API call failed.
	FailureRemote FailureKind = "remote"
	// FailureStorage means the lookup database returned an error.
	FailureStorage FailureKind = "storage"
	// FailureInternal covers everything else, including recovered panics.
	FailureInternal FailureKind = "internal"
)

// Failure is the tagged error half of an Outcome.
type Failure struct {
	Kind FailureKind
	// Status is the HTTP status of a remote failure, zero otherwise.
	Status  int
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Payload is the success half of an Outcome. Text renders it for people;
// the value itself is the structured result.
type Payload interface {
	Text() string
}

// Outcome is what every tool handler returns: exactly one of Payload and
// Failure is set.
type Outcome struct {
	Payload Payload
	Failure *Failure
}

// resultStatus is embedded in every structured result so that success and
// failure share one output shape.
type resultStatus struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	ErrorKind  string `json:"errorKind,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

func succeeded() resultStatus {
	return resultStatus{Success: true}
}

func (f *Failure) status() resultStatus {
	return resultStatus{
		Success:    false,
		Error:      f.Message,
		ErrorKind:  string(f.Kind),
		StatusCode: f.Status,
	}
}

func ok(p Payload) Outcome {
	return Outcome{Payload: p}
}

func failed(f *Failure) Outcome {
	return Outcome{Failure: f}
}

func invalidInput(format string, args ...interface{}) Outcome {
	return failed(&Failure{Kind: FailureInvalidInput, Message: fmt.Sprintf(format, args...)})
}

func storageFailure(err error) Outcome {
	return failed(&Failure{Kind: FailureStorage, Message: err.Error()})
}

// remoteFailure keeps the HTTP status of an n8n error.
func remoteFailure(err error) Outcome {
	f := &Failure{Kind: FailureRemote, Message: err.Error()}
	var apiErr *n8n.APIError
	if errors.As(err, &apiErr) {
		f.Status = apiErr.StatusCode
	}
	return failed(f)
}

func internalFailure(err error) Outcome {
	return failed(&Failure{Kind: FailureInternal, Message: err.Error()})
}
