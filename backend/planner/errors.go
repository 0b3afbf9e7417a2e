package planner

import "errors"

var (
	// ErrMissingCredential is returned when Generate is called without an API key.
	ErrMissingCredential = errors.New("generation credential is required")

	// ErrInvalidRequest wraps every PlanningRequest validation failure.
	ErrInvalidRequest = errors.New("invalid planning request")

	// ErrGenerationFailed is the only error a Generator surfaces. The vendor
	// cause is logged, never returned.
	ErrGenerationFailed = errors.New("generation request failed")

	// ErrUnparseable means the model reply holds no decodable JSON object.
	ErrUnparseable = errors.New("model response is not parseable")

	// ErrSchemaMismatch means the decoded object does not fit the plan schema.
	ErrSchemaMismatch = errors.New("model response does not match plan schema")
)
