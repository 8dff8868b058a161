package dynamo

import "errors"

// Domain errors for configuration and tuning. The simulation itself never
// fails; these only surface from config loading and parameter mutation.
var (
	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownParameter indicates a SetParam call with an unrecognised name.
	ErrUnknownParameter = errors.New("dynamo: unknown parameter")

	// ErrUnknownPreset indicates a preset lookup miss.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrInvalidConfig indicates a configuration that fails validation.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)
