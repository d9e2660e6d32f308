package dynamo

import "errors"

// Domain errors. The physics core never returns errors; these surface only
// at the edges (configuration and host start-up).
var (
	// ErrParameterBounds indicates a setting outside its slider range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownPreset indicates a preset name with no definition.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrUnknownCadence indicates a cadence name other than frame or fixed.
	ErrUnknownCadence = errors.New("dynamo: unknown cadence")

	// ErrUnsupportedFormat indicates a config file extension we cannot parse.
	ErrUnsupportedFormat = errors.New("dynamo: unsupported config format")

	// ErrInvalidSurface indicates a surface with non-positive dimensions.
	ErrInvalidSurface = errors.New("dynamo: invalid surface dimensions")
)

// ParameterError wraps ErrParameterBounds with the offending setting.
type ParameterError struct {
	Name     string
	Value    float64
	Min, Max float64
}

func (e *ParameterError) Error() string {
	return e.Name + ": " + ErrParameterBounds.Error()
}

func (e *ParameterError) Unwrap() error {
	return ErrParameterBounds
}
