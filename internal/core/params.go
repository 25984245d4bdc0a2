package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Parameter describes a single tunable value exposed by a simulation for
// display on the HUD.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterSnapshot captures the current set of tunables.
type ParameterSnapshot struct {
	Params []Parameter
}

// ParameterControl describes an adjustable parameter exposed on the HUD.
// Min/Max bound the value when the corresponding Has flag is set.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// FloatParameterSetter allows HUD interactions to update floating point
// parameters after construction.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}
