package game

const (
	ErrorMissingCaster = "Error: no physics caster attached, ground and ceiling probes are disabled."
	ErrorMissingMover  = "Error: no capsule mover attached, displacement will be applied without collision."
	ErrorMissingCamera = "Error: no camera transform attached, look pitch is kept internally."
	ErrorEmptyMask     = "Error: casting mask is empty, probes will never hit geometry."

	ErrorInternalNegativeDelta   = "Error: step received a negative delta time (%v)."
	ErrorInternalStepPanic       = "Error: locomotion step recovered from panic: %v"
	ErrorInternalInvalidStrategy = "Error: unknown grounding strategy %q."
)
