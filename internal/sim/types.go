package sim

// Metric accumulates a scalar over the steps of a world.
type Metric interface {
	Name() string
	Observe(w *World)
	Value() float64
	Reset()
}

// Observer is told about every completed step.
type Observer interface {
	OnStep(w *World, stats StepStats)
}

// StepStats summarises one call to Stepper.Step.
type StepStats struct {
	Step      int
	Particles int
	// Pushed counts particles inside the pointer field.
	Pushed int
	// Links counts interacting pairs.
	Links int
}
