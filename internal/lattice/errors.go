package lattice

import "errors"

// Domain errors for model construction and dynamics.
var (
	// ErrInvalidShape indicates a lattice axis of non-positive length.
	ErrInvalidShape = errors.New("lattice: shape axes must be >= 1")

	// ErrInvalidTemperature indicates a non-positive temperature where
	// dynamics require one.
	ErrInvalidTemperature = errors.New("lattice: temperature must be > 0")

	// ErrInvalidBoltzmann indicates a non-positive Boltzmann constant.
	ErrInvalidBoltzmann = errors.New("lattice: boltzmann constant must be > 0")

	// ErrNoDynamics indicates a sweep was requested without configuring
	// an update rule.
	ErrNoDynamics = errors.New("lattice: no dynamics configured")

	// ErrUnknownDynamics indicates an unrecognized update rule name.
	ErrUnknownDynamics = errors.New("lattice: unknown dynamics")

	// ErrUnknownStart indicates an unrecognized initial condition name.
	ErrUnknownStart = errors.New("lattice: unknown start condition")
)
