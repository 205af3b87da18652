// Package calculators provides concrete Calculator implementations for the estimation engine.
//
// Each calculator estimates the working days of one construction phase (pre-construction,
// foundation, structure, remaining finishes, commissioning). Calculators are composed via the
// estimation.Engine and read everything they need from a model.ProjectInput snapshot.
package calculators
