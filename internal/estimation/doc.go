// Package estimation defines a pluggable construction duration calculator.
//
// Each project phase is encapsulated in one Calculator, and the phase results are collected in order by the Engine.
package estimation
