/*
Package thermo implements the equilibrium numerics: the NRTL activity-coefficient
model and the bubble-point solver for a binary liquid at fixed pressure.

Every function in this package is pure: no I/O, no shared state. Results are always
finite, even for pathological interaction parameters.
*/
package thermo
