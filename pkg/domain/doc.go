/*
Package domain contains the core domain models for the vapor equilibrium engine.

It defines the entities that flow between the property resolver, the interaction
parameter store, the bubble-point solver and the diagram assembler. This package is
kept pure and free of external dependencies like I/O, networking or persistence.

# Key Entities

  - Species: Pure-component properties (boiling point, critical data, Antoine coefficients).
  - BinaryPair: NRTL interaction parameters for an unordered pair of species.
  - EquilibriumPoint: One (x1, y1, T) triple produced by the solver.
  - PhaseDiagramResult: The ordered T-x-y table plus confidence metadata.
*/
package domain
