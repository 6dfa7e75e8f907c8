/*
Package properties resolves free-text species identifiers to pure-component data.

Resolution is a chain of ports.PropertyProvider tiers tried in order:

  - Builtin: a fixed table of common solvents and salts.
  - Library: curated substance records on disk (see pkg/adapters/loam).
  - Online: a network property database behind a cache and a timeout.
  - Estimator: group contributions from a formula or SMILES.

Every tier after Builtin flags the fields it supplies as estimated, except the
library, whose records are curated. Identifiers are first folded and mapped
through an alias table (English and Chinese names, formulas, SMILES and common
abbreviations).
*/
package properties
