/*
Package vapor computes binary vapor-liquid equilibrium (T-x-y) phase diagrams.

Given two substance identifiers (names, aliases, formulas or SMILES) and a pressure,
the engine resolves pure-component properties through a chain of tiers
(built-in table, optional curated library, an online database, then group-contribution
estimation), looks up NRTL interaction parameters for the pair, and solves the
bubble-point equation at evenly spaced liquid compositions.

	eng, err := vapor.New(vapor.WithOffline())
	if err != nil {
		log.Fatal(err)
	}
	res, err := eng.Diagram(ctx, "ethanol", "water", 1.013, 21)

Every result carries confidence flags: Estimated when some property came from a
fallback tier, DefaultParameters when the pair was unknown and an ideal solution
was assumed, and a per-point Status. Unresolvable identifiers fail with an error
matching domain.ErrNotFound.

The module also ships adapters around the engine: an HTTP API (pkg/adapters/http),
an MCP tool server (pkg/adapters/mcp), Prometheus metrics (pkg/observability) and
the vapor CLI (cmd/vapor).
*/
package vapor
