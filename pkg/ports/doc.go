/*
Package ports defines the driven ports (interfaces) for the vapor engine.

These interfaces decouple the equilibrium core from external implementations, allowing
the resolver to work with various property sources, databases and caches.

# Key Interfaces

  - PropertyProvider: One tier of the property resolution chain (builtin, library, online, estimate).
  - PropertyDatabase: A network-backed lookup-by-name service (e.g., PubChem). Unreliable and optional.
  - PropertyCache: Stores PropertyRecords fetched from a PropertyDatabase (memory or Redis).
*/
package ports
