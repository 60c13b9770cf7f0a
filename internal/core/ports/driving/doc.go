// Package driving defines the interfaces that external actors use to
// drive the core (primary ports in hexagonal architecture).
//
// The CLI and MCP adapters depend on these interfaces; core services
// implement them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
