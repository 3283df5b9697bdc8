// Package source provides built-in household source implementations.
//
// Household sources supply the rooms and members of a collective.
// The package includes:
//
//   - Static: Fixed lists of rooms and members
//   - LoadFile / ParseHousehold: Static sources read from a YAML household file
//
// Custom sources (a database, a web API) can be implemented by satisfying
// the types.HouseholdSource interface.
package source
