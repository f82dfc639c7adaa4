// Package temporal provides the foundational vocabulary for the tempus
// date/time engine: unit and rounding-mode enumerations, option records,
// error kinds, and exact integer rounding.
//
// This package contains definitions only. All other internal packages
// import temporal; temporal imports nothing internal. This keeps it the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Option bags are closed enumerations. Every Parse function validates
//     membership eagerly and rejects unknown strings with a TypeError-kind
//     error; nothing is silently ignored.
//   - All rounding is exact integer arithmetic on math/big values. No
//     float64 appears anywhere on a rounding path.
//   - Two error kinds only: range (value out of range, rejected policy,
//     missing anchor) and type (wrong shape of input, unknown option).
package temporal
