// Package harness provides scenario-driven conformance testing for the
// date-time engine.
//
// The harness loads YAML scenario files, executes their steps against
// the public operations (parse, arithmetic, difference, rounding,
// serialization), and validates the observed outputs or error kinds.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	steps:
//	  - op: zoned
//	    input: "2020-03-08T02:30:00[America/Los_Angeles]"
//	    disambiguation: compatible
//	    expect: "2020-03-08T03:30:00-07:00[America/Los_Angeles]"
//	  - op: add_date
//	    input: "2020-01-31"
//	    duration: "P1M"
//	    overflow: reject
//	    expect_error: range
//
// # Step Operations
//
// The following operations are supported:
//
//   - parse_date, parse_time, parse_datetime, parse_duration:
//     parse the input and serialize it back
//   - zoned: parse an RFC 9557 string under an offset policy and a
//     disambiguation, and serialize the resolved result
//   - add_date, add_zoned: apply an ISO duration to the parsed input
//   - add_duration: add two durations, optionally against a relative date
//   - diff_datetime, diff_zoned: difference between input and other
//   - round_duration, round_zoned: round under smallest_unit, increment,
//     and mode
//   - total: total a duration in a single unit
//
// # Deterministic Testing
//
// Every step is a pure function of its scenario fields and the compiled
// time zone database, so the transcript of a scenario is byte-identical
// across runs and suitable for golden snapshot comparison.
package harness
