// Package config loads and validates generator-definition documents.
//
// A document names generators, each built from a base type and an ordered
// list of steps:
//
//	version: "1"
//	seed: 42
//	include:
//	  - "generators/**/*.yaml"
//	generators:
//	  - name: age
//	    type: int8
//	    steps:
//	      - {op: range, min: 18, max: 99}
//	      - {op: filter, expr: "it % 2 == 0"}
//	      - {op: injectNull, probability: 0.1}
//
// Documents may be YAML (.yaml, .yml) or JSON. LoadFromFile expands
// ${VAR} and ${VAR:-default} references, checks the document against the
// embedded JSON schema, appends generators from included files and then
// runs the semantic checks of Validate.
//
// Process-level settings (config path, seed, log level) come from ARBITRARY_*
// environment variables; see Settings.
package config
