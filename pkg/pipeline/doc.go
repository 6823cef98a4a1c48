// Package pipeline builds generator chains from config documents and samples
// them in batches.
//
// filter, map and filterCharacter steps are expr-lang expressions. The value
// under test is bound to "it"; filterCharacter also binds the code point to
// "code":
//
//	- {op: filter, expr: "it % 2 == 0"}
//	- {op: filterCharacter, expr: "code < 128"}
//	- {op: map, expr: "'id-' + string(it)"}
package pipeline
