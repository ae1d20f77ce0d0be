// Package plate turns short words into registration-mark renderings.
//
// # Pipeline
//
// A Word is matched against the positional rules of the Registry. Every
// matching Rule names the positions that may carry a digit; the Generator
// enumerates all homoglyph substitutions for those positions and scores each
// rendering. Rank orders the collected candidates for display.
//
// # Families
//
//   - Dateless: 1-3 letters and 1-4 digits, in either order.
//   - NorthernIrishDateless: as Dateless, but the letter group holds an I or Z.
//   - Suffix: three letters, 1-3 digits, one age letter (ABC 123D).
//   - Prefix: one age letter, 1-3 digits, three letters (A123 BCD).
//   - Current: two letters, a two-digit year code, three letters (AB12 CDE).
//
// Only Current renderings are checked against a YearFilter; a year code
// outside the filter could not have been issued yet.
//
// # Scoring
//
// A rendering scores the sum of its substitution weights plus two points for
// each letter left untouched. Candidates with equal renderings collapse into
// one entry holding the highest score seen.
//
// All tables are built once at package init and never mutated afterwards.
package plate
