// Package diagnostic collects the non-fatal findings of a conversion.
//
// Fatal problems are returned as errors. Everything a conversion can work
// around is recorded here instead and reported once the file is written:
//   - Scan codes without an XKB key (UNMAPPED_KEY, warning)
//   - Keys left out because the baseline already produces the same output
//     (SAME_AS_BASELINE, info)
package diagnostic
