// Package classifier assigns each probe outcome to exactly one category.
//
// Classification is a pure function of the outcome: calling it twice on
// the same outcome yields identical results, and it is total over the
// six-category taxonomy. Decision order encodes precedence, not just
// possibility: transport failures and authentication statuses are
// unambiguous signals that short-circuit content inspection, and
// content-type-claimed formats are verified rather than trusted because
// servers routinely mislabel their payloads. The malformed category
// exists specifically to surface that mismatch instead of silently
// mis-filing the result as a success or a plain failure.
package classifier
