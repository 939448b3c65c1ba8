// Package recommend derives a ranked action list from a probe report.
//
// The ranking is a fixed precedence: direct JSON APIs beat XML APIs,
// which beat scraping, with authenticated access as a lower-priority
// option and a fallback line when nothing usable was found. The function
// is pure and order-stable for a given report, so the recommendation
// list is reproducible and each rule is independently testable.
package recommend
