// Package parser extracts endpoint hints from HTML markup.
//
// The prober and classifier use it for two purposes:
//   - Finding form actions: a FollowForm probe follows the first form
//     action once, and a DeepScan turns rooted form actions into
//     secondary probe targets.
//   - Finding API clues inside script blocks: paths that look like API
//     or search endpoints are surfaced as informational note content.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure
//  3. More maintainable than complex regex patterns
//  4. Standard library extension, well-maintained
package parser
