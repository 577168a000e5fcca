// Package notion implements the remote page source against the Notion
// REST API: database queries with a cascading sort-order fallback, block
// tree listing for the markdown converter, and proactive rate limiting.
package notion
