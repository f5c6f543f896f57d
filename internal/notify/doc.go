// Package notify delivers run summaries via a pluggable webhook.
//
// The default implementation posts a plain-text summary as JSON to the
// configured webhook URL and degrades to a no-op when none is set. Run code
// depends only on the Service interface.
package notify
