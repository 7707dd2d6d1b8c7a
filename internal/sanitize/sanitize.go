// Package sanitize provides HTML sanitization for assistant chat replies.
// The planner backend's replies are rendered into the transcript via
// innerHTML, so anything the LLM (or a prompt-injected user) smuggles into
// them must be stripped before it reaches the browser.
package sanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy for chat replies.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()

		// Replies use simple markdown-rendered formatting; classes carry
		// the transcript's styling hooks (e.g. plan summaries).
		policy.AllowAttrs("class").OnElements("span", "p", "ul", "ol", "li")
	})
	return policy
}

// HTML strips dangerous elements (script, iframe, event handlers,
// javascript: URLs) from a chat reply while preserving safe formatting.
// The result is safe to render via innerHTML.
func HTML(input string) string {
	if input == "" {
		return ""
	}
	return getPolicy().Sanitize(input)
}
