package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var allowedTags = []string{
	"div", "p", "h3", "ul", "ol", "li",
	"b", "i", "strong", "em", "sub", "sup",
	"table", "thead", "th", "tbody", "tr", "td",
	// Useful to keep diffs readable in journals.
	"ins", "del",
}

// Cleaner strips amendement HTML down to a safe subset before storage.
// Construct one explicitly and pass it where needed; policies are safe for
// concurrent use.
type Cleaner struct {
	policy *bluemonday.Policy
}

func NewCleaner() *Cleaner {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(allowedTags...)
	policy.AllowAttrs("href", "title").OnElements("a")
	policy.AllowAttrs("title").OnElements("abbr", "acronym")
	policy.AllowAttrs("colspan").OnElements("td", "th")
	return &Cleaner{policy: policy}
}

// Clean decodes HTML entities and removes every tag and attribute outside the
// allowed subset.
func (c *Cleaner) Clean(content string) string {
	return strings.TrimSpace(c.policy.Sanitize(html.UnescapeString(content)))
}
