package journal

import (
	"fmt"
	"regexp"
	"strings"
)

// Fallback classification for empty or unmatched text.
const (
	OthersBucket  = "🎯 Others"
	Uncategorized = "Uncategorized"
)

type rule struct {
	bucket  string
	subject string
	re      *regexp.Regexp
}

// Classifier maps free text to a (bucket, subject) pair using whole-word keyword matching.
type Classifier struct {
	rules []rule
}

// NewClassifier compiles every subject's keywords into one case-insensitive alternation.
// Subjects with no usable keywords are skipped.
func NewClassifier(d Dictionary) (*Classifier, error) {
	c := &Classifier{}
	for _, b := range d.Buckets {
		for _, s := range b.Subjects {
			var alts []string
			for _, kw := range s.Keywords {
				kw = strings.TrimSpace(kw)
				if kw == "" {
					continue
				}
				alts = append(alts, regexp.QuoteMeta(kw))
			}
			if len(alts) == 0 {
				continue
			}
			re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
			if err != nil {
				return nil, fmt.Errorf("compile %s/%s: %w", b.Name, s.Name, err)
			}
			c.rules = append(c.rules, rule{bucket: b.Name, subject: s.Name, re: re})
		}
	}
	return c, nil
}

// MustClassifier is NewClassifier for dictionaries known to be valid.
func MustClassifier(d Dictionary) *Classifier {
	c, err := NewClassifier(d)
	if err != nil {
		panic(err)
	}
	return c
}

// Categorize returns the first matching bucket and subject in dictionary order.
func (c *Classifier) Categorize(text string) (bucket, subject string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return OthersBucket, Uncategorized
	}
	for _, r := range c.rules {
		if r.re.MatchString(text) {
			return r.bucket, r.subject
		}
	}
	return OthersBucket, Uncategorized
}

// Subjects returns the compiled subject count, mostly for diagnostics.
func (c *Classifier) Subjects() int {
	return len(c.rules)
}
