package gate

import (
	"github.com/crealaunch/gate/policy"
)

// Option sets optional Gate settings.
type Option func(*Gate)

// WithTable overrides the role-to-area policy table.
func WithTable(t policy.Table) Option {
	return func(g *Gate) {
		g.table = t
	}
}

// WithClassifier overrides the route classifier.
func WithClassifier(c policy.Classifier) Option {
	return func(g *Gate) {
		g.classifier = c
	}
}

// WithFailMode selects the role-lookup failure policy.
// (default: DegradeToDefaultRole)
func WithFailMode(m FailMode) Option {
	return func(g *Gate) {
		g.failMode = m
	}
}
