package assertion

import (
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

// CustomMatchers compiles a user-supplied matcher configuration on
// first use and caches the result for the lifetime of the run. The
// compiled set is immutable and safe to share across concurrently
// analyzed units.
//
// The configuration is a comma-separated list of
// "fully.qualified.Type#methodName" entries; a trailing "*" on the
// method name switches to prefix matching. Malformed entries are
// dropped with a warning, never a failure.
type CustomMatchers struct {
	raw string
	log *charmlog.Logger

	once sync.Once
	set  MatcherSet
}

// NewCustomMatchers returns an uncompiled matcher configuration.
// logger may be nil to suppress warnings.
func NewCustomMatchers(raw string, logger *charmlog.Logger) *CustomMatchers {
	return &CustomMatchers{raw: raw, log: logger}
}

// Set returns the compiled matcher set, compiling it exactly once.
func (c *CustomMatchers) Set() MatcherSet {
	c.once.Do(func() {
		c.set = compileCustom(c.raw, c.log)
	})
	return c.set
}

func compileCustom(raw string, logger *charmlog.Logger) MatcherSet {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var set MatcherSet
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(entry, "#")
		if len(parts) != 2 ||
			strings.TrimSpace(parts[0]) == "" ||
			strings.TrimSpace(parts[1]) == "" {
			if logger != nil {
				logger.Warn("skipping malformed custom assertion entry, expected Type#methodOrPrefix*",
					"entry", entry)
			}
			continue
		}

		typeName := strings.TrimSpace(parts[0])
		methodName := strings.TrimSpace(parts[1])

		name := ExactName(methodName)
		if strings.HasSuffix(methodName, "*") {
			name = PrefixName(strings.TrimSuffix(methodName, "*"))
		}
		set = append(set, CallMatcher{Type: ExactType(typeName), Name: name})
	}
	return set
}
