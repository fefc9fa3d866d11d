package sandbox

import (
	"fmt"
	"strings"
)

// step is the sandbox's parsed tactic representation.
type step struct {
	verb string
	expr *term  // exact
	name string // intro
	msg  string // log
}

const (
	verbExact = "exact"
	verbIntro = "intro"
	verbAdmit = "admit"
	verbSkip  = "skip"
	verbLog   = "log"
)

func parseStep(text string) (*step, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty step")
	}
	verb := text
	rest := ""
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		verb = text[:i]
		rest = strings.TrimSpace(text[i:])
	}

	switch verb {
	case verbExact:
		expr, err := parseTerm(rest)
		if err != nil {
			return nil, fmt.Errorf("exact: %w", err)
		}
		return &step{verb: verbExact, expr: expr}, nil
	case verbIntro:
		if rest == "" || strings.ContainsAny(rest, " \t") {
			return nil, fmt.Errorf("intro expects a single hypothesis name")
		}
		return &step{verb: verbIntro, name: rest}, nil
	case verbAdmit, verbSkip:
		if rest != "" {
			return nil, fmt.Errorf("%s takes no arguments", verb)
		}
		return &step{verb: verb}, nil
	case verbLog:
		if rest == "" {
			return nil, fmt.Errorf("log expects a message")
		}
		return &step{verb: verbLog, msg: rest}, nil
	default:
		return nil, fmt.Errorf("unknown tactic %q", verb)
	}
}
