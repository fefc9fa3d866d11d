package sandbox

import "sort"

// walk chases metavariable bindings until a non-bound term is reached.
func walk(t *term, subst map[string]*term) *term {
	for t.op == opMvar {
		bound, ok := subst[t.name]
		if !ok {
			return t
		}
		t = bound
	}
	return t
}

// occurs reports whether metavariable name appears in t under subst.
func occurs(name string, t *term, subst map[string]*term) bool {
	t = walk(t, subst)
	switch t.op {
	case opMvar:
		return t.name == name
	case opArrow, opApp:
		return occurs(name, t.l, subst) || occurs(name, t.r, subst)
	}
	return false
}

// unify extends subst to make a and b equal, or reports failure. Plain
// first-order unification: atoms are rigid, metavariables bind anything
// that does not contain them.
func unify(a, b *term, subst map[string]*term) bool {
	a, b = walk(a, subst), walk(b, subst)

	if a.op == opMvar {
		if b.op == opMvar && a.name == b.name {
			return true
		}
		if occurs(a.name, b, subst) {
			return false
		}
		subst[a.name] = b
		return true
	}
	if b.op == opMvar {
		return unify(b, a, subst)
	}

	if a.op != b.op {
		return false
	}
	switch a.op {
	case opAtom:
		return a.name == b.name
	default: // opArrow, opApp
		return unify(a.l, b.l, subst) && unify(a.r, b.r, subst)
	}
}

// resolve substitutes bindings throughout t.
func resolve(t *term, subst map[string]*term) *term {
	t = walk(t, subst)
	switch t.op {
	case opArrow, opApp:
		return &term{op: t.op, l: resolve(t.l, subst), r: resolve(t.r, subst)}
	}
	return t
}

// collectMvars returns the metavariable names of the given terms, sorted
// and deduplicated.
func collectMvars(terms ...*term) []string {
	seen := map[string]bool{}
	var visit func(t *term)
	visit = func(t *term) {
		switch t.op {
		case opMvar:
			seen[t.name] = true
		case opArrow, opApp:
			visit(t.l)
			visit(t.r)
		}
	}
	for _, t := range terms {
		visit(t)
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
