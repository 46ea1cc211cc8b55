package keyer

// ArgKeyer turns a call's positional and keyword arguments into the argument
// portion of a cache key.
//
// Contract:
//   - Determinism: structurally equal inputs must produce the same string,
//     regardless of map iteration order.
//   - Injectivity is the implementer's problem: a keyer that collapses
//     distinguishable calls onto one string makes those calls share a cache
//     entry. That is sometimes the point (URL normalization), but it is the
//     caller's risk, not checked here.
type ArgKeyer interface {
	ArgKey(args []any, kwargs Kwargs) string
}

// ArgKeyFunc adapts a plain function to ArgKeyer.
type ArgKeyFunc func(args []any, kwargs Kwargs) string

func (f ArgKeyFunc) ArgKey(args []any, kwargs Kwargs) string { return f(args, kwargs) }

// DefaultArgKey renders the (args, kwargs) pair as a single literal:
// no arguments => "((),{})", (2, foo='hello') => "((2,),{'foo':'hello'})".
// The zero value is ready to use.
type DefaultArgKey struct{}

func (DefaultArgKey) ArgKey(args []any, kwargs Kwargs) string {
	return "(" + reprTuple(args) + "," + reprKwargs(kwargs) + ")"
}

// LegacyArgKey reproduces the signature format of pre-rewrite deployments:
// the args tuple only when there are args, immediately concatenated with the
// kwargs map only when there are keywords, no separator.
// (2, foo='hello') => "(2,){'foo':'hello'}"; a no-arg call => "".
//
// Kept for migration continuity so rolling deployments keep hitting entries
// written under the old format.
type LegacyArgKey struct{}

func (LegacyArgKey) ArgKey(args []any, kwargs Kwargs) string {
	var s string
	if len(args) > 0 {
		s = reprTuple(args)
	}
	if len(kwargs) > 0 {
		s += reprKwargs(kwargs)
	}
	return s
}
