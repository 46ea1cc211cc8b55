package keyer

import (
	"fmt"
	"reflect"
	"runtime"
)

// Prefix marks every minted key in a shared keyspace.
const Prefix = "[cached]"

// FuncKeyer names a wrapped callable for use in its cache keys. Resolution
// happens once at wrap time; the resolved identity must be non-empty.
type FuncKeyer interface {
	FuncKey(fn any) string
}

// FuncKeyString is a literal identity override.
type FuncKeyString string

func (s FuncKeyString) FuncKey(any) string { return string(s) }

// FuncKeyFunc adapts a function-of-the-callable to FuncKeyer.
type FuncKeyFunc func(fn any) string

func (f FuncKeyFunc) FuncKey(fn any) string { return f(fn) }

// DefaultFuncKey names the callable by its runtime module-qualified name,
// e.g. "github.com/acme/billing.InvoiceTotal". Closures get compiler names
// like "...funcN", which are stable within a build but shift between call
// sites; wrap closures with FuncKeyString if keys must survive refactors.
// The zero value is ready to use.
type DefaultFuncKey struct{}

func (DefaultFuncKey) FuncKey(fn any) string {
	rf := runtimeFunc(fn)
	if rf == nil {
		return ""
	}
	return rf.Name()
}

// LegacyFuncKey appends the defining source line to the runtime name
// (":123"), the disambiguator older deployments baked into their keys.
type LegacyFuncKey struct{}

func (LegacyFuncKey) FuncKey(fn any) string {
	rf := runtimeFunc(fn)
	if rf == nil {
		return ""
	}
	_, line := rf.FileLine(rf.Entry())
	return fmt.Sprintf("%s:%d", rf.Name(), line)
}

func runtimeFunc(fn any) *runtime.Func {
	if fn == nil {
		return nil
	}
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil
	}
	return runtime.FuncForPC(rv.Pointer())
}

// Build assembles the raw (unsanitized) key: Prefix + identity + "(" + argsig + ")".
func Build(funcKey, argSig string) string {
	return Prefix + funcKey + "(" + argSig + ")"
}
