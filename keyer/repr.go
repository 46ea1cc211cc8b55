package keyer

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Kwargs is the keyword-argument mapping of a call. A trailing Kwargs value
// in a wrapped call's argument list is treated as keywords rather than as a
// positional argument.
type Kwargs map[string]any

// Repr renders a value in the literal notation used inside cache keys:
// single-quoted strings, None/True/False, [a,b] lists, {'k':v} maps with
// sorted keys. The notation matches the keys minted by legacy deployments,
// so freshly built keys address entries those deployments wrote.
//
// Rendering is deterministic for structurally equal inputs. Map keys are
// sorted by their rendered form; struct fields follow declaration order.
func Repr(v any) string {
	var b strings.Builder
	reprValue(&b, v)
	return b.String()
}

func reprValue(b *strings.Builder, v any) {
	if v == nil {
		b.WriteString("None")
		return
	}

	switch x := v.(type) {
	case bool:
		if x {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
		return
	case string:
		reprString(b, x)
		return
	case Kwargs:
		reprMap(b, reflect.ValueOf(map[string]any(x)))
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		b.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	case reflect.String:
		reprString(b, rv.String())
	case reflect.Bool:
		if rv.Bool() {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			b.WriteString("None")
			return
		}
		reprValue(b, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			b.WriteString("None")
			return
		}
		b.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			reprValue(b, rv.Index(i).Interface())
		}
		b.WriteByte(']')
	case reflect.Map:
		if rv.IsNil() {
			b.WriteString("None")
			return
		}
		reprMap(b, rv)
	case reflect.Struct:
		reprStruct(b, rv)
	default:
		// funcs, channels and friends have no stable literal form;
		// callers wanting them in keys should supply a custom ArgKeyer.
		fmt.Fprintf(b, "%v", v)
	}
}

func reprString(b *strings.Builder, s string) {
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
}

func reprMap(b *strings.Builder, rv reflect.Value) {
	type pair struct{ k, v string }
	pairs := make([]pair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, pair{Repr(iter.Key().Interface()), Repr(iter.Value().Interface())})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })

	b.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.k)
		b.WriteByte(':')
		b.WriteString(p.v)
	}
	b.WriteByte('}')
}

func reprStruct(b *strings.Builder, rv reflect.Value) {
	rt := rv.Type()
	b.WriteByte('{')
	n := 0
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if n > 0 {
			b.WriteByte(',')
		}
		n++
		reprString(b, f.Name)
		b.WriteByte(':')
		reprValue(b, rv.Field(i).Interface())
	}
	b.WriteByte('}')
}

// reprTuple renders positional args in tuple notation: "()", "(2,)", "(1,2)".
func reprTuple(args []any) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		reprValue(&b, a)
	}
	if len(args) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return b.String()
}

// reprKwargs renders keywords in map notation with sorted keys.
func reprKwargs(kw Kwargs) string {
	var b strings.Builder
	reprMap(&b, reflect.ValueOf(map[string]any(kw)))
	return b.String()
}
