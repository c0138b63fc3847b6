package extensibility

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	ErrSyntax     = errors.New("invalid expression")
	ErrNotNumeric = errors.New("attribute is not numeric")
)

// DefaultCacheSize bounds the compiled-expression cache when none is given.
const DefaultCacheSize = 256

// Lookup resolves an attribute name to its value.
type Lookup func(key string) (any, bool)

// Expression is a compiled "key op value" predicate such as "life > 0",
// "loggedIn == true" or "name != Probe".
type Expression struct {
	Key string
	Op  string
	raw string
	lit any // bool, nil, float64 or string
}

// String returns the source form of the expression.
func (x *Expression) String() string {
	return x.Key + " " + x.Op + " " + x.raw
}

// Eval evaluates the expression against lookup. A missing attribute makes
// every operator false except !=. Ordering operators on a non-numeric
// attribute fail with ErrNotNumeric.
func (x *Expression) Eval(lookup Lookup) (bool, error) {
	v, ok := lookup(x.Key)
	switch x.Op {
	case "==":
		return ok && x.equal(v), nil
	case "!=":
		return !(ok && x.equal(v)), nil
	}

	if !ok {
		return false, nil
	}
	f, isNum := toFloat(v)
	if !isNum {
		return false, fmt.Errorf("%w: %q holds %T", ErrNotNumeric, x.Key, v)
	}
	lit := x.lit.(float64)
	switch x.Op {
	case ">":
		return f > lit, nil
	case "<":
		return f < lit, nil
	case ">=":
		return f >= lit, nil
	default: // "<="
		return f <= lit, nil
	}
}

func (x *Expression) equal(v any) bool {
	switch lit := x.lit.(type) {
	case nil:
		return v == nil
	case bool:
		b, ok := v.(bool)
		return ok && b == lit
	case float64:
		if f, ok := toFloat(v); ok {
			return f == lit
		}
		s, ok := v.(string)
		return ok && s == x.raw
	case string:
		s, ok := v.(string)
		return ok && s == lit
	}
	return false
}

// Compile parses "key op value". Supported operators are == != > < >= <=.
// Values are true, false, nil, numbers, or strings (optionally quoted).
func Compile(expr string) (*Expression, error) {
	parts := strings.Fields(expr)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q: want \"key op value\"", ErrSyntax, expr)
	}
	key, op, raw := parts[0], parts[1], parts[2]

	x := &Expression{Key: key, Op: op, raw: raw}
	switch raw {
	case "true":
		x.lit = true
	case "false":
		x.lit = false
	case "nil", "null":
		x.lit = nil
	default:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			x.lit = f
		} else {
			x.lit = unquote(raw)
		}
	}

	switch op {
	case "==", "!=":
	case ">", "<", ">=", "<=":
		if _, ok := x.lit.(float64); !ok {
			return nil, fmt.Errorf("%w: %q: operator %s needs a number", ErrSyntax, expr, op)
		}
	default:
		return nil, fmt.Errorf("%w: %q: unknown operator %q", ErrSyntax, expr, op)
	}
	return x, nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// ExpressionEvaluator compiles expressions once and keeps them in an LRU.
type ExpressionEvaluator struct {
	cache *lru.Cache[string, *Expression]
}

// NewExpressionEvaluator creates an evaluator caching up to size compiled
// expressions. size <= 0 selects DefaultCacheSize.
func NewExpressionEvaluator(size int) (*ExpressionEvaluator, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *Expression](size)
	if err != nil {
		return nil, fmt.Errorf("expression cache: %w", err)
	}
	return &ExpressionEvaluator{cache: cache}, nil
}

// Compile returns the cached compiled form of expr, compiling it on a miss.
func (e *ExpressionEvaluator) Compile(expr string) (*Expression, error) {
	if x, ok := e.cache.Get(expr); ok {
		return x, nil
	}
	x, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	e.cache.Add(expr, x)
	return x, nil
}

// Eval compiles (or reuses) expr and evaluates it against lookup.
func (e *ExpressionEvaluator) Eval(expr string, lookup Lookup) (bool, error) {
	x, err := e.Compile(expr)
	if err != nil {
		return false, err
	}
	return x.Eval(lookup)
}

// Len returns the number of cached expressions.
func (e *ExpressionEvaluator) Len() int {
	return e.cache.Len()
}
