package condition

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentrules/hookctl/pkg/hooks/event"
	"github.com/agentrules/hookctl/pkg/logger"
)

var evalLog = logger.New("hooks:condition")

// FieldResolver is the minimal contract the evaluator needs from whatever
// it is testing a condition against. *event.Event satisfies it directly.
type FieldResolver interface {
	Field(name string) (event.Value, bool)
}

// Evaluate runs a pre-parsed condition tree against an event and returns
// its boolean result. The evaluator is pure: it never mutates resolver or
// node, and a given (node, resolver-state) pair always yields the same
// answer.
func Evaluate(n Node, resolver FieldResolver) bool {
	v := evalValue(n, resolver)
	return truthy(v)
}

// EvaluateExpr parses and evaluates a condition string in one step,
// logging a single diagnostic on parse failure and treating the rule as
// not matching, per the engine's defensive-failure policy.
func EvaluateExpr(expr string, resolver FieldResolver) bool {
	node, err := Parse(expr)
	if err != nil {
		evalLog.Printf("invalid condition %q: %v", expr, err)
		return false
	}
	return Evaluate(node, resolver)
}

func evalValue(n Node, r FieldResolver) any {
	switch v := n.(type) {
	case Literal:
		return v.Value
	case FieldPath:
		return resolvePath(v, r)
	case LogicalNot:
		return !truthy(evalValue(v.Child, r))
	case LogicalAnd:
		return truthy(evalValue(v.Left, r)) && truthy(evalValue(v.Right, r))
	case LogicalOr:
		return truthy(evalValue(v.Left, r)) || truthy(evalValue(v.Right, r))
	case BinaryOp:
		return evalBinary(v, r)
	default:
		return nil
	}
}

func resolvePath(fp FieldPath, r FieldResolver) any {
	if len(fp.Segments) == 0 {
		return nil
	}
	cur, ok := r.Field(fp.Segments[0].Name)
	if !ok {
		return nil
	}
	for _, seg := range fp.Segments[1:] {
		m, ok := cur.(map[string]event.Value)
		if !ok {
			return nil
		}
		cur, ok = m[seg.Name]
		if !ok {
			return nil
		}
	}
	return cur
}

// truthy implements the language's null-is-false rule: a missing field
// (nil), empty string, zero number, and false are all falsy; everything
// else (including non-empty strings/maps/slices) is truthy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

func evalBinary(b BinaryOp, r FieldResolver) bool {
	left := evalValue(b.Left, r)
	right := evalValue(b.Right, r)

	if left == nil || right == nil {
		// A null operand compares false against anything, regardless of
		// operator.
		return false
	}

	switch b.Op {
	case "==":
		return compareEqual(left, right)
	case "!=":
		return !compareEqual(left, right)
	case "=~":
		return evalRegex(left, right)
	case "in":
		return evalIn(left, right)
	case "not in":
		return !evalIn(left, right)
	case "<", "<=", ">", ">=":
		return evalOrdering(b.Op, left, right)
	default:
		return false
	}
}

func compareEqual(left, right any) bool {
	ls, lok := left.(string)
	rs, rok := right.(string)
	if lok && rok {
		return ls == rs
	}
	lf, lok := left.(float64)
	rf, rok := right.(float64)
	if lok && rok {
		return lf == rf
	}
	lb, lok := left.(bool)
	rb, rok := right.(bool)
	if lok && rok {
		return lb == rb
	}
	// Incompatible types: false, never an exception.
	return false
}

func evalRegex(left, right any) bool {
	ls, ok := left.(string)
	if !ok {
		return false
	}
	pattern, ok := right.(string)
	if !ok {
		return false
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		evalLog.Printf("invalid regex pattern %q: %v", pattern, err)
		return false
	}
	return re.MatchString(ls)
}

func evalIn(left, right any) bool {
	switch rv := right.(type) {
	case string:
		ls, ok := left.(string)
		if !ok {
			return false
		}
		return strings.Contains(rv, ls)
	case map[string]event.Value:
		ls, ok := left.(string)
		if !ok {
			return false
		}
		_, found := rv[ls]
		return found
	case []event.Value:
		for _, item := range rv {
			if compareEqual(left, item) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func evalOrdering(op string, left, right any) bool {
	lf, lok := left.(float64)
	rf, rok := right.(float64)
	if lok && rok {
		switch op {
		case "<":
			return lf < rf
		case "<=":
			return lf <= rf
		case ">":
			return lf > rf
		case ">=":
			return lf >= rf
		}
	}
	ls, lok := left.(string)
	rs, rok := right.(string)
	if lok && rok {
		switch op {
		case "<":
			return ls < rs
		case "<=":
			return ls <= rs
		case ">":
			return ls > rs
		case ">=":
			return ls >= rs
		}
	}
	return false
}

// Describe renders a node as readable text for diagnostics (e.g. echoing a
// rule's effective condition in a dry-run). String literals are printed
// without quotes and no parentheses are added, so the output does not
// always parse back to the same expression.
func Describe(n Node) string {
	switch v := n.(type) {
	case Literal:
		return fmt.Sprintf("%v", v.Value)
	case FieldPath:
		var b strings.Builder
		for i, seg := range v.Segments {
			if i == 0 {
				b.WriteString(seg.Name)
				continue
			}
			fmt.Fprintf(&b, "[%q]", seg.Name)
		}
		return b.String()
	case LogicalNot:
		return "not " + Describe(v.Child)
	case LogicalAnd:
		return Describe(v.Left) + " and " + Describe(v.Right)
	case LogicalOr:
		return Describe(v.Left) + " or " + Describe(v.Right)
	case BinaryOp:
		return Describe(v.Left) + " " + v.Op + " " + Describe(v.Right)
	default:
		return ""
	}
}
