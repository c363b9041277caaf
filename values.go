package fluent

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Value is the runtime representation produced by resolving a Pattern:
// a closed tagged union of String, Number, DateTime and None.
type Value interface {
	// String renders the value for interpolation into a resolved
	// Pattern. scope supplies the locale/formatter context a Number
	// value needs; it is unused by String, DateTime and None.
	String(scope *Scope) string
}

// StringValue wraps a plain string.
type StringValue struct {
	Value string
}

// String returns a new StringValue.
func String(val string) *StringValue {
	return &StringValue{Value: val}
}

func (v *StringValue) String(_ *Scope) string {
	return v.Value
}

// NumberOptions configures how a NumberValue renders. A nil pointer
// field means "unset"; Merge prefers the receiver's set fields and
// falls back to other's.
type NumberOptions struct {
	MinimumFractionDigits *int
	MaximumFractionDigits *int
	MinimumIntegerDigits  *int
	Style                 string // "decimal" (default), "percent", "currency"
	Currency              string
}

// Merge returns a new NumberOptions with named (the caller) taking
// precedence over existing (carried on an already-wrapped value).
func (named NumberOptions) Merge(existing NumberOptions) NumberOptions {
	merged := existing
	if named.MinimumFractionDigits != nil {
		merged.MinimumFractionDigits = named.MinimumFractionDigits
	}
	if named.MaximumFractionDigits != nil {
		merged.MaximumFractionDigits = named.MaximumFractionDigits
	}
	if named.MinimumIntegerDigits != nil {
		merged.MinimumIntegerDigits = named.MinimumIntegerDigits
	}
	if named.Style != "" {
		merged.Style = named.Style
	}
	if named.Currency != "" {
		merged.Currency = named.Currency
	}
	return merged
}

// NumberValue wraps a numeric value together with the formatting
// options that should apply when it is rendered.
type NumberValue struct {
	Value   float64
	Options NumberOptions
}

// Number returns a new NumberValue with no options set.
func Number(val float64) *NumberValue {
	return &NumberValue{Value: val}
}

func (v *NumberValue) String(scope *Scope) string {
	locale := scope.bundle.primaryLocale()

	var opts []number.Option
	if v.Options.MinimumFractionDigits != nil || v.Options.MaximumFractionDigits != nil {
		min := 0
		if v.Options.MinimumFractionDigits != nil {
			min = *v.Options.MinimumFractionDigits
		}
		max := min
		if v.Options.MaximumFractionDigits != nil {
			max = *v.Options.MaximumFractionDigits
		}
		if max < min {
			max = min
		}
		opts = append(opts, number.MinFractionDigits(min), number.MaxFractionDigits(max))
	}
	if v.Options.MinimumIntegerDigits != nil {
		opts = append(opts, number.MinIntegerDigits(*v.Options.MinimumIntegerDigits))
	}

	printer := scope.memoizeIntlObject("message.Printer", locale.String(), func() interface{} {
		return message.NewPrinter(locale)
	}).(*message.Printer)

	switch v.Options.Style {
	case "percent":
		return printer.Sprint(number.Percent(v.Value, opts...))
	case "currency":
		if v.Options.Currency == "" {
			return printer.Sprint(number.Decimal(v.Value, opts...))
		}
		return fmt.Sprintf("%s %s", v.Options.Currency, printer.Sprint(number.Decimal(v.Value, opts...)))
	default:
		return printer.Sprint(number.Decimal(v.Value, opts...))
	}
}

// DateTimeOptions configures how a DateTimeValue renders.
type DateTimeOptions struct {
	// DateStyle/TimeStyle are one of "", "short", "medium", "long", "full".
	DateStyle string
	TimeStyle string
}

// Merge applies named (caller) options over existing (carried) ones.
func (named DateTimeOptions) Merge(existing DateTimeOptions) DateTimeOptions {
	merged := existing
	if named.DateStyle != "" {
		merged.DateStyle = named.DateStyle
	}
	if named.TimeStyle != "" {
		merged.TimeStyle = named.TimeStyle
	}
	return merged
}

// DateTimeValue wraps a wall-clock value together with its rendering options.
type DateTimeValue struct {
	Value   time.Time
	Options DateTimeOptions
}

// DateTime returns a new DateTimeValue with no options set.
func DateTime(val time.Time) *DateTimeValue {
	return &DateTimeValue{Value: val}
}

var dateLayouts = map[string]string{
	"short":  "1/2/06",
	"medium": "Jan 2, 2006",
	"long":   "January 2, 2006",
	"full":   "Monday, January 2, 2006",
}

var timeLayouts = map[string]string{
	"short":  "3:04 PM",
	"medium": "3:04:05 PM",
	"long":   "3:04:05 PM MST",
	"full":   "3:04:05 PM MST",
}

func (v *DateTimeValue) String(_ *Scope) string {
	dateStyle := v.Options.DateStyle
	timeStyle := v.Options.TimeStyle
	if dateStyle == "" && timeStyle == "" {
		dateStyle = "medium"
	}

	var parts []string
	if dateStyle != "" {
		layout, ok := dateLayouts[dateStyle]
		if !ok {
			layout = dateLayouts["medium"]
		}
		parts = append(parts, v.Value.Format(layout))
	}
	if timeStyle != "" {
		layout, ok := timeLayouts[timeStyle]
		if !ok {
			layout = timeLayouts["medium"]
		}
		parts = append(parts, v.Value.Format(layout))
	}

	result := ""
	for i, part := range parts {
		if i > 0 {
			result += ", "
		}
		result += part
	}
	return result
}

// NoValue is the sentinel produced whenever resolution fails; it
// renders as its placeholder wrapped in braces to make failures visible.
type NoValue struct {
	Placeholder string
}

func (v *NoValue) String(_ *Scope) string {
	return "{" + v.Placeholder + "}"
}

// Function is a callable usable from a FunctionReference, receiving
// positional and named arguments already resolved to Values. Returning
// a non-nil error is reported as FunctionThrewError and substituted
// with a NoValue by the resolver.
type Function func(positional []Value, named map[string]Value) (Value, error)

// coerceVariable converts a caller-supplied native Go value (as passed
// to FormatPattern's args map) into a Value. It returns (nil, false) if
// the type is not supported.
func coerceVariable(raw interface{}) (Value, bool) {
	switch val := raw.(type) {
	case Value:
		return val, true
	case string:
		return String(val), true
	case *StringValue:
		return val, true
	case *NumberValue:
		return val, true
	case *DateTimeValue:
		return val, true
	case time.Time:
		return DateTime(val), true
	case float32:
		return Number(float64(val)), true
	case float64:
		return Number(val), true
	case int:
		return Number(float64(val)), true
	case int8:
		return Number(float64(val)), true
	case int16:
		return Number(float64(val)), true
	case int32:
		return Number(float64(val)), true
	case int64:
		return Number(float64(val)), true
	case uint:
		return Number(float64(val)), true
	case uint8:
		return Number(float64(val)), true
	case uint16:
		return Number(float64(val)), true
	case uint32:
		return Number(float64(val)), true
	case uint64:
		return Number(float64(val)), true
	default:
		return nil, false
	}
}

// parseNumberLiteral turns a NumberLiteral's raw text into a float64.
func parseNumberLiteral(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}

func intPtr(v int) *int { return &v }
