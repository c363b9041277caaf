package fluent

import (
	"fmt"
	"time"
)

// builtins holds the NUMBER and DATETIME functions every Bundle falls
// back to when a FunctionCall names neither a caller-registered
// function nor shadows one of these two.
var builtins = map[string]Function{
	"NUMBER":   numberBuiltin,
	"DATETIME": datetimeBuiltin,
}

func numberBuiltin(positional []Value, named map[string]Value) (Value, error) {
	if len(positional) != 1 {
		return nil, fmt.Errorf("NUMBER() takes exactly one positional argument, got %d", len(positional))
	}

	opts := parseNumberOptions(named)

	switch arg := positional[0].(type) {
	case *NoValue:
		return &NoValue{Placeholder: fmt.Sprintf("NUMBER(%s)", arg.Placeholder)}, nil
	case *NumberValue:
		return &NumberValue{Value: arg.Value, Options: opts.Merge(arg.Options)}, nil
	case *StringValue:
		parsed, err := parseNumberLiteral(arg.Value)
		if err != nil {
			return nil, fmt.Errorf("NUMBER() argument %q is not a number", arg.Value)
		}
		return &NumberValue{Value: parsed, Options: opts}, nil
	default:
		return nil, fmt.Errorf("NUMBER() cannot coerce a %T argument", arg)
	}
}

func datetimeBuiltin(positional []Value, named map[string]Value) (Value, error) {
	if len(positional) != 1 {
		return nil, fmt.Errorf("DATETIME() takes exactly one positional argument, got %d", len(positional))
	}

	opts := parseDateTimeOptions(named)

	switch arg := positional[0].(type) {
	case *NoValue:
		return &NoValue{Placeholder: fmt.Sprintf("DATETIME(%s)", arg.Placeholder)}, nil
	case *DateTimeValue:
		return &DateTimeValue{Value: arg.Value, Options: opts.Merge(arg.Options)}, nil
	case *NumberValue:
		return &DateTimeValue{Value: time.Unix(int64(arg.Value), 0).UTC(), Options: opts}, nil
	case *StringValue:
		parsed, err := time.Parse(time.RFC3339, arg.Value)
		if err != nil {
			return nil, fmt.Errorf("DATETIME() argument %q is not an RFC 3339 date-time", arg.Value)
		}
		return &DateTimeValue{Value: parsed, Options: opts}, nil
	default:
		return nil, fmt.Errorf("DATETIME() cannot coerce a %T argument", arg)
	}
}

func parseNumberOptions(named map[string]Value) NumberOptions {
	var opts NumberOptions
	if v, ok := namedInt(named, "minimumFractionDigits"); ok {
		opts.MinimumFractionDigits = intPtr(v)
	}
	if v, ok := namedInt(named, "maximumFractionDigits"); ok {
		opts.MaximumFractionDigits = intPtr(v)
	}
	if v, ok := namedInt(named, "minimumIntegerDigits"); ok {
		opts.MinimumIntegerDigits = intPtr(v)
	}
	if v, ok := namedString(named, "style"); ok {
		opts.Style = v
	}
	if v, ok := namedString(named, "currency"); ok {
		opts.Currency = v
	}
	return opts
}

func parseDateTimeOptions(named map[string]Value) DateTimeOptions {
	var opts DateTimeOptions
	if v, ok := namedString(named, "dateStyle"); ok {
		opts.DateStyle = v
	}
	if v, ok := namedString(named, "timeStyle"); ok {
		opts.TimeStyle = v
	}
	return opts
}

func namedInt(named map[string]Value, key string) (int, bool) {
	val, ok := named[key]
	if !ok {
		return 0, false
	}
	num, ok := val.(*NumberValue)
	if !ok {
		return 0, false
	}
	return int(num.Value), true
}

func namedString(named map[string]Value, key string) (string, bool) {
	val, ok := named[key]
	if !ok {
		return "", false
	}
	str, ok := val.(*StringValue)
	if !ok {
		return "", false
	}
	return str.Value, true
}
