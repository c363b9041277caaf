package fluent

import (
	"fmt"
	"strings"
	"sync"

	"github.com/corelingo/fluent/parser/ast"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// Bundle collects the messages and terms parsed from one or more
// resources for a locale, along with the functions, bidi-isolation
// policy and text transform that should apply when formatting them.
type Bundle struct {
	locales   []language.Tag
	messages  map[string]*ast.Message
	terms     map[string]*ast.Term
	functions map[string]Function

	useIsolating bool
	transform    func(string) string

	cacheMu sync.Mutex
	cache   map[string]interface{}
}

// Option configures a Bundle at construction time.
type Option func(*Bundle)

// WithFunctions registers caller-provided functions, callable from FTL
// as FUNCTION(...). Names are upper-cased, matching the FTL grammar's
// own requirement that function names be all upper-case.
func WithFunctions(functions map[string]Function) Option {
	return func(bundle *Bundle) {
		for name, fn := range functions {
			bundle.functions[strings.ToUpper(strings.TrimSpace(name))] = fn
		}
	}
}

// WithUseIsolating sets whether placeable results are wrapped in
// Unicode bidi isolation marks. Defaults to true.
func WithUseIsolating(useIsolating bool) Option {
	return func(bundle *Bundle) {
		bundle.useIsolating = useIsolating
	}
}

// WithTransform installs a function applied to every literal text run
// before interpolation (e.g. to upper-case a resource for pseudo-l10n
// testing). Defaults to the identity function.
func WithTransform(transform func(string) string) Option {
	return func(bundle *Bundle) {
		if transform != nil {
			bundle.transform = transform
		}
	}
}

// NewBundle creates an empty Bundle for primaryLocale. Plural-rule
// categorization and number formatting use primaryLocale only.
func NewBundle(primaryLocale language.Tag, options ...Option) *Bundle {
	bundle := &Bundle{
		locales:      []language.Tag{primaryLocale},
		messages:     make(map[string]*ast.Message),
		terms:        make(map[string]*ast.Term),
		functions:    make(map[string]Function),
		useIsolating: true,
		transform:    func(s string) string { return s },
		cache:        make(map[string]interface{}),
	}
	for _, option := range options {
		option(bundle)
	}
	return bundle
}

// WithFallbackLocales appends further locales to the Bundle's locale
// list after the primary one. They are stored only: plural-rule
// categorization and number formatting do not consult them.
func WithFallbackLocales(locales ...language.Tag) Option {
	return func(bundle *Bundle) {
		bundle.locales = append(bundle.locales, locales...)
	}
}

func (bundle *Bundle) primaryLocale() language.Tag {
	return bundle.locales[0]
}

// AddResource adds every message and term from resource to the Bundle.
// Unless allowOverrides is true, an id already present is left
// untouched and a ResourceConflictError is returned for it; every other
// entry in resource is still added.
func (bundle *Bundle) AddResource(resource *Resource, allowOverrides bool) []error {
	var errs []error

	for _, message := range resource.messages {
		id := message.ID.Name
		if !allowOverrides && bundle.messages[id] != nil {
			errs = append(errs, &ResourceConflictError{Kind: "message", ID: id})
			continue
		}
		bundle.messages[id] = message
	}

	for _, term := range resource.terms {
		id := term.ID.Name
		if !allowOverrides && bundle.terms[id] != nil {
			errs = append(errs, &ResourceConflictError{Kind: "term", ID: id})
			continue
		}
		bundle.terms[id] = term
	}

	return errs
}

// HasMessage reports whether id is a known message.
func (bundle *Bundle) HasMessage(id string) bool {
	_, ok := bundle.messages[id]
	return ok
}

// GetMessage returns the message entry for id, or nil if unknown.
func (bundle *Bundle) GetMessage(id string) *ast.Message {
	return bundle.messages[id]
}

// FormatPattern formats pattern against args, a map of variable name to
// a supported Go value (string, numeric kinds, time.Time, or Value).
// If errorsOut is non-nil, non-fatal errors encountered while resolving
// are appended to it and the best-effort result is still returned. If
// errorsOut is nil, the first non-fatal error aborts the call exactly
// like a fatal one. A TooManyPlaceablesError always aborts the call,
// regardless of errorsOut.
func (bundle *Bundle) FormatPattern(pattern *ast.Pattern, args map[string]interface{}, errorsOut *[]error) (result string, err error) {
	variables := make(map[string]Value, len(args))
	for name, raw := range args {
		value, ok := coerceVariable(raw)
		if !ok {
			if errorsOut != nil {
				*errorsOut = append(*errorsOut, &UnsupportedVariableTypeError{Name: name, Type: fmt.Sprintf("%T", raw)})
				continue
			}
			return "", &UnsupportedVariableTypeError{Name: name, Type: fmt.Sprintf("%T", raw)}
		}
		variables[strings.TrimSpace(name)] = value
	}

	scope := newScope(bundle, variables, errorsOut)

	defer func() {
		if r := recover(); r != nil {
			signal, ok := r.(fatalSignal)
			if !ok {
				panic(r)
			}
			err = signal.err
			result = (&NoValue{Placeholder: "???"}).String(scope)
		}
	}()

	value := resolvePattern(scope, pattern)
	return value.String(scope), nil
}

// FormatMessage formats the value (or, if attr is non-empty, the named
// attribute) of the message identified by id. It is a convenience
// wrapper over FormatPattern for the common case of formatting by id
// rather than by an already-looked-up *ast.Pattern.
func (bundle *Bundle) FormatMessage(id string, attr string, args map[string]interface{}, errorsOut *[]error) (string, error) {
	message, ok := bundle.messages[id]
	if !ok {
		return "", &UnknownMessageError{ID: id}
	}

	pattern := message.Value
	if attr != "" {
		attribute := findAttribute(message.Attributes, attr)
		if attribute == nil {
			return "", &UnknownAttributeError{ID: id, Attr: attr}
		}
		pattern = attribute.Value
	}
	if pattern == nil {
		return "", &NoValueError{ID: id}
	}

	return bundle.FormatPattern(pattern, args, errorsOut)
}

// pluralCategory categorizes value under the Bundle's primary locale
// using the package-level plural.Cardinal rules; nothing is cached on
// the Bundle for it.
func (bundle *Bundle) pluralCategory(scope *Scope, value float64) string {
	locale := bundle.primaryLocale()
	digits, intLen, fracLen := digitsOf(value)
	form := plural.Cardinal.MatchDigits(locale, digits, intLen, fracLen)
	return pluralFormNames[form]
}

// digitsOf decomposes value into the decimal digit sequence
// plural.Rules.MatchDigits expects, along with the integer and
// fractional part lengths.
func digitsOf(value float64) (digits []byte, intLen, fracLen int) {
	formatted := fmt.Sprintf("%.2f", value)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")
	parts := strings.SplitN(formatted, ".", 2)

	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}

	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	digits = make([]byte, 0, len(intPart)+len(fracPart))
	for _, r := range intPart {
		digits = append(digits, byte(r-'0'))
	}
	for _, r := range fracPart {
		digits = append(digits, byte(r-'0'))
	}

	return digits, len(intPart), len(fracPart)
}

// memoizeIntlObject caches the result of construct on the Bundle, keyed
// by class and fingerprint, so repeated FormatPattern calls with the
// same options do not repeatedly rebuild an expensive formatter.
// Lifetime is the Bundle's; safe for concurrent callers.
func (bundle *Bundle) memoizeIntlObject(class, fingerprint string, construct func() interface{}) interface{} {
	key := class + "\x00" + fingerprint

	bundle.cacheMu.Lock()
	defer bundle.cacheMu.Unlock()

	if cached, ok := bundle.cache[key]; ok {
		return cached
	}
	built := construct()
	bundle.cache[key] = built
	return built
}
