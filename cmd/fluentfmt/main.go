// Command fluentfmt loads an FTL resource and formats one message
// against variables given as key=value pairs on the command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/corelingo/fluent"
	"golang.org/x/text/language"
)

func main() {
	var (
		resourcePath = flag.String("resource", "", "path to an FTL resource file")
		messageID    = flag.String("message", "", "id of the message to format")
		attribute    = flag.String("attr", "", "attribute name, if formatting an attribute rather than the message value")
		locale       = flag.String("locale", "en", "BCP 47 locale tag")
		noIsolate    = flag.Bool("no-isolate", false, "disable bidi isolation marks around placeables")
	)
	flag.Parse()

	if *resourcePath == "" || *messageID == "" {
		fmt.Fprintln(os.Stderr, "usage: fluentfmt -resource FILE -message ID [-attr NAME] [key=value ...]")
		os.Exit(2)
	}

	vars, err := parseVariables(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "fluentfmt:", err)
		os.Exit(1)
	}

	source, err := os.ReadFile(*resourcePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fluentfmt:", err)
		os.Exit(1)
	}

	tag, err := language.Parse(*locale)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fluentfmt:", err)
		os.Exit(1)
	}

	resource, parseErrs := fluent.NewResource(string(source))
	for _, parseErr := range parseErrs {
		fmt.Fprintln(os.Stderr, "fluentfmt: parse error:", parseErr)
	}

	bundle := fluent.NewBundle(tag, fluent.WithUseIsolating(!*noIsolate))
	if conflicts := bundle.AddResource(resource, false); len(conflicts) != 0 {
		for _, conflict := range conflicts {
			fmt.Fprintln(os.Stderr, "fluentfmt:", conflict)
		}
	}

	var resolveErrs []error
	result, err := bundle.FormatMessage(*messageID, *attribute, vars, &resolveErrs)
	for _, resolveErr := range resolveErrs {
		fmt.Fprintln(os.Stderr, "fluentfmt: resolve error:", resolveErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "fluentfmt:", err)
		os.Exit(1)
	}

	fmt.Println(result)
}

func parseVariables(args []string) (map[string]interface{}, error) {
	vars := make(map[string]interface{}, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid variable %q, expected key=value", arg)
		}
		vars[name] = value
	}
	return vars, nil
}
