package router

import (
	"regexp"
	"strings"
)

// compileTemplate turns a path template, prefixed with the description's
// base path, into an anchored regular expression plus the ordered names of
// its capture slots. Placeholders of the form {identifier} become one
// capture group each; everything else is matched literally. Capture group i
// of a match corresponds to slotNames[i].
//
// Compilation is pure: the same (basePrefix, template) pair always produces
// the same pattern.
func compileTemplate(basePrefix, template string) (*regexp.Regexp, []string, error) {
	full := basePrefix + template

	var (
		pattern   strings.Builder
		slotNames []string
	)
	pattern.WriteString("^")

	rest := full
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		pattern.WriteString(regexp.QuoteMeta(rest[:open]))

		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return nil, nil, &TemplateError{Template: template, Reason: "unterminated placeholder"}
		}
		name := rest[open+1 : open+closing]
		if name == "" || strings.ContainsAny(name, "/{") {
			return nil, nil, &TemplateError{Template: template, Reason: "invalid placeholder name"}
		}
		slotNames = append(slotNames, name)
		pattern.WriteString("([^/]+)")
		rest = rest[open+closing+1:]
	}
	pattern.WriteString(regexp.QuoteMeta(rest))
	pattern.WriteString("$")

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, nil, &TemplateError{Template: template, Reason: "uncompilable pattern", Err: err}
	}
	return re, slotNames, nil
}
