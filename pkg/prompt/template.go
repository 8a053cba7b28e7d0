package prompt

import (
	"regexp"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// Render substitutes {{name}} placeholders with values from vars in a single
// global pass. Unknown placeholders are left untouched so a caller-supplied
// custom prompt with its own markers survives intact. No nesting, no
// conditionals.
func Render(template string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}
