package similarity

import (
	"regexp"
	"strings"
)

// Boilerplate patterns every bill carries. Stripped before segmenting
// so matches reflect substantive text, not enacting formulas.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)IN THE (SENATE|HOUSE) OF THE UNITED STATES.*?;`),
	regexp.MustCompile(`(?is)Be it enacted by the Senate and House of Representatives of the United States of America in Congress assembled:`),
	regexp.MustCompile(`(?i)Section \d+(?:\.\d+)*`),
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// Preprocess strips legislative boilerplate, lowercases, and collapses
// whitespace.
func Preprocess(text string) string {
	for _, re := range boilerplatePatterns {
		text = re.ReplaceAllString(text, " ")
	}
	text = strings.ToLower(text)
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}
