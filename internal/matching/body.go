package matching

import (
	"regexp"
	"strings"
)

// MatchBodyContains checks if the body contains the substring.
func MatchBodyContains(body []byte, contains string) bool {
	if contains == "" {
		return true
	}
	return strings.Contains(string(body), contains)
}

// MatchBodyPattern checks if the body matches a compiled regular expression.
func MatchBodyPattern(re *regexp.Regexp, body []byte) bool {
	if re == nil {
		return false
	}
	return re.Match(body)
}
