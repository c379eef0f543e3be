package notify

import (
	"regexp"
)

const (
	DefaultMaxLength = 4000
	truncateMarker   = "...[截断]"
	truncateReserve  = 10
	redacted         = "[REDACTED]"
)

var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(api[_-]?key|password|token|secret)[\p{Z}\s=:]+[\p{L}\p{N}_\-.]+`),
	regexp.MustCompile(`(?i)(key|pwd|pass)[\p{Z}\s=:]+[\p{L}\p{N}_\-.]+`),
}

// Sanitize redacts credential-looking fragments and caps the message at
// maxLength runes. maxLength <= 0 uses the WeWork text limit.
func Sanitize(message string, maxLength int) string {
	for _, re := range sensitivePatterns {
		message = re.ReplaceAllString(message, redacted)
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	runes := []rune(message)
	if len(runes) <= maxLength {
		return message
	}
	keep := maxLength - truncateReserve
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + truncateMarker
}
