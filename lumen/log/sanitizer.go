package log

import "strings"

// controlCharReplacer escapes control characters that can be used for log
// injection (CWE-117). Newlines, carriage returns, and tabs in log values
// can forge fake log entries or mislead incident response. Signer error
// strings and network rejection reasons are attacker-influenced, so every
// string field passes through here before being emitted.
var controlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Sanitize escapes control characters in a single string value.
func Sanitize(s string) string {
	return controlCharReplacer.Replace(s)
}

// SanitizeFields escapes control characters in all string-typed field values.
// Non-string values are passed through unchanged.
func SanitizeFields(fields []Field) []Field {
	sanitized := make([]Field, len(fields))
	for i, f := range fields {
		if s, ok := f.Value.(string); ok {
			sanitized[i] = Field{Key: f.Key, Value: Sanitize(s)}
		} else {
			sanitized[i] = f
		}
	}

	return sanitized
}
