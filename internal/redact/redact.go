// Package redact removes sensitive information from strings before they are
// logged. Store and driver errors routinely echo emails, credential hashes,
// SQL with bound values and connection strings; none of that may reach logs.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; later rules see the output of earlier ones.
var rules = []rule{
	// Connection strings with user info
	{regexp.MustCompile(`(?i)\b(?:postgres(?:ql)?|sqlite|file)://[^@\s]+@`), RedactedCredentialPlaceholder},
	// PostgreSQL constraint details: Key (email)=(ana@mail.com)
	{regexp.MustCompile(`Key \(([^)]*)\)=\([^)]*\)`), "Key ($1)=(" + RedactionPlaceholder + ")"},
	// Goroutine dumps
	{regexp.MustCompile(`(?s)goroutine \d+ \[.*`), "[STACK_TRACE_REDACTED]"},
	// SQL with bound or literal values
	{regexp.MustCompile(`(?i)\bVALUES\s*\([^;]*\)`), "VALUES [SQL_VALUES_REDACTED]"},
	{regexp.MustCompile(`(?i)\bWHERE\b[^;]*`), "WHERE [SQL_WHERE_REDACTED]"},
	{regexp.MustCompile(`(?i)\bSET\s[^;]*`), "SET [SQL_VALUES_REDACTED]"},
	// Credential assignments
	{regexp.MustCompile(`(?i)\b(password_hash|password|passwd|pwd)(\s*[=:]\s*)['"]?[^'"&\s,]+['"]?`), "$1$2" + RedactedCredentialPlaceholder},
	// Email addresses
	{regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`), RedactedEmailPlaceholder},
	// Unix and Windows file paths
	{regexp.MustCompile(`(?:/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(?:\\[^\\\s]+)+`), RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
