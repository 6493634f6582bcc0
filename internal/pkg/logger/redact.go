package logger

import "strings"

// RedactEmail masks the local part of an address for safe logging.
// "john.doe@example.com" becomes "jo***@example.com"; local parts of two
// characters or fewer are fully masked. Values without exactly one "@"
// are replaced wholesale.
func RedactEmail(addr string) string {
	local, domain, ok := strings.Cut(addr, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***@***"
	}
	if len(local) <= 2 {
		return "***@" + domain
	}
	return local[:2] + "***@" + domain
}
