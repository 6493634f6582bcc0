// Package validator classifies email addresses through a fixed pipeline:
// syntactic format check, disposable-domain lookup, then a live MX record
// lookup. Each stage only runs when every earlier stage passed, so a
// malformed address never triggers DNS traffic.
package validator

import (
	"context"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/ignite/email-validator/internal/disposable"
	"github.com/ignite/email-validator/internal/pkg/logger"
)

// Classification statuses. Exactly one applies to every address.
const (
	StatusInvalidFormat = "Invalid format"
	StatusDisposable    = "Disposable"
	StatusNoMX          = "No MX record (domain invalid)"
	StatusValid         = "Valid"
)

// DefaultMXTimeout bounds a single MX lookup. A lookup that exceeds it
// counts as a failed check; there are no retries.
const DefaultMXTimeout = 5 * time.Second

// emailRegex is deliberately permissive: dotted ASCII local parts and a
// domain ending in an alphabetic TLD of two or more characters. It is a
// practical filter, not an RFC 5322 parser.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// MXResolver looks up mail exchanger records for a domain. *net.Resolver
// satisfies it; tests substitute stubs.
type MXResolver interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

// Result holds the outcome of classifying a single address. The booleans
// record which stages passed; Status is determined by the first stage that
// rejected, or StatusValid when all three passed.
type Result struct {
	Email       string
	ValidFormat bool
	Disposable  bool
	MXValid     bool
	Status      string
}

// Classifier runs the validation pipeline against a disposable-domain set.
type Classifier struct {
	domains  *disposable.Set
	resolver MXResolver
	timeout  time.Duration
}

// New returns a classifier using the system DNS resolver and the default
// lookup timeout.
func New(domains *disposable.Set) *Classifier {
	if domains == nil {
		domains = disposable.NewSet()
	}
	return &Classifier{
		domains:  domains,
		resolver: &net.Resolver{},
		timeout:  DefaultMXTimeout,
	}
}

// SetResolver replaces the MX resolver.
func (c *Classifier) SetResolver(r MXResolver) {
	if r != nil {
		c.resolver = r
	}
}

// SetTimeout adjusts the per-lookup timeout.
func (c *Classifier) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// Normalize trims surrounding whitespace and lower-cases an address.
// Callers skip addresses that normalize to the empty string.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsValidEmail reports whether the address matches the accepted pattern.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Domain returns everything after the last "@", lower-cased, or "" when
// the address contains no "@".
func Domain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// Classify runs the pipeline on one raw address. All failure modes are
// expressed in the Result; it never returns an error.
func (c *Classifier) Classify(ctx context.Context, raw string) Result {
	email := Normalize(raw)
	result := Result{Email: email, Status: StatusInvalidFormat}

	if IsValidEmail(email) {
		result.ValidFormat = true
		domain := Domain(email)
		switch {
		case c.domains.Contains(domain):
			result.Disposable = true
			result.Status = StatusDisposable
		case c.checkMX(ctx, domain):
			result.MXValid = true
			result.Status = StatusValid
		default:
			result.Status = StatusNoMX
		}
	}

	logger.Debug("address classified", "email", email, "status", result.Status)
	return result
}

func (c *Classifier) checkMX(ctx context.Context, domain string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	records, err := c.resolver.LookupMX(ctx, domain)
	return err == nil && len(records) > 0
}
