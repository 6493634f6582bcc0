package validator

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/ignite/email-validator/internal/disposable"
)

// stubResolver serves canned MX answers and counts lookups so tests can
// prove that short-circuited stages never reach DNS.
type stubResolver struct {
	records map[string][]*net.MX
	err     error
	calls   int
}

func (s *stubResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records[domain], nil
}

// slowResolver never answers before the lookup context expires.
type slowResolver struct{}

func (slowResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func mxRecords(hosts ...string) []*net.MX {
	records := make([]*net.MX, 0, len(hosts))
	for i, h := range hosts {
		records = append(records, &net.MX{Host: h, Pref: uint16(10 * (i + 1))})
	}
	return records
}

func TestIsValidEmail(t *testing.T) {
	accepted := []string{
		"user@example.com",
		"user.name+tag@sub.domain.co",
		"USER@EXAMPLE.COM",
		"a@b.co",
		"user%x_1@ex-ample.com",
		// The pattern is deliberately permissive about domain shape.
		"user@example..com",
		"user@-example.com",
	}
	for _, email := range accepted {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}

	rejected := []string{
		"",
		"not-an-email",
		"@example.com",
		"user@",
		"user@example",
		"user@example.c",
		"user name@example.com",
		"user@exam ple.com",
		"user@@example.com",
		"user@foo@example.com",
		" user@example.com",
		"user@example.com\n",
		"üser@example.com",
		"user@example.123",
		"user@example.com.",
		"user@.com",
	}
	for _, email := range rejected {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Daniel@Example.COM  ", "daniel@example.com"},
		{"\tuser@example.com\n", "user@example.com"},
		{"already@lower.net", "already@lower.net"},
		{"   ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "example.com"},
		{"User@EXAMPLE.COM", "example.com"},
		{"user@one@two.com", "two.com"},
		{"no-at-sign", ""},
		{"user@", ""},
	}
	for _, tt := range tests {
		if got := Domain(tt.input); got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestClassifyInvalidFormatSkipsLookups(t *testing.T) {
	resolver := &stubResolver{records: map[string][]*net.MX{"mailinator.com": mxRecords("mx.mailinator.com")}}
	c := New(disposable.NewSet("mailinator.com"))
	c.SetResolver(resolver)

	// Domain is blocklisted, but the format gate rejects first.
	result := c.Classify(context.Background(), "@mailinator.com")

	if result.Status != StatusInvalidFormat {
		t.Errorf("Status = %q, want %q", result.Status, StatusInvalidFormat)
	}
	if result.ValidFormat || result.Disposable || result.MXValid {
		t.Errorf("booleans = %v/%v/%v, want all false", result.ValidFormat, result.Disposable, result.MXValid)
	}
	if resolver.calls != 0 {
		t.Errorf("resolver was called %d times for a malformed address", resolver.calls)
	}
}

func TestClassifyDisposableSkipsMX(t *testing.T) {
	resolver := &stubResolver{records: map[string][]*net.MX{"mailinator.com": mxRecords("mx.mailinator.com")}}
	c := New(disposable.NewSet("mailinator.com"))
	c.SetResolver(resolver)

	result := c.Classify(context.Background(), "user@mailinator.com")

	if result.Status != StatusDisposable {
		t.Errorf("Status = %q, want %q", result.Status, StatusDisposable)
	}
	if !result.ValidFormat || !result.Disposable || result.MXValid {
		t.Errorf("booleans = %v/%v/%v, want true/true/false", result.ValidFormat, result.Disposable, result.MXValid)
	}
	if resolver.calls != 0 {
		t.Errorf("resolver was called %d times for a disposable address", resolver.calls)
	}
}

func TestClassifyValid(t *testing.T) {
	resolver := &stubResolver{records: map[string][]*net.MX{"example.com": mxRecords("mx1.example.com", "mx2.example.com")}}
	c := New(disposable.NewSet("mailinator.com"))
	c.SetResolver(resolver)

	result := c.Classify(context.Background(), "user@example.com")

	if result.Status != StatusValid {
		t.Errorf("Status = %q, want %q", result.Status, StatusValid)
	}
	if !result.ValidFormat || result.Disposable || !result.MXValid {
		t.Errorf("booleans = %v/%v/%v, want true/false/true", result.ValidFormat, result.Disposable, result.MXValid)
	}
	if resolver.calls != 1 {
		t.Errorf("resolver calls = %d, want 1", resolver.calls)
	}
}

func TestClassifyNoMXOnEmptyAnswer(t *testing.T) {
	// Lookup succeeds but returns zero records.
	resolver := &stubResolver{records: map[string][]*net.MX{}}
	c := New(disposable.NewSet())
	c.SetResolver(resolver)

	result := c.Classify(context.Background(), "user@nomx.example")

	if result.Status != StatusNoMX {
		t.Errorf("Status = %q, want %q", result.Status, StatusNoMX)
	}
	if result.MXValid {
		t.Error("MXValid = true for empty MX answer")
	}
}

func TestClassifyNoMXOnResolverError(t *testing.T) {
	resolver := &stubResolver{err: errors.New("server misbehaving")}
	c := New(disposable.NewSet())
	c.SetResolver(resolver)

	result := c.Classify(context.Background(), "user@example.com")

	if result.Status != StatusNoMX {
		t.Errorf("Status = %q, want %q", result.Status, StatusNoMX)
	}
}

func TestClassifyTimeoutCountsAsFailure(t *testing.T) {
	c := New(disposable.NewSet())
	c.SetResolver(slowResolver{})
	c.SetTimeout(10 * time.Millisecond)

	start := time.Now()
	result := c.Classify(context.Background(), "user@slow.example")
	elapsed := time.Since(start)

	if result.Status != StatusNoMX {
		t.Errorf("Status = %q, want %q", result.Status, StatusNoMX)
	}
	if elapsed > 2*time.Second {
		t.Errorf("lookup took %v, timeout did not bound it", elapsed)
	}
}

func TestClassifyNormalizesFirst(t *testing.T) {
	c := New(disposable.NewSet("mailinator.com"))
	c.SetResolver(&stubResolver{})

	result := c.Classify(context.Background(), "  User@MAILINATOR.com ")

	if result.Email != "user@mailinator.com" {
		t.Errorf("Email = %q, want normalized form", result.Email)
	}
	if result.Status != StatusDisposable {
		t.Errorf("Status = %q, want %q (normalized domain should hit the set)", result.Status, StatusDisposable)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	resolver := &stubResolver{records: map[string][]*net.MX{"example.com": mxRecords("mx.example.com")}}
	c := New(disposable.NewSet("mailinator.com"))
	c.SetResolver(resolver)

	first := c.Classify(context.Background(), "user@example.com")
	second := c.Classify(context.Background(), "user@example.com")

	if first != second {
		t.Errorf("repeated classification differs: %+v vs %+v", first, second)
	}
}

func TestStatusMatchesBooleans(t *testing.T) {
	resolver := &stubResolver{records: map[string][]*net.MX{"example.com": mxRecords("mx.example.com")}}
	c := New(disposable.NewSet("mailinator.com"))
	c.SetResolver(resolver)

	inputs := []string{
		"user@example.com",
		"user@mailinator.com",
		"user@dead.example",
		"not-an-email",
		"@example.com",
	}

	for _, input := range inputs {
		result := c.Classify(context.Background(), input)

		var want string
		switch {
		case !result.ValidFormat:
			want = StatusInvalidFormat
		case result.Disposable:
			want = StatusDisposable
		case !result.MXValid:
			want = StatusNoMX
		default:
			want = StatusValid
		}
		if result.Status != want {
			t.Errorf("Classify(%q): Status %q does not match booleans %v/%v/%v",
				input, result.Status, result.ValidFormat, result.Disposable, result.MXValid)
		}

		// The short-circuit order makes some combinations unreachable.
		if !result.ValidFormat && (result.Disposable || result.MXValid) {
			t.Errorf("Classify(%q): later stages ran after format rejection", input)
		}
		if result.Disposable && result.MXValid {
			t.Errorf("Classify(%q): MX ran for a disposable address", input)
		}
	}
}

func TestClassifyLiveDNS(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live DNS lookup in short mode")
	}

	c := New(disposable.NewSet())
	result := c.Classify(context.Background(), "postmaster@gmail.com")
	if result.Status != StatusValid {
		t.Skipf("live DNS unavailable (got status %q), skipping", result.Status)
	}

	if !result.ValidFormat || !result.MXValid {
		t.Errorf("live classification booleans = %v/%v, want format and MX valid", result.ValidFormat, result.MXValid)
	}
}
