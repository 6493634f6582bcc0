// Package disposable maintains the local blocklist of throwaway email
// domains. Detection is list-based only; no external verification service
// is consulted.
package disposable

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ignite/email-validator/internal/pkg/logger"
)

// Set is an immutable membership set of lowercase disposable domains.
type Set struct {
	domains map[string]struct{}
}

// NewSet builds a set from the given domains, normalizing each entry.
func NewSet(domains ...string) *Set {
	s := &Set{domains: make(map[string]struct{}, len(domains))}
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			s.domains[d] = struct{}{}
		}
	}
	return s
}

// Contains reports whether the domain is on the blocklist. Matching is
// exact and case-insensitive; subdomains of listed domains do not match.
func (s *Set) Contains(domain string) bool {
	_, ok := s.domains[strings.ToLower(domain)]
	return ok
}

// Len returns the number of domains in the set.
func (s *Set) Len() int {
	return len(s.domains)
}

// LoadReader parses a blocklist: one domain per line, blank lines and
// "#" comment lines skipped, entries lower-cased.
func LoadReader(r io.Reader) (*Set, error) {
	set := &Set{domains: make(map[string]struct{})}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set.domains[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return set, nil
}

// Load reads the blocklist file at path. A missing file is not an error:
// the tool degrades to an empty set (no disposable detection) and logs a
// warning, matching the stock single-file deployment where the list is
// optional. Any other read failure is returned to the caller, which
// treats it as fatal.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("disposable blocklist not found, detection disabled", "path", path)
			return NewSet(), nil
		}
		return nil, fmt.Errorf("open blocklist: %w", err)
	}
	defer f.Close()

	set, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("read blocklist %s: %w", path, err)
	}

	logger.Info("loaded disposable domain blocklist", "path", path, "domains", set.Len())
	return set, nil
}
