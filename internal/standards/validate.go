package standards

import (
	"fmt"
	"strings"
)

// validateCatalog performs structural checks on a decoded catalog.
// Returns a combined error describing all problems found, or nil if valid.
func validateCatalog(domains []Domain, stds []Standard) error {
	var errs []string

	domainSet := make(map[DomainCode]bool, len(domains))
	for _, d := range domains {
		if domainSet[d.Code] {
			errs = append(errs, fmt.Sprintf("duplicate domain code: %q", d.Code))
		}
		domainSet[d.Code] = true
	}

	idSet := make(map[string]bool, len(stds))
	for _, s := range stds {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("standard %q has no id", s.Code))
			continue
		}
		if idSet[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate standard ID: %q", s.ID))
		}
		idSet[s.ID] = true
		if !domainSet[s.DomainCode] {
			errs = append(errs, fmt.Sprintf("standard %q references unknown domain %q", s.ID, s.DomainCode))
		}
		if len(s.Keywords) == 0 {
			errs = append(errs, fmt.Sprintf("standard %q has no keywords", s.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Validate checks the embedded catalog. Returns nil if valid.
func Validate() error {
	return validateCatalog(c.domains, c.standards)
}
