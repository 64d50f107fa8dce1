package standards

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Domains   []Domain   `yaml:"domains"`
	Standards []Standard `yaml:"standards"`
}

// catalog holds the standards with precomputed indices.
type catalog struct {
	domains   []Domain
	standards []Standard
	byID      map[string]*Standard
	byDomain  map[DomainCode][]Standard
	domainBy  map[DomainCode]Domain
}

// c is the package-level catalog singleton, set by init().
var c *catalog

func init() {
	cat, err := parseCatalog(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("standards: embedded catalog: %v", err))
	}
	c = cat
}

// parseCatalog decodes and validates a catalog document, then builds indices.
func parseCatalog(data []byte) (*catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validateCatalog(f.Domains, f.Standards); err != nil {
		return nil, err
	}
	return buildCatalog(f.Domains, f.Standards), nil
}

func buildCatalog(domains []Domain, stds []Standard) *catalog {
	cat := &catalog{
		domains:  domains,
		byID:     make(map[string]*Standard, len(stds)),
		byDomain: make(map[DomainCode][]Standard),
		domainBy: make(map[DomainCode]Domain, len(domains)),
	}
	for _, d := range domains {
		cat.domainBy[d.Code] = d
	}

	cat.standards = make([]Standard, len(stds))
	for i, s := range stds {
		s.Domain = cat.domainBy[s.DomainCode].Name
		cat.standards[i] = s
	}
	for i := range cat.standards {
		s := &cat.standards[i]
		cat.byID[s.ID] = s
		cat.byDomain[s.DomainCode] = append(cat.byDomain[s.DomainCode], *s)
	}
	return cat
}

// Get returns a standard by ID, or error if not found.
func Get(id string) (Standard, error) {
	s, ok := c.byID[id]
	if !ok {
		return Standard{}, fmt.Errorf("standard not found: %q", id)
	}
	return *s, nil
}

// Exists reports whether id names a catalog standard.
func Exists(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns every standard in catalog order.
func All() []Standard {
	return slices.Clone(c.standards)
}

// ByDomain returns the standards of one domain in catalog order.
func ByDomain(code DomainCode) []Standard {
	return slices.Clone(c.byDomain[code])
}

// Domains returns all domains in display order.
func Domains() []Domain {
	return slices.Clone(c.domains)
}

// DomainName returns the display name for a domain code.
func DomainName(code DomainCode) string {
	if d, ok := c.domainBy[code]; ok {
		return d.Name
	}
	return string(code)
}

// DomainColor returns the accent color for a domain, or a neutral purple.
func DomainColor(code DomainCode) string {
	if d, ok := c.domainBy[code]; ok && d.Color != "" {
		return d.Color
	}
	return "#A855F7"
}

// DomainOf returns the domain code of a standard, or "" if unknown.
func DomainOf(id string) DomainCode {
	if s, ok := c.byID[id]; ok {
		return s.DomainCode
	}
	return ""
}

// ConceptTip returns a short study tip for the standard.
func ConceptTip(id string) string {
	if s, ok := c.byID[id]; ok && s.Tip != "" {
		return s.Tip
	}
	return DefaultTip
}
