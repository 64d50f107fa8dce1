package standards

// DomainCode identifies one of the five 7th grade content domains.
type DomainCode string

const (
	DomainRP DomainCode = "RP"
	DomainNS DomainCode = "NS"
	DomainEE DomainCode = "EE"
	DomainG  DomainCode = "G"
	DomainSP DomainCode = "SP"
)

// AllDomainCodes returns all domain codes in display order.
func AllDomainCodes() []DomainCode {
	return []DomainCode{DomainRP, DomainNS, DomainEE, DomainG, DomainSP}
}

// Domain is a content domain with its display name and accent color.
type Domain struct {
	Code  DomainCode `yaml:"code" json:"code"`
	Name  string     `yaml:"name" json:"name"`
	Color string     `yaml:"color" json:"color"`
}

// Standard is a single curriculum standard. Static data.
type Standard struct {
	ID          string     `yaml:"id" json:"id"`
	Code        string     `yaml:"code" json:"code"`
	DomainCode  DomainCode `yaml:"domain" json:"domainCode"`
	Domain      string     `yaml:"-" json:"domain"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Keywords    []string   `yaml:"keywords" json:"keywords"`
	Tip         string     `yaml:"tip,omitempty" json:"-"`
}

// DefaultTip is returned by ConceptTip for standards without a specific tip.
const DefaultTip = "Break the problem into smaller steps!"
