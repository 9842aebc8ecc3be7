package tiss

import (
	"time"

	"glosaguard/internal/domain"
)

// DefaultHighValueThreshold is the procedure value, in cents, above which
// prior authorization is usually required.
const DefaultHighValueThreshold int64 = 100000

// Options tune the business rules.
type Options struct {
	HighValueThreshold int64
	// Now is the clock used for the future-date check. Defaults to time.Now.
	Now func() time.Time
}

func DefaultOptions() Options {
	return Options{HighValueThreshold: DefaultHighValueThreshold, Now: time.Now}
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Parser decodes and validates TISS guides. It holds only immutable
// configuration and is safe for concurrent use.
type Parser struct {
	rules []*Rule
}

func NewParser(opts Options) *Parser {
	if opts.HighValueThreshold <= 0 {
		opts.HighValueThreshold = DefaultHighValueThreshold
	}
	return &Parser{rules: AllBuiltinRules(opts)}
}

// Rules returns the guide rules in evaluation order.
func (p *Parser) Rules() []*Rule {
	out := make([]*Rule, len(p.rules))
	copy(out, p.rules)
	return out
}

type collector struct {
	findings []Finding
}

func (c *collector) add(fs ...Finding) { c.findings = append(c.findings, fs...) }

func (c *collector) result(data *Guide) *ParseResult {
	valid := true
	for _, f := range c.findings {
		if f.Status == domain.FindingError {
			valid = false
			break
		}
	}
	return &ParseResult{Valid: valid, Findings: c.findings, Data: data}
}

// Parse decodes data and runs every validation pass over it. It never
// returns an error: a document that cannot be decoded produces a single
// critical structure finding and no guide.
func (p *Parser) Parse(data []byte) *ParseResult {
	c := &collector{findings: []Finding{}}

	top, err := Decode(data)
	if err != nil {
		c.add(decodeFailure(err))
		return c.result(nil)
	}

	c.add(checkStructure(top)...)
	guide := Extract(top)
	c.add(p.Validate(guide)...)
	return c.result(guide)
}

// Validate runs every guide rule against an already extracted guide.
func (p *Parser) Validate(g *Guide) []Finding {
	c := &collector{}
	for _, r := range p.rules {
		c.add(r.Validate(g)...)
	}
	return c.findings
}
