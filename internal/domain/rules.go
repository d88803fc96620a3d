package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

// SlabKind identifies which bounds a SlabRule carries.
type SlabKind string

const (
	SlabUpTo  SlabKind = "upto"  // [0, To]
	SlabRange SlabKind = "range" // [From, To]
	SlabAbove SlabKind = "above" // (From, ∞)
)

// SlabRule is one row of a progressive rate table. Rate is a percentage.
// Build rules with UpTo, Range and Above so only the fields of the chosen
// shape are populated.
type SlabRule struct {
	Kind SlabKind
	From decimal.Decimal
	To   decimal.Decimal
	Rate decimal.Decimal
}

// UpTo returns the opening band [0, to].
func UpTo(to, rate decimal.Decimal) SlabRule {
	return SlabRule{Kind: SlabUpTo, To: to, Rate: rate}
}

// Range returns a closed band [from, to].
func Range(from, to, rate decimal.Decimal) SlabRule {
	return SlabRule{Kind: SlabRange, From: from, To: to, Rate: rate}
}

// Above returns the open-ended top band.
func Above(from, rate decimal.Decimal) SlabRule {
	return SlabRule{Kind: SlabAbove, From: from, Rate: rate}
}

// slabRecord is the wire shape of a SlabRule: {upto, rate}, {from, to, rate} or {above, rate}.
type slabRecord struct {
	UpTo  *decimal.Decimal `yaml:"upto,omitempty" json:"upto,omitempty"`
	From  *decimal.Decimal `yaml:"from,omitempty" json:"from,omitempty"`
	To    *decimal.Decimal `yaml:"to,omitempty" json:"to,omitempty"`
	Above *decimal.Decimal `yaml:"above,omitempty" json:"above,omitempty"`
	Rate  *decimal.Decimal `yaml:"rate" json:"rate"`
}

func (r slabRecord) toRule() (SlabRule, error) {
	if r.Rate == nil {
		return SlabRule{}, &ConfigError{Section: "slabs", Reason: "rate is required"}
	}
	switch {
	case r.UpTo != nil && r.From == nil && r.To == nil && r.Above == nil:
		return UpTo(*r.UpTo, *r.Rate), nil
	case r.From != nil && r.To != nil && r.UpTo == nil && r.Above == nil:
		return Range(*r.From, *r.To, *r.Rate), nil
	case r.Above != nil && r.UpTo == nil && r.From == nil && r.To == nil:
		return Above(*r.Above, *r.Rate), nil
	default:
		return SlabRule{}, &ConfigError{Section: "slabs", Reason: "a band must set exactly one of upto, from+to or above"}
	}
}

func (s SlabRule) toRecord() slabRecord {
	rate := s.Rate
	rec := slabRecord{Rate: &rate}
	switch s.Kind {
	case SlabUpTo:
		to := s.To
		rec.UpTo = &to
	case SlabRange:
		from, to := s.From, s.To
		rec.From, rec.To = &from, &to
	case SlabAbove:
		from := s.From
		rec.Above = &from
	}
	return rec
}

// UnmarshalYAML decodes the tagged slab shape.
func (s *SlabRule) UnmarshalYAML(value *yaml.Node) error {
	var rec slabRecord
	if err := value.Decode(&rec); err != nil {
		return err
	}
	rule, err := rec.toRule()
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = rule
	return nil
}

// MarshalYAML encodes the slab in its source shape.
func (s SlabRule) MarshalYAML() (interface{}, error) {
	return s.toRecord(), nil
}

// UnmarshalJSON decodes the tagged slab shape.
func (s *SlabRule) UnmarshalJSON(data []byte) error {
	var rec slabRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	rule, err := rec.toRule()
	if err != nil {
		return err
	}
	*s = rule
	return nil
}

// MarshalJSON encodes the slab in its source shape.
func (s SlabRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toRecord())
}

// ProcessedSlab is a normalized band with Rate as a fraction. Max is only
// meaningful when Unbounded is false.
type ProcessedSlab struct {
	Min       decimal.Decimal
	Max       decimal.Decimal
	Unbounded bool
	Rate      decimal.Decimal
}

// RebateMode selects the Section 87A formula.
type RebateMode string

const (
	// RebateFlat reduces slab tax by MaxRebate at or below Threshold, floored at zero.
	RebateFlat RebateMode = "flat"
	// RebateMarginal zeroes tax at or below Threshold and caps it at the excess
	// over Threshold up to ReliefCeiling.
	RebateMarginal RebateMode = "marginal"
)

// RebateRule configures rebate and marginal relief for one regime.
type RebateRule struct {
	Mode      RebateMode      `yaml:"mode" json:"mode"`
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	// MaxRebate applies to RebateFlat; nil means the whole slab tax is rebated.
	MaxRebate *decimal.Decimal `yaml:"max_rebate,omitempty" json:"max_rebate,omitempty"`
	// ReliefCeiling applies to RebateMarginal; zero means no upper bound.
	ReliefCeiling decimal.Decimal `yaml:"relief_ceiling,omitempty" json:"relief_ceiling,omitempty"`
}

// SurchargeBand applies Rate (percent of income tax) when taxable income exceeds Above.
type SurchargeBand struct {
	Above decimal.Decimal `yaml:"above" json:"above"`
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
}

// OldRegimeLimits holds the old regime exemption and deduction limits.
// Nil caps are unbounded pass-throughs.
type OldRegimeLimits struct {
	StandardDeduction   decimal.Decimal  `yaml:"standard_deduction" json:"standard_deduction"`
	ProfessionalTaxMax  decimal.Decimal  `yaml:"professional_tax_max" json:"professional_tax_max"`
	HRABasicFraction    decimal.Decimal  `yaml:"hra_basic_fraction" json:"hra_basic_fraction"`       // basic estimate as share of gross
	HRARentOffset       decimal.Decimal  `yaml:"hra_rent_offset" json:"hra_rent_offset"`             // share of basic subtracted from rent
	HRAMetroFraction    decimal.Decimal  `yaml:"hra_metro_fraction" json:"hra_metro_fraction"`       // 0.50
	HRANonMetroFraction decimal.Decimal  `yaml:"hra_non_metro_fraction" json:"hra_non_metro_fraction"` // 0.40
	Section80C          decimal.Decimal  `yaml:"section_80c" json:"section_80c"`
	Section80D          decimal.Decimal  `yaml:"section_80d" json:"section_80d"`
	Section24           decimal.Decimal  `yaml:"section_24" json:"section_24"`
	Section80CCD1B      decimal.Decimal  `yaml:"section_80ccd_1b" json:"section_80ccd_1b"`
	Section80TTA        decimal.Decimal  `yaml:"section_80tta" json:"section_80tta"`
	Section80TTB        decimal.Decimal  `yaml:"section_80ttb" json:"section_80ttb"`
	Section80G          *decimal.Decimal `yaml:"section_80g,omitempty" json:"section_80g,omitempty"`
}

// NewRegimeLimits holds the few deductions the new regime allows.
type NewRegimeLimits struct {
	StandardDeduction  decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	ProfessionalTaxMax decimal.Decimal `yaml:"professional_tax_max" json:"professional_tax_max"`
}

// OldRegimeRules is the old regime block of a rule book.
type OldRegimeRules struct {
	Slabs      []SlabRule      `yaml:"slabs" json:"slabs"`
	Rebate     RebateRule      `yaml:"rebate" json:"rebate"`
	Surcharge  []SurchargeBand `yaml:"surcharge" json:"surcharge"`
	Deductions OldRegimeLimits `yaml:"deductions" json:"deductions"`
}

// NewRegimeRules is the new regime block of a rule book.
type NewRegimeRules struct {
	Slabs      []SlabRule      `yaml:"slabs" json:"slabs"`
	Rebate     RebateRule      `yaml:"rebate" json:"rebate"`
	Surcharge  []SurchargeBand `yaml:"surcharge" json:"surcharge"`
	Deductions NewRegimeLimits `yaml:"deductions" json:"deductions"`
}

// TaxYearRules is the complete, versioned configuration for one assessment year.
type TaxYearRules struct {
	AssessmentYear string          `yaml:"assessment_year" json:"assessment_year"`
	Description    string          `yaml:"description,omitempty" json:"description,omitempty"`
	OldRegime      OldRegimeRules  `yaml:"old_regime" json:"old_regime"`
	NewRegime      NewRegimeRules  `yaml:"new_regime" json:"new_regime"`
	CessRate       decimal.Decimal `yaml:"cess_rate" json:"cess_rate"` // percent
}

// GSTRatePair holds pre- and post-reform percentages for one supply type.
type GSTRatePair struct {
	Old decimal.Decimal `yaml:"old" json:"old"`
	New decimal.Decimal `yaml:"new" json:"new"`
}

// GSTRules configures the time-of-supply resolver.
type GSTRules struct {
	ReformDate dateutil.Date               `yaml:"reform_date" json:"reform_date"`
	Rates      map[SupplyType]GSTRatePair `yaml:"rates" json:"rates"`
}

// Clone returns a deep copy so callers cannot alias slices or pointers held by
// a calculator or registry.
func (r TaxYearRules) Clone() TaxYearRules {
	out := r
	out.OldRegime.Slabs = append([]SlabRule(nil), r.OldRegime.Slabs...)
	out.NewRegime.Slabs = append([]SlabRule(nil), r.NewRegime.Slabs...)
	out.OldRegime.Surcharge = append([]SurchargeBand(nil), r.OldRegime.Surcharge...)
	out.NewRegime.Surcharge = append([]SurchargeBand(nil), r.NewRegime.Surcharge...)
	out.OldRegime.Rebate.MaxRebate = cloneDecimal(r.OldRegime.Rebate.MaxRebate)
	out.NewRegime.Rebate.MaxRebate = cloneDecimal(r.NewRegime.Rebate.MaxRebate)
	out.OldRegime.Deductions.Section80G = cloneDecimal(r.OldRegime.Deductions.Section80G)
	return out
}

// Clone returns a deep copy of the rate table.
func (g GSTRules) Clone() GSTRules {
	out := GSTRules{ReformDate: g.ReformDate, Rates: make(map[SupplyType]GSTRatePair, len(g.Rates))}
	for k, v := range g.Rates {
		out.Rates[k] = v
	}
	return out
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
