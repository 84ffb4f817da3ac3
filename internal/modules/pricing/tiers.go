package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"fieldops/internal/domain"
)

// TierConfig describes one size dimension of a company's pricing settings.
type TierConfig struct {
	Base     float64
	Interval float64
	Max      float64

	Unit      string // label suffix, e.g. "Sq Ft" or "Acres"
	Precision int    // decimal places when formatting range bounds
}

// HomeSizeConfig maps company settings to a home-size tier configuration.
func HomeSizeConfig(s *domain.PricingSettings) TierConfig {
	return TierConfig{Base: s.BaseHomeSqFt, Interval: s.HomeSqFtInterval, Max: s.MaxHomeSqFt, Unit: "Sq Ft"}
}

// YardSizeConfig maps company settings to a yard-size tier configuration.
func YardSizeConfig(s *domain.PricingSettings) TierConfig {
	return TierConfig{Base: s.BaseYardAcres, Interval: s.YardAcresInterval, Max: s.MaxYardAcres, Unit: "Acres", Precision: 2}
}

// LinearFeetConfig maps company settings to a linear-footage tier configuration.
func LinearFeetConfig(s *domain.PricingSettings) TierConfig {
	return TierConfig{Base: s.BaseLinearFeet, Interval: s.LinearFeetInterval, Max: s.MaxLinearFeet, Unit: "Linear Ft"}
}

// floatSlack absorbs accumulation error when stepping fractional
// intervals (yard acres tables step by 0.25).
const floatSlack = 1e-9

// GenerateSizeOptions produces the discrete tier sequence for a size
// dimension: one tier per interval step from Base up to Max, plus one
// unbounded "Max+" tier. When the service plan carries its own tier
// table, that table is returned verbatim so the options always match
// the price table that will actually be charged. An invalid
// configuration (non-positive interval, max not above base) yields nil;
// callers treat that as "invalid configuration", not as an error.
func GenerateSizeOptions(cfg TierConfig, plan *domain.SizePricing) []domain.TierOption {
	if plan != nil && len(plan.Tiers) > 0 {
		out := make([]domain.TierOption, len(plan.Tiers))
		copy(out, plan.Tiers)
		return out
	}

	if cfg.Interval <= 0 || cfg.Max <= cfg.Base {
		return nil
	}

	var initialStep, recurringStep float64
	if plan != nil {
		initialStep = plan.InitialCostPerInterval
		recurringStep = plan.RecurringCostPerInterval
	}

	var options []domain.TierOption
	index := 0
	for start := cfg.Base; start < cfg.Max-floatSlack; start += cfg.Interval {
		end := start + cfg.Interval
		if end > cfg.Max {
			end = cfg.Max
		}
		rangeEnd := end
		options = append(options, domain.TierOption{
			Value:             cfg.formatBound(start) + "-" + cfg.formatBound(end),
			Label:             cfg.boundedLabel(start, end, index, initialStep, recurringStep),
			IntervalIndex:     index,
			InitialIncrease:   float64(index) * initialStep,
			RecurringIncrease: float64(index) * recurringStep,
			RangeStart:        start,
			RangeEnd:          &rangeEnd,
		})
		index++
	}

	options = append(options, domain.TierOption{
		Value:             cfg.formatBound(cfg.Max) + "+",
		Label:             cfg.unboundedLabel(cfg.Max, index, initialStep, recurringStep),
		IntervalIndex:     index,
		InitialIncrease:   float64(index) * initialStep,
		RecurringIncrease: float64(index) * recurringStep,
		RangeStart:        cfg.Max,
	})
	return options
}

// FindSizeOptionByValue returns the tier whose half-open range
// [RangeStart, RangeEnd) contains v, or the unbounded top tier when v
// is at or past the maximum. Values below the base tier match nothing.
func FindSizeOptionByValue(v float64, options []domain.TierOption) *domain.TierOption {
	for i := range options {
		opt := &options[i]
		if opt.RangeEnd == nil {
			if v >= opt.RangeStart {
				return opt
			}
			continue
		}
		if v >= opt.RangeStart && v < *opt.RangeEnd {
			return opt
		}
	}
	return nil
}

// ParseRangeValue extracts the starting bound from a stored tier value
// such as "1500-2000" or "5000+". Unparseable input yields 0, which
// lands in no tier and therefore no size increase.
func ParseRangeValue(r string) float64 {
	if r == "" {
		return 0
	}
	if strings.HasSuffix(r, "+") {
		v, _ := strconv.ParseFloat(strings.TrimSuffix(r, "+"), 64)
		return v
	}
	start, _, _ := strings.Cut(r, "-")
	v, _ := strconv.ParseFloat(start, 64)
	return v
}

func (cfg TierConfig) formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', cfg.Precision, 64)
}

func (cfg TierConfig) boundedLabel(start, end float64, index int, initialStep, recurringStep float64) string {
	label := fmt.Sprintf("%s-%s %s", cfg.formatBound(start), cfg.formatBound(end), cfg.Unit)
	return label + cfg.priceHint(index, initialStep, recurringStep)
}

func (cfg TierConfig) unboundedLabel(max float64, index int, initialStep, recurringStep float64) string {
	label := fmt.Sprintf("%s+ %s", cfg.formatBound(max), cfg.Unit)
	return label + cfg.priceHint(index, initialStep, recurringStep)
}

// priceHint annotates non-base tiers with the per-interval surcharge so
// sales reps see the price impact directly in the dropdown.
func (cfg TierConfig) priceHint(index int, initialStep, recurringStep float64) string {
	if index == 0 || (initialStep == 0 && recurringStep == 0) {
		return ""
	}
	return fmt.Sprintf(" (+$%.2f initial, +$%.2f/month)", float64(index)*initialStep, float64(index)*recurringStep)
}
