package core

import (
	"math"
	"strconv"
	"strings"

	"lifepanel/pkg/domain"
)

// ParseGDPToken coerces a raw GDP cell into a Value. Tokens ending in the
// literal suffix "k" (case-sensitive) are thousands shorthand: the prefix
// is parsed and multiplied by 1000. Empty or unparseable tokens yield the
// null Value, never an error; the quality filter removes nulls downstream.
func ParseGDPToken(raw string) domain.Value {
	token := strings.TrimSpace(raw)
	if token == "" {
		return domain.Null()
	}
	if strings.HasSuffix(token, "k") {
		f, ok := parseFinite(strings.TrimSuffix(token, "k"))
		if !ok {
			return domain.Null()
		}
		return domain.Some(f * 1000)
	}
	f, ok := parseFinite(token)
	if !ok {
		return domain.Null()
	}
	return domain.Some(f)
}

// ParseDecimalToken parses a plain decimal cell with the same
// null-on-unparseable policy as ParseGDPToken.
func ParseDecimalToken(raw string) domain.Value {
	token := strings.TrimSpace(raw)
	if token == "" {
		return domain.Null()
	}
	f, ok := parseFinite(token)
	if !ok {
		return domain.Null()
	}
	return domain.Some(f)
}

// parseFinite parses a decimal token, rejecting the NaN/Inf spellings
// strconv accepts: in the source data those are missing-value markers.
func parseFinite(token string) (float64, bool) {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Normalize returns a copy of the observation stream with each Value set
// by applying parse to the raw token.
func Normalize(observations []domain.Observation, parse func(string) domain.Value) []domain.Observation {
	out := make([]domain.Observation, len(observations))
	for i, obs := range observations {
		obs.Value = parse(obs.Raw)
		out[i] = obs
	}
	return out
}

// parserFor selects the token parser for a source variable.
func parserFor(variable domain.Variable) func(string) domain.Value {
	if variable == domain.VariableGDPPerCapita {
		return ParseGDPToken
	}
	return ParseDecimalToken
}
