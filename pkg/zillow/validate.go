package zillow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	zipPattern       = regexp.MustCompile(`\b\d{5}(-\d{4})?\b`)
	cityStatePattern = regexp.MustCompile(`^\S.*\s+[A-Za-z]{2}$`)
)

// Validate checks resolved values against the documented constraints of op.
// It is only consulted when the client is built WithValidation; otherwise
// values are sent as given.
func Validate(op Operation, params map[string]string) error {
	values, err := op.Resolve(params)
	if err != nil {
		return err
	}
	effective := make(map[string]string, len(values))
	for _, v := range values {
		effective[v.Query] = v.Value
	}

	var problems []string
	check := func(problem string) {
		if problem != "" {
			problems = append(problems, problem)
		}
	}

	if zpid, ok := effective["zpid"]; ok {
		check(positiveInt("zpid", zpid))
	}
	if rent, ok := effective["rentzestimate"]; ok {
		check(oneOf("rentzestimate", rent, "true", "false"))
	}

	switch op.Name {
	case OpGetChart:
		check(oneOf(ParamUnitType, effective["unit-type"], "percent", "dollar"))
		check(intRange(ParamWidth, effective["width"], 200, 600))
		check(intRange(ParamHeight, effective["height"], 100, 300))
		check(oneOf(ParamChartDuration, effective["chartDuration"], "1year", "5years", "10years"))
	case OpGetSearchResults:
		check(cityStateZip(effective["citystatezip"]))
	case OpGetComps:
		check(intRange(ParamCount, effective["count"], 1, 25))
	}

	if len(problems) > 0 {
		return &ValidationError{Operation: op.Name, Problems: problems}
	}
	return nil
}

func positiveInt(name, raw string) string {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return fmt.Sprintf("%s must be a positive integer, got %q", name, raw)
	}
	return ""
}

func intRange(name, raw string, lo, hi int) string {
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return fmt.Sprintf("%s must be an integer between %d and %d, got %q", name, lo, hi, raw)
	}
	return ""
}

func oneOf(name, raw string, allowed ...string) string {
	for _, a := range allowed {
		if raw == a {
			return ""
		}
	}
	return fmt.Sprintf("%s must be one of %s, got %q", name, strings.Join(allowed, ", "), raw)
}

// cityStateZip accepts a ZIP code, a "city, state" pair or a city followed
// by a two-letter state code ("Seattle WA").
func cityStateZip(raw string) string {
	if zipPattern.MatchString(raw) || cityStatePattern.MatchString(strings.TrimSpace(raw)) {
		return ""
	}
	if city, state, ok := strings.Cut(raw, ","); ok && strings.TrimSpace(city) != "" && strings.TrimSpace(state) != "" {
		return ""
	}
	return fmt.Sprintf("citystatezip must contain a city and state or a ZIP code, got %q", raw)
}
