package zillow

import (
	"errors"
	"testing"
)

func TestValidateAcceptsDefaults(t *testing.T) {
	for _, op := range []Operation{GetZestimate, GetChart, GetComps} {
		if err := Validate(op, map[string]string{ParamZPID: "48749425"}); err != nil {
			t.Fatalf("%s: unexpected error %v", op.Name, err)
		}
	}
	err := Validate(GetSearchResults, map[string]string{ParamAddress: "2114 Bigelow Ave", ParamCityStateZip: "98109"})
	if err != nil {
		t.Fatalf("search: unexpected error %v", err)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		op     Operation
		params map[string]string
	}{
		{GetZestimate, map[string]string{ParamZPID: "-4"}},
		{GetZestimate, map[string]string{ParamZPID: "1", ParamRentZestimate: "yes"}},
		{GetChart, map[string]string{ParamZPID: "1", ParamHeight: "99"}},
		{GetChart, map[string]string{ParamZPID: "1", ParamWidth: "601"}},
		{GetChart, map[string]string{ParamZPID: "1", ParamChartDuration: "2years"}},
		{GetComps, map[string]string{ParamZPID: "1", ParamCount: "26"}},
		{GetComps, map[string]string{ParamZPID: "1", ParamCount: "0"}},
		{GetSearchResults, map[string]string{ParamAddress: "1 Main", ParamCityStateZip: "Seattle"}},
		{GetSearchResults, map[string]string{ParamAddress: "1 Main", ParamCityStateZip: "Seattle, WA", ParamZPID: "x"}},
	}
	for _, tc := range cases {
		err := Validate(tc.op, tc.params)
		if !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("%s %v: expected validation error, got %v", tc.op.Name, tc.params, err)
		}
	}
}

func TestValidateBoundaries(t *testing.T) {
	ok := []map[string]string{
		{ParamZPID: "1", ParamWidth: "200", ParamHeight: "300", ParamUnitType: "dollar", ParamChartDuration: "5years"},
		{ParamZPID: "1", ParamWidth: "600", ParamHeight: "100"},
	}
	for _, params := range ok {
		if err := Validate(GetChart, params); err != nil {
			t.Fatalf("%v: unexpected error %v", params, err)
		}
	}
	if err := Validate(GetComps, map[string]string{ParamZPID: "1", ParamCount: "25"}); err != nil {
		t.Fatalf("count 25: %v", err)
	}
	if err := Validate(GetSearchResults, map[string]string{ParamAddress: "a", ParamCityStateZip: "Seattle WA 98109-1234"}); err != nil {
		t.Fatalf("zip+4: %v", err)
	}
}

func TestValidateReportsParamErrorsFirst(t *testing.T) {
	if err := Validate(GetComps, map[string]string{}); !errors.Is(err, ErrMissingParam) {
		t.Fatalf("expected ErrMissingParam, got %v", err)
	}
}

func TestValidateCityStateForms(t *testing.T) {
	for _, csz := range []string{"98109", "Seattle, WA", "Seattle WA", "New York  ny", "Seattle, WA 98109"} {
		err := Validate(GetSearchResults, map[string]string{ParamAddress: "2114 Bigelow Ave", ParamCityStateZip: csz})
		if err != nil {
			t.Fatalf("%q: unexpected error %v", csz, err)
		}
	}
	for _, csz := range []string{"Seattle", "WA", "Seattle Washington"} {
		err := Validate(GetSearchResults, map[string]string{ParamAddress: "2114 Bigelow Ave", ParamCityStateZip: csz})
		if !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("%q: expected validation error, got %v", csz, err)
		}
	}
}
