package zillow

import (
	"errors"
	"testing"
)

const testKey = "X1-ZWz1abc_123"

func TestBuildURLPerOperation(t *testing.T) {
	cases := []struct {
		name   string
		op     Operation
		params map[string]string
		want   string
	}{
		{
			name:   "zestimate defaults",
			op:     GetZestimate,
			params: map[string]string{ParamZPID: "48749425"},
			want:   "http://www.zillow.com/webservice/GetZestimate.htm?zws-id=X1-ZWz1abc_123&zpid=48749425&rentzestimate=false",
		},
		{
			name:   "zestimate rent",
			op:     GetZestimate,
			params: map[string]string{ParamZPID: "48749425", ParamRentZestimate: "true"},
			want:   "http://www.zillow.com/webservice/GetZestimate.htm?zws-id=X1-ZWz1abc_123&zpid=48749425&rentzestimate=true",
		},
		{
			name:   "chart defaults",
			op:     GetChart,
			params: map[string]string{ParamZPID: "48749425"},
			want:   "http://www.zillow.com/webservice/GetChart.htm?zws-id=X1-ZWz1abc_123&zpid=48749425&unit-type=percent&width=200&height=100&chartDuration=1year",
		},
		{
			name: "chart explicit",
			op:   GetChart,
			params: map[string]string{
				ParamChartDuration: "10years",
				ParamHeight:        "300",
				ParamWidth:         "600",
				ParamUnitType:      "dollar",
				ParamZPID:          "1",
			},
			want: "http://www.zillow.com/webservice/GetChart.htm?zws-id=X1-ZWz1abc_123&zpid=1&unit-type=dollar&width=600&height=300&chartDuration=10years",
		},
		{
			name: "search encodes values and omits empty zpid",
			op:   GetSearchResults,
			params: map[string]string{
				ParamAddress:      "2114 Bigelow Ave",
				ParamCityStateZip: "Seattle, WA",
			},
			want: "http://www.zillow.com/webservice/GetSearchResults.htm?zws-id=X1-ZWz1abc_123&address=2114+Bigelow+Ave&citystatezip=Seattle%2C+WA&rentzestimate=false",
		},
		{
			name: "search with zpid passthrough",
			op:   GetSearchResults,
			params: map[string]string{
				ParamZPID:         "48749425",
				ParamAddress:      "1 Main St #4&5",
				ParamCityStateZip: "98109",
			},
			want: "http://www.zillow.com/webservice/GetSearchResults.htm?zws-id=X1-ZWz1abc_123&zpid=48749425&address=1+Main+St+%234%265&citystatezip=98109&rentzestimate=false",
		},
		{
			name:   "comps",
			op:     GetComps,
			params: map[string]string{ParamZPID: "48749425", ParamCount: "5", ParamRentZestimate: "true"},
			want:   "http://www.zillow.com/webservice/GetComps.htm?zws-id=X1-ZWz1abc_123&zpid=48749425&count=5&rentzestimate=true",
		},
		{
			name:   "comps defaults",
			op:     GetComps,
			params: map[string]string{ParamZPID: "48749425"},
			want:   "http://www.zillow.com/webservice/GetComps.htm?zws-id=X1-ZWz1abc_123&zpid=48749425&count=1&rentzestimate=false",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BuildURL("", testKey, tc.op, tc.params)
			if err != nil {
				t.Fatalf("BuildURL: %v", err)
			}
			if got != tc.want {
				t.Fatalf("BuildURL\n got %s\nwant %s", got, tc.want)
			}
		})
	}
}

func TestBuildURLPassesInvalidValuesThrough(t *testing.T) {
	got, err := BuildURL("", testKey, GetComps, map[string]string{ParamZPID: "abc", ParamCount: "99"})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	want := "http://www.zillow.com/webservice/GetComps.htm?zws-id=X1-ZWz1abc_123&zpid=abc&count=99&rentzestimate=false"
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestBuildURLCustomBaseAndEscapedKey(t *testing.T) {
	got, err := BuildURL("http://127.0.0.1:8080/ws/", "k y", GetZestimate, map[string]string{ParamZPID: "7"})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	want := "http://127.0.0.1:8080/ws/GetZestimate.htm?zws-id=k+y&zpid=7&rentzestimate=false"
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestBuildURLErrors(t *testing.T) {
	if _, err := BuildURL("", "", GetZestimate, map[string]string{ParamZPID: "1"}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}

	_, err := BuildURL("", testKey, GetSearchResults, map[string]string{ParamAddress: "1 Main"})
	var perr *ParamError
	if !errors.As(err, &perr) || !errors.Is(err, ErrMissingParam) || perr.Param != ParamCityStateZip {
		t.Fatalf("expected missing citystatezip, got %v", err)
	}

	_, err = BuildURL("", testKey, GetZestimate, map[string]string{ParamZPID: "1", "unit-type": "dollar"})
	if !errors.Is(err, ErrUnknownParam) {
		t.Fatalf("expected ErrUnknownParam, got %v", err)
	}
}

func TestOperationByName(t *testing.T) {
	for _, name := range []string{"getZestimate", "GetZestimate", "get-zestimate", " GETZESTIMATE ", "GetZestimate.htm"} {
		op, ok := OperationByName(name)
		if !ok || op.Name != OpGetZestimate {
			t.Fatalf("OperationByName(%q) = %v, %v", name, op.Name, ok)
		}
	}
	if op, ok := OperationByName("get-search-results"); !ok || op.Path != "GetSearchResults.htm" {
		t.Fatalf("unexpected search op %+v", op)
	}
	if _, ok := OperationByName("getDeepComps"); ok {
		t.Fatalf("expected unknown operation")
	}
	if _, ok := OperationByName(""); ok {
		t.Fatalf("expected empty name to fail")
	}
}
