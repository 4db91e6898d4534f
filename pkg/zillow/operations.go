package zillow

import "strings"

// Param declares one query parameter of an operation.
type Param struct {
	// Name is the caller-facing parameter name.
	Name string
	// Query is the name sent on the wire.
	Query    string
	Required bool
	// Default is used when the caller omits an optional parameter.
	// Optional parameters with an empty default are left out of the URL.
	Default string
}

// Operation describes one Zillow web-service endpoint.
type Operation struct {
	Name   string
	Path   string
	Params []Param
}

const (
	OpGetZestimate     = "getZestimate"
	OpGetChart         = "getChart"
	OpGetSearchResults = "getSearchResults"
	OpGetComps         = "getComps"
)

// Parameter names shared across operations.
const (
	ParamZPID          = "zpid"
	ParamRentZestimate = "rentzestimate"
	ParamUnitType      = "unittype"
	ParamWidth         = "width"
	ParamHeight        = "height"
	ParamChartDuration = "chartDuration"
	ParamAddress       = "address"
	ParamCityStateZip  = "citystatezip"
	ParamCount         = "count"
)

var (
	GetZestimate = Operation{
		Name: OpGetZestimate,
		Path: "GetZestimate.htm",
		Params: []Param{
			{Name: ParamZPID, Query: "zpid", Required: true},
			{Name: ParamRentZestimate, Query: "rentzestimate", Default: "false"},
		},
	}

	GetChart = Operation{
		Name: OpGetChart,
		Path: "GetChart.htm",
		Params: []Param{
			{Name: ParamZPID, Query: "zpid", Required: true},
			{Name: ParamUnitType, Query: "unit-type", Default: "percent"},
			{Name: ParamWidth, Query: "width", Default: "200"},
			{Name: ParamHeight, Query: "height", Default: "100"},
			{Name: ParamChartDuration, Query: "chartDuration", Default: "1year"},
		},
	}

	// GetSearchResults keeps zpid as an optional passthrough; address and
	// citystatezip are the search keys.
	GetSearchResults = Operation{
		Name: OpGetSearchResults,
		Path: "GetSearchResults.htm",
		Params: []Param{
			{Name: ParamZPID, Query: "zpid"},
			{Name: ParamAddress, Query: "address", Required: true},
			{Name: ParamCityStateZip, Query: "citystatezip", Required: true},
			{Name: ParamRentZestimate, Query: "rentzestimate", Default: "false"},
		},
	}

	GetComps = Operation{
		Name: OpGetComps,
		Path: "GetComps.htm",
		Params: []Param{
			{Name: ParamZPID, Query: "zpid", Required: true},
			{Name: ParamCount, Query: "count", Default: "1"},
			{Name: ParamRentZestimate, Query: "rentzestimate", Default: "false"},
		},
	}
)

// Operations returns every supported operation in a stable order.
func Operations() []Operation {
	return []Operation{GetZestimate, GetChart, GetSearchResults, GetComps}
}

// OperationByName resolves an operation by its name. Matching ignores case
// and dashes, so "getZestimate", "GetZestimate" and "get-zestimate" all resolve.
func OperationByName(name string) (Operation, bool) {
	key := normalizeName(name)
	if key == "" {
		return Operation{}, false
	}
	for _, op := range Operations() {
		if normalizeName(op.Name) == key {
			return op, true
		}
	}
	return Operation{}, false
}

// Param returns the declared parameter with the given name.
func (op Operation) Param(name string) (Param, bool) {
	for _, p := range op.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, ".htm")
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "_", "")
	return strings.ToLower(name)
}
