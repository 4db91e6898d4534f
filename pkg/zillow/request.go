package zillow

import (
	"net/url"
	"sort"
	"strings"
)

// DefaultBaseURL is the Zillow web-service root.
const DefaultBaseURL = "http://www.zillow.com/webservice"

// apiKeyQuery is the wire name of the API key parameter.
const apiKeyQuery = "zws-id"

// QueryValue is one resolved query parameter.
type QueryValue struct {
	Query string
	Value string
}

// Resolve applies defaults to params and returns the query values in the
// operation's declared order. Values are not interpreted.
func (op Operation) Resolve(params map[string]string) ([]QueryValue, error) {
	if err := op.checkNames(params); err != nil {
		return nil, err
	}

	out := make([]QueryValue, 0, len(op.Params))
	for _, p := range op.Params {
		val := params[p.Name]
		if val == "" {
			if p.Required {
				return nil, &ParamError{Operation: op.Name, Param: p.Name, Err: ErrMissingParam}
			}
			val = p.Default
		}
		if val == "" {
			continue
		}
		out = append(out, QueryValue{Query: p.Query, Value: val})
	}
	return out, nil
}

// checkNames rejects parameter names the operation does not declare.
func (op Operation) checkNames(params map[string]string) error {
	var unknown []string
	for name := range params {
		if _, ok := op.Param(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &ParamError{Operation: op.Name, Param: unknown[0], Err: ErrUnknownParam}
}

// BuildURL builds the GET URL for op: the API key first, then every declared
// parameter in order, each value query-escaped.
func BuildURL(baseURL, apiKey string, op Operation, params map[string]string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", ErrMissingAPIKey
	}
	values, err := op.Resolve(params)
	if err != nil {
		return "", err
	}

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteByte('/')
	b.WriteString(op.Path)
	b.WriteByte('?')
	b.WriteString(apiKeyQuery)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(apiKey))
	for _, v := range values {
		b.WriteByte('&')
		b.WriteString(url.QueryEscape(v.Query))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v.Value))
	}
	return b.String(), nil
}
