// Package airtable provides a read-only client for the Airtable REST API.
package airtable

import (
	"net/url"
	"strconv"
)

// Record is one row of an Airtable table.
// Fields is sparse: absent cells are simply missing from the map.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

// Direction is a sort direction accepted by the list endpoint.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort orders a list request by a single field.
type Sort struct {
	Field     string
	Direction Direction
}

// Query holds the server-side options of a list request.
type Query struct {
	FilterByFormula string
	Sort            []Sort
	PageSize        int // 0 = server default (100)
}

// values encodes q using the bracketed parameter names the API expects,
// e.g. sort[0][field]=Date&sort[0][direction]=asc.
func (q Query) values() url.Values {
	v := url.Values{}
	if q.FilterByFormula != "" {
		v.Set("filterByFormula", q.FilterByFormula)
	}
	for i, s := range q.Sort {
		prefix := "sort[" + strconv.Itoa(i) + "]"
		v.Set(prefix+"[field]", s.Field)
		dir := s.Direction
		if dir == "" {
			dir = Asc
		}
		v.Set(prefix+"[direction]", string(dir))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	return v
}
