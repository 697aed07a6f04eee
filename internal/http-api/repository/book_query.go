package repository

import (
	"net/url"
	"strconv"
	"strings"
)

// BookQuery captures the list parameters of GET /api/books: field filters,
// sort order and offset pagination.
type BookQuery struct {
	Filters  []FieldFilter
	Sort     []SortField
	Page     int
	PageSize int
}

type FieldFilter struct {
	Column string
	Op     string // "=", ">=", ">", "<=", "<"
	Value  any
}

type SortField struct {
	Column string
	Desc   bool
}

// filterableColumns whitelists what clients may filter or sort on. Keys are
// the JSON field names, values the SQL columns.
var filterableColumns = map[string]string{
	"title":          "title",
	"author":         "author",
	"category":       "category",
	"condition":      "condition",
	"exchange_type":  "exchange_type",
	"department":     "department",
	"course_code":    "course_code",
	"owner_id":       "owner_id",
	"isbn":           "isbn",
	"language":       "language",
	"publisher":      "publisher",
	"price":          "price",
	"published_year": "published_year",
	"availability":   "availability",
	"created_at":     "created_at",
}

// numericColumns and booleanColumns drive filter-value coercion so the
// parameter type matches the column type Postgres expects.
var numericColumns = map[string]bool{
	"price":          true,
	"published_year": true,
}

var booleanColumns = map[string]bool{
	"availability": true,
}

var relationalOps = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// ParseBookQuery turns raw query parameters into a BookQuery. Filter keys use
// the bracket syntax `price[gte]=10`; a bare key means equality. Sort is a
// comma list where a leading '-' means descending, default is -created_at.
// Unknown fields and operators are ignored rather than rejected.
func ParseBookQuery(values url.Values) BookQuery {
	q := BookQuery{Page: defaultPage, PageSize: defaultPageSize}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		switch key {
		case "page", "sort", "limit", "fields", "q":
			continue
		}

		field, op := splitFilterKey(key)
		column, ok := filterableColumns[field]
		if !ok {
			continue
		}
		sqlOp, ok := relationalOps[op]
		if !ok {
			if op != "" {
				continue
			}
			sqlOp = "="
		}
		value, ok := coerceFilterValue(column, vals[0])
		if !ok {
			continue
		}
		q.Filters = append(q.Filters, FieldFilter{Column: column, Op: sqlOp, Value: value})
	}

	if raw := values.Get("sort"); raw != "" {
		for _, token := range strings.Split(raw, ",") {
			token = strings.TrimSpace(token)
			desc := strings.HasPrefix(token, "-")
			token = strings.TrimPrefix(token, "-")
			if column, ok := filterableColumns[token]; ok {
				q.Sort = append(q.Sort, SortField{Column: column, Desc: desc})
			}
		}
	}
	if len(q.Sort) == 0 {
		q.Sort = []SortField{{Column: "created_at", Desc: true}}
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		q.PageSize = limit
		if q.PageSize > maxPageSize {
			q.PageSize = maxPageSize
		}
	}

	return q
}

// splitFilterKey parses "price[gte]" into ("price", "gte"); a plain key
// yields an empty operator.
func splitFilterKey(key string) (field, op string) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

// coerceFilterValue converts the raw query value to the Go type matching the
// column, dropping the filter when the value does not parse.
func coerceFilterValue(column, raw string) (any, bool) {
	switch {
	case numericColumns[column]:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	case booleanColumns[column]:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, false
		}
		return b, true
	default:
		return raw, true
	}
}
