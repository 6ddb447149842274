package repositories

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"rentalprima/internal/domain"
)

// DefaultListingLimit applies when the limit parameter is absent.
const DefaultListingLimit = 10

type predicateOp int

const (
	opEquals predicateOp = iota
	opGte
	opLte
	opOrLike
)

// Predicate is one compiled filter condition against the listings table.
type Predicate struct {
	Op      predicateOp
	Column  string
	Columns []string // opOrLike only
	Value   any
}

// ListingFilter is the compiled form of the listing query parameters.
// Built fresh per request and immutable after ParseListingFilter.
type ListingFilter struct {
	Search        string
	CategoryID    string
	SubcategoryID string
	Status        string
	FeaturedOnly  bool
	Brand         string
	Condition     string
	PricePeriod   string
	DeliveryOnly  bool
	AvailableFrom string
	AvailableTo   string
	MinPrice      *float64
	MaxPrice      *float64

	OrderBy  string
	OrderAsc bool
	Limit    int
	Offset   int
}

// listingOrderColumns whitelists sortable columns. Unknown values fall
// back to created_at rather than erroring.
var listingOrderColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"price":      "price",
	"title":      "title",
	"status":     "status",
}

// ParseListingFilter compiles raw query parameters into a ListingFilter.
// The sentinel "all" and absent parameters suppress their predicate.
// Pagination and price parameters are parsed strictly; malformed input
// returns a ValidationError instead of being coerced to zero.
func ParseListingFilter(q url.Values) (ListingFilter, error) {
	f := ListingFilter{
		Search:        strings.TrimSpace(q.Get("search")),
		CategoryID:    noneIfAll(q.Get("category")),
		SubcategoryID: noneIfAll(q.Get("subcategory")),
		Status:        noneIfAll(q.Get("status")),
		FeaturedOnly:  q.Get("featured") == "true",
		Brand:         strings.TrimSpace(q.Get("brand")),
		Condition:     strings.TrimSpace(q.Get("condition")),
		PricePeriod:   strings.TrimSpace(q.Get("pricePeriod")),
		DeliveryOnly:  q.Get("delivery") == "true",
		AvailableFrom: strings.TrimSpace(q.Get("availableFrom")),
		AvailableTo:   strings.TrimSpace(q.Get("availableTo")),
		OrderAsc:      q.Get("orderDirection") == "asc",
	}

	f.OrderBy = listingOrderColumns["created_at"]
	if col, ok := listingOrderColumns[strings.TrimSpace(q.Get("orderBy"))]; ok {
		f.OrderBy = col
	}

	var err error
	if f.MinPrice, err = parsePriceParam(q, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePriceParam(q, "maxPrice"); err != nil {
		return f, err
	}
	if f.Limit, err = parseIntParam(q, "limit", DefaultListingLimit); err != nil {
		return f, err
	}
	if f.Offset, err = parseIntParam(q, "offset", 0); err != nil {
		return f, err
	}

	return f, nil
}

// Predicates compiles the filter into an ordered set of conditions.
// Order mirrors parameter recognition order; it does not change the
// result, only the assembled clause.
func (f ListingFilter) Predicates() []Predicate {
	var preds []Predicate

	eq := func(column, value string) {
		if value != "" {
			preds = append(preds, Predicate{Op: opEquals, Column: column, Value: value})
		}
	}

	eq("status", f.Status)
	eq("category_id", f.CategoryID)
	eq("subcategory_id", f.SubcategoryID)
	if f.FeaturedOnly {
		preds = append(preds, Predicate{Op: opEquals, Column: "is_featured", Value: true})
	}
	eq("brand", f.Brand)
	eq("condition", f.Condition)
	eq("price_period", f.PricePeriod)
	if f.DeliveryOnly {
		preds = append(preds, Predicate{Op: opEquals, Column: "delivery", Value: true})
	}
	if f.AvailableFrom != "" {
		preds = append(preds, Predicate{Op: opGte, Column: "available_from", Value: f.AvailableFrom})
	}
	if f.AvailableTo != "" {
		preds = append(preds, Predicate{Op: opLte, Column: "available_to", Value: f.AvailableTo})
	}
	if f.Search != "" {
		// Single OR-group across the searchable text columns.
		preds = append(preds, Predicate{
			Op:      opOrLike,
			Columns: []string{"title", "description", "location", "brand"},
			Value:   f.Search,
		})
	}
	if f.MinPrice != nil {
		preds = append(preds, Predicate{Op: opGte, Column: "price", Value: *f.MinPrice})
	}
	if f.MaxPrice != nil {
		preds = append(preds, Predicate{Op: opLte, Column: "price", Value: *f.MaxPrice})
	}

	return preds
}

// OrderClause renders the ORDER BY expression. Direction is ascending
// only when orderDirection was literally "asc".
func (f ListingFilter) OrderClause() string {
	dir := "DESC"
	if f.OrderAsc {
		dir = "ASC"
	}
	return quoteColumn(f.OrderBy) + " " + dir
}

// buildListingWhere renders predicates into a WHERE fragment plus args.
// Substring matches rely on the table's case-insensitive collation.
func buildListingWhere(preds []Predicate) (string, []any) {
	if len(preds) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(preds))
	args := make([]any, 0, len(preds))

	for _, p := range preds {
		switch p.Op {
		case opEquals:
			clauses = append(clauses, quoteColumn(p.Column)+" = ?")
			args = append(args, p.Value)
		case opGte:
			clauses = append(clauses, quoteColumn(p.Column)+" >= ?")
			args = append(args, p.Value)
		case opLte:
			clauses = append(clauses, quoteColumn(p.Column)+" <= ?")
			args = append(args, p.Value)
		case opOrLike:
			parts := make([]string, 0, len(p.Columns))
			for _, col := range p.Columns {
				parts = append(parts, quoteColumn(col)+" LIKE ?")
				args = append(args, "%"+fmt.Sprint(p.Value)+"%")
			}
			clauses = append(clauses, "("+strings.Join(parts, " OR ")+")")
		}
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

// quoteColumn backtick-quotes a column name; `condition` is a reserved
// word in MySQL.
func quoteColumn(col string) string {
	return "`" + col + "`"
}

func noneIfAll(v string) string {
	v = strings.TrimSpace(v)
	if v == "all" {
		return ""
	}
	return v
}

func parseIntParam(q url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationError{Field: name, Msg: "must be an integer", Err: err}
	}
	if n < 0 {
		return 0, domain.ValidationError{Field: name, Msg: "must not be negative"}
	}
	return n, nil
}

func parsePriceParam(q url.Values, name string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.ValidationError{Field: name, Msg: "must be a number", Err: err}
	}
	return &v, nil
}
