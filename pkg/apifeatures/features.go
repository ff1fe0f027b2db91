package apifeatures

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// PageLimit is the default number of items per page.
	PageLimit = 10
	// MaxPageLimit caps the per-page size unless a custom max is set.
	MaxPageLimit = 100

	createdAtField = "createdAt"
	versionField   = "__v"
)

// Query parameters that never become attribute filters.
var excludedParams = map[string]bool{
	"page":             true,
	"sort":             true,
	"fields":           true,
	"keyword":          true,
	"limit":            true,
	"skip":             true,
	"from":             true,
	"to":               true,
	"order":            true,
	"_calculatedLimit": true,
}

// Search fields shared across entities; restricted per collection to
// whichever of these actually exist on its schema.
var commonSearchFields = []string{
	"title", "name", "firstName", "lastName", "username", "email", "phone",
	"description", "status", "type", "category", "location", "tags",
	"address", "city", "state", "country", "zip",
}

// Bare comparison tokens rewritten to their $-prefixed Mongo form. The
// rewrite is a textual substitution over the serialized filter, so a
// literal value equal to one of these tokens is rewritten too.
var operatorTokens = regexp.MustCompile(`\b(gt|gte|lt|lte|in|nin|eq|ne)\b`)

// key[op]=value style nested filter parameters.
var nestedParam = regexp.MustCompile(`^(\w+)\[(\w+)\]$`)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Schema is the set of known attribute names for a collection. Sort,
// projection and search entries are validated against it.
type Schema map[string]bool

func NewSchema(fields ...string) Schema {
	s := make(Schema, len(fields))
	for _, f := range fields {
		s[f] = true
	}
	return s
}

// Pagination is the metadata block of a paged envelope.
type Pagination struct {
	Page       int64 `json:"page"`
	Total      int64 `json:"total"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// PagedResult carries the results array (under a caller-chosen key),
// pagination metadata and the applied filter/sort objects.
type PagedResult map[string]interface{}

// Features builds a bounded, sorted, filtered Mongo query from raw
// request query parameters. Methods mutate shared state, so the usual
// order is Pagination, Fields, Search, Filteration, Sort, Execute.
type Features struct {
	filter         bson.M
	params         map[string]string
	schema         Schema
	customMaxLimit int64

	calculatedLimit int64
	skip            int64
	sort            bson.D
	projection      bson.D
}

// New creates a Features builder over a base filter that has already been
// narrowed to the owner/tenant scope by the caller.
func New(base bson.M, params map[string]string, schema Schema) *Features {
	filter := bson.M{}
	for k, v := range base {
		filter[k] = v
	}
	p := make(map[string]string, len(params))
	for k, v := range params {
		p[k] = v
	}
	return &Features{filter: filter, params: p, schema: schema}
}

// SetMaxLimit overrides the default per-page cap.
func (f *Features) SetMaxLimit(limit int64) *Features {
	if limit > 0 {
		f.customMaxLimit = limit
	}
	return f
}

// PageNumber reads the page parameter, defaulting to 1 and flooring at 1.
func (f *Features) PageNumber() int64 {
	raw, ok := f.params["page"]
	if !ok || raw == "" {
		return 1
	}
	page, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (f *Features) effectiveLimit() int64 {
	maxLimit := int64(MaxPageLimit)
	if f.customMaxLimit > 0 {
		maxLimit = f.customMaxLimit
	}

	limit := int64(PageLimit)
	if raw, ok := f.params["limit"]; ok {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// Pagination applies skip/limit and stashes the effective limit so it
// survives the removal of the raw limit/skip parameters, which must not
// leak into the filtering step.
func (f *Features) Pagination() *Features {
	page := f.PageNumber()
	limit := f.effectiveLimit()

	f.skip = (page - 1) * limit
	f.calculatedLimit = limit

	delete(f.params, "limit")
	delete(f.params, "skip")

	return f
}

// Filteration maps the remaining query parameters onto the collection's
// attribute namespace, handles the from/to creation-date range, and
// rewrites bare comparison tokens to Mongo operators.
func (f *Features) Filteration() *Features {
	filterObj := map[string]interface{}{}

	for key, value := range f.params {
		if excludedParams[key] {
			continue
		}
		if m := nestedParam.FindStringSubmatch(key); m != nil {
			field, op := m[1], m[2]
			sub, ok := filterObj[field].(map[string]interface{})
			if !ok {
				sub = map[string]interface{}{}
				filterObj[field] = sub
			}
			sub[op] = coerceValue(value)
			continue
		}
		filterObj[key] = coerceValue(value)
	}

	rewritten := rewriteOperators(filterObj)
	for k, v := range rewritten {
		f.filter[k] = v
	}

	// Inclusive day range on the creation timestamp. Unparseable dates
	// are dropped with a warning, never rejected.
	dateFilter := bson.M{}
	if raw, ok := f.params["from"]; ok && raw != "" {
		if from, err := parseDate(raw); err == nil {
			start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
			dateFilter["$gte"] = start
		} else {
			logrus.Warnf("Error parsing 'from' date: %s", raw)
		}
	}
	if raw, ok := f.params["to"]; ok && raw != "" {
		if to, err := parseDate(raw); err == nil {
			end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(999*time.Millisecond), to.Location())
			dateFilter["$lte"] = end
		} else {
			logrus.Warnf("Error parsing 'to' date: %s", raw)
		}
	}
	if len(dateFilter) > 0 {
		f.filter[createdAtField] = dateFilter
	}

	return f
}

// Sort resolves exactly one of: a multi-field "-"-prefixed list, a single
// field paired with an order parameter, or the default createdAt
// descending. Unknown fields are dropped with a warning.
func (f *Features) Sort() *Features {
	rawSort := f.params["sort"]
	order, hasOrder := f.params["order"]

	if rawSort != "" {
		fields := strings.Split(rawSort, ",")

		// A single bare field combined with an explicit order parameter
		// sorts by that pair, so ?sort=createdAt&order=desc matches
		// ?sort=-createdAt.
		if len(fields) == 1 && !strings.HasPrefix(fields[0], "-") && hasOrder {
			field := fields[0]
			if f.schema[field] {
				direction := 1
				if strings.EqualFold(order, "desc") {
					direction = -1
				}
				f.sort = bson.D{{Key: field, Value: direction}}
				return f
			}
			logrus.Warnf("Invalid sort field: %s", field)
		} else {
			sortDoc := bson.D{}
			for _, field := range fields {
				desc := strings.HasPrefix(field, "-")
				clean := strings.TrimPrefix(field, "-")
				if !f.schema[clean] {
					logrus.Warnf("Invalid sort field: %s", clean)
					continue
				}
				direction := 1
				if desc {
					direction = -1
				}
				sortDoc = append(sortDoc, bson.E{Key: clean, Value: direction})
			}
			if len(sortDoc) > 0 {
				f.sort = sortDoc
				return f
			}
		}
	}

	f.sort = bson.D{{Key: createdAtField, Value: -1}}
	return f
}

// Search builds a case-insensitive substring match across the common
// search fields that exist on this collection's schema. No-op when the
// keyword is absent or none of the fields apply.
func (f *Features) Search() *Features {
	keyword := f.params["keyword"]
	if keyword == "" {
		return f
	}

	or := bson.A{}
	for _, field := range commonSearchFields {
		if f.schema[field] {
			or = append(or, bson.M{field: primitive.Regex{Pattern: keyword, Options: "i"}})
		}
	}
	if len(or) > 0 {
		f.filter["$or"] = or
	}
	return f
}

// Fields applies field projection. Entries prefixed with "-" are
// excluded; unknown fields are dropped with a warning. The internal
// version attribute is always excluded.
func (f *Features) Fields() *Features {
	raw := f.params["fields"]
	if raw == "" {
		return f
	}

	include := bson.D{}
	exclude := bson.D{}
	for _, field := range strings.Split(raw, ",") {
		excluded := strings.HasPrefix(field, "-")
		clean := strings.TrimPrefix(field, "-")
		if !f.schema[clean] {
			logrus.Warnf("Invalid field: %s", clean)
			continue
		}
		if excluded {
			exclude = append(exclude, bson.E{Key: clean, Value: 0})
		} else {
			include = append(include, bson.E{Key: clean, Value: 1})
		}
	}

	// Mongo rejects mixed projections, so inclusions win when both
	// appear; the version field is only listed in exclusion mode since
	// an inclusive projection already omits it.
	if len(include) > 0 {
		f.projection = include
	} else if len(exclude) > 0 {
		f.projection = append(exclude, bson.E{Key: versionField, Value: 0})
	}
	return f
}

// Skip returns the computed document offset.
func (f *Features) Skip() int64 { return f.skip }

// Limit returns the effective per-page limit, computing it on demand if
// Pagination was not called.
func (f *Features) Limit() int64 {
	if f.calculatedLimit > 0 {
		return f.calculatedLimit
	}
	return f.effectiveLimit()
}

// Filter returns the accumulated filter document.
func (f *Features) Filter() bson.M { return f.filter }

// SortDoc returns the applied sort document.
func (f *Features) SortDoc() bson.D { return f.sort }

// Projection returns the applied field projection.
func (f *Features) Projection() bson.D { return f.projection }

// Meta assembles pagination metadata for a known total count.
func (f *Features) Meta(total int64) Pagination {
	limit := f.Limit()
	return Pagination{
		Page:       f.PageNumber(),
		Total:      total,
		Limit:      limit,
		TotalPages: ceilDiv(total, limit),
	}
}

// Execute runs the built query plus an independent count over the same
// filter and returns the paged envelope with results under key.
func (f *Features) Execute(ctx context.Context, coll *mongo.Collection, key string) (PagedResult, error) {
	opts := options.Find().
		SetSkip(f.skip).
		SetLimit(f.Limit()).
		SetSort(f.sortOrDefault())
	if len(f.projection) > 0 {
		opts.SetProjection(f.projection)
	}

	cursor, err := coll.Find(ctx, f.filter, opts)
	if err != nil {
		return nil, err
	}
	results := make([]bson.M, 0, f.Limit())
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	total, err := coll.CountDocuments(ctx, f.filter)
	if err != nil {
		return nil, err
	}

	return PagedResult{
		key:          results,
		"pagination": f.Meta(total),
		"filters":    f.filter,
		"sort":       f.sortMap(),
	}, nil
}

func (f *Features) sortOrDefault() bson.D {
	if len(f.sort) > 0 {
		return f.sort
	}
	return bson.D{{Key: createdAtField, Value: -1}}
}

func (f *Features) sortMap() map[string]int {
	out := map[string]int{}
	for _, e := range f.sortOrDefault() {
		if v, ok := e.Value.(int); ok {
			out[e.Key] = v
		}
	}
	return out
}

func ceilDiv(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// coerceValue maps a raw query string onto the JSON-ish value space so
// numeric and boolean filters compare correctly in Mongo.
func coerceValue(v string) interface{} {
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return v
}

// rewriteOperators serializes the filter, substitutes bare comparison
// tokens with their $-prefixed forms, and deserializes it back.
func rewriteOperators(filterObj map[string]interface{}) bson.M {
	if len(filterObj) == 0 {
		return bson.M{}
	}
	raw, err := json.Marshal(filterObj)
	if err != nil {
		logrus.Warnf("Error serializing filter object: %v", err)
		return bson.M{}
	}
	replaced := operatorTokens.ReplaceAllString(string(raw), `$$$1`)

	var out bson.M
	if err := json.Unmarshal([]byte(replaced), &out); err != nil {
		logrus.Warnf("Error applying filter operators: %v", err)
		return bson.M{}
	}
	return out
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
