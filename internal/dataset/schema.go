package dataset

import (
	"jepdash/internal/models"
	"jepdash/pkg/utils"
)

// Schema records which logical fields the loaded source provides.
type Schema struct {
	columns map[models.Field]string
	Headers []string
}

// NewSchema resolves mapping (field to header name) against the headers
// of a source. Header comparison ignores surrounding and repeated spaces.
func NewSchema(headers []string, mapping map[models.Field]string) Schema {
	sh := utils.NewStringHelper()

	byName := make(map[string]string, len(headers))
	for _, h := range headers {
		byName[sh.NormalizeWhitespace(h)] = h
	}

	columns := make(map[models.Field]string, len(mapping))

	for field, name := range mapping {
		if header, ok := byName[sh.NormalizeWhitespace(name)]; ok {
			columns[field] = header
		}
	}

	return Schema{
		columns: columns,
		Headers: headers,
	}
}

// SchemaOf builds a schema that provides exactly the given fields, using
// the field names as headers.
func SchemaOf(fields ...models.Field) Schema {
	headers := make([]string, 0, len(fields))
	columns := make(map[models.Field]string, len(fields))

	for _, f := range fields {
		headers = append(headers, string(f))
		columns[f] = string(f)
	}

	return Schema{columns: columns, Headers: headers}
}

// Has reports whether the source provides field.
func (s Schema) Has(field models.Field) bool {
	_, ok := s.columns[field]
	return ok
}

// Column returns the header backing field.
func (s Schema) Column(field models.Field) (string, bool) {
	h, ok := s.columns[field]
	return h, ok
}

// Fields returns the provided raw fields in display order.
func (s Schema) Fields() []models.Field {
	var fields []models.Field

	for _, f := range models.RawFields {
		if s.Has(f) {
			fields = append(fields, f)
		}
	}

	return fields
}

// Missing returns the fields of mapping that the source does not provide,
// in display order.
func (s Schema) Missing(mapping map[models.Field]string) []models.Field {
	var missing []models.Field

	for _, f := range models.RawFields {
		if _, wanted := mapping[f]; wanted && !s.Has(f) {
			missing = append(missing, f)
		}
	}

	return missing
}
