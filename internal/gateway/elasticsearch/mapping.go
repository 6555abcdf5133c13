package elasticsearch

// DefaultIndexName is the default Elasticsearch index used for school documents.
const DefaultIndexName = "wheelsup-schools"

// buildIndexMapping returns the full JSON mapping for the schools index.
// Facet fields (state, accreditation type, specialties, va_approved) are
// keywords; coordinates are a geo_point for radius filtering and distance
// sort; name carries a lowercase-normalized keyword subfield for sorting.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "normalizer": {
        "lowercase_normalizer": {
          "type": "custom",
          "filter": ["lowercase"]
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "id":           { "type": "keyword" },
      "name":         { "type": "text", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 }, "sort": { "type": "keyword", "normalizer": "lowercase_normalizer", "ignore_above": 256 } } },
      "description":  { "type": "text" },
      "specialties":  { "type": "keyword" },
      "contact": {
        "properties": {
          "phone":   { "type": "keyword", "index": false },
          "email":   { "type": "keyword", "index": false },
          "website": { "type": "keyword", "index": false }
        }
      },
      "location": {
        "properties": {
          "address":              { "type": "text" },
          "city":                 { "type": "text", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 } } },
          "state":                { "type": "keyword" },
          "zip_code":             { "type": "keyword" },
          "country":              { "type": "keyword" },
          "coordinates":          { "type": "geo_point" },
          "nearest_airport_icao": { "type": "keyword" },
          "nearest_airport_name": { "type": "text" }
        }
      },
      "accreditation": {
        "properties": {
          "type":               { "type": "keyword" },
          "certificate_number": { "type": "keyword" },
          "va_approved":        { "type": "boolean" }
        }
      },
      "operations": {
        "properties": {
          "founded_year":     { "type": "integer" },
          "employee_count":   { "type": "integer" },
          "fleet_size":       { "type": "integer" },
          "student_capacity": { "type": "integer" }
        }
      },
      "rating":       { "type": "float" },
      "review_count": { "type": "integer" },
      "is_active":    { "type": "boolean" },
      "source_type":  { "type": "keyword" },
      "source_url":   { "type": "keyword", "index": false },
      "confidence":   { "type": "float" },
      "snapshot_id":  { "type": "keyword" },
      "extracted_at": { "type": "date" },
      "indexed_at":   { "type": "date" }
    }
  }
}`
}
