package models

// FieldSet records which fields of a document were touched since it was loaded.
// A nil FieldSet is empty.
type FieldSet map[string]struct{}

// AllFields returns a set holding every name in fields, as used on create.
func AllFields(fields ...string) FieldSet {
	s := make(FieldSet, len(fields))
	for _, f := range fields {
		s.Add(f)
	}
	return s
}

func (s FieldSet) Add(field string) {
	s[field] = struct{}{}
}

func (s FieldSet) Has(field string) bool {
	_, ok := s[field]
	return ok
}

func (s FieldSet) Len() int {
	return len(s)
}
