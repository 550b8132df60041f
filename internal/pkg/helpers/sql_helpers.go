package helpers

import "database/sql"

// GetNullString converts a string pointer to sql.NullString.
// A nil pointer becomes an empty NullString.
func GetNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// GetNullFloat64 converts a float64 pointer to sql.NullFloat64.
// A nil pointer becomes an empty NullFloat64.
func GetNullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// StringPtr converts a sql.NullString back to a string pointer.
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// Float64Ptr converts a sql.NullFloat64 back to a float64 pointer.
func Float64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}
