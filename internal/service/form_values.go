package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
)

// FormValues is a decoded form body. Repeated keys keep their order.
type FormValues map[string][]string

// Get returns the first value of key, trimmed.
func (v FormValues) Get(key string) string {
	if vals := v.List(key); len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}

// List returns every value of key. Both "key" and "key[]" spellings count.
func (v FormValues) List(key string) []string {
	if vals, ok := v[key]; ok {
		return vals
	}
	return v[key+"[]"]
}

// Group reads parallel arrays as rows. fields[0] is the leading field: when
// no field is present the group is empty. Every field must have as many
// entries as the leading one.
func (v FormValues) Group(fields ...string) ([][]string, error) {
	lead := v.List(fields[0])
	if len(lead) == 0 {
		for _, f := range fields[1:] {
			if n := len(v.List(f)); n > 0 {
				return nil, models.NewValidationError(fmt.Sprintf(
					"field %q has %d entries but %q is missing", f, n, fields[0]))
			}
		}
		return nil, nil
	}
	cols := make([][]string, len(fields))
	for i, f := range fields {
		cols[i] = v.List(f)
		if len(cols[i]) != len(lead) {
			return nil, models.NewValidationError(fmt.Sprintf(
				"field %q has %d entries but %q has %d", f, len(cols[i]), fields[0], len(lead)))
		}
	}
	rows := make([][]string, len(lead))
	for r := range rows {
		rows[r] = make([]string, len(fields))
		for c := range fields {
			rows[r][c] = strings.TrimSpace(cols[c][r])
		}
	}
	return rows, nil
}

// BindPrefixed fills the string fields of the struct dest points to from
// keys of the form "prefix[tag]", where tag is the field's form tag. An empty
// prefix reads the bare tag. Fields tagged "-" and embedded structs are skipped.
func (v FormValues) BindPrefixed(prefix string, dest any) {
	rv := reflect.ValueOf(dest).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		tag := f.Tag.Get("form")
		if f.Anonymous || tag == "" || tag == "-" || f.Type.Kind() != reflect.String {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "[" + tag + "]"
		}
		rv.Field(i).SetString(v.Get(key))
	}
}

// HasPrefix reports whether any "prefix[...]" key was submitted.
func (v FormValues) HasPrefix(prefix string) bool {
	for k := range v {
		if strings.HasPrefix(k, prefix+"[") {
			return true
		}
	}
	return false
}
