package table

import (
	"reflect"
	"strings"
	"sync"
)

type fieldInfo struct {
	index    []int
	goName   string
	jsonName string
	slice    bool
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo

// textFields lists the exported string and []string fields of a struct type.
// Fields hidden from JSON are never searched.
func textFields(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}
	var out []fieldInfo
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		info := fieldInfo{index: f.Index, goName: f.Name, jsonName: name}
		switch {
		case f.Type.Kind() == reflect.String:
		case f.Type.Kind() == reflect.Slice && f.Type.Elem().Kind() == reflect.String:
			info.slice = true
		default:
			continue
		}
		out = append(out, info)
	}
	fieldCache.Store(t, out)
	return out
}

func structValue(record any) (reflect.Value, bool) {
	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.Kind() == reflect.Struct
}

// Search keeps records where any text field contains term, case-insensitively.
// An empty term keeps everything. Order is preserved.
func Search[T any](records []T, term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]T, 0, len(records))
	for _, r := range records {
		if term == "" || matchesTerm(r, term) {
			out = append(out, r)
		}
	}
	return out
}

func matchesTerm(record any, term string) bool {
	v, ok := structValue(record)
	if !ok {
		return false
	}
	for _, f := range textFields(v.Type()) {
		fv, err := v.FieldByIndexErr(f.index)
		if err != nil {
			continue
		}
		if !f.slice {
			if strings.Contains(strings.ToLower(fv.String()), term) {
				return true
			}
			continue
		}
		for i := 0; i < fv.Len(); i++ {
			if strings.Contains(strings.ToLower(fv.Index(i).String()), term) {
				return true
			}
		}
	}
	return false
}

// FilterBy keeps records whose named string field equals value, ignoring case.
// The field is matched by JSON name or Go name. A field that is missing or not
// a string never matches.
func FilterBy[T any](records []T, field, value string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if fieldEquals(r, field, value) {
			out = append(out, r)
		}
	}
	return out
}

func fieldEquals(record any, field, value string) bool {
	v, ok := structValue(record)
	if !ok {
		return false
	}
	for _, f := range textFields(v.Type()) {
		if f.slice || !(strings.EqualFold(f.jsonName, field) || strings.EqualFold(f.goName, field)) {
			continue
		}
		fv, err := v.FieldByIndexErr(f.index)
		if err != nil {
			return false
		}
		return strings.EqualFold(fv.String(), value)
	}
	return false
}
