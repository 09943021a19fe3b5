package feature

import (
	"fmt"
	"reflect"
	"sync"
)

// fieldIndexPrefix is the fixed internal name prefix every feature
// field is bound to in the host index, so that Derive (create) and a
// second Derive of the same type (load) are exact inverses.
const fieldIndexPrefix = "Filterable_field_"

// FieldSpec describes one derived feature field.
type FieldSpec struct {
	Name      string // the record's Go struct field name
	IndexName string // the fixed internal handle, e.g. Filterable_field_Calories
	Kind      Kind
	Optional  bool
}

// Schema is the derived triad's shared contract: one FieldSpec per
// numeric field of a record type.
type Schema struct {
	goType reflect.Type
	Fields []FieldSpec
	byName map[string]FieldSpec
}

// ByName looks up a field spec by its Go struct field name.
func (s *Schema) ByName(name string) (FieldSpec, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Flags mirrors the original's document-builder flags: numeric fields
// must be created as INDEXED for the range-query machinery to work.
// Create (Derive) panics if the caller omits it — a programmer error,
// not a runtime one.
type Flags struct {
	Indexed bool
}

var schemaCache sync.Map // reflect.Type -> *Schema

// Derive builds (or returns the cached) Schema for T by reflecting over
// its exported fields, keeping every field whose type is one of the ten
// supported numeric kinds or a pointer to one (pointer == optional).
// Panics if flags.Indexed is false: the schema contract requires numeric
// fields to be indexed so that range-filter and aggregation queries can
// run against them.
func Derive[T any](flags Flags) *Schema {
	if !flags.Indexed {
		panic("feature: schema fields must be created with the Indexed flag set")
	}

	t := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := schemaCache.Load(t); ok {
		return cached.(*Schema)
	}

	schema := &Schema{goType: t, byName: make(map[string]FieldSpec)}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		ft := f.Type
		optional := false
		if ft.Kind() == reflect.Pointer {
			optional = true
			ft = ft.Elem()
		}

		kind, ok := kindOfReflect[ft.Kind()]
		if !ok {
			continue
		}

		spec := FieldSpec{
			Name:      f.Name,
			IndexName: fieldIndexPrefix + f.Name,
			Kind:      kind,
			Optional:  optional,
		}
		schema.Fields = append(schema.Fields, spec)
		schema.byName[f.Name] = spec
	}

	actual, _ := schemaCache.LoadOrStore(t, schema)
	return actual.(*Schema)
}

// FieldValue reads name's value out of record as a float64 using
// schema's field specs, for callers outside this package that need a
// single field rather than a full aggregation pass (the facade's
// fast-field sort accessor). Reports ok == false for an unknown field
// name or an absent optional value.
func FieldValue(record any, name string, schema *Schema) (value float64, ok bool) {
	spec, ok := schema.ByName(name)
	if !ok {
		return 0, false
	}
	return fieldValue(record, spec)
}

// fieldValue reads field spec's value out of record as a float64,
// reporting ok == false when an optional field is absent (a nil
// pointer) so callers can skip it rather than treating it as zero.
func fieldValue(record any, spec FieldSpec) (value float64, ok bool) {
	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	fv := v.FieldByName(spec.Name)
	if !fv.IsValid() {
		panic(fmt.Sprintf("feature: record has no field %q", spec.Name))
	}
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return 0, false
		}
		fv = fv.Elem()
	}

	switch fv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(fv.Uint()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(fv.Int()), true
	case reflect.Float32, reflect.Float64:
		return fv.Float(), true
	default:
		panic(fmt.Sprintf("feature: unsupported field kind %s for %q", fv.Kind(), spec.Name))
	}
}
