package nconf

import (
	"reflect"
	"sort"
	"time"
)

// Marshal converts in into NCONF text: structs become objects via
// their "nconf" field tags, maps/slices/scalars map onto the obvious
// Value Kind, and a type implementing Marshaler is asked to encode
// itself.
func Marshal(in interface{}) (out []byte, err error) {
	defer handleDecodeErr(&err)
	v := marshalValue(reflect.ValueOf(in))
	return []byte(Encode(v)), nil
}

func marshalValue(rv reflect.Value) *Value {
	if !rv.IsValid() {
		return Null()
	}
	if rv.CanInterface() && rv.Type().Implements(marshalerType) {
		v, err := rv.Interface().(Marshaler).MarshalNCONF()
		if err != nil {
			fail(err)
		}
		return v
	}
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Null()
		}
		return marshalValue(rv.Elem())
	}
	if rv.Type() == timeType {
		return Date(rv.Interface().(time.Time))
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return marshalValue(rv.Elem())

	case reflect.String:
		return String(rv.String())

	case reflect.Bool:
		return Bool(rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int()))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(float64(rv.Uint()))

	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())

	case reflect.Slice, reflect.Array:
		items := make([]*Value, rv.Len())
		for i := range items {
			items[i] = marshalValue(rv.Index(i))
		}
		return NewArray(items...)

	case reflect.Map:
		obj := NewObject()
		keys := rv.MapKeys()
		strKeys := make([]string, len(keys))
		byKey := make(map[string]reflect.Value, len(keys))
		for i, k := range keys {
			ks := toMapKeyString(k)
			strKeys[i] = ks
			byKey[ks] = rv.MapIndex(k)
		}
		// sorted for deterministic output; Go map iteration order is random
		// and NCONF objects are insertion-ordered, so something must be
		// chosen deliberately here.
		sort.Strings(strKeys)
		for _, k := range strKeys {
			obj.Object.Set(k, marshalValue(byKey[k]))
		}
		return obj

	case reflect.Struct:
		return marshalStruct(rv)

	default:
		failf("cannot marshal value of kind %s", rv.Kind())
		return nil
	}
}

func marshalStruct(rv reflect.Value) *Value {
	info, err := getStructInfo(rv.Type())
	if err != nil {
		fail(err)
	}
	obj := NewObject()
	for _, f := range info.FieldsList {
		fv := rv.Field(f.Num)
		if f.OmitEmpty && isZero(fv) {
			continue
		}
		obj.Object.Set(f.Key, marshalValue(fv))
	}
	return obj
}

func toMapKeyString(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	failf("map keys must be strings, got %s", k.Kind())
	return ""
}
