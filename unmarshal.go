package nconf

import "reflect"

// Unmarshal parses data as NCONF text and populates out, which must be
// a non-nil pointer.
func Unmarshal(data []byte, out interface{}) (err error) {
	defer handleDecodeErr(&err)
	root, derr := Decode(string(data))
	if derr != nil {
		return derr
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		failf("Unmarshal requires a non-nil pointer, got %T", out)
	}
	decodeInto(rv.Elem(), root)
	return nil
}

func decodeInto(rv reflect.Value, v *Value) {
	if rv.CanAddr() && rv.Addr().Type().Implements(unmarshalerType) {
		if err := rv.Addr().Interface().(Unmarshaler).UnmarshalNCONF(v); err != nil {
			fail(err)
		}
		return
	}

	if rv.Kind() == reflect.Ptr {
		if v.IsNull() || v.IsUndefined() {
			rv.Set(reflect.Zero(rv.Type()))
			return
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		decodeInto(rv.Elem(), v)
		return
	}

	if rv.Kind() == reflect.Interface && rv.NumMethod() == 0 {
		rv.Set(reflect.ValueOf(valueToInterface(v)))
		return
	}

	if rv.Type() == timeType {
		if v.Kind != KindDate {
			failf("cannot decode %s into time.Time", v.Kind)
		}
		rv.Set(reflect.ValueOf(v.Date))
		return
	}

	switch rv.Kind() {
	case reflect.String:
		if v.Kind != KindString {
			failf("cannot decode %s into string", v.Kind)
		}
		rv.SetString(v.Str)

	case reflect.Bool:
		if v.Kind != KindBool {
			failf("cannot decode %s into bool", v.Kind)
		}
		rv.SetBool(v.Bool)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Kind != KindNumber {
			failf("cannot decode %s into %s", v.Kind, rv.Kind())
		}
		rv.SetInt(int64(v.Number))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Kind != KindNumber {
			failf("cannot decode %s into %s", v.Kind, rv.Kind())
		}
		rv.SetUint(uint64(v.Number))

	case reflect.Float32, reflect.Float64:
		if v.Kind != KindNumber {
			failf("cannot decode %s into %s", v.Kind, rv.Kind())
		}
		rv.SetFloat(v.Number)

	case reflect.Slice:
		if v.Kind != KindArray {
			failf("cannot decode %s into slice", v.Kind)
		}
		out := reflect.MakeSlice(rv.Type(), len(v.Array), len(v.Array))
		for i, elem := range v.Array {
			decodeInto(out.Index(i), elem)
		}
		rv.Set(out)

	case reflect.Map:
		if v.Kind != KindObject {
			failf("cannot decode %s into map", v.Kind)
		}
		out := reflect.MakeMapWithSize(rv.Type(), v.Object.Len())
		for _, item := range v.Object.Items() {
			elem := reflect.New(rv.Type().Elem()).Elem()
			decodeInto(elem, item.Value)
			out.SetMapIndex(reflect.ValueOf(item.Key), elem)
		}
		rv.Set(out)

	case reflect.Struct:
		if v.Kind != KindObject {
			failf("cannot decode %s into struct %s", v.Kind, rv.Type())
		}
		decodeStruct(rv, v.Object)

	default:
		failf("cannot decode into kind %s", rv.Kind())
	}
}

func decodeStruct(rv reflect.Value, obj *Object) {
	info, err := getStructInfo(rv.Type())
	if err != nil {
		fail(err)
	}
	for _, f := range info.FieldsList {
		child, ok := obj.Get(f.Key)
		if !ok {
			continue
		}
		decodeInto(rv.Field(f.Num), child)
	}
}

// valueToInterface converts v into the dynamically-typed Go value an
// interface{} destination field receives, mirroring encoding/json's
// bool/float64/string/[]interface{}/map[string]interface{} convention
// with time.Time standing in for json's lack of a native date kind.
func valueToInterface(v *Value) interface{} {
	switch v.Kind {
	case KindNull, KindUndefined:
		return nil
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Number
	case KindString:
		return v.Str
	case KindDate:
		return v.Date
	case KindArray:
		out := make([]interface{}, len(v.Array))
		for i, elem := range v.Array {
			out[i] = valueToInterface(elem)
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, v.Object.Len())
		for _, item := range v.Object.Items() {
			out[item.Key] = valueToInterface(item.Value)
		}
		return out
	default:
		return nil
	}
}
