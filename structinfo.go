package nconf

import (
	"reflect"
	"strings"
	"sync"
	"time"
)

// Marshaler lets a type customize its own encoding in place of the
// default struct/map/slice reflection walk.
type Marshaler interface {
	MarshalNCONF() (*Value, error)
}

// Unmarshaler lets a type customize how it is populated from a decoded
// Value, in place of the default reflection walk.
type Unmarshaler interface {
	UnmarshalNCONF(v *Value) error
}

// structInfo/fieldInfo/getStructInfo cache one struct type's "nconf"
// field tags, narrowed to the flags Marshal/Unmarshal actually honor.
type structInfo struct {
	FieldsMap  map[string]fieldInfo
	FieldsList []fieldInfo
}

type fieldInfo struct {
	Key       string
	Num       int
	OmitEmpty bool
}

var (
	structMap     = make(map[reflect.Type]*structInfo)
	fieldMapMutex sync.RWMutex
)

func getStructInfo(st reflect.Type) (*structInfo, error) {
	fieldMapMutex.RLock()
	sinfo, found := structMap[st]
	fieldMapMutex.RUnlock()
	if found {
		return sinfo, nil
	}

	n := st.NumField()
	fieldsMap := make(map[string]fieldInfo)
	fieldsList := make([]fieldInfo, 0, n)
	for i := 0; i != n; i++ {
		field := st.Field(i)
		if field.PkgPath != "" && !field.Anonymous {
			continue // unexported
		}

		tag := field.Tag.Get("nconf")
		if tag == "-" {
			continue
		}

		info := fieldInfo{Num: i}
		parts := strings.Split(tag, ",")
		for _, flag := range parts[1:] {
			if flag == "omitempty" {
				info.OmitEmpty = true
			}
		}

		if parts[0] != "" {
			info.Key = parts[0]
		} else {
			info.Key = strings.ToLower(field.Name)
		}

		if _, dup := fieldsMap[info.Key]; dup {
			failf("duplicate key %q in struct %s", info.Key, st)
		}
		fieldsMap[info.Key] = info
		fieldsList = append(fieldsList, info)
	}

	sinfo = &structInfo{FieldsMap: fieldsMap, FieldsList: fieldsList}
	fieldMapMutex.Lock()
	structMap[st] = sinfo
	fieldMapMutex.Unlock()
	return sinfo, nil
}

// isZero reports whether v holds its type's zero value, for omitempty.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !isZero(v.Field(i)) {
				return false
			}
		}
		return true
	}
	return false
}

var (
	marshalerType   = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	timeType        = reflect.TypeOf(time.Time{})
)
