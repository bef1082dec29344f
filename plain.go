package nconf

// ToPlain returns a deep copy of v with every Date leaf rewritten as its
// ISO-8601 string form, so that callers working against encoding/json or
// other consumers with no native Date concept see a tree built entirely
// from the remaining seven Kinds.
func ToPlain(v *Value) *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindDate:
		return String(v.Date.UTC().Format("2006-01-02T15:04:05.000Z"))
	case KindArray:
		out := make([]*Value, len(v.Array))
		for i, elem := range v.Array {
			out[i] = ToPlain(elem)
		}
		return NewArray(out...)
	case KindObject:
		out := NewObject()
		for _, item := range v.Object.Items() {
			out.Object.Set(item.Key, ToPlain(item.Value))
		}
		return out
	default:
		cp := *v
		return &cp
	}
}
