package schemas

import "encoding/json"

// Optional distinguishes a JSON field that was left out from one sent as null.
//
//	{}               -> Set=false
//	{"year": null}   -> Set=true, Value=nil
//	{"year": 1869}   -> Set=true, Value=&1869
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// IsNull reports whether the field was explicitly sent as null.
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Value == nil
}
