package dto

import "encoding/json"

// Optional distinguishes a field that was absent from the request body
// from one that was explicitly set to null. Absent fields never reach
// UnmarshalJSON, so Set stays false.
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
