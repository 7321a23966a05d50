package model

import "encoding/json"

// Optional distinguishes the three wire states of a patch field: key absent
// (leave the stored value alone), key present with null (clear it), and key
// present with a value (overwrite). encoding/json only invokes UnmarshalJSON
// for keys present in the document, which is what makes Set reliable.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON implements json.Unmarshaler.
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

// Some returns an Optional explicitly carrying v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns an Optional explicitly carrying null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}
