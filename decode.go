package bough

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeValue decodes an interpolated value, typically a Datum or a frame's
// prop bag, into out, which must be a pointer. Fields match by name, case
// insensitively or through `bough` struct tags, and numbers convert between
// kinds, so tweened float64s land in int fields.
func DecodeValue(v any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "bough",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	return nil
}
