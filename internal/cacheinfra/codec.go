package cacheinfra

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrDecode is returned when a cached payload cannot be decoded into the
// requested type.
var ErrDecode = errors.New("cacheinfra: cached value does not match requested type")

// Encode serializes a value for storage. Every backend stores bytes so a
// cached value is always handed out as a fresh copy.
func Encode(value any) ([]byte, error) {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("encode %T", value))
	}
	return data, nil
}

// Decode deserializes data into dest, which must be a non-nil pointer. The
// error matches ErrDecode with errors.Is.
func Decode(data []byte, dest any) error {
	if err := msgpack.Unmarshal(data, dest); err != nil {
		return goerrors.Wrap(fmt.Errorf("%w: %T: %v", ErrDecode, dest, err),
			goerrors.CategoryInternal, "decode cached value")
	}
	return nil
}
