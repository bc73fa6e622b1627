package rlp

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
)

var (
	valueType   = reflect.TypeOf(Value{})
	rawType     = reflect.TypeOf(RawValue{})
	bigIntType  = reflect.TypeOf(big.Int{})
	uint256Type = reflect.TypeOf(uint256.Int{})
)

// ValueOf converts a Go value into a Value tree.
//
// Supported: Value, RawValue (validated, then spliced in), bool (false is 0,
// true is 1), unsigned integers, non-negative signed integers, big.Int,
// uint256.Int, string, []byte, [N]byte, slices and arrays of supported types,
// structs (exported fields in declaration order, `rlp:"-"` skips a field),
// and pointers or interfaces holding any of these. A nil
// pointer becomes the empty value of its element type; an untyped nil becomes
// the empty list. Anything else, including negative integers, floats and
// maps, fails with ErrUnsupportedType.
func ValueOf(val interface{}) (Value, error) {
	if val == nil {
		return ListOf(), nil
	}
	return valueOf(reflect.ValueOf(val))
}

func valueOf(v reflect.Value) (Value, error) {
	// Handle interface values by unwrapping.
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			if v.Kind() == reflect.Interface {
				return ListOf(), nil
			}
			return emptyOf(v.Type().Elem()), nil
		}
		v = v.Elem()
	}

	switch v.Type() {
	case valueType:
		return v.Interface().(Value), nil
	case rawType:
		raw, err := DecodeExact(v.Bytes())
		if err != nil {
			return Value{}, fmt.Errorf("raw value: %w", err)
		}
		return raw, nil
	case bigIntType:
		i := v.Interface().(big.Int)
		return BigInt(&i)
	case uint256Type:
		i := v.Interface().(uint256.Int)
		return Uint256(&i), nil
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return Uint(1), nil
		}
		return Uint(0), nil

	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return Uint(v.Uint()), nil

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		i := v.Int()
		if i < 0 {
			return Value{}, encodeErr(ErrUnsupportedType, fmt.Sprintf("negative integer %d", i))
		}
		return Uint(uint64(i)), nil

	case reflect.String:
		return Text(v.String()), nil

	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			// []byte is encoded as an RLP string.
			return Bytes(v.Bytes()), nil
		}
		return listOf(v)

	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			// [N]byte is encoded as an RLP string.
			b := make([]byte, v.Len())
			for i := range b {
				b[i] = byte(v.Index(i).Uint())
			}
			return Bytes(b), nil
		}
		return listOf(v)

	case reflect.Struct:
		return structOf(v)

	default:
		return Value{}, encodeErr(ErrUnsupportedType, "Go type "+v.Type().String())
	}
}

// emptyOf returns the value a nil pointer to t stands for.
func emptyOf(t reflect.Type) Value {
	switch t.Kind() {
	case reflect.Struct:
		if t != bigIntType && t != uint256Type && t != valueType {
			return ListOf()
		}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() != reflect.Uint8 {
			return ListOf()
		}
	}
	return Bytes([]byte{})
}

func listOf(v reflect.Value) (Value, error) {
	items := make([]Value, v.Len())
	for i := range items {
		item, err := valueOf(v.Index(i))
		if err != nil {
			return Value{}, err
		}
		items[i] = item
	}
	return ListOf(items...), nil
}

func structOf(v reflect.Value) (Value, error) {
	t := v.Type()
	items := make([]Value, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("rlp") == "-" {
			continue
		}
		item, err := valueOf(v.Field(i))
		if err != nil {
			return Value{}, fmt.Errorf("%s.%s: %w", t.Name(), f.Name, err)
		}
		items = append(items, item)
	}
	return ListOf(items...), nil
}
