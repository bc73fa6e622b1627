package rlp

import (
	"fmt"
	"reflect"
)

// Unmarshal stores the content of v in the value pointed to by val. The
// target type decides how byte strings are read: as integers, text or raw
// bytes. Lists fill slices, arrays and structs (exported fields in order).
func Unmarshal(v Value, val interface{}) error {
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("rlp: decode target must be a non-nil pointer, got %T", val)
	}
	return assign(v, rv.Elem())
}

func assign(v Value, dst reflect.Value) error {
	switch dst.Type() {
	case valueType:
		dst.Set(reflect.ValueOf(v))
		return nil
	case rawType:
		dst.SetBytes(EncodeValue(v))
		return nil
	case bigIntType:
		i, err := v.BigInt()
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(*i))
		return nil
	case uint256Type:
		i, err := v.Uint256()
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(*i))
		return nil
	}

	switch dst.Kind() {
	case reflect.Ptr:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assign(v, dst.Elem())

	case reflect.Interface:
		if dst.NumMethod() != 0 {
			return fmt.Errorf("rlp: cannot decode into non-empty interface %s", dst.Type())
		}
		dst.Set(reflect.ValueOf(v))
		return nil

	case reflect.Bool:
		u, err := v.Uint64()
		if err != nil {
			return err
		}
		if u > 1 {
			return fmt.Errorf("%w: invalid boolean %d", ErrUint64Range, u)
		}
		dst.SetBool(u == 1)
		return nil

	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Uintptr:
		u, err := v.Uint64()
		if err != nil {
			return err
		}
		if dst.OverflowUint(u) {
			return fmt.Errorf("%w: %d does not fit %s", ErrUint64Range, u, dst.Type())
		}
		dst.SetUint(u)
		return nil

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		u, err := v.Uint64()
		if err != nil {
			return err
		}
		if u > 1<<63-1 || dst.OverflowInt(int64(u)) {
			return fmt.Errorf("%w: %d does not fit %s", ErrUint64Range, u, dst.Type())
		}
		dst.SetInt(int64(u))
		return nil

	case reflect.String:
		s, err := v.Text()
		if err != nil {
			return err
		}
		dst.SetString(s)
		return nil

	case reflect.Slice:
		if dst.Type().Elem().Kind() == reflect.Uint8 {
			if v.IsList() {
				return ErrExpectedString
			}
			b := reflect.MakeSlice(dst.Type(), v.Len(), v.Len())
			for i, c := range v.Bytes() {
				b.Index(i).SetUint(uint64(c))
			}
			dst.Set(b)
			return nil
		}
		if !v.IsList() {
			return ErrExpectedList
		}
		items := v.Items()
		s := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, item := range items {
			if err := assign(item, s.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(s)
		return nil

	case reflect.Array:
		if dst.Type().Elem().Kind() == reflect.Uint8 {
			if v.IsList() {
				return ErrExpectedString
			}
			if v.Len() != dst.Len() {
				return fmt.Errorf("%w: %d bytes for %s", ErrExpectedString, v.Len(), dst.Type())
			}
			for i, c := range v.Bytes() {
				dst.Index(i).SetUint(uint64(c))
			}
			return nil
		}
		if !v.IsList() {
			return ErrExpectedList
		}
		items := v.Items()
		if len(items) != dst.Len() {
			return fmt.Errorf("%w: %d items for %s", ErrExpectedList, len(items), dst.Type())
		}
		for i, item := range items {
			if err := assign(item, dst.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Struct:
		return assignStruct(v, dst)

	default:
		return fmt.Errorf("%w: cannot decode into %s", ErrUnsupportedType, dst.Type())
	}
}

func assignStruct(v Value, dst reflect.Value) error {
	if !v.IsList() {
		return ErrExpectedList
	}
	items := v.Items()
	t := dst.Type()
	n := 0
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("rlp") == "-" {
			continue
		}
		if n >= len(items) {
			return fmt.Errorf("%w: too few elements for %s", ErrEOL, t)
		}
		if err := assign(items[n], dst.Field(i)); err != nil {
			return fmt.Errorf("%s.%s: %w", t.Name(), f.Name, err)
		}
		n++
	}
	if n != len(items) {
		return fmt.Errorf("%w: %d extra elements for %s", ErrTrailingData, len(items)-n, t)
	}
	return nil
}

