package rlp

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Uint returns the string value holding u in minimal big-endian form.
// Zero is the empty string.
func Uint(u uint64) Value {
	return Value{str: minimalBytes(u)}
}

// BigInt returns the string value holding i in minimal big-endian form.
// Negative integers have no representation and fail with ErrUnsupportedType.
func BigInt(i *big.Int) (Value, error) {
	if i == nil {
		return Value{str: []byte{}}, nil
	}
	if i.Sign() < 0 {
		return Value{}, encodeErr(ErrUnsupportedType, "negative integer "+i.String())
	}
	return Value{str: i.Bytes()}, nil
}

// Uint256 returns the string value holding i in minimal big-endian form.
func Uint256(i *uint256.Int) Value {
	if i == nil || i.IsZero() {
		return Value{str: []byte{}}
	}
	return Value{str: i.Bytes()}
}

// Uint64 interprets a string value as an unsigned integer. The content must
// be canonical: no leading zero byte, and zero must be the empty string.
func (v Value) Uint64() (uint64, error) {
	b, err := v.intBytes()
	if err != nil {
		return 0, err
	}
	if len(b) > 8 {
		return 0, ErrUint64Range
	}
	var x uint64
	for _, c := range b {
		x = x<<8 | uint64(c)
	}
	return x, nil
}

// BigInt interprets a string value as an arbitrary-size unsigned integer.
func (v Value) BigInt() (*big.Int, error) {
	b, err := v.intBytes()
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// Uint256 interprets a string value as a 256-bit unsigned integer.
func (v Value) Uint256() (*uint256.Int, error) {
	b, err := v.intBytes()
	if err != nil {
		return nil, err
	}
	if len(b) > 32 {
		return nil, ErrUint64Range
	}
	return new(uint256.Int).SetBytes(b), nil
}

func (v Value) intBytes() ([]byte, error) {
	if v.list {
		return nil, ErrExpectedString
	}
	if len(v.str) > 0 && v.str[0] == 0 {
		return nil, ErrCanonInt
	}
	return v.str, nil
}
