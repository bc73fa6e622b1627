package rlp

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"testing"
)

func TestEncodeEmptyString(t *testing.T) {
	got, err := EncodeToBytes("")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x80}
	if !bytes.Equal(got, want) {
		t.Fatalf("empty string: got %x, want %x", got, want)
	}
}

func TestEncodeDog(t *testing.T) {
	got, err := EncodeToBytes("dog")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x83, 0x64, 0x6f, 0x67}
	if !bytes.Equal(got, want) {
		t.Fatalf("\"dog\": got %x, want %x", got, want)
	}
}

func TestEncodeLongString(t *testing.T) {
	s := "Lorem ipsum dolor sit amet, consectetur adipisicing elit"
	got, err := EncodeToBytes(s)
	if err != nil {
		t.Fatal(err)
	}
	// len(s) = 56, which is >55, so: [0xb8, 0x38, ...data]
	if got[0] != 0xb8 {
		t.Fatalf("long string prefix: got %x, want 0xb8", got[0])
	}
	if got[1] != 0x38 {
		t.Fatalf("long string length: got %x, want 0x38", got[1])
	}
	if !bytes.Equal(got[2:], []byte(s)) {
		t.Fatal("long string data mismatch")
	}
}

func TestEncodeUint(t *testing.T) {
	tests := []struct {
		name string
		val  interface{}
		want []byte
	}{
		{"uint(0)", uint64(0), []byte{0x80}},
		{"uint(15)", uint64(15), []byte{0x0f}},
		{"uint(127)", uint64(127), []byte{0x7f}},
		{"uint(128)", uint64(128), []byte{0x81, 0x80}},
		{"uint(1024)", uint64(1024), []byte{0x82, 0x04, 0x00}},
		{"uint(256)", uint64(256), []byte{0x82, 0x01, 0x00}},
		{"uint(1)", uint64(1), []byte{0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeToBytes(tt.val)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("%s: got %x, want %x", tt.name, got, tt.want)
			}
		})
	}
}

func TestEncodeBool(t *testing.T) {
	tests := []struct {
		name string
		val  bool
		want []byte
	}{
		{"false", false, []byte{0x80}},
		{"true", true, []byte{0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeToBytes(tt.val)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("%s: got %x, want %x", tt.name, got, tt.want)
			}
		})
	}
}

func TestEncodeEmptyList(t *testing.T) {
	got, err := EncodeToBytes([]interface{}{})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xc0}
	if !bytes.Equal(got, want) {
		t.Fatalf("empty list: got %x, want %x", got, want)
	}
}

func TestEncodeCatDog(t *testing.T) {
	got, err := EncodeToBytes([]string{"cat", "dog"})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xc8, 0x83, 0x63, 0x61, 0x74, 0x83, 0x64, 0x6f, 0x67}
	if !bytes.Equal(got, want) {
		t.Fatalf("[\"cat\",\"dog\"]: got %x, want %x", got, want)
	}
}

func TestEncodeBytes(t *testing.T) {
	tests := []struct {
		name string
		val  []byte
		want []byte
	}{
		{"empty bytes", []byte{}, []byte{0x80}},
		{"single byte 0x00", []byte{0x00}, []byte{0x00}},
		{"single byte 0x7f", []byte{0x7f}, []byte{0x7f}},
		{"single byte 0x80", []byte{0x80}, []byte{0x81, 0x80}},
		{"three bytes", []byte{0x01, 0x02, 0x03}, []byte{0x83, 0x01, 0x02, 0x03}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeToBytes(tt.val)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("%s: got %x, want %x", tt.name, got, tt.want)
			}
		})
	}
}

func TestEncodeBigInt(t *testing.T) {
	tests := []struct {
		name string
		val  *big.Int
		want []byte
	}{
		{"big.Int(0)", big.NewInt(0), []byte{0x80}},
		{"big.Int(1)", big.NewInt(1), []byte{0x01}},
		{"big.Int(127)", big.NewInt(127), []byte{0x7f}},
		{"big.Int(128)", big.NewInt(128), []byte{0x81, 0x80}},
		{"big.Int(256)", big.NewInt(256), []byte{0x82, 0x01, 0x00}},
		{"big.Int(1024)", big.NewInt(1024), []byte{0x82, 0x04, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeToBytes(tt.val)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("%s: got %x, want %x", tt.name, got, tt.want)
			}
		})
	}
}

func TestEncodeStruct(t *testing.T) {
	type TestStruct struct {
		Name string
		Age  uint64
	}
	s := TestStruct{Name: "cat", Age: 5}
	got, err := EncodeToBytes(s)
	if err != nil {
		t.Fatal(err)
	}
	// List: [string "cat" = 83 63 61 74, uint 5 = 05]
	// payload = 83 63 61 74 05 (5 bytes)
	// list prefix = c0 + 5 = c5
	want := []byte{0xc5, 0x83, 0x63, 0x61, 0x74, 0x05}
	if !bytes.Equal(got, want) {
		t.Fatalf("struct: got %x, want %x", got, want)
	}
}

func TestEncodeNestedList(t *testing.T) {
	// Encode a [][]string
	val := [][]string{{"cat"}, {"dog"}}
	got, err := EncodeToBytes(val)
	if err != nil {
		t.Fatal(err)
	}
	// inner1: [0xc4, 0x83, 0x63, 0x61, 0x74] (list of "cat")
	// inner2: [0xc4, 0x83, 0x64, 0x6f, 0x67] (list of "dog")
	// outer payload = 10 bytes
	// outer prefix = 0xc0 + 10 = 0xca
	want := []byte{0xca, 0xc4, 0x83, 0x63, 0x61, 0x74, 0xc4, 0x83, 0x64, 0x6f, 0x67}
	if !bytes.Equal(got, want) {
		t.Fatalf("nested list: got %x, want %x", got, want)
	}
}

func TestEncodeToWriter(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, "dog")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x83, 0x64, 0x6f, 0x67}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("Encode to writer: got %x, want %x", buf.Bytes(), want)
	}
}

func TestEncodeSingleByte(t *testing.T) {
	// A single byte in [0x00, 0x7f] is its own RLP encoding.
	got, err := EncodeToBytes([]byte{0x42})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x42}
	if !bytes.Equal(got, want) {
		t.Fatalf("single byte: got %x, want %x", got, want)
	}
}

func TestEncodeValueBoundaries(t *testing.T) {
	tests := []struct {
		size int
		head []byte
	}{
		{0, []byte{0x80}},
		{2, []byte{0x82}},
		{55, []byte{0xb7}},
		{56, []byte{0xb8, 0x38}},
		{255, []byte{0xb8, 0xff}},
		{256, []byte{0xb9, 0x01, 0x00}},
		{65535, []byte{0xb9, 0xff, 0xff}},
		{65536, []byte{0xba, 0x01, 0x00, 0x00}},
	}
	for _, tt := range tests {
		data := bytes.Repeat([]byte{0x61}, tt.size)
		got := EncodeValue(Bytes(data))
		if !bytes.HasPrefix(got, tt.head) {
			t.Fatalf("size %d: prefix %x, want %x", tt.size, got[:len(tt.head)], tt.head)
		}
		if len(got) != len(tt.head)+tt.size {
			t.Fatalf("size %d: encoded length %d, want %d", tt.size, len(got), len(tt.head)+tt.size)
		}
		if !bytes.Equal(got[len(tt.head):], data) {
			t.Fatalf("size %d: payload mismatch", tt.size)
		}
	}
}

func TestEncodeListBoundaries(t *testing.T) {
	tests := []struct {
		payload int // bytes of list payload
		head    []byte
	}{
		{0, []byte{0xc0}},
		{55, []byte{0xf7}},
		{56, []byte{0xf8, 0x38}},
		{256, []byte{0xf9, 0x01, 0x00}},
		{65536, []byte{0xfa, 0x01, 0x00, 0x00}},
	}
	for _, tt := range tests {
		// One single-byte element per payload byte.
		items := make([]Value, tt.payload)
		for i := range items {
			items[i] = Bytes([]byte{0x01})
		}
		got := EncodeValue(ListOf(items...))
		if !bytes.HasPrefix(got, tt.head) {
			t.Fatalf("payload %d: prefix %x, want %x", tt.payload, got[:len(tt.head)], tt.head)
		}
		if len(got) != len(tt.head)+tt.payload {
			t.Fatalf("payload %d: encoded length %d, want %d", tt.payload, len(got), len(tt.head)+tt.payload)
		}
	}
}

func TestEncodeValueIdentities(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want []byte
	}{
		{"empty string", Bytes(nil), []byte{0x80}},
		{"zero value", Value{}, []byte{0x80}},
		{"empty list", ListOf(), []byte{0xc0}},
		{"byte 0x41", Bytes([]byte{0x41}), []byte{0x41}},
		{"byte 0x00", Bytes([]byte{0x00}), []byte{0x00}},
		{"byte 0x80", Bytes([]byte{0x80}), []byte{0x81, 0x80}},
		{"uint 0", Uint(0), []byte{0x80}},
		{"uint 1024", Uint(1024), []byte{0x82, 0x04, 0x00}},
		{"text dog", Text("dog"), []byte{0x83, 0x64, 0x6f, 0x67}},
		{"list of empties", ListOf(ListOf(), Bytes(nil)), []byte{0xc2, 0xc0, 0x80}},
		{
			"set theoretic three",
			ListOf(ListOf(), ListOf(ListOf()), ListOf(ListOf(), ListOf(ListOf()))),
			[]byte{0xc7, 0xc0, 0xc1, 0xc0, 0xc3, 0xc0, 0xc1, 0xc0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeValue(tt.val)
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("got %x, want %x", got, tt.want)
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	v := ListOf(Text("cat"), ListOf(Uint(1<<40), Bytes(bytes.Repeat([]byte{0xee}, 300))), ListOf())
	first := EncodeValue(v)
	for i := 0; i < 10; i++ {
		if got := EncodeValue(v); !bytes.Equal(got, first) {
			t.Fatalf("run %d: got %x, want %x", i, got, first)
		}
	}
}

func TestAppendValue(t *testing.T) {
	dst := []byte{0xde, 0xad}
	got := AppendValue(dst, ListOf(Text("cat"), Text("dog")))
	want := []byte{0xde, 0xad, 0xc8, 0x83, 0x63, 0x61, 0x74, 0x83, 0x64, 0x6f, 0x67}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	tests := []struct {
		name string
		val  interface{}
	}{
		{"negative int", int64(-1)},
		{"negative big.Int", big.NewInt(-5)},
		{"float", 1.5},
		{"map", map[string]int{"a": 1}},
		{"negative in list", []interface{}{uint64(1), -3}},
		{"channel", make(chan int)},
		{"nested map", struct{ M map[int]int }{M: map[int]int{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeToBytes(tt.val)
			if !errors.Is(err, ErrUnsupportedType) {
				t.Fatalf("err = %v, want ErrUnsupportedType", err)
			}
			if got != nil {
				t.Fatalf("partial output %x", got)
			}
		})
	}
}

func TestEncodeSignedNonNegative(t *testing.T) {
	got, err := EncodeToBytes([]int{0, 1, 1024, math.MaxInt32})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xca, 0x80, 0x01, 0x82, 0x04, 0x00, 0x84, 0x7f, 0xff, 0xff, 0xff}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func nestedLists(depth int) Value {
	v := ListOf()
	for i := 1; i < depth; i++ {
		v = ListOf(v)
	}
	return v
}

func TestEncodeDeepNesting(t *testing.T) {
	const depth = 100000
	enc := EncodeValue(nestedLists(depth))
	if enc[len(enc)-1] != 0xc0 {
		t.Fatalf("innermost list: got %x, want c0", enc[len(enc)-1])
	}
	dec, err := DecodeExact(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !dec.Equal(nestedLists(depth)) {
		t.Fatal("deep round-trip mismatch")
	}
}

func TestEncoderMaxDepth(t *testing.T) {
	v := nestedLists(3)
	if _, err := NewEncoder(Limits{MaxDepth: 3}).Encode(v); err != nil {
		t.Fatalf("depth 3 within limit: %v", err)
	}
	_, err := NewEncoder(Limits{MaxDepth: 2}).Encode(v)
	if !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("err = %v, want ErrDepthExceeded", err)
	}
}
