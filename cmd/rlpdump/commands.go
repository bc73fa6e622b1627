package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/eth2030/rlpcodec/rlp"
)

func (a *app) decodeCmd() *cobra.Command {
	var all, asJSON bool
	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode hex-encoded RLP and print the value tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseHex(args[0])
			if err != nil {
				return err
			}
			dec := rlp.NewDecoder(a.cfg.Limits)

			var values []rlp.Value
			if all {
				values, err = dec.DecodeAll(data)
			} else {
				var v rlp.Value
				v, err = dec.DecodeExact(data)
				values = []rlp.Value{v}
			}
			if err != nil {
				a.logger.Warn("decode failed", "size", len(data), "err", err)
				return fmt.Errorf("decode: %w", err)
			}
			a.logger.Debug("decoded input", "size", len(data), "values", len(values))

			for _, v := range values {
				if err := a.printValue(v, asJSON); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "decode a concatenation of values")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print values as JSON accepted by the encode command")
	return cmd
}

func (a *app) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <json>",
		Short: "Encode a JSON value as RLP and print it as hex",
		Long: `Encode a JSON document as RLP. Arrays become lists, strings starting
with 0x are hex byte strings, other strings are UTF-8 text, non-negative
integers are minimal big-endian byte strings, booleans are 0 or 1 and null is
the empty list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseJSON(args[0])
			if err != nil {
				return err
			}
			enc, err := rlp.NewEncoder(a.cfg.Limits).Encode(v)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			a.logger.Debug("encoded value", "size", len(enc))
			_, err = fmt.Fprintln(a.stdout, hexutil.Encode(enc))
			return err
		},
	}
}

func (a *app) hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <hex>",
		Short: "Validate RLP input and print the Keccak-256 of it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseHex(args[0])
			if err != nil {
				return err
			}
			if _, err := rlp.NewDecoder(a.cfg.Limits).DecodeExact(data); err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			_, err = fmt.Fprintln(a.stdout, rlp.HashBytes(data).Hex())
			return err
		},
	}
}

func (a *app) printValue(v rlp.Value, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(a.stdout, v.String())
		return err
	}
	out, err := json.Marshal(toJSON(v))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(out))
	return err
}

// parseHex accepts hex with or without the 0x prefix.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return b, nil
}

// parseJSON reads exactly one JSON document and converts it to a value tree.
func parseJSON(s string) (rlp.Value, error) {
	d := json.NewDecoder(strings.NewReader(s))
	d.UseNumber()
	var doc interface{}
	if err := d.Decode(&doc); err != nil {
		return rlp.Value{}, fmt.Errorf("invalid JSON input: %w", err)
	}
	if _, err := d.Token(); err != io.EOF {
		return rlp.Value{}, fmt.Errorf("invalid JSON input: trailing data")
	}
	return fromJSON(doc)
}

func fromJSON(doc interface{}) (rlp.Value, error) {
	switch x := doc.(type) {
	case nil:
		return rlp.ListOf(), nil
	case bool:
		if x {
			return rlp.Uint(1), nil
		}
		return rlp.Uint(0), nil
	case string:
		if strings.HasPrefix(x, "0x") {
			b, err := hexutil.Decode(x)
			if err != nil {
				return rlp.Value{}, fmt.Errorf("invalid hex string %q: %w", x, err)
			}
			return rlp.Bytes(b), nil
		}
		return rlp.Text(x), nil
	case json.Number:
		n, ok := new(big.Int).SetString(x.String(), 10)
		if !ok {
			return rlp.Value{}, fmt.Errorf("%w: number %s is not an integer", rlp.ErrUnsupportedType, x)
		}
		return rlp.BigInt(n)
	case []interface{}:
		items := make([]rlp.Value, len(x))
		for i, e := range x {
			v, err := fromJSON(e)
			if err != nil {
				return rlp.Value{}, err
			}
			items[i] = v
		}
		return rlp.ListOf(items...), nil
	default:
		return rlp.Value{}, fmt.Errorf("%w: JSON %T", rlp.ErrUnsupportedType, doc)
	}
}

// toJSON renders a value tree in the form fromJSON reads back: lists as
// arrays and every string as 0x-prefixed hex.
func toJSON(v rlp.Value) interface{} {
	if !v.IsList() {
		return hexutil.Encode(v.Bytes())
	}
	items := make([]interface{}, v.Len())
	for i, it := range v.Items() {
		items[i] = toJSON(it)
	}
	return items
}

