// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package scval

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse reads a "type:value" pair such as "u64:1700000000" or
// "string:Product 1". Everything after the first colon is the value.
func Parse(raw string) (Arg, error) {
	tag, value, ok := strings.Cut(raw, ":")
	if !ok {
		return Arg{}, errors.Errorf("argument %q is not of the form type:value", raw)
	}

	switch Type(strings.ToLower(strings.TrimSpace(tag))) {
	case TypeString:
		return String(value), nil
	case TypeSymbol:
		return Symbol(value), nil
	case TypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return Arg{}, errors.Wrapf(err, "argument %q", raw)
		}
		return Bool(b), nil
	case TypeU32:
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return Arg{}, errors.Wrapf(err, "argument %q", raw)
		}
		return U32(uint32(v)), nil
	case TypeI32:
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return Arg{}, errors.Wrapf(err, "argument %q", raw)
		}
		return I32(int32(v)), nil
	case TypeU64:
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return Arg{}, errors.Wrapf(err, "argument %q", raw)
		}
		return U64(v), nil
	case TypeI64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Arg{}, errors.Wrapf(err, "argument %q", raw)
		}
		return I64(v), nil
	case TypeU128:
		v, ok := new(big.Int).SetString(value, 10)
		if !ok {
			return Arg{}, errors.Errorf("argument %q: not an integer", raw)
		}
		return U128(v)
	case TypeI128:
		v, ok := new(big.Int).SetString(value, 10)
		if !ok {
			return Arg{}, errors.Errorf("argument %q: not an integer", raw)
		}
		return I128(v)
	case TypeAddress:
		return Address(strings.TrimSpace(value))
	default:
		return Arg{}, errors.Errorf("argument %q: unknown type %q", raw, tag)
	}
}

// ParseAll parses every raw argument, stopping at the first error.
func ParseAll(raw []string) ([]Arg, error) {
	args := make([]Arg, 0, len(raw))
	for _, r := range raw {
		arg, err := Parse(r)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}
