// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

// Package scval converts native values to tagged Soroban contract values and
// renders returned values back into readable key/value entries.
package scval

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/xdr"
)

// Type is the wire tag of a contract argument.
type Type string

const (
	TypeString  Type = "string"
	TypeSymbol  Type = "symbol"
	TypeBool    Type = "bool"
	TypeU32     Type = "u32"
	TypeI32     Type = "i32"
	TypeU64     Type = "u64"
	TypeI64     Type = "i64"
	TypeU128    Type = "u128"
	TypeI128    Type = "i128"
	TypeAddress Type = "address"
)

var (
	two64  = new(big.Int).Lsh(big.NewInt(1), 64)
	two128 = new(big.Int).Lsh(big.NewInt(1), 128)
	mask64 = new(big.Int).Sub(two64, big.NewInt(1))

	maxU128 = new(big.Int).Sub(two128, big.NewInt(1))
	maxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Arg is a single contract argument, already tagged with its wire type.
type Arg struct {
	typ   Type
	value xdr.ScVal
}

func (a Arg) Type() Type {
	return a.typ
}

func (a Arg) ScVal() xdr.ScVal {
	return a.value
}

func (a Arg) String() string {
	return fmt.Sprintf("%s(%s)", a.typ, Format(a.value))
}

func String(s string) Arg {
	str := xdr.ScString(s)
	return Arg{typ: TypeString, value: xdr.ScVal{Type: xdr.ScValTypeScvString, Str: &str}}
}

func Symbol(s string) Arg {
	sym := xdr.ScSymbol(s)
	return Arg{typ: TypeSymbol, value: xdr.ScVal{Type: xdr.ScValTypeScvSymbol, Sym: &sym}}
}

func Bool(b bool) Arg {
	return Arg{typ: TypeBool, value: xdr.ScVal{Type: xdr.ScValTypeScvBool, B: &b}}
}

func U32(v uint32) Arg {
	u := xdr.Uint32(v)
	return Arg{typ: TypeU32, value: xdr.ScVal{Type: xdr.ScValTypeScvU32, U32: &u}}
}

func I32(v int32) Arg {
	i := xdr.Int32(v)
	return Arg{typ: TypeI32, value: xdr.ScVal{Type: xdr.ScValTypeScvI32, I32: &i}}
}

func U64(v uint64) Arg {
	u := xdr.Uint64(v)
	return Arg{typ: TypeU64, value: xdr.ScVal{Type: xdr.ScValTypeScvU64, U64: &u}}
}

func I64(v int64) Arg {
	i := xdr.Int64(v)
	return Arg{typ: TypeI64, value: xdr.ScVal{Type: xdr.ScValTypeScvI64, I64: &i}}
}

// U128 fails when v is negative or does not fit in 128 bits.
func U128(v *big.Int) (Arg, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(maxU128) > 0 {
		return Arg{}, errors.Errorf("value %v out of range for u128", v)
	}
	parts := xdr.UInt128Parts{
		Hi: xdr.Uint64(new(big.Int).Rsh(v, 64).Uint64()),
		Lo: xdr.Uint64(new(big.Int).And(v, mask64).Uint64()),
	}
	return Arg{typ: TypeU128, value: xdr.ScVal{Type: xdr.ScValTypeScvU128, U128: &parts}}, nil
}

// I128 encodes v in two's complement split into a signed high and an unsigned
// low word.
func I128(v *big.Int) (Arg, error) {
	if v == nil || v.Cmp(minI128) < 0 || v.Cmp(maxI128) > 0 {
		return Arg{}, errors.Errorf("value %v out of range for i128", v)
	}
	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, two128)
	}
	parts := xdr.Int128Parts{
		Hi: xdr.Int64(int64(new(big.Int).Rsh(u, 64).Uint64())),
		Lo: xdr.Uint64(new(big.Int).And(u, mask64).Uint64()),
	}
	return Arg{typ: TypeI128, value: xdr.ScVal{Type: xdr.ScValTypeScvI128, I128: &parts}}, nil
}

// MustI128 is I128 for values known to be in range.
func MustI128(v int64) Arg {
	arg, err := I128(big.NewInt(v))
	if err != nil {
		panic(err)
	}
	return arg
}

// Address accepts an account (G...) or contract (C...) strkey.
func Address(address string) (Arg, error) {
	addr, err := ScAddress(address)
	if err != nil {
		return Arg{}, err
	}
	return Arg{typ: TypeAddress, value: xdr.ScVal{Type: xdr.ScValTypeScvAddress, Address: &addr}}, nil
}

// ScAddress decodes an account or contract strkey into its XDR form.
func ScAddress(address string) (xdr.ScAddress, error) {
	switch {
	case strkey.IsValidEd25519PublicKey(address):
		accountID, err := xdr.AddressToAccountId(address)
		if err != nil {
			return xdr.ScAddress{}, errors.Wrapf(err, "invalid account address %q", address)
		}
		return xdr.ScAddress{
			Type:      xdr.ScAddressTypeScAddressTypeAccount,
			AccountId: &accountID,
		}, nil
	default:
		raw, err := strkey.Decode(strkey.VersionByteContract, address)
		if err != nil {
			return xdr.ScAddress{}, errors.Wrapf(err, "invalid address %q", address)
		}
		var contractID xdr.ContractId
		copy(contractID[:], raw)
		return xdr.ScAddress{
			Type:       xdr.ScAddressTypeScAddressTypeContract,
			ContractId: &contractID,
		}, nil
	}
}

// Values unwraps the tagged arguments in order.
func Values(args []Arg) xdr.ScVec {
	vec := make(xdr.ScVec, 0, len(args))
	for _, arg := range args {
		vec = append(vec, arg.value)
	}
	return vec
}
