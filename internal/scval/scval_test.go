// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package scval

import (
	"math/big"
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/xdr"
	"github.com/stretchr/testify/require"
)

func TestI128RoundTripsThroughParts(t *testing.T) {
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1000),
		big.NewInt(-1),
		big.NewInt(-1000),
		new(big.Int).Set(maxI128),
		new(big.Int).Set(minI128),
		new(big.Int).Lsh(big.NewInt(1), 64),
	}
	for _, v := range values {
		arg, err := I128(v)
		require.NoError(t, err)
		require.Equal(t, TypeI128, arg.Type())
		require.Equal(t, xdr.ScValTypeScvI128, arg.ScVal().Type)
		require.Zero(t, v.Cmp(I128Value(*arg.ScVal().I128)), "value %s", v)
	}
}

func TestI128RejectsOutOfRange(t *testing.T) {
	_, err := I128(new(big.Int).Add(maxI128, big.NewInt(1)))
	require.Error(t, err)
	_, err = I128(new(big.Int).Sub(minI128, big.NewInt(1)))
	require.Error(t, err)
	_, err = I128(nil)
	require.Error(t, err)
}

func TestU128(t *testing.T) {
	v := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(7), 64), big.NewInt(42))
	arg, err := U128(v)
	require.NoError(t, err)
	require.Equal(t, uint64(7), uint64(arg.ScVal().U128.Hi))
	require.Equal(t, uint64(42), uint64(arg.ScVal().U128.Lo))
	require.Equal(t, v.String(), Format(arg.ScVal()))

	_, err = U128(big.NewInt(-1))
	require.Error(t, err)
}

func TestAddressAccountAndContract(t *testing.T) {
	account := keypair.MustRandom().Address()
	arg, err := Address(account)
	require.NoError(t, err)
	require.Equal(t, xdr.ScAddressTypeScAddressTypeAccount, arg.ScVal().Address.Type)
	require.Equal(t, account, Format(arg.ScVal()))

	contract, err := strkey.Encode(strkey.VersionByteContract, make([]byte, 32))
	require.NoError(t, err)
	arg, err = Address(contract)
	require.NoError(t, err)
	require.Equal(t, xdr.ScAddressTypeScAddressTypeContract, arg.ScVal().Address.Type)
	require.Equal(t, contract, Format(arg.ScVal()))

	_, err = Address("not-an-address")
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	cases := map[string]struct {
		typ  Type
		text string
	}{
		"string:Product 1":          {TypeString, "Product 1"},
		"string:a:b":                {TypeString, "a:b"},
		"symbol:create":             {TypeSymbol, "create"},
		"bool:true":                 {TypeBool, "true"},
		"u32:1":                     {TypeU32, "1"},
		"i32:-5":                    {TypeI32, "-5"},
		"U64:1700000000":            {TypeU64, "1700000000"},
		"i64:-9":                    {TypeI64, "-9"},
		"u128:18446744073709551617": {TypeU128, "18446744073709551617"},
		"i128:-1000":                {TypeI128, "-1000"},
	}
	for raw, want := range cases {
		arg, err := Parse(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want.typ, arg.Type(), raw)
		require.Equal(t, want.text, Format(arg.ScVal()), raw)
	}
}

func TestParseErrors(t *testing.T) {
	for _, raw := range []string{"1000", "u32:-1", "u32:4294967296", "float:1.5", "i128:abc", "bool:maybe", "address:G123"} {
		_, err := Parse(raw)
		require.Error(t, err, raw)
	}

	_, err := ParseAll([]string{"u32:1", "nope"})
	require.Error(t, err)
}

func TestEntriesFromMap(t *testing.T) {
	title := String("Product 1").ScVal()
	price := MustI128(1000).ScVal()
	m := &xdr.ScMap{
		{Key: Symbol("product_title").ScVal(), Val: title},
		{Key: Symbol("product_price").ScVal(), Val: price},
	}
	v := xdr.ScVal{Type: xdr.ScValTypeScvMap, Map: &m}

	entries := Entries(v)
	require.Equal(t, []Entry{
		{Key: "product_title", Value: "Product 1"},
		{Key: "product_price", Value: "1000"},
	}, entries)

	got, ok := Lookup(entries, "product_title")
	require.True(t, ok)
	require.Equal(t, "Product 1", got)
	_, ok = Lookup(entries, "missing")
	require.False(t, ok)

	require.Equal(t, "{product_title: Product 1, product_price: 1000}", Format(v))
}

func TestEntriesFromVecAndScalar(t *testing.T) {
	vec := &xdr.ScVec{MustI128(60).ScVal(), MustI128(10).ScVal()}
	v := xdr.ScVal{Type: xdr.ScValTypeScvVec, Vec: &vec}
	require.Equal(t, []Entry{{Key: "0", Value: "60"}, {Key: "1", Value: "10"}}, Entries(v))

	require.Equal(t, []Entry{{Key: "value", Value: "7"}}, Entries(U32(7).ScVal()))
	require.Equal(t, []Entry{{Key: "value", Value: "void"}}, Entries(xdr.ScVal{Type: xdr.ScValTypeScvVoid}))
}

func TestFormatContractError(t *testing.T) {
	code := xdr.Uint32(9)
	e := xdr.ScError{Type: xdr.ScErrorTypeSceContract, ContractCode: &code}
	require.Equal(t, "Error(Contract, #9)", FormatError(e))
}
