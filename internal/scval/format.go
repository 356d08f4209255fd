// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package scval

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/stellar/go/strkey"
	"github.com/stellar/go/xdr"
)

// Entry is one decoded key/value pair of a returned contract value.
type Entry struct {
	Key   string
	Value string
}

// Entries flattens a returned value into ordered entries. Maps keep their
// order, vectors are keyed by index and anything else becomes a single
// "value" entry.
func Entries(v xdr.ScVal) []Entry {
	if m, ok := v.GetMap(); ok && m != nil {
		entries := make([]Entry, 0, len(*m))
		for _, e := range *m {
			entries = append(entries, Entry{Key: Format(e.Key), Value: Format(e.Val)})
		}
		return entries
	}
	if vec, ok := v.GetVec(); ok && vec != nil {
		entries := make([]Entry, 0, len(*vec))
		for i, e := range *vec {
			entries = append(entries, Entry{Key: strconv.Itoa(i), Value: Format(e)})
		}
		return entries
	}
	return []Entry{{Key: "value", Value: Format(v)}}
}

// Lookup returns the value of the first entry with the given key.
func Lookup(entries []Entry, key string) (string, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Format renders a contract value as text.
func Format(v xdr.ScVal) string {
	switch v.Type {
	case xdr.ScValTypeScvVoid:
		return "void"
	case xdr.ScValTypeScvBool:
		return strconv.FormatBool(*v.B)
	case xdr.ScValTypeScvString:
		return string(*v.Str)
	case xdr.ScValTypeScvSymbol:
		return string(*v.Sym)
	case xdr.ScValTypeScvU32:
		return strconv.FormatUint(uint64(*v.U32), 10)
	case xdr.ScValTypeScvI32:
		return strconv.FormatInt(int64(*v.I32), 10)
	case xdr.ScValTypeScvU64:
		return strconv.FormatUint(uint64(*v.U64), 10)
	case xdr.ScValTypeScvI64:
		return strconv.FormatInt(int64(*v.I64), 10)
	case xdr.ScValTypeScvTimepoint:
		return strconv.FormatUint(uint64(*v.Timepoint), 10)
	case xdr.ScValTypeScvDuration:
		return strconv.FormatUint(uint64(*v.Duration), 10)
	case xdr.ScValTypeScvU128:
		return U128Value(*v.U128).String()
	case xdr.ScValTypeScvI128:
		return I128Value(*v.I128).String()
	case xdr.ScValTypeScvBytes:
		return hex.EncodeToString(*v.Bytes)
	case xdr.ScValTypeScvAddress:
		return FormatAddress(*v.Address)
	case xdr.ScValTypeScvError:
		return FormatError(*v.Error)
	case xdr.ScValTypeScvVec:
		vec, _ := v.GetVec()
		if vec == nil {
			return "[]"
		}
		parts := make([]string, 0, len(*vec))
		for _, e := range *vec {
			parts = append(parts, Format(e))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case xdr.ScValTypeScvMap:
		m, _ := v.GetMap()
		if m == nil {
			return "{}"
		}
		parts := make([]string, 0, len(*m))
		for _, e := range *m {
			parts = append(parts, Format(e.Key)+": "+Format(e.Val))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return v.Type.String()
	}
}

func U128Value(p xdr.UInt128Parts) *big.Int {
	hi := new(big.Int).SetUint64(uint64(p.Hi))
	return hi.Lsh(hi, 64).Or(hi, new(big.Int).SetUint64(uint64(p.Lo)))
}

func I128Value(p xdr.Int128Parts) *big.Int {
	hi := big.NewInt(int64(p.Hi))
	return hi.Lsh(hi, 64).Add(hi, new(big.Int).SetUint64(uint64(p.Lo)))
}

func FormatAddress(a xdr.ScAddress) string {
	switch a.Type {
	case xdr.ScAddressTypeScAddressTypeAccount:
		if a.AccountId != nil {
			return a.AccountId.Address()
		}
	case xdr.ScAddressTypeScAddressTypeContract:
		if a.ContractId != nil {
			if s, err := strkey.Encode(strkey.VersionByteContract, a.ContractId[:]); err == nil {
				return s
			}
		}
	}
	return a.Type.String()
}

// FormatError renders errors the way the host prints them, e.g.
// "Error(Contract, #9)".
func FormatError(e xdr.ScError) string {
	kind := strings.TrimPrefix(e.Type.String(), "ScErrorTypeSce")
	if e.Type == xdr.ScErrorTypeSceContract && e.ContractCode != nil {
		return fmt.Sprintf("Error(%s, #%d)", kind, uint32(*e.ContractCode))
	}
	if e.Code != nil {
		return fmt.Sprintf("Error(%s, %s)", kind, strings.TrimPrefix(e.Code.String(), "ScErrorCodeScec"))
	}
	return fmt.Sprintf("Error(%s)", kind)
}
