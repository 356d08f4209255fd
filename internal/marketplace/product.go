// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package marketplace

import (
	"math/big"
	"time"

	"github.com/dotandev/soroban-invoker/internal/scval"
	"github.com/pkg/errors"
	"github.com/stellar/go/xdr"
)

// Product as stored by the contract. A product id of 0 means "not found":
// get_product returns an empty product instead of failing.
type Product struct {
	ID          uint32
	Title       string
	Description string
	Category    string
	Expiry      time.Time
	Image       string
	Price       *big.Int
	Remaining   *big.Int
}

func (p *Product) Exists() bool {
	return p.ID != 0
}

// Split is how a discount payment was divided, in stroops of the token.
type Split struct {
	Reserve   *big.Int
	Launchpad *big.Int
	Dev       *big.Int
}

type fields map[string]xdr.ScVal

func mapFields(v xdr.ScVal) (fields, error) {
	m, ok := v.GetMap()
	if !ok || m == nil {
		return nil, errors.Errorf("expected a map, got %s", v.Type)
	}
	out := make(fields, len(*m))
	for _, entry := range *m {
		sym, ok := entry.Key.GetSym()
		if !ok {
			return nil, errors.Errorf("unexpected %s map key", entry.Key.Type)
		}
		out[string(sym)] = entry.Val
	}
	return out, nil
}

func (f fields) str(key string) (string, error) {
	v, ok := f[key]
	if !ok {
		return "", errors.Errorf("missing field %q", key)
	}
	s, ok := v.GetStr()
	if !ok {
		return "", errors.Errorf("field %q is %s, not a string", key, v.Type)
	}
	return string(s), nil
}

func (f fields) i128(key string) (*big.Int, error) {
	v, ok := f[key]
	if !ok {
		return nil, errors.Errorf("missing field %q", key)
	}
	parts, ok := v.GetI128()
	if !ok {
		return nil, errors.Errorf("field %q is %s, not an i128", key, v.Type)
	}
	return scval.I128Value(parts), nil
}

func DecodeProduct(v xdr.ScVal) (*Product, error) {
	f, err := mapFields(v)
	if err != nil {
		return nil, errors.Wrap(err, "decoding product")
	}

	p := &Product{}
	id, ok := f["id"].GetU32()
	if !ok {
		return nil, errors.New("decoding product: missing u32 field \"id\"")
	}
	p.ID = uint32(id)
	expiry, ok := f["expiry"].GetU64()
	if !ok {
		return nil, errors.New("decoding product: missing u64 field \"expiry\"")
	}
	p.Expiry = time.Unix(int64(expiry), 0).UTC()

	for key, target := range map[string]*string{
		"title":       &p.Title,
		"description": &p.Description,
		"category":    &p.Category,
		"image":       &p.Image,
	} {
		if *target, err = f.str(key); err != nil {
			return nil, errors.Wrap(err, "decoding product")
		}
	}
	if p.Price, err = f.i128("price"); err != nil {
		return nil, errors.Wrap(err, "decoding product")
	}
	if p.Remaining, err = f.i128("remaining"); err != nil {
		return nil, errors.Wrap(err, "decoding product")
	}
	return p, nil
}

func DecodeProducts(v xdr.ScVal) ([]Product, error) {
	vec, ok := v.GetVec()
	if !ok || vec == nil {
		return nil, errors.Errorf("expected a vec of products, got %s", v.Type)
	}
	products := make([]Product, 0, len(*vec))
	for i, item := range *vec {
		p, err := DecodeProduct(item)
		if err != nil {
			return nil, errors.Wrapf(err, "product %d", i)
		}
		products = append(products, *p)
	}
	return products, nil
}

func DecodeSplit(v xdr.ScVal) (*Split, error) {
	vec, ok := v.GetVec()
	if !ok || vec == nil || len(*vec) != 3 {
		return nil, errors.Errorf("expected a tuple of three amounts, got %s", scval.Format(v))
	}
	amounts := make([]*big.Int, 3)
	for i, item := range *vec {
		parts, ok := item.GetI128()
		if !ok {
			return nil, errors.Errorf("split amount %d is %s, not an i128", i, item.Type)
		}
		amounts[i] = scval.I128Value(parts)
	}
	return &Split{Reserve: amounts[0], Launchpad: amounts[1], Dev: amounts[2]}, nil
}

// EncodeProduct renders p the way the contract returns it. Used by tests and
// fixtures.
func EncodeProduct(p Product) (xdr.ScVal, error) {
	price, err := scval.I128(p.Price)
	if err != nil {
		return xdr.ScVal{}, err
	}
	remaining, err := scval.I128(p.Remaining)
	if err != nil {
		return xdr.ScVal{}, err
	}
	// Keys are in the order the host sorts struct fields.
	m := xdr.ScMap{
		{Key: scval.Symbol("category").ScVal(), Val: scval.String(p.Category).ScVal()},
		{Key: scval.Symbol("description").ScVal(), Val: scval.String(p.Description).ScVal()},
		{Key: scval.Symbol("expiry").ScVal(), Val: scval.U64(uint64(p.Expiry.Unix())).ScVal()},
		{Key: scval.Symbol("id").ScVal(), Val: scval.U32(p.ID).ScVal()},
		{Key: scval.Symbol("image").ScVal(), Val: scval.String(p.Image).ScVal()},
		{Key: scval.Symbol("price").ScVal(), Val: price.ScVal()},
		{Key: scval.Symbol("remaining").ScVal(), Val: remaining.ScVal()},
		{Key: scval.Symbol("title").ScVal(), Val: scval.String(p.Title).ScVal()},
	}
	mp := &m
	return xdr.ScVal{Type: xdr.ScValTypeScvMap, Map: &mp}, nil
}
