// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package marketplace

import (
	"context"
	"math/big"

	"github.com/dotandev/soroban-invoker/internal/scval"
	"github.com/dotandev/soroban-invoker/internal/submitter"
	"github.com/pkg/errors"
)

// Invoker is satisfied by *submitter.Submitter.
type Invoker interface {
	Submit(ctx context.Context, inv submitter.Invocation) (*submitter.Result, error)
}

// Client calls one deployed marketplace contract. Every method returns the
// raw submission result next to the decoded value.
type Client struct {
	invoker    Invoker
	contractID string
}

func NewClient(invoker Invoker, contractID string) *Client {
	return &Client{invoker: invoker, contractID: contractID}
}

func (c *Client) ContractID() string {
	return c.contractID
}

func (c *Client) submit(ctx context.Context, inv submitter.Invocation) (*submitter.Result, error) {
	result, err := c.invoker.Submit(ctx, inv)
	if err != nil {
		return nil, Annotate(err)
	}
	return result, nil
}

// Initialize returns the contract's confirmation message.
func (c *Client) Initialize(ctx context.Context, accounts Accounts) (string, *submitter.Result, error) {
	inv, err := InitializeCall(c.contractID, accounts)
	if err != nil {
		return "", nil, err
	}
	result, err := c.submit(ctx, inv)
	if err != nil {
		return "", nil, err
	}
	message, ok := result.ReturnValue.GetStr()
	if !ok {
		return "", result, errors.Errorf("initialize returned %s, expected a string", result.ReturnValue.Type)
	}
	return string(message), result, nil
}

func (c *Client) CreateProduct(ctx context.Context, p NewProduct) (*Product, *submitter.Result, error) {
	inv, err := CreateProductCall(c.contractID, p)
	if err != nil {
		return nil, nil, err
	}
	return c.product(ctx, inv)
}

func (c *Client) GetProduct(ctx context.Context, id uint32) (*Product, *submitter.Result, error) {
	return c.product(ctx, GetProductCall(c.contractID, id))
}

func (c *Client) product(ctx context.Context, inv submitter.Invocation) (*Product, *submitter.Result, error) {
	result, err := c.submit(ctx, inv)
	if err != nil {
		return nil, nil, err
	}
	p, err := DecodeProduct(result.ReturnValue)
	if err != nil {
		return nil, result, err
	}
	return p, result, nil
}

func (c *Client) GetProducts(ctx context.Context) ([]Product, *submitter.Result, error) {
	result, err := c.submit(ctx, GetProductsCall(c.contractID))
	if err != nil {
		return nil, nil, err
	}
	products, err := DecodeProducts(result.ReturnValue)
	if err != nil {
		return nil, result, err
	}
	return products, result, nil
}

// GetDiscount buys a discount on product id. The customer must be the
// signing account since the contract requires its authorization.
func (c *Client) GetDiscount(ctx context.Context, id uint32, customer string, amount *big.Int, token string) (*Split, *submitter.Result, error) {
	inv, err := GetDiscountCall(c.contractID, id, customer, amount, token)
	if err != nil {
		return nil, nil, err
	}
	result, err := c.submit(ctx, inv)
	if err != nil {
		return nil, nil, err
	}
	split, err := DecodeSplit(result.ReturnValue)
	if err != nil {
		return nil, result, err
	}
	return split, result, nil
}

// Account reads one of the addresses set by initialize.
func (c *Client) Account(ctx context.Context, fn string) (string, *submitter.Result, error) {
	inv, err := AccountCall(c.contractID, fn)
	if err != nil {
		return "", nil, err
	}
	result, err := c.submit(ctx, inv)
	if err != nil {
		return "", nil, err
	}
	address, ok := result.ReturnValue.GetAddress()
	if !ok {
		return "", result, errors.Errorf("%s returned %s, expected an address", fn, result.ReturnValue.Type)
	}
	return scval.FormatAddress(address), result, nil
}
