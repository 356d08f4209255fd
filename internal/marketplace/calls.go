// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

// Package marketplace describes the calls of the marketplace contract and
// decodes what they return.
package marketplace

import (
	"math/big"
	"time"

	"github.com/dotandev/soroban-invoker/internal/scval"
	"github.com/dotandev/soroban-invoker/internal/submitter"
	"github.com/pkg/errors"
)

const (
	FnInitialize      = "initialize"
	FnCreateProduct   = "create_product"
	FnGetProduct      = "get_product"
	FnGetProducts     = "get_products"
	FnGetDiscount     = "get_discount"
	FnGetReserveAcc   = "get_reserve_acc"
	FnGetDevAcc       = "get_dev_acc"
	FnGetLaunchpadAcc = "get_launchpad_acc"
	FnGetAdmin        = "get_admin"
)

// Accounts receive the split of every discount purchase. Admin must sign
// the initialize call.
type Accounts struct {
	Reserve   string
	Dev       string
	Launchpad string
	Admin     string
}

// NewProduct is the input of create_product.
type NewProduct struct {
	Title       string
	Description string
	Category    string
	Expiry      time.Time
	Image       string
	Price       *big.Int
	Target      *big.Int
}

func InitializeCall(contractID string, accounts Accounts) (submitter.Invocation, error) {
	args := make([]scval.Arg, 0, 4)
	for _, address := range []string{accounts.Reserve, accounts.Dev, accounts.Launchpad, accounts.Admin} {
		arg, err := scval.Address(address)
		if err != nil {
			return submitter.Invocation{}, err
		}
		args = append(args, arg)
	}
	return submitter.Invocation{ContractID: contractID, Function: FnInitialize, Args: args}, nil
}

func CreateProductCall(contractID string, p NewProduct) (submitter.Invocation, error) {
	if p.Price == nil || p.Target == nil {
		return submitter.Invocation{}, errors.New("product price and target are required")
	}
	if p.Expiry.Unix() < 0 {
		return submitter.Invocation{}, errors.Errorf("product expiry %s is before the epoch", p.Expiry)
	}
	price, err := scval.I128(p.Price)
	if err != nil {
		return submitter.Invocation{}, errors.Wrap(err, "product price")
	}
	target, err := scval.I128(p.Target)
	if err != nil {
		return submitter.Invocation{}, errors.Wrap(err, "product target")
	}
	return submitter.Invocation{
		ContractID: contractID,
		Function:   FnCreateProduct,
		Args: []scval.Arg{
			scval.String(p.Title),
			scval.String(p.Description),
			scval.String(p.Category),
			scval.U64(uint64(p.Expiry.Unix())),
			scval.String(p.Image),
			price,
			target,
		},
	}, nil
}

func GetProductCall(contractID string, id uint32) submitter.Invocation {
	return submitter.Invocation{ContractID: contractID, Function: FnGetProduct, Args: []scval.Arg{scval.U32(id)}}
}

func GetProductsCall(contractID string) submitter.Invocation {
	return submitter.Invocation{ContractID: contractID, Function: FnGetProducts}
}

func GetDiscountCall(contractID string, id uint32, customer string, amount *big.Int, token string) (submitter.Invocation, error) {
	if amount == nil {
		return submitter.Invocation{}, errors.New("amount is required")
	}
	customerArg, err := scval.Address(customer)
	if err != nil {
		return submitter.Invocation{}, errors.Wrap(err, "customer")
	}
	amountArg, err := scval.I128(amount)
	if err != nil {
		return submitter.Invocation{}, errors.Wrap(err, "amount")
	}
	tokenArg, err := scval.Address(token)
	if err != nil {
		return submitter.Invocation{}, errors.Wrap(err, "token")
	}
	return submitter.Invocation{
		ContractID: contractID,
		Function:   FnGetDiscount,
		Args:       []scval.Arg{scval.U32(id), customerArg, amountArg, tokenArg},
	}, nil
}

// AccountCall reads one of the configured accounts, fn being one of the
// get_*_acc or get_admin functions.
func AccountCall(contractID, fn string) (submitter.Invocation, error) {
	switch fn {
	case FnGetReserveAcc, FnGetDevAcc, FnGetLaunchpadAcc, FnGetAdmin:
		return submitter.Invocation{ContractID: contractID, Function: fn}, nil
	default:
		return submitter.Invocation{}, errors.Errorf("%q is not an account getter", fn)
	}
}
