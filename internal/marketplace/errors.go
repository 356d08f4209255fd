// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package marketplace

import (
	"fmt"

	"github.com/dotandev/soroban-invoker/internal/submitter"
	"github.com/pkg/errors"
)

var errorNames = map[uint32]string{
	1:  "DiscountExpired",
	2:  "ProductNotExist",
	3:  "AmountMustNonZero",
	4:  "TargetReached",
	5:  "AmountExceedTargetLimit",
	6:  "ProductAlreadyExist",
	7:  "IdProductMustNonZero",
	8:  "LowAmountForSplitter",
	9:  "ExpiryShouldBeFuture",
	10: "AlreadyInitialized",
	11: "AmountMustBeGreaterThanZero",
}

func ErrorName(code uint32) (string, bool) {
	name, ok := errorNames[code]
	return name, ok
}

// ContractError is a submission failure the contract itself raised.
type ContractError struct {
	Code uint32
	Name string
	Err  error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("contract error %s (#%d): %v", e.Name, e.Code, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// Annotate names the contract error carried by err, if any. Other errors are
// returned unchanged.
func Annotate(err error) error {
	var subErr *submitter.Error
	if !errors.As(err, &subErr) {
		return err
	}
	code, ok := subErr.ContractCode()
	if !ok {
		return err
	}
	name, ok := ErrorName(code)
	if !ok {
		return err
	}
	return &ContractError{Code: code, Name: name, Err: err}
}
