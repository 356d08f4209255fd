// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/dotandev/soroban-invoker/internal/marketplace"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	reserveAccount   string
	devAccount       string
	launchpadAccount string
	adminAccount     string

	productTitle       string
	productDescription string
	productCategory    string
	productExpiresIn   time.Duration
	productImage       string
	productPrice       string
	productTarget      string

	discountCustomer string
	discountAmount   string
	discountToken    string
)

func withMarketplace(cmd *cobra.Command, fn func(ctx context.Context, s *session, client *marketplace.Client) error) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		return fn(ctx, s, marketplace.NewClient(s, s.cfg.ContractID))
	})
}

func parseAmount(name, raw string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, errors.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Set the reserve, dev, launchpad and admin accounts of the marketplace",
	Long:  "Set the payout and admin accounts. Each defaults to the signing account.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMarketplace(cmd, func(ctx context.Context, s *session, client *marketplace.Client) error {
			signer := s.Address()
			message, _, err := client.Initialize(ctx, marketplace.Accounts{
				Reserve:   orDefault(reserveAccount, signer),
				Dev:       orDefault(devAccount, signer),
				Launchpad: orDefault(launchpadAccount, signer),
				Admin:     orDefault(adminAccount, signer),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		})
	},
}

var createProductCmd = &cobra.Command{
	Use:   "create-product",
	Short: "Create a marketplace product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := parseAmount("price", productPrice)
		if err != nil {
			return err
		}
		target, err := parseAmount("target", productTarget)
		if err != nil {
			return err
		}
		return withMarketplace(cmd, func(ctx context.Context, s *session, client *marketplace.Client) error {
			product, _, err := client.CreateProduct(ctx, marketplace.NewProduct{
				Title:       productTitle,
				Description: productDescription,
				Category:    productCategory,
				Expiry:      time.Now().Add(productExpiresIn),
				Image:       productImage,
				Price:       price,
				Target:      target,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ created product #%d %q\n", product.ID, product.Title)
			return nil
		})
	},
}

var getProductCmd = &cobra.Command{
	Use:   "get-product <id>",
	Short: "Read one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return errors.Wrapf(err, "invalid product id %q", args[0])
		}
		return withMarketplace(cmd, func(ctx context.Context, s *session, client *marketplace.Client) error {
			product, _, err := client.GetProduct(ctx, uint32(id))
			if err != nil {
				return err
			}
			if !product.Exists() {
				return errors.Errorf("product %d does not exist", id)
			}
			return nil
		})
	},
}

var getProductsCmd = &cobra.Command{
	Use:   "get-products",
	Short: "List all products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMarketplace(cmd, func(ctx context.Context, s *session, client *marketplace.Client) error {
			products, _, err := client.GetProducts(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%d product(s)\n", len(products))
			for _, p := range products {
				fmt.Fprintf(out, "  #%d %s [%s] price %s, %s remaining, expires %s\n",
					p.ID, p.Title, p.Category, p.Price, p.Remaining, p.Expiry.Format(time.RFC3339))
			}
			return nil
		})
	},
}

var getDiscountCmd = &cobra.Command{
	Use:   "get-discount <product-id>",
	Short: "Buy a discount on a product, splitting the payment between the marketplace accounts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return errors.Wrapf(err, "invalid product id %q", args[0])
		}
		amount, err := parseAmount("amount", discountAmount)
		if err != nil {
			return err
		}
		if discountToken == "" {
			return errors.New("--token is required")
		}
		return withMarketplace(cmd, func(ctx context.Context, s *session, client *marketplace.Client) error {
			split, _, err := client.GetDiscount(ctx, uint32(id), orDefault(discountCustomer, s.Address()), amount, discountToken)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "💸 reserve %s, launchpad %s, dev %s\n", split.Reserve, split.Launchpad, split.Dev)
			return nil
		})
	},
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Show the accounts set by initialize",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMarketplace(cmd, func(ctx context.Context, s *session, client *marketplace.Client) error {
			out := cmd.OutOrStdout()
			for _, fn := range []string{marketplace.FnGetReserveAcc, marketplace.FnGetDevAcc, marketplace.FnGetLaunchpadAcc, marketplace.FnGetAdmin} {
				address, _, err := client.Account(ctx, fn)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", fn, address)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initializeCmd, createProductCmd, getProductCmd, getProductsCmd, getDiscountCmd, accountsCmd)

	initializeCmd.Flags().StringVar(&reserveAccount, "reserve", "", "Reserve account (G...)")
	initializeCmd.Flags().StringVar(&devAccount, "dev", "", "Dev account (G...)")
	initializeCmd.Flags().StringVar(&launchpadAccount, "launchpad", "", "Launchpad account (G...)")
	initializeCmd.Flags().StringVar(&adminAccount, "admin", "", "Admin account (G...), must be the signer")

	createProductCmd.Flags().StringVar(&productTitle, "title", "Product 1", "Product title")
	createProductCmd.Flags().StringVar(&productDescription, "description", "Description 1", "Product description")
	createProductCmd.Flags().StringVar(&productCategory, "category", "Category 1", "Product category")
	createProductCmd.Flags().DurationVar(&productExpiresIn, "expires-in", 24*time.Hour, "How long until the product expires")
	createProductCmd.Flags().StringVar(&productImage, "image", "image.png", "Product image")
	createProductCmd.Flags().StringVar(&productPrice, "price", "1000", "Product price (i128)")
	createProductCmd.Flags().StringVar(&productTarget, "target", "10", "How many discounts can be sold (i128)")

	getDiscountCmd.Flags().StringVar(&discountCustomer, "customer", "", "Paying account, defaults to the signer")
	getDiscountCmd.Flags().StringVar(&discountAmount, "amount", "1", "Amount to pay, in whole tokens (i128)")
	getDiscountCmd.Flags().StringVar(&discountToken, "token", "", "Token contract the payment is made in (C...)")
}
