// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/stellar/go/network"
)

const (
	NetworkTestnet    = "testnet"
	NetworkFuturenet  = "futurenet"
	NetworkPublic     = "public"
	NetworkStandalone = "standalone"
)

const standalonePassphrase = "Standalone Network ; February 2017"

// NetworkPreset is the passphrase and a default RPC endpoint of a well known
// network. Public has no default endpoint.
type NetworkPreset struct {
	Name       string
	Passphrase string
	RPCURL     string
}

var networks = map[string]NetworkPreset{
	NetworkTestnet: {
		Name:       NetworkTestnet,
		Passphrase: network.TestNetworkPassphrase,
		RPCURL:     "https://soroban-testnet.stellar.org",
	},
	NetworkFuturenet: {
		Name:       NetworkFuturenet,
		Passphrase: network.FutureNetworkPassphrase,
		RPCURL:     "https://rpc-futurenet.stellar.org",
	},
	NetworkPublic: {
		Name:       NetworkPublic,
		Passphrase: network.PublicNetworkPassphrase,
	},
	NetworkStandalone: {
		Name:       NetworkStandalone,
		Passphrase: standalonePassphrase,
		RPCURL:     "http://localhost:8000/soroban/rpc",
	},
}

func LookupNetwork(name string) (NetworkPreset, error) {
	preset, ok := networks[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return NetworkPreset{}, errors.Errorf("unknown network %q, expected one of %s", name, strings.Join(NetworkNames(), ", "))
	}
	return preset, nil
}

func NetworkNames() []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
