// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"context"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/pkg/errors"
)

// CheckVersion fails when the server reports a version below minimum.
// An empty minimum only reports the server version.
func CheckVersion(ctx context.Context, client Client, minimum string) (*version.Version, error) {
	info, err := client.GetVersionInfo(ctx)
	if err != nil {
		return nil, err
	}

	// Servers report e.g. "v23.0.4-abc123" or "23.0.4".
	serverVersion, err := version.NewVersion(strings.TrimPrefix(strings.TrimSpace(info.Version), "v"))
	if err != nil {
		return nil, errors.Wrapf(err, "unparseable rpc version %q", info.Version)
	}
	if minimum == "" {
		return serverVersion, nil
	}

	minimumVersion, err := version.NewVersion(minimum)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid minimum rpc version %q", minimum)
	}
	if serverVersion.Core().LessThan(minimumVersion.Core()) {
		return serverVersion, errors.Errorf("rpc server version %s is older than the required %s", serverVersion, minimumVersion)
	}
	return serverVersion, nil
}
