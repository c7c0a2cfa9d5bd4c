// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package command defines the CLI command set for comtradectl. It wires
// flags, validators and actions for the subcommands.
package command
