// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/comtradectl/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	if !output.ValidFormat(value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func FlowValidator(value any) error {
	switch value {
	case "", "M", "X":
		return nil
	default:
		return fmt.Errorf("must be one of [M X]")
	}
}

// RequiredFlagsValidator reports every missing required flag at once so
// the user can fix the whole invocation in one pass.
func RequiredFlagsValidator(cmd *cli.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if cmd.String(name) == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}
	return nil
}
