package main

import (
	"fmt"

	"github.com/oarkflow/json"
	"github.com/spf13/cobra"
)

// emptyOutput is printed when a function does not apply.
const emptyOutput = "<empty>"

func newApplyCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "apply <function> [arg...]",
		Short: "Apply one function",
		Long: `Applies a single function. Every argument is parsed as JSON and taken as a
plain string when it is not valid JSON, so 5 is a number, '"5"' and abc are
strings and '["a","b"]' is a sequence.

An empty result prints ` + emptyOutput + `; with --strict it also exits with status 2.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]interface{}, len(args)-1)
			for i, raw := range args[1:] {
				values[i] = parseArg(raw)
			}

			res, err := a.modifier.Apply(args[0], values...)
			if err != nil {
				return err
			}
			v, ok := res.Get()
			a.logger.Debug("applied", "function", args[0], "args", len(values), "present", ok)
			if !ok {
				fmt.Fprintln(a.out, emptyOutput)
				if strict {
					return &exitError{code: 2}
				}
				return nil
			}
			return a.writeJSON(v)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with status 2 when the function does not apply")
	return cmd
}

// parseArg decodes raw as JSON, falling back to the raw text.
func parseArg(raw string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func (a *app) writeJSON(v interface{}) error {
	var (
		out []byte
		err error
	)
	if a.cfg.Indent {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(a.out, string(out))
	return nil
}
