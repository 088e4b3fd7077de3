package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oarkflow/json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sandrolain/gomodifier/pkg/batch"
)

// batchFile is the layout of the YAML and JSON batch files.
type batchFile struct {
	Calls []batch.Call `yaml:"calls" json:"calls"`
}

// callOutput is the printed form of a batch.Result.
type callOutput struct {
	ID       string      `json:"id,omitempty"`
	Function string      `json:"function"`
	Present  bool        `json:"present"`
	Result   interface{} `json:"result,omitempty"`
	Error    string      `json:"error,omitempty"`
}

func newRunCmd(a *app) *cobra.Command {
	var stream bool
	cmd := &cobra.Command{
		Use:   "run <file|->",
		Short: "Apply a batch of calls",
		Long: `Applies every call of a batch file. The file is YAML (or JSON when its name
ends in .json) of the form:

  calls:
    - id: pad
      function: leftPad
      args: ["42", 5, "0"]

With --stream the input is read as newline-delimited JSON calls and one result
is printed per line as soon as it is ready. "-" reads standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer closeIn()

			opts := batch.Options{Concurrency: a.cfg.Concurrency, Logger: a.logger, RateLimit: a.cfg.Rate}
			if stream {
				return a.runStream(cmd.Context(), in, opts)
			}

			calls, err := loadCalls(args[0], in)
			if err != nil {
				return err
			}
			results, err := a.modifier.Batch(cmd.Context(), calls, opts)
			if err != nil {
				return fmt.Errorf("batch interrupted: %w", err)
			}
			outputs := make([]callOutput, len(results))
			for i, r := range results {
				outputs[i] = toOutput(r)
			}
			return a.writeJSON(outputs)
		},
	}
	cmd.Flags().BoolVar(&stream, "stream", false, "read newline-delimited JSON calls and print results as they complete")
	return cmd
}

func (a *app) runStream(ctx context.Context, in io.Reader, opts batch.Options) error {
	var fatal error
	for r := range batch.Stream(ctx, a.modifier.Registry(), in, opts) {
		if r.Err != nil && r.Call.Function == "" && r.Call.ID == "" && len(r.Call.Args) == 0 {
			fatal = r.Err
			continue
		}
		out, err := json.Marshal(toOutput(r))
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(a.out, string(out))
	}
	return fatal
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

// loadCalls decodes a batch file; name selects JSON or YAML.
func loadCalls(name string, r io.Reader) ([]batch.Call, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	var file batchFile
	if strings.EqualFold(filepath.Ext(name), ".json") {
		err = json.Unmarshal(content, &file)
	} else {
		err = yaml.Unmarshal(content, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return file.Calls, nil
}

func toOutput(r batch.Result) callOutput {
	out := callOutput{ID: r.Call.ID, Function: r.Call.Function}
	if r.Err != nil {
		out.Error = r.Err.Error()
		return out
	}
	out.Result, out.Present = r.Value.Get()
	return out
}
