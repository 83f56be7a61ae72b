package cli

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/viant/ivconv/iv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootOptions holds ivfmt flags
type RootOptions struct {
	Verbose  bool
	Check    bool
	Selector string
}

// NewRootCommand creates the ivfmt command, it reads JSON from a file or stdin and prints its compact form
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:           "ivfmt [file]",
		Short:         "Parse JSON into intermediate values and print it back",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(opts, args, cmd)
		},
	}
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "re-parse the output and verify it is structurally equal")
	cmd.Flags().StringVar(&opts.Selector, "select", "", "print only the value at path, i.e. Items[0].Name")
	return cmd
}

func runFormat(opts *RootOptions, args []string, cmd *cobra.Command) error {
	logger := zap.NewNop()
	if opts.Verbose {
		// verbose logs go to stderr to keep the output parsable
		encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		logger = zap.New(zapcore.NewCore(encoder, zapcore.AddSync(cmd.ErrOrStderr()), zap.DebugLevel))
		defer func() { _ = logger.Sync() }()
	}
	input, source, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	logger.Debug("parsing input", zap.String("source", source), zap.Int("bytes", len(input)))
	value, err := iv.Unmarshal(input)
	if err != nil {
		return errors.Wrapf(err, "failed to parse %v", source)
	}
	if opts.Selector != "" {
		selector, err := iv.NewSelector(opts.Selector)
		if err != nil {
			return err
		}
		selected, ok := selector.Value(value)
		if !ok {
			return errors.Newf("%v: path %v was not found", source, opts.Selector)
		}
		value = selected
	}
	output, err := iv.Marshal(value)
	if err != nil {
		return err
	}
	if opts.Check {
		reparsed, err := iv.Unmarshal(output)
		if err != nil {
			return errors.Wrap(err, "failed to re-parse output")
		}
		if !iv.Equal(value, reparsed) {
			return errors.Newf("%v: output is not structurally equal to input", source)
		}
		logger.Debug("output verified", zap.String("source", source))
	}
	_, err = cmd.OutOrStdout().Write(append(output, '\n'))
	return err
}

func readInput(args []string, stdin io.Reader) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to read stdin")
		}
		return data, "stdin", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to read %v", args[0])
	}
	return data, args[0], nil
}
