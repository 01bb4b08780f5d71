package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/go-kit/log/level"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ConradIrwin/minyaml"
	"github.com/ConradIrwin/minyaml/yamllib"
)

var errMismatch = errors.New("parsers disagree")

// Integers too large for an int64 come back from Any as *big.Int.
var bigIntComparer = cmp.Comparer(func(x, y *big.Int) bool {
	return x.Cmp(y) == 0
})

func (a *app) checkCmd() *cobra.Command {
	var indent int

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Parse a document with both parsers and compare the results",
		Long: `Parse a document with the built in parser and with gopkg.in/yaml.v3, and
report any difference. Documents differ where YAML and this subset disagree,
for example on empty sections (null in YAML) or negative integers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(args[0], indent)
		},
	}
	cmd.Flags().IntVar(&indent, "indent", minyaml.DefaultIndentWidth, "Spaces per nesting level for the built in parser")
	return cmd
}

func (a *app) check(path string, indent int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}

	hand, err := minyaml.Parser{IndentWidth: indent}.Parse(string(data))
	if err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}
	lib, err := yamllib.Parse(string(data))
	if err != nil {
		return errors.Wrapf(err, "parse %s with yaml.v3", path)
	}

	if hand.Equal(lib) {
		fmt.Fprintf(a.stdout, "%s: documents match (%d top-level keys)\n", path, hand.Len())
		return nil
	}

	diff := cmp.Diff(hand.Any(), lib.Any(), bigIntComparer)
	if diff == "" {
		diff = fmt.Sprintf("key order differs:\n  hand: %v\n  yaml: %v\n", hand.Keys(), lib.Keys())
	}
	fmt.Fprintf(a.stdout, "%s: documents differ (-hand +yaml):\n%s", path, diff)
	level.Debug(a.logger).Log("msg", "parsers disagree", "file", path)
	return errMismatch
}
