package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jhump/annosynth"
	"github.com/jhump/annosynth/validation"
)

var (
	checkType string
	checkZero bool
	checkNull bool
	checkName string
)

var checkCmd = &cobra.Command{
	Use:   "check [VALUE]",
	Short: "Apply a validation rule to a value",
	Long: `Check applies the same rule as a generated validation attribute to a
single value, so that a rule can be tried out without compiling anything. The
value is given as text; --null checks a null value instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ := annosynth.ParseNumericType(checkType)
		if typ == annosynth.Unsupported {
			return fmt.Errorf("unsupported type %q (must be decimal, int, double or long)", checkType)
		}
		var value *string
		switch {
		case checkNull && len(args) > 0:
			return fmt.Errorf("cannot give both a value and --null")
		case !checkNull && len(args) == 0:
			return fmt.Errorf("a value or --null is required")
		case !checkNull:
			value = &args[0]
		}

		rule := validation.Rule{Type: typ, ZeroCheck: checkZero}
		if err := rule.Check(value); err != nil {
			return fmt.Errorf("%s %w", checkName, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", checkName, color.GreenString("is valid"))
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkType, "type", "decimal", "property type: decimal, int, double or long")
	checkCmd.Flags().BoolVar(&checkZero, "zero", false, "reject values less than or equal to zero")
	checkCmd.Flags().BoolVar(&checkNull, "null", false, "check a null value")
	checkCmd.Flags().StringVar(&checkName, "name", "Value", "display name used in the result")
}
