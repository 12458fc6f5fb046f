package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/cart-transform/internal/pricing"
)

func newPercentageCmd(_ *rootOptions) *cobra.Command {
	var original, target string

	cmd := &cobra.Command{
		Use:   "percentage",
		Short: "Print the percentage decrease from --original to --target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orig, err := pricing.ParseAmount(original)
			if err != nil {
				return fmt.Errorf("invalid --original %q: %w", original, err)
			}
			tgt, err := pricing.ParseAmount(target)
			if err != nil {
				return fmt.Errorf("invalid --target %q: %w", target, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), pricing.DiscountPercentage(orig, tgt).String())
			return err
		},
	}

	cmd.Flags().StringVar(&original, "original", "", "original unit price")
	cmd.Flags().StringVar(&target, "target", "", "target unit price")
	_ = cmd.MarkFlagRequired("original")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
