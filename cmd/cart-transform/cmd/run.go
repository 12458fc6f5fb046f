package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/noah-isme/cart-transform/internal/carttransform"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		inputPath string
		pretty    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Transform a cart snapshot read from stdin or --input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var src io.Reader = cmd.InOrStdin()
			if inputPath != "" {
				f, err := os.Open(inputPath)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				src = f
			}

			logger := opts.logger.With().Str("run_id", uuid.NewString()).Logger()
			in, err := carttransform.DecodeInput(src)
			if err != nil {
				logger.Error().Err(err).Msg("decode cart snapshot")
				return err
			}

			svc := &carttransform.Service{Logger: logger, Surface: carttransform.SurfaceCLI}
			res := svc.Transform(cmd.Context(), in)

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
			logger.Info().Int("operations", len(res.Operations)).Msg("run complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "read the cart snapshot from this file instead of stdin")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON result")
	return cmd
}
