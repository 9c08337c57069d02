// internal/cli/score.go
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/router"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/services"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/utils"
)

type scoreOptions struct {
	lat, lon float64
	dryRun   bool
}

func newScoreCmd() *cobra.Command {
	var opts scoreOptions

	cmd := &cobra.Command{
		Use:   "score <code>",
		Short: "Score one product and print the result as JSON",
		Example: `  # Score for the default destination
  ecoscore score 0060410001234

  # Score for a shopper in Toronto; only default destination scores are stored
  ecoscore score 0060410001234 --lat 43.6532 --lon -79.3832

  # Recompute without storing anything
  ecoscore score 0060410001234 --dry-run`,
		Args: cobra.MatchAll(cobra.ExactArgs(1), validCode),
		RunE: func(cmd *cobra.Command, args []string) error {
			destination, err := destinationFromFlags(cmd, opts)
			if err != nil {
				return err
			}

			env, err := bootstrap()
			if err != nil {
				return err
			}
			defer env.Close()

			svc, err := router.BuildServices(env.db, env.cfg)
			if err != nil {
				return err
			}

			return runScore(cmd.Context(), cmd.OutOrStdout(), svc, args[0], destination, opts.dryRun)
		},
	}

	cmd.Flags().Float64Var(&opts.lat, "lat", 0, "destination latitude")
	cmd.Flags().Float64Var(&opts.lon, "lon", 0, "destination longitude")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "compute without storing the score")
	return cmd
}

type codeArg struct {
	Code string `validate:"required,barcode"`
}

func validCode(_ *cobra.Command, args []string) error {
	if errs := utils.GetValidationErrors(utils.ValidateStruct(&codeArg{Code: args[0]})); len(errs) > 0 {
		return fmt.Errorf("invalid code %q: %s", args[0], errs[0].Message)
	}
	return nil
}

// destinationFromFlags returns nil unless --lat and --lon were both given.
func destinationFromFlags(cmd *cobra.Command, opts scoreOptions) (*scoring.Coordinates, error) {
	latSet, lonSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lon")
	if !latSet && !lonSet {
		return nil, nil
	}
	if latSet != lonSet {
		return nil, errors.New("--lat and --lon must be given together")
	}
	if opts.lat < -90 || opts.lat > 90 || opts.lon < -180 || opts.lon > 180 {
		return nil, fmt.Errorf("destination %.4f,%.4f is out of range", opts.lat, opts.lon)
	}
	return &scoring.Coordinates{Latitude: opts.lat, Longitude: opts.lon}, nil
}

func runScore(ctx context.Context, out io.Writer, svc *router.Services, code string, destination *scoring.Coordinates, dryRun bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	product, err := svc.Products.GetProductByCode(ctx, code)
	if err != nil {
		return err
	}

	var result scoring.Result
	if dryRun {
		result, err = svc.Scoring.Calculate(ctx, product, destination)
	} else {
		result, err = svc.Scoring.ScoreProduct(ctx, product, destination)
	}
	if err != nil {
		return err
	}

	return writeJSON(out, map[string]interface{}{
		"product":               services.NewProductView(product),
		"sustainability_scores": services.NewSustainabilityScores(result),
	})
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
