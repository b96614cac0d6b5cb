package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/geomarket/internal/model"
)

var (
	analyzeBusinessType string
	analyzeRadius       float64
	analyzeCropType     string
	analyzeDepth        float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot analysis and print the result as JSON",
}

var analyzeCommercialCmd = &cobra.Command{
	Use:   "commercial <location>",
	Short: "Analyze a commercial location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initAnalyzers()
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.commercial.Analyze(cmd.Context(), model.CommercialRequest{
			Location:     args[0],
			BusinessType: analyzeBusinessType,
			Parameters:   model.Parameters{Radius: analyzeRadius},
		})
		if err != nil {
			return err
		}
		return printResult(res)
	},
}

var analyzeSoilCmd = &cobra.Command{
	Use:   "soil <location>",
	Short: "Analyze soil quality for a crop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initAnalyzers()
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.soil.Analyze(cmd.Context(), model.SoilRequest{
			Location:   args[0],
			CropType:   analyzeCropType,
			Parameters: model.Parameters{Depth: analyzeDepth},
		})
		if err != nil {
			return err
		}
		return printResult(res)
	},
}

func printResult(res *model.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return eris.Wrap(err, "cmd: encode result")
	}
	return nil
}

func init() {
	analyzeCommercialCmd.Flags().StringVar(&analyzeBusinessType, "business-type", "commerce", "business type to analyze")
	analyzeCommercialCmd.Flags().Float64Var(&analyzeRadius, "radius", 0, "analysis radius in meters (default from config)")
	analyzeSoilCmd.Flags().StringVar(&analyzeCropType, "crop-type", "culture", "crop type to analyze")
	analyzeSoilCmd.Flags().Float64Var(&analyzeDepth, "depth", 0, "sampling depth in centimeters (default from config)")

	analyzeCmd.AddCommand(analyzeCommercialCmd)
	analyzeCmd.AddCommand(analyzeSoilCmd)
	rootCmd.AddCommand(analyzeCmd)
}
