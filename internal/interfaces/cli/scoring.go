package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/MissionIntelligence/pkg/errors"
	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

// NewScoreCmd returns the "score" command.
func NewScoreCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a bid against a mission",
		Long:  "Compute the comprehensive 0..100 score of a provider's bid. The input is a JSON\ndocument with mission, provider and bid objects.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			var req scoring.ComprehensiveScoreRequest
			if err := readJSONInput(cmd, file, &req); err != nil {
				return err
			}

			ctx, cancel := operationContext(cmd, cliCtx)
			defer cancel()
			res, err := cliCtx.Backend.CalculateComprehensiveScore(ctx, &req)
			if err != nil {
				return err
			}
			return PrintResult(cmd, scoreView{res})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON request file (\"-\" for stdin)")
	return cmd
}

// NewPriceCmd returns the "price" command.
func NewPriceCmd() *cobra.Command {
	var (
		req  scoring.PriceRequest
		file string
	)

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Recommend a bid price for a mission",
		Example: `  missionctl price --budget 4000 --category web-development --complexity 6 --competition high
  missionctl price --file request.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if file != "" {
				req = scoring.PriceRequest{}
				if err := readJSONInput(cmd, file, &req); err != nil {
					return err
				}
			}
			switch strings.ToLower(req.CompetitionLevel) {
			case "", scoring.CompetitionLow, scoring.CompetitionMedium, scoring.CompetitionHigh:
			default:
				return errors.Newf(errors.CodeInvalidParam, "competition must be low, medium or high, got %q", req.CompetitionLevel)
			}

			ctx, cancel := operationContext(cmd, cliCtx)
			defer cancel()
			res, err := cliCtx.Backend.RecommendPrice(ctx, &req)
			if err != nil {
				return err
			}
			return PrintResult(cmd, priceView{res})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Mission.Title, "title", "", "mission title")
	f.StringVar(&req.Mission.Category, "category", "", "mission category")
	f.Float64Var(&req.Mission.Budget, "budget", 0, "client budget in euros")
	f.Float64Var(&req.Mission.DurationWeeks, "duration-weeks", 0, "expected duration in weeks")
	f.IntVar(&req.Mission.Complexity, "complexity", 0, "complexity 1..10 (0 = unknown)")
	f.StringSliceVar(&req.Mission.SkillsRequired, "skills", nil, "required skills (comma separated)")
	f.StringVar(&req.CompetitionLevel, "competition", "", "competition level: low, medium or high")
	f.StringVarP(&file, "file", "f", "", "read the request as JSON from a file (\"-\" for stdin)")
	return cmd
}

// NewSuccessCmd returns the "success" command.
func NewSuccessCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "success",
		Short: "Predict the success probability of a mission",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			var req scoring.SuccessRequest
			if err := readJSONInput(cmd, file, &req); err != nil {
				return err
			}

			ctx, cancel := operationContext(cmd, cliCtx)
			defer cancel()
			res, err := cliCtx.Backend.PredictSuccess(ctx, &req)
			if err != nil {
				return err
			}
			return PrintResult(cmd, successView{res})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON request file (\"-\" for stdin)")
	return cmd
}

type scoreView struct {
	*scoring.ComprehensiveScoreResult
}

func (v scoreView) TableHeaders() []string { return []string{"COMPONENT", "SCORE"} }

func (v scoreView) TableRows() [][]string {
	b := v.Breakdown
	return [][]string{
		{"total", strconv.Itoa(v.TotalScore)},
		{"price", strconv.Itoa(b.Price)},
		{"quality", strconv.Itoa(b.Quality)},
		{"fit", strconv.Itoa(b.Fit)},
		{"delay", strconv.Itoa(b.Delay)},
		{"risk", strconv.Itoa(b.Risk)},
		{"completion_probability", strconv.Itoa(b.CompletionProbability)},
		{"source", v.Source},
	}
}

type priceView struct {
	*scoring.PriceResult
}

func (v priceView) TableHeaders() []string { return []string{"FIELD", "VALUE"} }

func (v priceView) TableRows() [][]string {
	return [][]string{
		{"recommended", fmt.Sprintf("%.0f EUR", v.RecommendedPrice)},
		{"range", fmt.Sprintf("%.0f - %.0f EUR", v.PriceRange.Min, v.PriceRange.Max)},
		{"confidence", strconv.Itoa(v.Confidence)},
		{"position", v.MarketPosition},
		{"source", v.Source},
	}
}

type successView struct {
	*scoring.SuccessPrediction
}

func (v successView) TableHeaders() []string { return []string{"FACTOR", "SCORE", "IMPACT"} }

func (v successView) TableRows() [][]string {
	rows := [][]string{{"probability", strconv.FormatFloat(v.Probability, 'f', 2, 64), v.Source}}
	for _, f := range v.KeyFactors {
		rows = append(rows, []string{f.Name, strconv.FormatFloat(f.Score, 'f', 2, 64), f.Impact})
	}
	return rows
}

//Personal.AI order the ending
