package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
)

// NewStandardizeCmd returns the "standardize" command.
func NewStandardizeCmd() *cobra.Command {
	var (
		req  brief.Request
		file string
	)

	cmd := &cobra.Command{
		Use:   "standardize",
		Short: "Standardize a mission brief",
		Long:  "Turn a free-text brief into a structured mission: title, summary, acceptance\ncriteria, category, skills, missing information and a price range.",
		Example: `  missionctl standardize --title "Boutique en ligne" --description "Site React avec paiement" --budget 3000
  cat brief.json | missionctl standardize --file -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if file != "" {
				req = brief.Request{}
				if err := readJSONInput(cmd, file, &req); err != nil {
					return err
				}
			}
			if err := req.Validate(); err != nil {
				return err
			}

			ctx, cancel := operationContext(cmd, cliCtx)
			defer cancel()
			res, err := cliCtx.Backend.StandardizeBrief(ctx, &req)
			if err != nil {
				return err
			}
			return PrintResult(cmd, briefView{res})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Title, "title", "", "brief title")
	f.StringVar(&req.Description, "description", "", "brief description")
	f.StringVar(&req.Category, "category", "", "declared category")
	f.Float64Var(&req.Budget, "budget", 0, "budget in euros")
	f.StringVar(&req.Timeline, "timeline", "", "free-text timeline, e.g. \"3 semaines\"")
	f.StringSliceVar(&req.SkillsRequired, "skills", nil, "required skills (comma separated)")
	f.StringSliceVar(&req.Constraints, "constraints", nil, "constraints (comma separated)")
	f.StringVarP(&file, "file", "f", "", "read the brief as JSON from a file (\"-\" for stdin)")
	return cmd
}

// briefView renders a standardization result as a table.
type briefView struct {
	*brief.StandardizationResult
}

func (v briefView) TableHeaders() []string { return []string{"FIELD", "VALUE"} }

func (v briefView) TableRows() [][]string {
	r := v.StandardizationResult
	rows := [][]string{
		{"title", r.TitleStd},
		{"category", r.CategoryStd + " / " + r.SubCategoryStd},
		{"skills", strings.Join(r.SkillsStd, ", ")},
		{"tags", strings.Join(r.TagsStd, ", ")},
		{"complexity", strconv.Itoa(r.ComplexityScore)},
		{"business_value", strconv.FormatFloat(r.BusinessValue, 'f', 1, 64)},
		{"quality", fmt.Sprintf("%d (completeness %d, clarity %d, structure %d, specificity %d)",
			r.Quality.Overall, r.Quality.Completeness, r.Quality.Clarity, r.Quality.Structure, r.Quality.Specificity)},
		{"price", fmt.Sprintf("%.0f / %.0f / %.0f EUR", r.PriceSuggestedMin, r.PriceSuggestedMed, r.PriceSuggestedMax)},
		{"delay", fmt.Sprintf("%d days", r.DelaySuggestedDays)},
	}
	for _, m := range r.MissingInfo {
		rows = append(rows, []string{"missing." + m.Type, m.Priority + ": " + m.Suggestion})
	}
	return append(rows, []string{"source", r.Source})
}

//Personal.AI order the ending
