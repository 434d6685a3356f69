package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"PAIBot/internal/advisor"
	"PAIBot/internal/assessment"
	"PAIBot/internal/catalog"
	"PAIBot/internal/i18n"
	"PAIBot/internal/model"
	"PAIBot/internal/recommend"
	"PAIBot/internal/report"
)

var (
	langFlag    string
	catalogFlag string
	profileFlag string
)

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "List the sustainable investment tracks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(catalogFlag)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.FormatTracks(cat.Tracks(), i18n.Parse(langFlag)))
		return nil
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Score a saved profile against the track catalog",
	Long: `Reads a profile in the same JSON shape the assessment stores
(risk, timeHorizon, goalType, biases, esg, sdgPriorities), fills missing
dimensions with defaults and prints the top three tracks.

Example:
  paibot recommend --profile profile.json --lang zh`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(profileFlag)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	var partial model.PartialProfile
	if err := json.Unmarshal(data, &partial); err != nil {
		return fmt.Errorf("parse profile: %w", err)
	}
	cat, err := catalog.Load(catalogFlag)
	if err != nil {
		return err
	}

	loc := i18n.Parse(langFlag)
	p := assessment.Merge(partial, model.PartialProfile{})
	res := &advisor.Result{
		Profile:         p,
		InvestorType:    i18n.For(loc).InvestorType(p.Risk.Raw),
		Summary:         advisor.Summary(p, loc),
		Biases:          p.Biases,
		Recommendations: recommend.NewEngine(loc).Recommend(p, cat.Tracks()),
	}
	fmt.Fprint(cmd.OutOrStdout(), report.FormatResult(res, loc))
	return nil
}
