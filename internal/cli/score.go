package cli

import (
	"fmt"

	"hirematch/internal/domain/matching"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newScoreCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score every posting in a fixture, whatever its status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fx, err := LoadFixture(rt.v.GetString("score.file"))
			if err != nil {
				return err
			}
			profile, err := fx.Profile()
			if err != nil {
				return err
			}

			postings := fx.Postings()
			matches := make([]matching.JobMatch, 0, len(postings))
			for _, p := range postings {
				matches = append(matches, matching.CalculateJobMatch(profile, p))
			}
			rt.logger().Debug("scored fixture", zap.Int("postings", len(matches)))

			return writeMatches(cmd.OutOrStdout(), rt.v.GetString("score.output"), matches)
		},
	}

	cmd.Flags().StringP("file", "f", "", "fixture file (YAML)")
	cmd.Flags().StringP("output", "o", outputTable, "output format: table or json")
	_ = rt.v.BindPFlag("score.file", cmd.Flags().Lookup("file"))
	_ = rt.v.BindPFlag("score.output", cmd.Flags().Lookup("output"))

	return cmd
}

func newRecommendCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank the open postings in a fixture above a minimum score",
		RunE: func(cmd *cobra.Command, _ []string) error {
			minScore := rt.v.GetInt("recommend.min-score")
			if minScore < 0 || minScore > 100 {
				return fmt.Errorf("--min-score must be between 0 and 100, got %d", minScore)
			}

			fx, err := LoadFixture(rt.v.GetString("recommend.file"))
			if err != nil {
				return err
			}
			profile, err := fx.Profile()
			if err != nil {
				return err
			}

			matches := matching.GetRecommendedJobs(profile, fx.Postings(), minScore)
			rt.logger().Debug("ranked fixture",
				zap.Int("postings", len(fx.Jobs)),
				zap.Int("recommended", len(matches)),
				zap.Int("min_score", minScore),
			)

			return writeMatches(cmd.OutOrStdout(), rt.v.GetString("recommend.output"), matches)
		},
	}

	cmd.Flags().StringP("file", "f", "", "fixture file (YAML)")
	cmd.Flags().Int("min-score", matching.DefaultMinScore, "drop postings scoring below this")
	cmd.Flags().StringP("output", "o", outputTable, "output format: table or json")
	_ = rt.v.BindPFlag("recommend.file", cmd.Flags().Lookup("file"))
	_ = rt.v.BindPFlag("recommend.min-score", cmd.Flags().Lookup("min-score"))
	_ = rt.v.BindPFlag("recommend.output", cmd.Flags().Lookup("output"))

	return cmd
}
