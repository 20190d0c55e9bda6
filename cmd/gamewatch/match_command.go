package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gamewatch/internal/matching"
)

func newMatchCommand() *cobra.Command {
	var threshold float64
	var fallbackThreshold float64

	cmd := &cobra.Command{
		Use:         "match <title> <candidate>...",
		Short:       "Score storefront candidates against a catalog title",
		Args:        cobra.MinimumNArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			search := args[0]
			candidates := args[1:]

			matcher := matching.NewMatcher(
				matching.WithThreshold(threshold),
				matching.WithFallbackThreshold(fallbackThreshold),
			)
			match := matcher.FindBestMatch(search, candidates)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Search: %q -> normalized %q\n", search, matching.Normalize(search))
			for i, candidate := range candidates {
				marker := " "
				if match.Found() && i == match.Index {
					marker = "*"
				}
				fmt.Fprintf(out, "%s [%d] %q -> normalized %q\n", marker, i, candidate, matching.Normalize(candidate))
			}
			if match.Found() {
				fmt.Fprintf(out, "Best match: index %d with score %.4f (%s strategy)\n", match.Index, match.Score, match.Strategy())
			} else {
				fmt.Fprintf(out, "No match: best score %.4f below threshold %.2f (%s strategy)\n", match.Score, matcher.Threshold(), match.Strategy())
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", matching.DefaultThreshold, "Minimum score for the vector strategy")
	cmd.Flags().Float64Var(&fallbackThreshold, "fallback-threshold", matching.DefaultFallbackThreshold, "Minimum score for the token-overlap strategy")
	return cmd
}
