// Package render formats roll sessions, statistics, and history as
// plain text or JSON for the CLI. The canonical notation string comes
// from dice.Expression.String; render never reconstructs it.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/cory-johannsen/dicestats/internal/analyze"
	"github.com/cory-johannsen/dicestats/internal/dice"
	"github.com/cory-johannsen/dicestats/internal/prob"
)

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Session writes a roll session as text. verbose adds per-group die
// values for every roll.
func Session(w io.Writer, s dice.RollSession, verbose bool) {
	fmt.Fprintf(w, "Rolling %s (%d roll", s.Expression.String(), s.Count())
	if s.Count() != 1 {
		fmt.Fprint(w, "s")
	}
	fmt.Fprint(w, ")")
	if s.Seed != nil {
		fmt.Fprintf(w, " [seed %d]", *s.Seed)
	}
	fmt.Fprintln(w)

	for i, r := range s.Rolls {
		if verbose {
			fmt.Fprintf(w, "  roll %d: %v %+d = %d\n", i+1, r.GroupRolls, r.Modifier, r.Total)
		} else {
			fmt.Fprintf(w, "  roll %d: %d\n", i+1, r.Total)
		}
	}

	if s.Count() > 1 {
		fmt.Fprintf(w, "average %.2f  min %d  max %d  (theoretical average %.2f)\n",
			s.AverageTotal(), s.MinTotal(), s.MaxTotal(), s.Expression.Average())
	}
}

// Statistics writes the theoretical distribution table for an
// expression.
func Statistics(w io.Writer, st prob.StatisticsResult) {
	fmt.Fprintf(w, "Statistics for %s\n", st.Expression.String())
	fmt.Fprintf(w, "range %d-%d  average %.2f  most likely %d  median %d\n",
		st.Min, st.Max, st.Average, st.MostLikely(), st.Median())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "value\tprobability")
	for _, v := range st.Distribution.Values() {
		fmt.Fprintf(tw, "%d\t%.4f%%\n", v, st.Distribution[v]*100)
	}
	tw.Flush()
}

// Extended writes the extended statistics block.
func Extended(w io.Writer, ext prob.Extended) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Extended statistics")
	fmt.Fprintf(tw, "mean\t%.4f\n", ext.Mean)
	fmt.Fprintf(tw, "median\t%d\n", ext.Median)
	fmt.Fprintf(tw, "mode\t%d\n", ext.Mode)
	fmt.Fprintf(tw, "variance\t%.4f\n", ext.Variance)
	fmt.Fprintf(tw, "std dev\t%.4f\n", ext.StdDev)
	fmt.Fprintf(tw, "skewness\t%.4f\n", ext.Skewness)
	fmt.Fprintf(tw, "kurtosis\t%.4f\n", ext.Kurtosis)
	fmt.Fprintf(tw, "coeff of variation\t%.4f\n", ext.CoefficientOfVariation)
	for _, p := range sortedPercentiles(ext.Percentiles) {
		fmt.Fprintf(tw, "p%02d\t%d\n", p, ext.Percentiles[p])
	}
	tw.Flush()
}

// Analysis writes the empirical session summary.
func Analysis(w io.Writer, sum analyze.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "rolls\t%d\n", sum.TotalRolls)
	fmt.Fprintf(tw, "mean\t%.4f (theoretical %.4f, deviation %.4f)\n",
		sum.Mean, sum.TheoreticalMean, sum.MeanDeviation)
	fmt.Fprintf(tw, "median\t%.1f\n", sum.Median)
	fmt.Fprintf(tw, "modes\t%v\n", sum.Modes)
	fmt.Fprintf(tw, "variance\t%.4f\n", sum.Variance)
	fmt.Fprintf(tw, "std dev\t%.4f\n", sum.StdDev)
	fmt.Fprintf(tw, "min/max/range\t%d/%d/%d\n", sum.Min, sum.Max, sum.Range)
	for _, p := range sortedPercentiles(sum.Percentiles) {
		fmt.Fprintf(tw, "p%02d\t%d\n", p, sum.Percentiles[p])
	}
	tw.Flush()
}

// History writes the recent sessions, oldest first. total is the full
// number of stored sessions, which may exceed len(sessions).
func History(w io.Writer, sessions []dice.RollSession, total int) {
	if total == 0 {
		fmt.Fprintln(w, "No roll history.")
		return
	}
	fmt.Fprintf(w, "Showing %d of %d sessions\n", len(sessions), total)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "expression\trolls\taverage\tmin\tmax\tseed")
	for _, s := range sessions {
		seed := "-"
		if s.Seed != nil {
			seed = fmt.Sprintf("%d", *s.Seed)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%d\t%d\t%s\n",
			s.Expression.String(), s.Count(), s.AverageTotal(), s.MinTotal(), s.MaxTotal(), seed)
	}
	tw.Flush()
}

// Info writes the structural breakdown of an expression.
func Info(w io.Writer, expr dice.Expression) {
	fmt.Fprintf(w, "Expression %s\n", expr.String())
	fmt.Fprintf(w, "groups %d  dice %d  modifier %+d\n",
		len(expr.Groups), expr.TotalDice(), expr.Modifier)
	fmt.Fprintf(w, "min %d  max %d  average %.2f\n", expr.Min(), expr.Max(), expr.Average())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "group\tmin\tmax\taverage")
	for _, g := range expr.Groups {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\n", g.String(), g.Min(), g.Max(), g.Average())
	}
	tw.Flush()
}

func sortedPercentiles(m map[int]int) []int {
	ps := make([]int, 0, len(m))
	for p := range m {
		ps = append(ps, p)
	}
	sort.Ints(ps)
	return ps
}
