package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/semestra/semestra/internal/llm"
	"github.com/semestra/semestra/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		subject, _ := cmd.Flags().GetString("subject")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return runLLMList(cmd.Context(), e, store.QueryOpts{Limit: limit, Purpose: purpose, Subject: subject})
	},
}

func runLLMList(ctx context.Context, e *env, opts store.QueryOpts) error {
	events, err := e.store.EventRepo().QueryLLMEvents(ctx, opts)
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}

	if len(events) == 0 {
		fmt.Fprintln(e.out, "No LLM events found.")
		return nil
	}

	fmt.Fprintf(e.out, "%-5s  %-19s  %-10s  %-24s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
		"ID", "Timestamp", "Purpose", "Subject", "Provider", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(e.out, strings.Repeat("─", 136))

	for _, ev := range events {
		ok := "✓"
		if !ev.Success {
			ok = "✗"
		}
		fmt.Fprintf(e.out, "%-5d  %-19s  %-10s  %-24s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
			ev.ID,
			ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
			ev.Purpose,
			truncate(ev.Subject, 24),
			ev.Provider,
			truncate(ev.Model, 28),
			ev.InputTokens,
			ev.OutputTokens,
			ev.LatencyMs,
			ok,
		)
	}
	return nil
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return runLLMView(cmd.Context(), e, id)
	},
}

func runLLMView(ctx context.Context, e *env, id int) error {
	ev, err := e.store.EventRepo().GetLLMEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if ev == nil {
		return fmt.Errorf("event %d not found", id)
	}

	w := e.out
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(w, "ID:        %d\n", ev.ID)
	fmt.Fprintf(w, "Time:      %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Provider:  %s\n", ev.Provider)
	fmt.Fprintf(w, "Model:     %s\n", ev.Model)
	fmt.Fprintf(w, "Purpose:   %s\n", ev.Purpose)
	if ev.Subject != "" {
		fmt.Fprintf(w, "Subject:   %s\n", ev.Subject)
	}
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", ev.InputTokens, ev.OutputTokens)
	fmt.Fprintf(w, "Latency:   %dms\n", ev.LatencyMs)
	fmt.Fprintf(w, "Success:   %v\n", ev.Success)
	if ev.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", ev.ErrorMessage)
	}

	for _, part := range []struct{ title, body string }{
		{"REQUEST", ev.RequestBody},
		{"RESPONSE", ev.ResponseBody},
	} {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, part.title)
		fmt.Fprintln(w, sep)
		if part.body != "" {
			fmt.Fprintln(w, part.body)
		} else {
			fmt.Fprintln(w, "(not captured)")
		}
	}
	return nil
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return runLLMStats(cmd.Context(), e)
	},
}

func runLLMStats(ctx context.Context, e *env) error {
	w := e.out
	repo := e.store.EventRepo()

	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}
	if len(stats) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return nil
	}

	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "%-16s  %6s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Failed", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(w, strings.Repeat("─", 80))

	var totalCalls, totalFailed, totalIn, totalOut int
	for _, st := range stats {
		fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d  %10d  %8d\n",
			st.Key, st.Calls, st.Failures, st.InputTokens, st.OutputTokens,
			st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
		totalCalls += st.Calls
		totalFailed += st.Failures
		totalIn += st.InputTokens
		totalOut += st.OutputTokens
	}

	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d  %10d\n",
		"TOTAL", totalCalls, totalFailed, totalIn, totalOut, totalIn+totalOut)

	modelUsage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, strings.Repeat("─", 80))

	var totalCost float64
	var unknownModels []string
	for _, mu := range modelUsage {
		cost := llm.LookupCost(mu.Key)
		if cost == nil {
			unknownModels = append(unknownModels, mu.Key)
			fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(mu.Key, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
			continue
		}
		c := cost.Cost(mu.InputTokens, mu.OutputTokens)
		totalCost += c
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(mu.Key, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
	}

	fmt.Fprintln(w, strings.Repeat("─", 80))
	label := "TOTAL"
	if len(unknownModels) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))

	if len(unknownModels) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
	}
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. insights)")
	llmListCmd.Flags().StringP("subject", "s", "", "Filter by subject (student key, e.g. \"Ana Souza::9A\")")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
