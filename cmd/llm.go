package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/eliteprep/internal/llm"
	"github.com/abhisek/eliteprep/internal/store"
)

const stampLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded AI requests and their cost",
}

// withEvents opens the services, checks the backend keeps an event log and
// hands it to fn.
func withEvents(cmd *cobra.Command, fn func(repo store.EventRepo, out io.Writer) error) error {
	svc, cleanup, err := loadServices(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	repo, err := eventRepo(svc)
	if err != nil {
		return err
	}
	return fn(repo, cmd.OutOrStdout())
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent AI requests, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		return withEvents(cmd, func(repo store.EventRepo, out io.Writer) error {
			events, err := repo.QueryLLMEvents(commandContext(cmd), opts)
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No LLM events found.")
				return nil
			}

			t := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
			for _, e := range events {
				t.Row(
					strconv.Itoa(e.ID),
					e.Timestamp.Local().Format(stampLayout),
					e.Purpose,
					truncate(e.Model, 28),
					strconv.Itoa(e.InputTokens),
					strconv.Itoa(e.OutputTokens),
					strconv.FormatInt(e.LatencyMs, 10),
					mark(e.Success),
				)
			}
			printTable(out, t)
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and reply of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		return withEvents(cmd, func(repo store.EventRepo, out io.Writer) error {
			e, err := repo.GetLLMEvent(commandContext(cmd), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			fields := [][2]string{
				{"ID", strconv.Itoa(e.ID)},
				{"Time", e.Timestamp.Local().Format(stampLayout)},
				{"Provider", e.Provider},
				{"Model", e.Model},
				{"Purpose", e.Purpose},
				{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
				{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
				{"Success", strconv.FormatBool(e.Success)},
			}
			if e.ErrorMessage != "" {
				fields = append(fields, [2]string{"Error", e.ErrorMessage})
			}
			for _, f := range fields {
				fmt.Fprintf(out, "%-10s %s\n", f[0]+":", f[1])
			}

			section(out, "REQUEST", e.RequestBody)
			section(out, "RESPONSE", e.ResponseBody)
			return nil
		})
	},
}

func section(out io.Writer, title, body string) {
	rule := strings.Repeat("─", 60)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintf(out, "\n%s\n%s\n%s\n%s\n", rule, title, rule, strings.TrimRight(body, "\n"))
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(repo store.EventRepo, out io.Writer) error {
			ctx := commandContext(cmd)
			byPurpose, err := repo.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			if len(byPurpose) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded yet.")
				return nil
			}
			byModel, err := repo.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}

			printPurposeUsage(out, byPurpose)
			if len(byModel) > 0 {
				fmt.Fprintln(out)
				printModelCost(out, byModel)
			}
			return nil
		})
	},
}

func printPurposeUsage(out io.Writer, rows []store.LLMUsage) {
	fmt.Fprintln(out, "Usage by purpose")
	t := newTable("Purpose", "Calls", "Input", "Output", "Total", "Avg ms")
	var calls, in, outTok int
	for _, r := range rows {
		t.Row(r.Purpose, strconv.Itoa(r.Calls), strconv.Itoa(r.InputTokens), strconv.Itoa(r.OutputTokens),
			strconv.Itoa(r.InputTokens+r.OutputTokens), strconv.FormatInt(r.AvgLatencyMs, 10))
		calls += r.Calls
		in += r.InputTokens
		outTok += r.OutputTokens
	}
	t.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTok), strconv.Itoa(in+outTok), "")
	printTable(out, t)
}

// printModelCost prices each model with llm.LookupCost. Models without a
// known price show "?" and make the total partial.
func printModelCost(out io.Writer, rows []store.LLMUsage) {
	fmt.Fprintln(out, "Estimated cost (USD)")
	t := newTable("Model", "Calls", "Input", "Output", "Cost")
	var total float64
	var unpriced []string
	for _, r := range rows {
		cost := "?"
		if price := llm.LookupCost(r.Model); price != nil {
			c := price.Cost(r.InputTokens, r.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, r.Model)
		}
		t.Row(truncate(r.Model, 32), strconv.Itoa(r.Calls), strconv.Itoa(r.InputTokens), strconv.Itoa(r.OutputTokens), cost)
	}
	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	t.Row(label, "", "", "", formatCost(total))
	printTable(out, t)

	if len(unpriced) > 0 {
		fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
	}
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. question-gen, exam-batch, tutor-chat)")
	llmListCmd.Flags().Duration("since", 0, "Only show events newer than this, e.g. 24h")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
