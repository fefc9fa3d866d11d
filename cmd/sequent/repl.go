package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sequentlabs/sequent"
	"github.com/sequentlabs/sequent/internal/logging"
	"github.com/sequentlabs/sequent/internal/presentation/tui"
	"github.com/sequentlabs/sequent/pkg/adapters/sandbox"
	"github.com/sequentlabs/sequent/pkg/domain"
	"github.com/sequentlabs/sequent/pkg/session"
)

var replCmd = &cobra.Command{
	Use:   "repl [goal-type]",
	Short: "Drive a proof session interactively",
	Long: `Starts an interactive session against the sandbox engine. Each input line
is a step applied to the current checkpoint; a failed step leaves the
checkpoint unchanged. Commands: :goals, :messages, :back, :goto N,
:giveup, :quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		goalType := "Nat"
		if len(args) > 0 {
			goalType = args[0]
		}

		driver := sequent.New(sandbox.New(),
			sequent.WithLogger(logging.New(cfg.SlogLevel())),
			sequent.WithDefaultBudget(cfg.DefaultBudget),
		)
		svc := driver.Service()

		tui.PrintBanner(sequent.Version)
		render := tui.NewRenderer()

		current, err := svc.NewState([]domain.GoalSpec{{Name: "main", Type: goalType}})
		if err != nil {
			return fmt.Errorf("failed to open goal %q: %w", goalType, err)
		}
		showGoals(render, svc, current)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Printf("[%d] > ", int(current))
			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println()
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			switch {
			case line == ":quit" || line == ":q":
				return nil
			case line == ":goals":
				showGoals(render, svc, current)
			case line == ":messages":
				msgs, err := svc.Messages(current)
				if err != nil {
					fmt.Println("error:", err)
					continue
				}
				for _, m := range msgs {
					fmt.Printf("  [%s] %s\n", m.Severity, m.Message)
				}
			case line == ":back":
				node, err := svc.Lookup(current)
				if err != nil {
					fmt.Println("error:", err)
					continue
				}
				current = node.Parent
				showGoals(render, svc, current)
			case strings.HasPrefix(line, ":goto "):
				n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, ":goto ")))
				if err != nil {
					fmt.Println("usage: :goto N")
					continue
				}
				if _, err := svc.Lookup(domain.NodeID(n)); err != nil {
					fmt.Println("error:", err)
					continue
				}
				current = domain.NodeID(n)
				showGoals(render, svc, current)
			case line == ":giveup":
				id, err := svc.GiveUp(current)
				if err != nil {
					fmt.Println("error:", err)
					continue
				}
				current = id
				showGoals(render, svc, current)
			case strings.HasPrefix(line, ":"):
				fmt.Println("unknown command", line)
			default:
				id, err := svc.ApplyStep(ctx, current, line, 0)
				if err != nil {
					fmt.Println("error:", err)
					continue
				}
				current = id
				showGoals(render, svc, current)
			}
		}
	},
}

func showGoals(render func(string) (string, error), svc *session.Service, id domain.NodeID) {
	goals, err := svc.Goals(id)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	out, err := render(tui.GoalsMarkdown(id, goals))
	if err != nil {
		fmt.Println(tui.GoalsMarkdown(id, goals))
		return
	}
	fmt.Print(out)
}

func init() {
	rootCmd.AddCommand(replCmd)
}
