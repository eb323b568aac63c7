// cmd/printwatch/check_command.go
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/printwatch/internal/preflight"
)

func newCheckCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run startup checks and report the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)

			rows := make([][]string, 0, len(results))
			anyFailed := false
			for _, r := range results {
				state := "ok"
				if !r.Passed {
					state = "FAIL"
					anyFailed = true
				}
				rows = append(rows, []string{r.Name, state, r.Detail})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Check", "State", "Detail"},
				rows,
			))

			if anyFailed {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}
