package cmd

import (
	"context"
	"fmt"
	"os"

	"bistdesk/api"
	"bistdesk/internal/domain"
	"bistdesk/internal/util"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "bistdesk",
	Short:         "Transaction ledger and buy-signal evaluator for Borsa Istanbul stocks",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withDependencies wires the full handler for a subcommand run and
// closes the db afterwards.
func withDependencies(run func(handler *api.ApiHandler) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		handler, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(handler)
		return run(handler)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(signalCmd())
	rootCmd.AddCommand(adviseCmd())
	rootCmd.AddCommand(recordCmd())
	rootCmd.AddCommand(positionsCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(valuationCmd())
	rootCmd.AddCommand(watchlistCmd())
	rootCmd.AddCommand(alarmCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(symbolsCmd())
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := util.LoadSettings()
			if err != nil {
				return err
			}
			handler, err := InitializeDependencies()
			if err != nil {
				return err
			}
			defer CloseDependencies(handler)
			return handler.StartApi(settings.Port)
		},
	}
}

func analyzeCmd() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "analyze <symbol>",
		Short: "Print the full analysis report for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(func(handler *api.ApiHandler) error {
				report, err := handler.AnalysisService.Analyze(args[0], period)
				if err != nil {
					return err
				}
				fmt.Print(handler.AnalysisService.RenderText(report))
				return nil
			})(cmd, args)
		},
	}
	cmd.Flags().StringVar(&period, "period", "3mo", "history period (1d, 5d, 1mo, 3mo, 6mo, 1y, 2y)")
	return cmd
}

func signalCmd() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "signal <symbol>",
		Short: "Print only the buy-signal score for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(func(handler *api.ApiHandler) error {
				report, err := handler.AnalysisService.Analyze(args[0], period)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %d/7 (%s)\n", report.Symbol, report.Signal.Score, report.Signal.Classification)
				for _, reason := range report.Signal.Reasons {
					fmt.Printf("  - %s\n", reason)
				}
				return nil
			})(cmd, args)
		},
	}
	cmd.Flags().StringVar(&period, "period", "3mo", "history period")
	return cmd
}

func adviseCmd() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "advise <symbol>",
		Short: "Print the expert opinions for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(func(handler *api.ApiHandler) error {
				report, err := handler.AnalysisService.Analyze(args[0], period)
				if err != nil {
					return err
				}
				opinions, err := handler.AdvisorService.Advise(context.Background(), report)
				if err != nil {
					return err
				}
				fmt.Println(opinions.TechnicalExpert)
				fmt.Println(opinions.FundamentalExpert)
				fmt.Println(opinions.VolumeExpert)
				if opinions.Commentary != nil {
					fmt.Printf("\n%s\n", *opinions.Commentary)
				}
				return nil
			})(cmd, args)
		},
	}
	cmd.Flags().StringVar(&period, "period", "3mo", "history period")
	return cmd
}

func recordCmd() *cobra.Command {
	var (
		operation string
		price     string
		quantity  int64
	)
	cmd := &cobra.Command{
		Use:   "record <symbol>",
		Short: "Record a buy or sell transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(func(handler *api.ApiHandler) error {
				parsedOperation, err := domain.ParseTransactionOperation(operation)
				if err != nil {
					return err
				}
				parsedPrice, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("failed to parse price: %w", err)
				}
				inserted, err := handler.LedgerService.RecordTransaction(domain.Transaction{
					Symbol:    args[0],
					Operation: parsedOperation,
					Price:     parsedPrice,
					Quantity:  quantity,
				})
				if err != nil {
					return err
				}
				util.Pprint(inserted)
				return nil
			})(cmd, args)
		},
	}
	cmd.Flags().StringVar(&operation, "operation", "", "BUY or SELL")
	cmd.Flags().StringVar(&price, "price", "", "price per share")
	cmd.Flags().Int64Var(&quantity, "quantity", 0, "number of shares")
	cmd.MarkFlagRequired("operation")
	cmd.MarkFlagRequired("price")
	cmd.MarkFlagRequired("quantity")
	return cmd
}

func positionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "positions",
		Short: "List open positions",
		RunE: withDependencies(func(handler *api.ApiHandler) error {
			positions, err := handler.LedgerService.ListPositions()
			if err != nil {
				return err
			}
			util.Pprint(positions)
			return nil
		}),
	}
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the portfolio summary",
		RunE: withDependencies(func(handler *api.ApiHandler) error {
			summary, err := handler.LedgerService.Summary()
			if err != nil {
				return err
			}
			util.Pprint(summary)
			return nil
		}),
	}
}

func valuationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "valuation",
		Short: "Mark open positions to market",
		RunE: withDependencies(func(handler *api.ApiHandler) error {
			rows, err := handler.ValuationService.ValuePositions()
			if err != nil {
				return err
			}
			util.Pprint(rows)
			return nil
		}),
	}
}

func watchlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage the watchlist",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List watched symbols with quotes",
		RunE: withDependencies(func(handler *api.ApiHandler) error {
			rows, err := handler.ValuationService.WatchlistQuotes()
			if err != nil {
				return err
			}
			util.Pprint(rows)
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <symbol>",
		Short: "Add a symbol to the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(func(handler *api.ApiHandler) error {
				added, err := handler.LedgerService.AddToWatchlist(args[0])
				if err != nil {
					return err
				}
				if !added {
					fmt.Println("already watching")
				}
				return nil
			})(cmd, args)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <symbol>",
		Short: "Remove a symbol from the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(func(handler *api.ApiHandler) error {
				return handler.LedgerService.RemoveFromWatchlist(args[0])
			})(cmd, args)
		},
	})
	return cmd
}

func alarmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alarm",
		Short: "Manage price alarms",
	}

	var (
		target    string
		condition string
	)
	addCmd := &cobra.Command{
		Use:   "add <symbol>",
		Short: "Create a price alarm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(func(handler *api.ApiHandler) error {
				parsedTarget, err := decimal.NewFromString(target)
				if err != nil {
					return fmt.Errorf("failed to parse target price: %w", err)
				}
				alarm, err := handler.LedgerService.CreateAlarm(args[0], parsedTarget, condition)
				if err != nil {
					return err
				}
				util.Pprint(alarm)
				return nil
			})(cmd, args)
		},
	}
	addCmd.Flags().StringVar(&target, "target", "", "target price")
	addCmd.Flags().StringVar(&condition, "condition", "", "ABOVE or BELOW")
	addCmd.MarkFlagRequired("target")
	addCmd.MarkFlagRequired("condition")
	cmd.AddCommand(addCmd)

	var all bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List active alarms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(func(handler *api.ApiHandler) error {
				alarms, err := handler.LedgerService.ListAlarms(!all)
				if err != nil {
					return err
				}
				util.Pprint(alarms)
				return nil
			})(cmd, args)
		},
	}
	listCmd.Flags().BoolVar(&all, "all", false, "include resolved alarms")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Sweep active alarms against live quotes",
		RunE: withDependencies(func(handler *api.ApiHandler) error {
			triggered, err := handler.AlarmService.Sweep()
			if err != nil {
				return err
			}
			if len(triggered) == 0 {
				fmt.Println("no alarms triggered")
				return nil
			}
			util.Pprint(triggered)
			return nil
		}),
	})
	return cmd
}

func exportCmd() *cobra.Command {
	var symbol string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the transaction history as CSV to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(func(handler *api.ApiHandler) error {
				var filter *string
				if symbol != "" {
					filter = &symbol
				}
				return handler.LedgerService.ExportTransactionsCsv(os.Stdout, filter)
			})(cmd, args)
		},
	}
	cmd.Flags().StringVar(&symbol, "symbol", "", "only this symbol")
	return cmd
}

func symbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols [query]",
		Short: "List or search the BIST symbol directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(func(handler *api.ApiHandler) error {
				symbols := handler.SymbolsService.List()
				if len(args) == 1 {
					symbols = handler.SymbolsService.Search(args[0])
				}
				for _, s := range symbols {
					fmt.Println(s)
				}
				return nil
			})(cmd, args)
		},
	}
}
