package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/guttosm/laundry-service/internal/catalog"
	"github.com/guttosm/laundry-service/internal/domain/dto"
	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/guttosm/laundry-service/internal/optimizer"
	"github.com/guttosm/laundry-service/internal/receipt"
)

var errOrderSource = errors.New("exactly one of --example or --json is required")

type optimizeOutput struct {
	TotalCost string                `json:"total_cost"`
	Breakdown dto.BreakdownResponse `json:"breakdown"`
}

func optimizeCmd() *cobra.Command {
	var (
		example     bool
		orderJSON   string
		catalogFile string
		receiptFile string
	)

	c := &cobra.Command{
		Use:   "optimize",
		Short: "Print the minimum cost of an order and its breakdown",
		Example: `  laundryctl optimize --example
  laundryctl optimize --json '{"shirt": 10, "blazer": 1}' --receipt order.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			order, err := resolveOrder(example, orderJSON)
			if err != nil {
				return err
			}

			cat, err := catalog.Resolve(catalogFile)
			if err != nil {
				return err
			}

			start := time.Now()
			total, breakdown, err := optimizer.New().Optimize(cmd.Context(), cat, order)
			if err != nil {
				return err
			}
			log.Debug().Dur("duration", time.Since(start)).Int("units", order.TotalUnits()).Msg("Order optimized")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(optimizeOutput{
				TotalCost: dto.Money(total),
				Breakdown: dto.NewBreakdownResponse(breakdown),
			}); err != nil {
				return err
			}

			if receiptFile == "" {
				return nil
			}
			created := time.Now().UTC()
			snapshot := cat.Spec()
			return writeReceipt(receiptFile, model.Quote{
				ID:        "cli-" + created.Format("20060102150405"),
				Order:     order,
				Total:     total,
				Breakdown: breakdown,
				Catalog:   &snapshot,
				CreatedAt: created,
			}, cat)
		},
	}

	c.Flags().BoolVar(&example, "example", false, "price the built-in example order")
	c.Flags().StringVar(&orderJSON, "json", "", `order as JSON, e.g. '{"shirt": 3}'`)
	c.Flags().StringVar(&catalogFile, "catalog", "", "YAML catalog file (defaults to the built-in catalog)")
	c.Flags().StringVar(&receiptFile, "receipt", "", "write a PDF receipt to this path")
	return c
}

func resolveOrder(example bool, orderJSON string) (model.Order, error) {
	switch {
	case example && orderJSON == "":
		return catalog.ExampleOrder(), nil
	case !example && orderJSON != "":
		order, err := dto.ParseOrder([]byte(orderJSON))
		if err != nil {
			return nil, fmt.Errorf("parse order: %w", err)
		}
		return order, nil
	default:
		return nil, errOrderSource
	}
}

func writeReceipt(path string, quote model.Quote, cat *model.Catalog) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create receipt: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return receipt.Render(f, quote, cat)
}
