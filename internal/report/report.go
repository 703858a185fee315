package report

import (
	"fmt"
	"io"

	"lp-rebalance-calc/internal/estimate"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	FormatTable = "table"
	FormatText  = "text"
)

func Render(w io.Writer, format string, res estimate.Result) error {
	switch format {
	case FormatTable:
		return Table(w, res)
	case FormatText, "":
		return Text(w, res)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Text mirrors the result panel of the calculator form.
func Text(w io.Writer, res estimate.Result) error {
	_, err := fmt.Fprintf(w, "Calculated Range Percentage: %s\nTotal Break-Even Cost: %s\n%s\n",
		res.RangeLabel(), res.CostLabel(), estimate.BreakEvenNote)
	return err
}

func Table(w io.Writer, res estimate.Result) error {
	b := res.Breakdown
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("LP Rebalancing Cost")
	t.AppendHeader(table.Row{"Item", "Value"})
	t.AppendRows([]table.Row{
		{"Total LP value", usd(res.TotalValueUSD)},
		{"Price range", fmt.Sprintf("%.4f - %.4f", res.MinPrice, res.MaxPrice)},
		{"Current price (mean)", fmt.Sprintf("%.4f", res.CurrentPrice)},
		{"Range each side", res.RangeLabel()},
		{"Price ratio k", fmt.Sprintf("%.6f", b.PriceRatio)},
		{"Impermanent loss", fmt.Sprintf("%.4f%%", b.ImpermanentLoss*100)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"IL cost", usd(b.ILCostUSD)},
		{"Swap fee", usd(b.SwapFeeUSD)},
		{"Gas fee", usd(b.GasFeeUSD)},
	})
	t.AppendFooter(table.Row{"Break-even cost", res.CostLabel()})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.Render()
	_, err := fmt.Fprintln(w, estimate.BreakEvenNote)
	return err
}

func Assumptions(w io.Writer, items []string) error {
	if _, err := fmt.Fprintln(w, "Assumptions for this calculator:"); err != nil {
		return err
	}
	for i, item := range items {
		if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, item); err != nil {
			return err
		}
	}
	return nil
}

func usd(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
