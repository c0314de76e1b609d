package service

import (
	"fmt"
	"io"
	"os"

	"futures-order-bot-binance/internal/model"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// PrintOrderResult renders the outcome of the order attempt to stdout.
func PrintOrderResult(result model.OrderResult) {
	RenderOrderResult(os.Stdout, result)
}

// RenderOrderResult writes the order result table to w.
func RenderOrderResult(w io.Writer, result model.OrderResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("ORDER EXECUTION RESULT")
	t.SetStyle(table.StyleRounded)

	if result.Success {
		t.AppendRows([]table.Row{
			{"✅ Result", result.Message},
			{"Order ID", result.OrderID},
			{"Symbol", result.Symbol},
			{"Side", result.Side},
			{"Type", result.Type},
			{"Quantity", result.Quantity.String()},
		})
		if result.Price.Sign() > 0 {
			t.AppendRow(table.Row{"Price", result.Price.String()})
		}
		if result.StopPrice.Sign() > 0 {
			t.AppendRow(table.Row{"Stop Price", result.StopPrice.String()})
		}
		t.AppendRow(table.Row{"Status", result.Status})
	} else {
		t.AppendRow(table.Row{"❌ Result", result.Message})
		if result.Err != "" {
			t.AppendRow(table.Row{"Error Details", result.Err})
		}
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 14, Align: text.AlignLeft},
		{Number: 2, WidthMin: 30, WidthMax: 60, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Fprintln(w)
}
