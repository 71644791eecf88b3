package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/caffeinepub/food-order-delivery-platform/internal/client/storefront"
)

const timeLayout = "15:04"

func renderDashboard(out io.Writer, d storefront.Dashboard) error {
	fmt.Fprintf(out, "orders: all=%d pending=%d active=%d delivered=%d cancelled=%d (filter: %s)\n",
		d.Counts.All, d.Counts.Pending, d.Counts.Active, d.Counts.Delivered, d.Counts.Cancelled, d.Filter)
	if len(d.Orders) == 0 {
		fmt.Fprintln(out, "no orders")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tSTATUS\tITEMS\tTOTAL\tPLACED\tNEXT")
	for _, v := range d.Orders {
		next := "-"
		if v.Next != nil {
			next = v.Next.Label
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			v.ShortID, v.Owner, v.Label, v.ItemCount, v.Total.StringFixed(2), v.PlacedAt.Local().Format(timeLayout), next)
	}
	return tw.Flush()
}
