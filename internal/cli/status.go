package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cheerlink/cheerlink/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's engagement and the wallet",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	st := d.Session.Snapshot()
	windowHits := d.Engine.WindowCount(time.Now())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Date\t%s\n", st.Daily.DateKey)
	fmt.Fprintf(w, "Heat level\t%d\n", st.Daily.Level)
	fmt.Fprintf(w, "Window hits\t%d\n", windowHits)
	fmt.Fprintf(w, "Total hits today\t%d\n", st.Daily.TotalHits)
	fmt.Fprintf(w, "Tickets\t%d\n", st.Tickets)
	fmt.Fprintf(w, "Glitter dust\t%d\n", st.GlitterDust)
	fmt.Fprintf(w, "Charms owned\t%d\n", len(st.Inventory))
	if st.EquippedItemID != "" {
		fmt.Fprintf(w, "Equipped\t%s\n", st.EquippedItemID)
	}
	return w.Flush()
}
