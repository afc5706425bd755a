package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cheerlink/cheerlink/internal/daemon"
)

func init() {
	rootCmd.AddCommand(drawCmd)
	rootCmd.AddCommand(historyCmd)
}

var drawCmd = &cobra.Command{
	Use:   "draw [count]",
	Short: "Spend tickets on charm draws",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDraw,
}

func runDraw(cmd *cobra.Command, args []string) error {
	count := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid draw count %q", args[0])
		}
		count = n
	}

	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	for i := 0; i < count; i++ {
		out, err := d.Gacha.DrawOnce(time.Now())
		if err != nil {
			return err
		}
		tag := "NEW"
		if out.Duplicate {
			tag = fmt.Sprintf("dup, +%d dust", out.DustGain)
		}
		fmt.Printf("[%s] %s (%s) — %s\n", out.Item.Rarity, out.Item.Name, out.Item.ItemID, tag)
	}
	fmt.Printf("Tickets left: %d\n", d.Session.Snapshot().Tickets)
	return nil
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent charm draws",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	recs, err := d.Gacha.DrawHistory(20)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No draws yet. Run 'cheerlink draw' once you have a ticket.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tRARITY\tCHARM\tRESULT")
	for _, r := range recs {
		result := "new"
		if r.Duplicate {
			result = "duplicate"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			r.DrawnAt.Format("2006-01-02 15:04"),
			r.Rarity,
			r.Name,
			result,
		)
	}
	return w.Flush()
}
