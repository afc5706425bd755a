package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cheerlink/cheerlink/internal/daemon"
)

func init() {
	missionsCmd.AddCommand(missionsClaimCmd)
	rootCmd.AddCommand(missionsCmd)
	rootCmd.AddCommand(bonusCmd)
}

var missionsCmd = &cobra.Command{
	Use:   "missions",
	Short: "List today's missions",
	RunE:  runMissions,
}

func runMissions(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	st := d.Session.Snapshot()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMISSION\tREWARD\tSTATUS")
	for _, m := range st.Daily.Missions {
		status := "open"
		switch {
		case m.Claimed:
			status = "claimed"
		case m.Achieved:
			status = "achieved"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", m.ID, m.Title, m.Reward, status)
	}
	return w.Flush()
}

var missionsClaimCmd = &cobra.Command{
	Use:   "claim <mission-id>",
	Short: "Claim an achieved mission's ticket reward",
	Args:  cobra.ExactArgs(1),
	RunE:  runMissionsClaim,
}

func runMissionsClaim(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	reward, err := d.Engine.ClaimMission(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Claimed %s: +%d tickets (now %d)\n", args[0], reward, d.Session.Snapshot().Tickets)
	return nil
}

var bonusCmd = &cobra.Command{
	Use:   "bonus",
	Short: "Claim the one-time welcome ticket bonus",
	RunE:  runBonus,
}

func runBonus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	bonus, err := d.Engine.ClaimFirstBonus()
	if err != nil {
		return err
	}
	fmt.Printf("Welcome bonus claimed: +%d tickets\n", bonus)
	return nil
}
