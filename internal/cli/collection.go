package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cheerlink/cheerlink/internal/daemon"
	"github.com/cheerlink/cheerlink/internal/infra/catalog"
)

func init() {
	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(equipCmd)
	rootCmd.AddCommand(colorCmd)
	rootCmd.AddCommand(wishCmd)
}

var collectionCmd = &cobra.Command{
	Use:     "collection",
	Aliases: []string{"charms"},
	Short:   "List owned charms",
	RunE:    runCollection,
}

func runCollection(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	st := d.Session.Snapshot()
	if len(st.Inventory) == 0 {
		fmt.Println("No charms yet. Run 'cheerlink draw' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHARM\tRARITY\tCOUNT\tCOLORS\tEQUIPPED")
	for _, owned := range st.Inventory {
		rarity := "?"
		total := len(owned.UnlockedColors)
		if def := catalog.Lookup(owned.ItemID); def != nil {
			rarity = string(def.Rarity)
			total = len(def.Palette)
		}
		equipped := ""
		if owned.ItemID == st.EquippedItemID {
			equipped = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d/%d %s\t%s\n",
			owned.Name,
			rarity,
			owned.OwnedCount,
			len(owned.UnlockedColors), total,
			strings.Join(owned.UnlockedColors, ","),
			equipped,
		)
	}
	return w.Flush()
}

var equipCmd = &cobra.Command{
	Use:   "equip <item-id>",
	Short: "Equip an owned charm",
	Args:  cobra.ExactArgs(1),
	RunE:  runEquip,
}

func runEquip(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Gacha.Equip(args[0]); err != nil {
		return err
	}
	fmt.Printf("Equipped %s\n", args[0])
	return nil
}

var colorCmd = &cobra.Command{
	Use:   "color <item-id>",
	Short: "Unlock the next palette color with glitter dust",
	Args:  cobra.ExactArgs(1),
	RunE:  runColor,
}

func runColor(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	color, err := d.Gacha.UnlockColor(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Unlocked %s for %s (dust left: %d)\n", color, args[0], d.Session.Snapshot().GlitterDust)
	return nil
}

var wishCmd = &cobra.Command{
	Use:   "wish <item-id>",
	Short: "Toggle a charm on the make-it-real wishlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWish,
}

func runWish(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	wished, err := d.Gacha.ToggleWishlist(args[0])
	if err != nil {
		return err
	}
	if wished {
		fmt.Printf("Added %s to the wishlist\n", args[0])
	} else {
		fmt.Printf("Removed %s from the wishlist\n", args[0])
	}
	return nil
}
