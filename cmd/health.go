package cmd

import (
	"dsc/pkg/dsc"
	"dsc/pkg/number"

	"github.com/spf13/cobra"
)

// command computing a health factor offline
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "compute the health factor of a collateral value and debt",
	Example: `dsc health --collateral 20000 --debt 9000
dsc health --collateral 17000 --debt 9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		collateral, err := number.ParseFixed(cmd.Flag("collateral").Value.String())
		if err != nil {
			return err
		}

		debt, err := number.ParseFixed(cmd.Flag("debt").Value.String())
		if err != nil {
			return err
		}

		hf := dsc.HealthFactor(collateral, debt)
		if hf.Eq(dsc.MaxHealthFactor()) {
			cmd.Println("health factor: max")
		} else {
			cmd.Println("health factor:", number.FromFixed(hf).String())
		}

		cmd.Println("healthy:", dsc.IsHealthy(hf))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
	healthCmd.Flags().String("collateral", "0", "collateral value in usd")
	healthCmd.Flags().String("debt", "0", "minted debt")
}
