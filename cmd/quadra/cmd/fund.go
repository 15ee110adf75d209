package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"quadrafund.io/quadra/cmd/quadra/common"
	quadracommon "quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/storage"
	"quadrafund.io/quadra/lib/token"
)

// credit and approve prepare voter funds; they stand in for the token
// contract operations a voter would perform before a round opens.

var (
	fundCmd *cobra.Command

	flagFundStorage string
	flagFundToken   string
	flagFundHolder  string
	flagFundSpender string
	flagFundAmount  string
)

func init() {
	fundCmd = &cobra.Command{
		Use:   "fund",
		Short: "Token balance and allowance management",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	creditCmd := &cobra.Command{
		Use:   "credit",
		Short: "Credit an amount of a token to a holder",
		Run: func(c *cobra.Command, args []string) {
			st, tokenAddress, amount := parseFundFlags(c)
			defer st.Close()

			holder, err := quadracommon.ParseAddress(flagFundHolder)
			if err != nil {
				common.PrintFlagsError(c, "--holder", err)
			}

			if err := token.Credit(st, tokenAddress, holder, amount); err != nil {
				common.PrintError(c, err)
			}

			balance, err := token.GetBalance(st, tokenAddress, holder)
			if err != nil {
				common.PrintError(c, err)
			}
			fmt.Printf("balance: %s\n", balance.Amount)
		},
	}

	approveCmd := &cobra.Command{
		Use:   "approve",
		Short: "Approve a spender to pull funds from a holder",
		Run: func(c *cobra.Command, args []string) {
			st, tokenAddress, amount := parseFundFlags(c)
			defer st.Close()

			holder, err := quadracommon.ParseAddress(flagFundHolder)
			if err != nil {
				common.PrintFlagsError(c, "--holder", err)
			}
			spender, err := quadracommon.ParseAddress(flagFundSpender)
			if err != nil {
				common.PrintFlagsError(c, "--spender", err)
			}

			if err := token.Approve(st, tokenAddress, holder, spender, amount); err != nil {
				common.PrintError(c, err)
			}

			fmt.Printf("approved: %s\n", amount)
		},
	}

	for _, c := range []*cobra.Command{creditCmd, approveCmd} {
		c.Flags().StringVar(&flagFundStorage, "storage", quadracommon.GetENVValue("QUADRA_STORAGE", "memory://"), "storage uri")
		c.Flags().StringVar(&flagFundToken, "token", "", "funding token address")
		c.Flags().StringVar(&flagFundHolder, "holder", "", "holder address")
		c.Flags().StringVar(&flagFundAmount, "amount", "", "amount")
	}
	approveCmd.Flags().StringVar(&flagFundSpender, "spender", "", "spender address")

	fundCmd.AddCommand(creditCmd)
	fundCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(fundCmd)
}

func parseFundFlags(c *cobra.Command) (*storage.LevelDBBackend, quadracommon.Address, quadracommon.Amount) {
	config, err := storage.NewConfigFromString(flagFundStorage)
	if err != nil {
		common.PrintFlagsError(c, "--storage", err)
	}
	st, err := storage.NewStorage(config)
	if err != nil {
		common.PrintFlagsError(c, "--storage", err)
	}

	tokenAddress, err := quadracommon.ParseAddress(flagFundToken)
	if err != nil {
		common.PrintFlagsError(c, "--token", err)
	}
	amount, err := quadracommon.AmountFromString(flagFundAmount)
	if err != nil {
		common.PrintFlagsError(c, "--amount", err)
	}

	return st, tokenAddress, amount
}
