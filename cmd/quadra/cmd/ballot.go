package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quadrafund.io/quadra/cmd/quadra/common"
	"quadrafund.io/quadra/lib/ballot"
	quadracommon "quadrafund.io/quadra/lib/common"
)

var (
	ballotCmd *cobra.Command

	flagBallotGrant  string
	flagBallotToken  string
	flagBallotAmount string
)

func init() {
	ballotCmd = &cobra.Command{
		Use:   "ballot",
		Short: "Ballot wire format utilities",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a ballot to its 72 byte hex form",
		Run: func(c *cobra.Command, args []string) {
			grant, err := quadracommon.ParseAddress(flagBallotGrant)
			if err != nil {
				common.PrintFlagsError(c, "--grant", err)
			}
			token, err := quadracommon.ParseAddress(flagBallotToken)
			if err != nil {
				common.PrintFlagsError(c, "--token", err)
			}
			amount, err := quadracommon.AmountFromString(flagBallotAmount)
			if err != nil {
				common.PrintFlagsError(c, "--amount", err)
			}

			b := ballot.NewBallot(grant, token, amount)
			if err := b.IsWellFormed(); err != nil {
				common.PrintError(c, err)
			}

			fmt.Printf("%s\n", hex.EncodeToString(b.MustSerialize()))
		},
	}
	encodeCmd.Flags().StringVar(&flagBallotGrant, "grant", "", "grant payout address")
	encodeCmd.Flags().StringVar(&flagBallotToken, "token", "", "funding token address")
	encodeCmd.Flags().StringVar(&flagBallotAmount, "amount", "", "amount of funding token")

	decodeCmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a 72 byte hex ballot",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			raw, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
			if err != nil {
				common.PrintError(c, err)
			}

			b, err := ballot.ParseBallot(raw)
			if err != nil {
				common.PrintError(c, err)
			}

			fmt.Printf("%s\n", b)
		},
	}

	ballotCmd.AddCommand(encodeCmd)
	ballotCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(ballotCmd)
}
