package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quadrafund.io/quadra/cmd/quadra/common"
	quadracommon "quadrafund.io/quadra/lib/common"
	quadraerrors "quadrafund.io/quadra/lib/errors"
	"quadrafund.io/quadra/lib/round"
	"quadrafund.io/quadra/lib/storage"
)

var (
	voteCmd *cobra.Command

	flagVoteStorage  string
	flagVoteRound    string
	flagVoteVoter    string
	flagVoteStrategy string
)

func init() {
	voteCmd = &cobra.Command{
		Use:   "vote <encoded ballot hex> [<encoded ballot hex>...]",
		Short: "Cast a batch of encoded ballots through a round",
		Args:  cobra.MinimumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			config, err := storage.NewConfigFromString(flagVoteStorage)
			if err != nil {
				common.PrintFlagsError(c, "--storage", err)
			}
			st, err := storage.NewStorage(config)
			if err != nil {
				common.PrintFlagsError(c, "--storage", err)
			}
			defer st.Close()

			roundAddress, err := quadracommon.ParseAddress(flagVoteRound)
			if err != nil {
				common.PrintFlagsError(c, "--round", err)
			}
			voter, err := quadracommon.ParseAddress(flagVoteVoter)
			if err != nil {
				common.PrintFlagsError(c, "--voter", err)
			}

			var encodedBallots [][]byte
			for _, arg := range args {
				raw, err := hex.DecodeString(strings.TrimPrefix(arg, "0x"))
				if err != nil {
					common.PrintError(c, err)
				}
				encodedBallots = append(encodedBallots, raw)
			}

			// bind on first use, attach afterwards
			r, err := round.NewRound(roundAddress, flagVoteStrategy, st)
			if err != nil {
				if !quadraerrors.AlreadyInitialized.Equal(err) {
					common.PrintError(c, err)
				}
				if r, err = round.OpenRound(roundAddress, flagVoteStrategy, st); err != nil {
					common.PrintError(c, err)
				}
			}

			if err := r.CastVotes(encodedBallots, voter); err != nil {
				common.PrintError(c, err)
			}

			fmt.Printf("committed %d ballots for %s\n", len(encodedBallots), voter.Hex())
		},
	}

	voteCmd.Flags().StringVar(&flagVoteStorage, "storage", quadracommon.GetENVValue("QUADRA_STORAGE", "memory://"), "storage uri")
	voteCmd.Flags().StringVar(&flagVoteRound, "round", "", "round address")
	voteCmd.Flags().StringVar(&flagVoteVoter, "voter", "", "voter address")
	voteCmd.Flags().StringVar(&flagVoteStrategy, "strategy", "base", "strategy name")

	rootCmd.AddCommand(voteCmd)
}
