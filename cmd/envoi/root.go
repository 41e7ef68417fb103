package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	config   string
	network  string
	simulate bool
	debug    bool
	from     string
}

// newRootCmd returns the root cobra command.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "envoi",
		Short: "Operate the envoi name service",
		Long: `envoi registers and manages names on the envoi name service.

Application IDs and endpoints come from a TOML deployment file. The signing
account is read from ENVOI_MNEMONIC or ENVOI_PRIVATE_KEY, or from a .env
file in the working directory or one of its parents.`,
		SilenceUsage: true,
	}

	persistent := root.PersistentFlags()
	persistent.StringVarP(&flags.config, "config", "c", "", "deployment file (TOML)")
	persistent.StringVarP(&flags.network, "network", "n", "", "network: testnet or mainnet")
	persistent.BoolVarP(&flags.simulate, "simulate", "s", false, "simulate writes without broadcasting")
	persistent.BoolVarP(&flags.debug, "debug", "d", false, "debug logging")
	persistent.StringVar(&flags.from, "from", "", "sender address for reads")

	root.AddCommand(
		newNamehashCmd(),
		newOwnerOfCmd(flags),
		newResolverCmd(flags),
		newResolveCmd(flags),
		newReverseNameCmd(flags),
		newTextCmd(flags),
		newExpirationCmd(flags),
		newCheckNameCmd(flags),
		newPriceCmd(flags),
		newReservationCmd(flags),
		newBalanceCmd(flags),
		newSetResolverCmd(flags),
		newSetTTLCmd(flags),
		newSetOwnerCmd(flags),
		newSetTextCmd(flags),
		newSetNameCmd(flags),
		newSetAddrCmd(flags),
		newRegisterCmd(flags),
		newRenewCmd(flags),
		newReclaimCmd(flags),
		newReverseRegisterCmd(flags),
		newStakingRegisterCmd(flags),
		newCollectionRegisterCmd(flags),
		newReserveCmd(flags),
		newReleaseCmd(flags),
		newAdminReserveCmd(flags),
		newReserveBatchCmd(flags),
		newTransferNameCmd(flags),
		newApproveCmd(flags),
	)

	return root
}
