package main

import (
	"math/big"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/spf13/cobra"

	"github.com/NautilusOSS/envoi-contracts/pkg/vns"
)

// writeCmd builds a command that connects with a signer, runs submit and
// prints the outcome.
func writeCmd(flags *rootFlags, use, short string, args cobra.PositionalArgs, submit func(cmd *cobra.Command, a *app, args []string) (vns.Result, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, positional []string) error {
			a, err := connect(flags, true)
			if err != nil {
				return err
			}
			result, err := submit(cmd, a, positional)
			return a.report(cmd.Context(), cmd.OutOrStdout(), result, err)
		},
	}
}

func newSetResolverCmd(flags *rootFlags) *cobra.Command {
	return writeCmd(flags, "set-resolver <name> <app-id>", "Point a name at a resolver", cobra.ExactArgs(2),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			resolver, err := parseAppID(args[1])
			if err != nil {
				return vns.Result{}, err
			}
			return a.client.SetResolver(cmd.Context(), vns.SetResolverRequest{Name: args[0], Resolver: resolver})
		})
}

func newSetTTLCmd(flags *rootFlags) *cobra.Command {
	var ttl uint64
	cmd := writeCmd(flags, "set-ttl <name>", "Set the time-to-live of a name", cobra.ExactArgs(1),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			return a.client.SetTTL(cmd.Context(), vns.SetTTLRequest{Name: args[0], TTL: ttl})
		})
	cmd.Flags().Uint64VarP(&ttl, "ttl", "t", 0, "time-to-live in seconds")
	return cmd
}

func newSetOwnerCmd(flags *rootFlags) *cobra.Command {
	return writeCmd(flags, "set-owner <name> <owner>", "Transfer a registry node", cobra.ExactArgs(2),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			owner, err := types.DecodeAddress(args[1])
			if err != nil {
				return vns.Result{}, err
			}
			return a.client.SetOwner(cmd.Context(), vns.SetOwnerRequest{Name: args[0], Owner: owner})
		})
}

func newSetTextCmd(flags *rootFlags) *cobra.Command {
	return writeCmd(flags, "set-text <name> <key> <value>", "Write a text record", cobra.ExactArgs(3),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			return a.client.SetText(cmd.Context(), vns.SetTextRequest{Name: args[0], Key: args[1], Value: args[2]})
		})
}

func newSetNameCmd(flags *rootFlags) *cobra.Command {
	return writeCmd(flags, "set-name <name>", "Set the primary name of the signing account", cobra.ExactArgs(1),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			return a.client.SetPrimaryName(cmd.Context(), args[0])
		})
}

func newSetAddrCmd(flags *rootFlags) *cobra.Command {
	return writeCmd(flags, "set-addr <name> <address>", "Write the address record of a name", cobra.ExactArgs(2),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			address, err := types.DecodeAddress(args[1])
			if err != nil {
				return vns.Result{}, err
			}
			return a.client.SetAddr(cmd.Context(), vns.SetAddrRequest{Name: args[0], Address: address})
		})
}

func newRegisterCmd(flags *rootFlags) *cobra.Command {
	var owner string
	var years uint64
	cmd := writeCmd(flags, "register <label>", "Register a second-level name", cobra.ExactArgs(1),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			request := vns.RegisterRequest{Name: args[0], Owner: a.signer.Address(), Years: years}
			if owner != "" {
				decoded, err := types.DecodeAddress(owner)
				if err != nil {
					return vns.Result{}, err
				}
				request.Owner = decoded
			}
			return a.client.Register(cmd.Context(), request)
		})
	cmd.Flags().StringVarP(&owner, "owner", "o", "", "owner address (default: signing account)")
	cmd.Flags().Uint64VarP(&years, "years", "y", 1, "registration period in years")
	return cmd
}

func newRenewCmd(flags *rootFlags) *cobra.Command {
	var years uint64
	cmd := writeCmd(flags, "renew <label>", "Extend a registration", cobra.ExactArgs(1),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			return a.client.Renew(cmd.Context(), vns.RenewRequest{Name: args[0], Years: years})
		})
	cmd.Flags().Uint64VarP(&years, "years", "y", 1, "renewal period in years")
	return cmd
}

func newReclaimCmd(flags *rootFlags) *cobra.Command {
	return writeCmd(flags, "reclaim <label>", "Restore registry ownership to the token holder", cobra.ExactArgs(1),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			return a.client.Reclaim(cmd.Context(), vns.ReclaimRequest{Name: args[0]})
		})
}

func newReverseRegisterCmd(flags *rootFlags) *cobra.Command {
	var duration uint64
	cmd := writeCmd(flags, "reverse-register", "Register the reverse node of the signing account", cobra.NoArgs,
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			return a.client.ReverseRegister(cmd.Context(), vns.ReverseRegisterRequest{Owner: a.signer.Address(), Duration: duration})
		})
	cmd.Flags().Uint64Var(&duration, "duration", 0, "registration period in seconds")
	return cmd
}

func newStakingRegisterCmd(flags *rootFlags) *cobra.Command {
	return writeCmd(flags, "staking-register <app-id>", "Register the name of a staking contract", cobra.ExactArgs(1),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			appID, err := parseAppID(args[0])
			if err != nil {
				return vns.Result{}, err
			}
			return a.client.StakingRegister(cmd.Context(), vns.AppRegisterRequest{AppID: appID})
		})
}

func newCollectionRegisterCmd(flags *rootFlags) *cobra.Command {
	return writeCmd(flags, "collection-register <app-id>", "Register the name of a collection", cobra.ExactArgs(1),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			appID, err := parseAppID(args[0])
			if err != nil {
				return vns.Result{}, err
			}
			return a.client.CollectionRegister(cmd.Context(), vns.AppRegisterRequest{AppID: appID})
		})
}

func newReserveCmd(flags *rootFlags) *cobra.Command {
	var payment uint64
	cmd := writeCmd(flags, "reserve <name>", "Reserve a name", cobra.ExactArgs(1),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			return a.client.Reserve(cmd.Context(), vns.ReserveRequest{Name: args[0], Payment: payment})
		})
	cmd.Flags().Uint64Var(&payment, "payment", 0, "payment attached to the reservation")
	return cmd
}

func newReleaseCmd(flags *rootFlags) *cobra.Command {
	return writeCmd(flags, "release <name>", "Release a reservation", cobra.ExactArgs(1),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			return a.client.Release(cmd.Context(), vns.ReleaseRequest{Name: args[0]})
		})
}

func newAdminReserveCmd(flags *rootFlags) *cobra.Command {
	var price uint64
	cmd := writeCmd(flags, "admin-reserve <name> <owner>", "Reserve a name for another account", cobra.ExactArgs(2),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			owner, err := types.DecodeAddress(args[1])
			if err != nil {
				return vns.Result{}, err
			}
			return a.client.AdminReserve(cmd.Context(), vns.AdminReserveRequest{Name: args[0], Owner: owner, Price: price})
		})
	cmd.Flags().Uint64Var(&price, "price", 0, "price recorded with the reservation")
	return cmd
}

func newTransferNameCmd(flags *rootFlags) *cobra.Command {
	return writeCmd(flags, "transfer-name <name> <to>", "Transfer the token of a name", cobra.ExactArgs(2),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			to, err := types.DecodeAddress(args[1])
			if err != nil {
				return vns.Result{}, err
			}
			return a.client.TransferName(cmd.Context(), vns.TransferNameRequest{Name: args[0], From: a.signer.Address(), To: to})
		})
}

func newApproveCmd(flags *rootFlags) *cobra.Command {
	return writeCmd(flags, "approve <spender> <amount>", "Set a payment token allowance", cobra.ExactArgs(2),
		func(cmd *cobra.Command, a *app, args []string) (vns.Result, error) {
			spender, err := types.DecodeAddress(args[0])
			if err != nil {
				return vns.Result{}, err
			}
			amount, ok := new(big.Int).SetString(args[1], 10)
			if !ok {
				return vns.Result{}, &vns.ValidationError{Field: "amount", Message: "not a decimal integer"}
			}
			return a.client.Approve(cmd.Context(), vns.ApproveRequest{Spender: spender, Amount: amount})
		})
}
