package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/spf13/cobra"

	"github.com/NautilusOSS/envoi-contracts/pkg/namehash"
)

func newNamehashCmd() *cobra.Command {
	var digestName string
	cmd := &cobra.Command{
		Use:   "namehash <name>",
		Short: "Print the node of a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			digest, err := namehash.ParseDigest(digestName)
			if err != nil {
				return err
			}
			node, err := namehash.NamehashWith(args[0], digest)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), node.Hex())
			return nil
		},
	}
	cmd.Flags().StringVar(&digestName, "digest", "sha256", "digest: sha256 or keccak256")
	return cmd
}

func newOwnerOfCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "owner-of <name>",
		Short: "Print the registry owner of a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := connect(flags, false)
			if err != nil {
				return err
			}
			owner, err := a.client.OwnerOf(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), owner.String())
			return nil
		},
	}
}

func newResolverCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolver <name>",
		Short: "Print the resolver application of a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := connect(flags, false)
			if err != nil {
				return err
			}
			resolver, err := a.client.Resolver(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resolver)
			return nil
		},
	}
}

func newResolveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a name to an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := connect(flags, false)
			if err != nil {
				return err
			}
			address, err := a.client.ResolveAddr(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), address.String())
			return nil
		},
	}
}

func newReverseNameCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reverse-name <address>",
		Short: "Print the primary name of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := types.DecodeAddress(args[0])
			if err != nil {
				return err
			}
			a, err := connect(flags, false)
			if err != nil {
				return err
			}
			name, err := a.client.ReverseName(cmd.Context(), address)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func newTextCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "text <name> <key>",
		Short: "Print a text record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := connect(flags, false)
			if err != nil {
				return err
			}
			value, err := a.client.Text(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newExpirationCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "expiration <name>",
		Short: "Print when a registration expires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := connect(flags, false)
			if err != nil {
				return err
			}
			expires, err := a.client.Expiration(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), expires.Format(time.RFC3339))
			return nil
		},
	}
}

func newCheckNameCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check-name <label>",
		Short: "Report whether a label is available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := connect(flags, false)
			if err != nil {
				return err
			}
			available, err := a.client.CheckName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), available)
			return nil
		},
	}
}

func newPriceCmd(flags *rootFlags) *cobra.Command {
	var years uint64
	cmd := &cobra.Command{
		Use:   "price <label>",
		Short: "Print the registration price of a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := connect(flags, false)
			if err != nil {
				return err
			}
			price, err := a.client.Price(cmd.Context(), args[0], years)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), price)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&years, "years", 1, "registration period in years")
	return cmd
}

func newReservationCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reservation <name>",
		Short: "Print the reservation of a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := connect(flags, false)
			if err != nil {
				return err
			}
			owner, err := a.client.ReservationOwner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			price, err := a.client.ReservationPrice(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "owner %s price %d\n", owner.String(), price)
			return nil
		},
	}
}

func newBalanceCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Print the payment token balance of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := types.DecodeAddress(args[0])
			if err != nil {
				return err
			}
			a, err := connect(flags, false)
			if err != nil {
				return err
			}
			balance, err := a.client.BalanceOf(cmd.Context(), address)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), balance.String())
			return nil
		},
	}
}

func parseAppID(value string) (uint64, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid application ID %q: %w", value, err)
	}
	return id, nil
}
