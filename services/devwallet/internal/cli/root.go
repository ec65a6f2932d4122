// Package cli wires the devwallet commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"learnplatform/services/devwallet/internal/wallet"

	"github.com/spf13/cobra"
)

type options struct {
	keyPath string
	apiURL  string
}

func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "devwallet",
		Short:         "Local wallet for exercising the learning platform API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.keyPath, "key", wallet.DefaultPath(), "path of the ed25519 key file")
	root.PersistentFlags().StringVar(&opts.apiURL, "api", envOr("DEVWALLET_API", "http://localhost:8080"), "gateway base URL")

	root.AddCommand(
		keygenCommand(opts),
		addressCommand(opts),
		registerCommand(opts),
		loginCommand(opts),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func keygenCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Create a new key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			signer, err := wallet.Generate(opts.keyPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signer.Address())
			return nil
		},
	}
}

func addressCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address",
		RunE: func(cmd *cobra.Command, _ []string) error {
			signer, err := wallet.Load(opts.keyPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signer.Address())
			return nil
		},
	}
}

func registerCommand(opts *options) *cobra.Command {
	var username, fullName, role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register this wallet as a student or teacher",
		RunE: func(cmd *cobra.Command, _ []string) error {
			signer, err := wallet.Load(opts.keyPath)
			if err != nil {
				return err
			}
			res, err := wallet.NewAPI(opts.apiURL, signer).Register(cmd.Context(), username, fullName, role)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "unique username (max 30 characters)")
	cmd.Flags().StringVar(&fullName, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", "student", "student or teacher")
	cmd.MarkFlagRequired("username")
	return cmd
}

func loginCommand(opts *options) *cobra.Command {
	var showSession bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print an access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			signer, err := wallet.Load(opts.keyPath)
			if err != nil {
				return err
			}
			api := wallet.NewAPI(opts.apiURL, signer)
			res, err := api.Login(cmd.Context())
			if err != nil {
				return err
			}
			if !showSession {
				return printJSON(cmd, res)
			}
			session, err := api.Session(cmd.Context(), res.AccessToken)
			if err != nil {
				return err
			}
			return printJSON(cmd, session)
		},
	}
	cmd.Flags().BoolVar(&showSession, "session", false, "print the resolved session instead of the token")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
