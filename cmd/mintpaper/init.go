package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/undefinedmint/mintpaper"
)

func newInitCmd(c *cli) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if _, err := os.Stat(c.configPath); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", c.configPath)
				} else if !errors.Is(err, os.ErrNotExist) {
					return err
				}
			}
			secret, err := randomSecret()
			if err != nil {
				return err
			}
			cfg := mintpaper.DefaultConfig()
			cfg.SessionSecret = secret
			cfg.AdminPassword = "change-me"

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(c.configPath, out, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", c.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
