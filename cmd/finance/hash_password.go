package main

import (
	"bufio"
	"fmt"
	"strings"

	"finance/config"
	"finance/internal/domain/service"
	"finance/internal/infra/auth"

	"github.com/alexedwards/argon2id"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var hashPasswordFlags struct {
	algorithm string
	cost      int
}

// hashPasswordCmd hashes a password the same way sign-up does, for seeding accounts by hand.
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Prints the stored form of a password",
	Long: `Prints the stored form of a password. The password is read from the first
argument, or from the first line of stdin when no argument is given.

	finance hash-password 's3cret'
	echo 's3cret' | finance hash-password --algorithm argon2id
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd, args)
		if err != nil {
			return err
		}

		hasher, err := newCLIHasher(hashPasswordFlags.algorithm, hashPasswordFlags.cost)
		if err != nil {
			return err
		}

		hash, err := hasher.Hash(password)
		if err != nil {
			return errors.Wrap(err, "hash password")
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)

		return err
	},
}

func init() {
	hashPasswordCmd.Flags().StringVar(&hashPasswordFlags.algorithm, "algorithm", config.PasswordAlgorithmBcrypt, "bcrypt or argon2id")
	hashPasswordCmd.Flags().IntVar(&hashPasswordFlags.cost, "cost", 10, "bcrypt cost")
}

func readPassword(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		if err != nil {
			return "", errors.Wrap(err, "read password from stdin")
		}

		return "", errors.New("empty password")
	}

	return password, nil
}

func newCLIHasher(algorithm string, cost int) (service.PasswordHasher, error) {
	switch algorithm {
	case config.PasswordAlgorithmBcrypt:
		return auth.NewBcryptHasher(cost)
	case config.PasswordAlgorithmArgon2id:
		return auth.NewArgon2idHasher(argon2id.DefaultParams)
	default:
		return nil, errors.Errorf("unknown algorithm %q", algorithm)
	}
}
