package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vj-go/internal/app"
)

// readPassphrase prompts on stderr and reads without echo from a terminal,
// or reads one line when stdin is piped.
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Encrypted journal backups",
}

var backupInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the backup key pair",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pass, err := readPassphrase("New passphrase: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase("Repeat passphrase: ")
		if err != nil {
			return err
		}
		if pass != confirm {
			return fmt.Errorf("passphrases do not match")
		}
		return withApp("InitBackup", func(a *app.JournalApp) error {
			if err := a.InitBackup(pass); err != nil {
				return err
			}
			fmt.Println("Backup keys created. Keep the passphrase safe: restores need it.")
			return nil
		})
	},
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Store an encrypted copy of the journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("CreateBackup", func(a *app.JournalApp) error {
			version, err := a.CreateBackup()
			if err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}
			fmt.Printf("Backup %d stored.\n", version)
			return nil
		})
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the journal with the latest backup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pass, err := readPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
		return withApp("RestoreBackup", func(a *app.JournalApp) error {
			version, err := a.RestoreBackup(pass)
			if err != nil {
				return fmt.Errorf("restore failed: %w", err)
			}
			if !a.Settings().AutoSave {
				if err := a.Save(); err != nil {
					return err
				}
			}
			fmt.Printf("Restored backup %d.\n", version)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupInitCmd, backupCreateCmd, backupRestoreCmd)
}
