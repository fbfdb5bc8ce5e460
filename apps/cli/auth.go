package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"syscall"

	"github.com/trezcool/academia/core/auth"
)

func (cli *commandLine) promptPassword(prompt string) (string, error) {
	fmt.Fprint(cli.out, prompt)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) loginCmd(args []string) error {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := loginCmd.String("email", "", "The account's email. The password will be prompted next.")
	portal := loginCmd.String("portal", "student", "Which portal to log into: student, teacher or admin.")
	if err := loginCmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		loginCmd.Usage()
		return errHelp
	}

	pwd, err := cli.promptPassword("Enter password:")
	if err != nil {
		return err
	}
	if pwd == "" {
		loginCmd.Usage()
		return errHelp
	}

	cli.auth.Login(context.Background(), *email, pwd, auth.ParsePortal(*portal))
	return nil // outcome already notified; the login screen stays on failure
}

func (cli *commandLine) registerCmd(args []string) error {
	registerCmd := flag.NewFlagSet("register", flag.ExitOnError)
	portal := registerCmd.String("portal", "student", "Which portal to register on: student or teacher.")
	name := registerCmd.String("name", "", "Display name.")
	firstName := registerCmd.String("firstname", "", "First name.")
	lastName := registerCmd.String("lastname", "", "Last name.")
	email := registerCmd.String("email", "", "Email address. The password will be prompted next.")
	groupID := registerCmd.Int("group", 0, "Group to join (student portal).")
	disciplineID := registerCmd.Int("discipline", 0, "Taught discipline (teacher portal).")
	if err := registerCmd.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" {
		registerCmd.Usage()
		return errHelp
	}

	pwd, err := cli.promptPassword("Enter password:")
	if err != nil {
		return err
	}
	pwdConfirm, err := cli.promptPassword("Confirm password:")
	if err != nil {
		return err
	}

	acct := auth.NewAccount{
		Name:            *name,
		FirstName:       *firstName,
		LastName:        *lastName,
		Email:           *email,
		Password:        pwd,
		PasswordConfirm: pwdConfirm,
		GroupID:         *groupID,
		DisciplineID:    *disciplineID,
	}
	cli.auth.Register(context.Background(), acct, auth.ParsePortal(*portal))
	return nil
}

func (cli *commandLine) whoamiCmd() error {
	if err := cli.requireRoles(); err != nil {
		return err
	}
	usr, _ := cli.store.User()
	fmt.Fprintf(cli.out, "#%d %s <%s> [%s]\n", usr.ID, usr.Name, usr.Email, strings.Join(usr.Roles, ", "))
	return nil
}
