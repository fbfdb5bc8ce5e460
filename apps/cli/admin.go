package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/trezcool/academia/client"
	"github.com/trezcool/academia/core/session"
)

func (cli *commandLine) usersCmd(args []string) error {
	if err := cli.requireRoles(session.RoleAdmin); err != nil {
		return err
	}

	usersCmd := flag.NewFlagSet("users", flag.ExitOnError)
	search := usersCmd.String("search", "", "Search names and emails.")
	role := usersCmd.String("role", "", "Restrict to a role.")
	if err := usersCmd.Parse(args); err != nil {
		return err
	}

	accounts, err := cli.api.Users.List(context.Background(), client.AccountFilter{
		Search: *search,
		Role:   *role,
	})
	if err != nil {
		return err
	}
	for _, acct := range accounts {
		status := "active"
		if !acct.IsActive {
			status = "inactive"
		}
		fmt.Fprintf(cli.out, "#%d %s <%s> [%s] %s\n", acct.ID, acct.Name, acct.Email, strings.Join(acct.Roles, ", "), status)
	}
	return nil
}

func (cli *commandLine) userRemoveCmd(args []string) error {
	if err := cli.requireRoles(session.RoleAdmin); err != nil {
		return err
	}
	return cli.removeByID("user-rm", args, cli.api.Users.Delete)
}

func (cli *commandLine) disciplineAddCmd(args []string) error {
	if err := cli.requireRoles(session.RoleAdmin); err != nil {
		return err
	}

	addCmd := flag.NewFlagSet("discipline-add", flag.ExitOnError)
	name := addCmd.String("name", "", "Discipline name.")
	desc := addCmd.String("desc", "", "Optional description.")
	if err := addCmd.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		addCmd.Usage()
		return errHelp
	}

	discipline, err := cli.api.Disciplines.Create(context.Background(), client.DisciplineForm{
		Name:        *name,
		Description: *desc,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created discipline #%d\n", discipline.ID)
	return nil
}

func (cli *commandLine) disciplineRemoveCmd(args []string) error {
	if err := cli.requireRoles(session.RoleAdmin); err != nil {
		return err
	}
	return cli.removeByID("discipline-rm", args, cli.api.Disciplines.Delete)
}

func (cli *commandLine) specialtyAddCmd(args []string) error {
	if err := cli.requireRoles(session.RoleAdmin); err != nil {
		return err
	}

	addCmd := flag.NewFlagSet("specialty-add", flag.ExitOnError)
	name := addCmd.String("name", "", "Specialty name.")
	disciplineID := addCmd.Int("discipline", 0, "Parent discipline ID.")
	if err := addCmd.Parse(args); err != nil {
		return err
	}
	if *name == "" || *disciplineID == 0 {
		addCmd.Usage()
		return errHelp
	}

	specialty, err := cli.api.Specialties.Create(context.Background(), client.SpecialtyForm{
		Name:         *name,
		DisciplineID: *disciplineID,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created specialty #%d\n", specialty.ID)
	return nil
}

func (cli *commandLine) specialtyRemoveCmd(args []string) error {
	if err := cli.requireRoles(session.RoleAdmin); err != nil {
		return err
	}
	return cli.removeByID("specialty-rm", args, cli.api.Specialties.Delete)
}

func (cli *commandLine) groupAddCmd(args []string) error {
	if err := cli.requireRoles(session.RoleAdmin); err != nil {
		return err
	}

	addCmd := flag.NewFlagSet("group-add", flag.ExitOnError)
	name := addCmd.String("name", "", "Group name.")
	specialtyID := addCmd.Int("specialty", 0, "Parent specialty ID.")
	if err := addCmd.Parse(args); err != nil {
		return err
	}
	if *name == "" || *specialtyID == 0 {
		addCmd.Usage()
		return errHelp
	}

	group, err := cli.api.Groups.Create(context.Background(), client.GroupForm{
		Name:        *name,
		SpecialtyID: *specialtyID,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created group #%d\n", group.ID)
	return nil
}

func (cli *commandLine) groupRemoveCmd(args []string) error {
	if err := cli.requireRoles(session.RoleAdmin); err != nil {
		return err
	}
	return cli.removeByID("group-rm", args, cli.api.Groups.Delete)
}
