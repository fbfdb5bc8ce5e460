package main

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/trezcool/academia/client"
	"github.com/trezcool/academia/core/auth"
	"github.com/trezcool/academia/core/guard"
	"github.com/trezcool/academia/core/session"
	notifysvc "github.com/trezcool/academia/services/notifier"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp             = errors.New("help provided")
	errNotLoggedIn      = errors.New("not logged in")
	errPermissionDenied = errors.New("permission denied")
)

type commandLine struct {
	store    *session.Store
	auth     *auth.Service
	api      *client.Backend
	notifier notifysvc.Service
	nav      guard.Navigator
	out      io.Writer
	in       io.Reader
}

// consoleNavigator renders guard redirects as screen hints.
type consoleNavigator struct {
	out io.Writer
}

var _ guard.Navigator = (*consoleNavigator)(nil)

func (n *consoleNavigator) NavigateTo(route string) {
	_, _ = fmt.Fprintf(n.out, "-> %s\n", route)
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL [-portal student|teacher|admin] - log into a portal (password prompted)")
	fmt.Fprintln(cli.out, "  register [-portal student|teacher] -name NAME -email EMAIL ... - create an account")
	fmt.Fprintln(cli.out, "  logout                                - end the session")
	fmt.Fprintln(cli.out, "  whoami                                - show the logged-in user")
	fmt.Fprintln(cli.out, "  courses [-discipline ID] [-specialty ID] [-search TEXT] - browse courses")
	fmt.Fprintln(cli.out, "  course -id ID                         - course details and reviews")
	fmt.Fprintln(cli.out, "  course-add -title T -discipline ID -specialty ID [-desc TEXT] - publish a course")
	fmt.Fprintln(cli.out, "  course-rm -id ID                      - remove a course")
	fmt.Fprintln(cli.out, "  enroll -course ID                     - enroll on a course")
	fmt.Fprintln(cli.out, "  mycourses                             - list enrolled courses")
	fmt.Fprintln(cli.out, "  quiz -exam ID                         - take an exam")
	fmt.Fprintln(cli.out, "  certificates                          - list earned certificates")
	fmt.Fprintln(cli.out, "  review -course ID -rating 1..5 [-comment TEXT] - review a course")
	fmt.Fprintln(cli.out, "  users [-search TEXT] [-role ROLE]     - administer users")
	fmt.Fprintln(cli.out, "  user-rm -id ID                        - remove a user")
	fmt.Fprintln(cli.out, "  discipline-add -name NAME [-desc TEXT] | discipline-rm -id ID")
	fmt.Fprintln(cli.out, "  specialty-add -name NAME -discipline ID | specialty-rm -id ID")
	fmt.Fprintln(cli.out, "  group-add -name NAME -specialty ID | group-rm -id ID")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	// auth
	case "login":
		return cli.loginCmd(args[2:])
	case "register":
		return cli.registerCmd(args[2:])
	case "logout":
		cli.auth.Logout()
		return nil
	case "whoami":
		return cli.whoamiCmd()

	// catalog
	case "courses":
		return cli.coursesCmd(args[2:])
	case "course":
		return cli.courseCmd(args[2:])
	case "course-add":
		return cli.courseAddCmd(args[2:])
	case "course-rm":
		return cli.courseRemoveCmd(args[2:])
	case "enroll":
		return cli.enrollCmd(args[2:])
	case "mycourses":
		return cli.myCoursesCmd()
	case "quiz":
		return cli.quizCmd(args[2:])
	case "certificates":
		return cli.certificatesCmd()
	case "review":
		return cli.reviewCmd(args[2:])

	// administration
	case "users":
		return cli.usersCmd(args[2:])
	case "user-rm":
		return cli.userRemoveCmd(args[2:])
	case "discipline-add":
		return cli.disciplineAddCmd(args[2:])
	case "discipline-rm":
		return cli.disciplineRemoveCmd(args[2:])
	case "specialty-add":
		return cli.specialtyAddCmd(args[2:])
	case "specialty-rm":
		return cli.specialtyRemoveCmd(args[2:])
	case "group-add":
		return cli.groupAddCmd(args[2:])
	case "group-rm":
		return cli.groupRemoveCmd(args[2:])

	default:
		cli.printUsage()
		return errHelp
	}
}

// requireRoles gates a command the way the route guard gates a protected
// view; the navigator receives the redirect when access is refused.
func (cli *commandLine) requireRoles(roles ...string) error {
	g := guard.New(cli.nav, roles...)
	_, loggedIn := cli.store.User()

	switch g.Reevaluate(cli.store.Loading(), loggedIn, cli.auth.HasRole) {
	case guard.StateAllowed:
		return nil
	case guard.StateForbidden:
		return errPermissionDenied
	default:
		return errNotLoggedIn
	}
}
