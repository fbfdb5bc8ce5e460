package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/trezcool/academia/client"
	"github.com/trezcool/academia/core/session"
)

func (cli *commandLine) coursesCmd(args []string) error {
	coursesCmd := flag.NewFlagSet("courses", flag.ExitOnError)
	disciplineID := coursesCmd.Int("discipline", 0, "Restrict to a discipline.")
	specialtyID := coursesCmd.Int("specialty", 0, "Restrict to a specialty.")
	search := coursesCmd.String("search", "", "Search course titles.")
	if err := coursesCmd.Parse(args); err != nil {
		return err
	}

	courses, err := cli.api.Courses.List(context.Background(), client.CourseFilter{
		DisciplineID: *disciplineID,
		SpecialtyID:  *specialtyID,
		Search:       *search,
	})
	if err != nil {
		return err
	}
	for _, course := range courses {
		fmt.Fprintf(cli.out, "#%d %s\n", course.ID, course.Title)
	}
	return nil
}

func (cli *commandLine) courseCmd(args []string) error {
	courseCmd := flag.NewFlagSet("course", flag.ExitOnError)
	id := courseCmd.Int("id", 0, "The course ID.")
	if err := courseCmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		courseCmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	course, err := cli.api.Courses.Get(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "#%d %s\n%s\n", course.ID, course.Title, course.Description)

	reviews, err := cli.api.Reviews.ListByCourse(ctx, *id)
	if err != nil {
		return err
	}
	for _, review := range reviews {
		fmt.Fprintf(cli.out, "  %d/5 %s\n", review.Rating, review.Comment)
	}
	return nil
}

func (cli *commandLine) courseAddCmd(args []string) error {
	if err := cli.requireRoles(session.RoleTeacher, session.RoleAdmin); err != nil {
		return err
	}

	addCmd := flag.NewFlagSet("course-add", flag.ExitOnError)
	title := addCmd.String("title", "", "Course title.")
	desc := addCmd.String("desc", "", "Course description.")
	disciplineID := addCmd.Int("discipline", 0, "Discipline ID.")
	specialtyID := addCmd.Int("specialty", 0, "Specialty ID.")
	if err := addCmd.Parse(args); err != nil {
		return err
	}
	if *title == "" || *disciplineID == 0 || *specialtyID == 0 {
		addCmd.Usage()
		return errHelp
	}

	course, err := cli.api.Courses.Create(context.Background(), client.CourseForm{
		Title:        *title,
		Description:  *desc,
		DisciplineID: *disciplineID,
		SpecialtyID:  *specialtyID,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created course #%d\n", course.ID)
	return nil
}

func (cli *commandLine) courseRemoveCmd(args []string) error {
	if err := cli.requireRoles(session.RoleTeacher, session.RoleAdmin); err != nil {
		return err
	}
	return cli.removeByID("course-rm", args, cli.api.Courses.Delete)
}

func (cli *commandLine) enrollCmd(args []string) error {
	if err := cli.requireRoles(session.RoleStudent); err != nil {
		return err
	}

	enrollCmd := flag.NewFlagSet("enroll", flag.ExitOnError)
	courseID := enrollCmd.Int("course", 0, "The course to enroll on.")
	if err := enrollCmd.Parse(args); err != nil {
		return err
	}
	if *courseID == 0 {
		enrollCmd.Usage()
		return errHelp
	}

	if err := cli.api.Courses.Enroll(context.Background(), *courseID); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "enrolled on course #%d\n", *courseID)
	return nil
}

func (cli *commandLine) myCoursesCmd() error {
	if err := cli.requireRoles(session.RoleStudent); err != nil {
		return err
	}

	courses, err := cli.api.Courses.Enrolled(context.Background())
	if err != nil {
		return err
	}
	for _, course := range courses {
		fmt.Fprintf(cli.out, "#%d %s\n", course.ID, course.Title)
	}
	return nil
}

func (cli *commandLine) quizCmd(args []string) error {
	if err := cli.requireRoles(session.RoleStudent); err != nil {
		return err
	}

	quizCmd := flag.NewFlagSet("quiz", flag.ExitOnError)
	examID := quizCmd.Int("exam", 0, "The exam to take.")
	if err := quizCmd.Parse(args); err != nil {
		return err
	}
	if *examID == 0 {
		quizCmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	exam, err := cli.api.Exams.Get(ctx, *examID)
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "%s (%d questions)\n", exam.Title, len(exam.Questions))
	scanner := bufio.NewScanner(cli.in)
	sub := client.Submission{Answers: make([]client.Answer, 0, len(exam.Questions))}
	for i, question := range exam.Questions {
		fmt.Fprintf(cli.out, "\n%d) %s\n", i+1, question.Text)
		for _, choice := range question.Choices {
			fmt.Fprintf(cli.out, "   [%d] %s\n", choice.ID, choice.Text)
		}
		fmt.Fprint(cli.out, "answer: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		choiceID, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return fmt.Errorf("answer must be a choice number (got %q)", scanner.Text())
		}
		sub.Answers = append(sub.Answers, client.Answer{QuestionID: question.ID, ChoiceID: choiceID})
	}

	result, err := cli.api.Exams.Submit(ctx, *examID, sub)
	if err != nil {
		return err
	}
	verdict := "failed"
	if result.Passed {
		verdict = "passed"
	}
	fmt.Fprintf(cli.out, "\nscore: %d/%d - %s\n", result.Score, result.Total, verdict)
	return nil
}

func (cli *commandLine) certificatesCmd() error {
	if err := cli.requireRoles(session.RoleStudent); err != nil {
		return err
	}

	certs, err := cli.api.Certifications.Mine(context.Background())
	if err != nil {
		return err
	}
	for _, cert := range certs {
		fmt.Fprintf(cli.out, "#%d %s (%s) issued %s\n", cert.ID, cert.Title, cert.Reference, cert.IssuedAt.Format("2006-01-02"))
	}
	return nil
}

func (cli *commandLine) reviewCmd(args []string) error {
	if err := cli.requireRoles(session.RoleStudent); err != nil {
		return err
	}

	reviewCmd := flag.NewFlagSet("review", flag.ExitOnError)
	courseID := reviewCmd.Int("course", 0, "The course to review.")
	rating := reviewCmd.Int("rating", 0, "Rating, 1 to 5.")
	comment := reviewCmd.String("comment", "", "Optional comment.")
	if err := reviewCmd.Parse(args); err != nil {
		return err
	}
	if *courseID == 0 || *rating < 1 || *rating > 5 {
		reviewCmd.Usage()
		return errHelp
	}

	if _, err := cli.api.Reviews.Create(context.Background(), client.ReviewForm{
		CourseID: *courseID,
		Rating:   *rating,
		Comment:  *comment,
	}); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "review posted")
	return nil
}

// removeByID runs the shared "-id N" delete flow.
func (cli *commandLine) removeByID(name string, args []string, del func(context.Context, int) error) error {
	rmCmd := flag.NewFlagSet(name, flag.ExitOnError)
	id := rmCmd.Int("id", 0, "The ID to remove.")
	if err := rmCmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		rmCmd.Usage()
		return errHelp
	}
	if err := del(context.Background(), *id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "removed #%d\n", *id)
	return nil
}
