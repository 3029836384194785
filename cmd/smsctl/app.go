package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/repositories"
	"github.com/ArkanTsabit123/Student-Management-System/internal/bootstrap"
	"github.com/ArkanTsabit123/Student-Management-System/internal/config"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/filestorage"
	"github.com/ArkanTsabit123/Student-Management-System/internal/seed"
)

// session is what every database-backed command starts from
type session struct {
	cfg    *config.Config
	logger zerolog.Logger
	pool   *pgxpool.Pool
}

func open(c *cli.Context) (*session, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return nil, err
	}
	pool, err := bootstrap.Connect(c.Context, cfg, lgr)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: lgr, pool: pool}, nil
}

// withSession opens a session for fn and closes the pool afterwards
func withSession(fn func(c *cli.Context, s *session) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		s, err := open(c)
		if err != nil {
			return err
		}
		defer s.pool.Close()
		return fn(c, s)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "smsctl",
		Usage: "administer the student management database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "apply pending schema migrations",
				Action: withSession(migrateAction),
			},
			{
				Name:   "seed",
				Usage:  "insert the default majors and courses",
				Action: withSession(seedAction),
			},
			{
				Name:   "summary",
				Usage:  "print the academic summary",
				Action: withSession(summaryAction),
			},
			{
				Name:  "export",
				Usage: "write spreadsheet reports",
				Subcommands: []*cli.Command{
					{
						Name:  "students",
						Usage: "export the student list",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "q", Usage: "NIM or name fragment"},
							&cli.StringFlag{Name: "major", Usage: "major name"},
							&cli.IntFlag{Name: "year", Usage: "admission year"},
							&cli.StringFlag{Name: "out", Usage: "output directory (defaults to reports.output_dir)"},
						},
						Action: withSession(exportStudentsAction),
					},
					{
						Name:  "transcript",
						Usage: "export one student's transcript",
						Flags: []cli.Flag{
							&cli.Int64Flag{Name: "id", Usage: "student id", Required: true},
							&cli.StringFlag{Name: "out", Usage: "output directory (defaults to reports.output_dir)"},
						},
						Action: withSession(exportTranscriptAction),
					},
				},
			},
		},
	}
}

func migrateAction(c *cli.Context, s *session) error {
	return bootstrap.Migrate(c.Context, s.pool, s.logger)
}

func seedAction(c *cli.Context, s *session) error {
	result, err := seed.CreateDefaultData(c.Context, repositories.NewRepositories(s.pool), s.logger)
	fmt.Fprintf(c.App.Writer, "majors inserted: %d, courses inserted: %d\n", result.MajorsInserted, result.CoursesInserted)
	return err
}

func summaryAction(c *cli.Context, s *session) error {
	deps := bootstrap.BuildDependencies(s.pool, s.logger)
	summary, err := deps.StudentService.Summary(c.Context)
	if err != nil {
		return err
	}
	return writeSummary(c.App.Writer, summary)
}

// writeSummary renders the summary as an aligned text table
func writeSummary(w io.Writer, summary *models.AcademicSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total students\t%d\n", summary.TotalStudents)
	fmt.Fprintf(tw, "Students with grades\t%d\n", summary.StudentsWithGrades)
	fmt.Fprintf(tw, "Average GPA\t%.2f\n", summary.AverageGPA)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "MAJOR\tSTUDENTS\tAVG GRADE")
	for _, ms := range summary.MajorStatistics {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\n", ms.Major, ms.StudentCount, ms.AvgGrade)
	}
	return tw.Flush()
}

type exporter func(ctx context.Context, deps *bootstrap.Dependencies) (*bytes.Buffer, string, error)

func export(c *cli.Context, s *session, run exporter) error {
	deps := bootstrap.BuildDependencies(s.pool, s.logger)
	buf, filename, err := run(c.Context, deps)
	if err != nil {
		return err
	}

	dir := c.String("out")
	if dir == "" {
		dir = s.cfg.Reports.OutputDir
	}
	storage, err := filestorage.NewLocalStorage(dir)
	if err != nil {
		return err
	}
	info, err := storage.Save(filename, buf)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, info.Path)
	return nil
}

func exportStudentsAction(c *cli.Context, s *session) error {
	filter := models.StudentFilter{
		SearchTerm: c.String("q"),
		Major:      c.String("major"),
		Year:       c.Int("year"),
	}
	return export(c, s, func(ctx context.Context, deps *bootstrap.Dependencies) (*bytes.Buffer, string, error) {
		return deps.ReportService.ExportStudents(ctx, filter)
	})
}

func exportTranscriptAction(c *cli.Context, s *session) error {
	id := c.Int64("id")
	return export(c, s, func(ctx context.Context, deps *bootstrap.Dependencies) (*bytes.Buffer, string, error) {
		return deps.ReportService.ExportTranscript(ctx, id)
	})
}
