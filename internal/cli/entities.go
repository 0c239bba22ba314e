package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/internlink/console/internal/domain/model"
	"github.com/internlink/console/internal/service"
)

// runDashboard fetches the stats aggregate and the recent applications and
// enrollments. The three reads are independent, so they go out in parallel.
func (a *App) runDashboard(ctx context.Context) error {
	if err := a.guard(service.RouteDashboard); err != nil {
		return err
	}

	var (
		stats       model.DashboardStats
		apps        []model.Application
		enrollments []model.Enrollment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = a.api.DashboardStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		apps, err = a.api.Applications(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		enrollments, err = a.api.Enrollments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "students\t%d\n", stats.TotalStudents)
	fmt.Fprintf(w, "active companies\t%d\n", stats.ActiveCompanies)
	fmt.Fprintf(w, "open internships\t%d\n", stats.OpenInternships)
	fmt.Fprintf(w, "applications\t%d (pending %d, accepted %d, rejected %d)\n",
		stats.TotalApplications, stats.PendingApplications,
		stats.AcceptedApplications, stats.RejectedApplications)
	fmt.Fprintf(w, "enrollments\t%d (pending %d)\n",
		stats.TotalEnrollments, stats.PendingEnrollments)
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d applications, %d enrollments on file\n", len(apps), len(enrollments))
	return nil
}

func (a *App) runCompanies(ctx context.Context) error {
	if err := a.guard(service.RouteCompanies); err != nil {
		return err
	}
	companies, err := a.api.Companies(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tINDUSTRY\tLOCATION")
	for _, c := range companies {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Status, c.Industry, c.Location)
	}
	return w.Flush()
}

func (a *App) runStudents(ctx context.Context, args []string) error {
	if err := a.guard(service.RouteStudents); err != nil {
		return err
	}

	if len(args) > 0 && args[0] == "minimal" {
		refs, err := a.api.StudentsMinimal(ctx)
		if err != nil {
			return err
		}
		for _, r := range refs {
			fmt.Fprintf(a.out, "%s\t%s <%s>\n", r.ID, r.FullName, r.Email)
		}
		return nil
	}

	students, err := a.api.Students(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tMAJOR\tSTATUS")
	for _, s := range students {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.FullName, s.Email, s.Major, s.Status)
	}
	return w.Flush()
}

func (a *App) runInternships(ctx context.Context) error {
	if err := a.guard(service.RouteInternships); err != nil {
		return err
	}
	internships, err := a.api.Internships(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOMPANY\tSTATUS\tLOCATION")
	for _, i := range internships {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s (%s)\n",
			i.ID, i.Title, i.CompanyName, i.Status, i.Location, i.LocationType)
	}
	return w.Flush()
}

func (a *App) runApplications(ctx context.Context, args []string) error {
	if err := a.guard(service.RouteApplications); err != nil {
		return err
	}

	if len(args) > 0 && args[0] == "set-status" {
		if len(args) != 3 {
			return fmt.Errorf("usage: applications set-status <id> <pending|accepted|rejected>")
		}
		status, ok := model.ParseReviewStatus(args[2])
		if !ok {
			return fmt.Errorf("unknown status %q", args[2])
		}
		updated, err := a.api.SetApplicationStatus(ctx, args[1], status)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "application %s is now %s\n", updated.ID, updated.Status)
		return nil
	}

	applications, err := a.api.Applications(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTUDENT\tINTERNSHIP\tSTATUS")
	for _, app := range applications {
		student, internship := "", ""
		if app.Student != nil {
			student = app.Student.FullName
		}
		if app.Internship != nil {
			internship = app.Internship.Title
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", app.ID, student, internship, app.Status)
	}
	return w.Flush()
}

func (a *App) runEnrollments(ctx context.Context) error {
	if err := a.guard(service.RouteEnrollments); err != nil {
		return err
	}
	enrollments, err := a.api.Enrollments(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTUDENT\tCOMPANY\tSTATUS")
	for _, e := range enrollments {
		student, company := "", ""
		if e.Student != nil {
			student = e.Student.FullName
		}
		if e.Company != nil {
			company = e.Company.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, student, company, e.Status)
	}
	return w.Flush()
}

func (a *App) runAdmins(ctx context.Context) error {
	if err := a.guard(service.RouteAdmins); err != nil {
		return err
	}
	admins, err := a.api.Admins(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTATUS")
	for _, adm := range admins {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", adm.ID, adm.FullName, adm.Email, adm.Status)
	}
	return w.Flush()
}

func (a *App) runUpload(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: upload <local> <remote>")
	}
	store, err := a.fileStore(ctx)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	contentType := contentTypeFor(args[0])
	if err := store.Upload(ctx, args[1], f, contentType); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "uploaded %s to %s\n", filepath.Base(args[0]), args[1])
	return nil
}

func (a *App) runDownloadURL(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: url <remote>")
	}
	store, err := a.fileStore(ctx)
	if err != nil {
		return err
	}
	url, err := store.DownloadURL(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, url)
	return nil
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
