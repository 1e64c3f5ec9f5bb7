// Command dmmctl drives the DMM API from a terminal. Its asignar command edits
// the beneficiaries and sectors of a project or training and saves only the
// difference.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/client"
	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/reconcile"
	"github.com/dmm-municipal/dmm-api/pkg/logger"
)

const usage = `usage: dmmctl [flags] <command> [command flags]

commands:
  login                                check the credentials
  me                                   show the authenticated user
  vinculados -tipo T -id N             list linked beneficiary and sector ids
  asignar -tipo T -id N [-beneficiarios 1,2] [-sectores 3] [-estado E]
                                       replace the linked ids and save the difference

T is proyecto or capacitacion. Credentials come from DMM_USER and DMM_PASSWORD.
`

type globals struct {
	url      string
	user     string
	password string
	verbose  bool
}

func main() {
	g := globals{
		url:      envOr("DMM_API_URL", "http://localhost:5000/api"),
		user:     os.Getenv("DMM_USER"),
		password: os.Getenv("DMM_PASSWORD"),
	}
	fs := flag.NewFlagSet("dmmctl", flag.ExitOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	fs.StringVar(&g.url, "url", g.url, "API base URL")
	fs.StringVar(&g.user, "usuario", g.user, "username")
	fs.StringVar(&g.password, "contrasena", g.password, "password")
	fs.BoolVar(&g.verbose, "v", false, "debug logging")
	_ = fs.Parse(os.Args[1:])

	level := "warn"
	if g.verbose {
		level = "debug"
	}
	log := logger.Init(logger.Options{Level: level, Pretty: true, Service: "dmmctl", Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, g, fs.Args(), log); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, g globals, args []string, log zerolog.Logger) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	c, err := client.New(g.url,
		client.WithLogger(log),
		client.WithUnauthenticatedHandler(func() {
			log.Warn().Msg("session rejected, log in again")
		}),
	)
	if err != nil {
		return err
	}
	if g.user == "" || g.password == "" {
		return errors.New("DMM_USER and DMM_PASSWORD are required")
	}
	u, err := c.Login(ctx, g.user, g.password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer func() {
		if err := c.Logout(context.WithoutCancel(ctx)); err != nil {
			log.Debug().Err(err).Msg("logout")
		}
	}()

	switch cmd, rest := args[0], args[1:]; cmd {
	case "login":
		fmt.Printf("sesión iniciada como %s (%s)\n", u.Username, u.Role)
		return nil
	case "me":
		return me(ctx, c)
	case "vinculados":
		return linked(ctx, c, rest)
	case "asignar":
		return assign(ctx, c, rest, log)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func me(ctx context.Context, c *client.Client) error {
	u, err := c.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Name, u.Role)
	return nil
}

type ownerFlags struct {
	tipo string
	id   int64
}

func (o *ownerFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&o.tipo, "tipo", string(domain.OwnerProyecto), "proyecto or capacitacion")
	fs.Int64Var(&o.id, "id", 0, "owner id")
}

func (o ownerFlags) owner() (reconcile.Owner, error) {
	kind := domain.OwnerKind(o.tipo)
	if !kind.Valid() {
		return reconcile.Owner{}, fmt.Errorf("invalid -tipo %q", o.tipo)
	}
	if o.id <= 0 {
		return reconcile.Owner{}, errors.New("-id is required")
	}
	return reconcile.Owner{Kind: kind, ID: o.id}, nil
}

func linked(ctx context.Context, c *client.Client, args []string) error {
	var of ownerFlags
	fs := flag.NewFlagSet("vinculados", flag.ExitOnError)
	of.register(fs)
	_ = fs.Parse(args)

	owner, err := of.owner()
	if err != nil {
		return err
	}
	snap, err := reconcile.Load(ctx, c, owner)
	if err != nil {
		return err
	}
	for _, kind := range domain.RelationKinds {
		fmt.Printf("%s\t%s\n", kind, joinIDs(snap.Original(kind)))
	}
	return nil
}

func assign(ctx context.Context, c *client.Client, args []string, log zerolog.Logger) error {
	var (
		of            ownerFlags
		beneficiarios optionalIDs
		sectores      optionalIDs
		estado        string
	)
	fs := flag.NewFlagSet("asignar", flag.ExitOnError)
	of.register(fs)
	fs.Var(&beneficiarios, "beneficiarios", "comma-separated beneficiary ids (empty clears)")
	fs.Var(&sectores, "sectores", "comma-separated sector ids (empty clears)")
	fs.StringVar(&estado, "estado", "", "also set the owner's estado before relations are saved")
	_ = fs.Parse(args)

	owner, err := of.owner()
	if err != nil {
		return err
	}

	snap, err := reconcile.Load(ctx, c, owner)
	if err != nil {
		return err
	}
	if beneficiarios.set {
		snap.Set(domain.RelationBeneficiarios, beneficiarios.ids)
	}
	if sectores.set {
		snap.Set(domain.RelationSectores, sectores.ids)
	}
	if !snap.Dirty() && estado == "" {
		fmt.Println("sin cambios")
		return nil
	}

	var scalars func(context.Context) error
	if estado != "" {
		scalars = func(ctx context.Context) error { return updateEstado(ctx, c, owner, estado) }
	}

	report, err := reconcile.New(c, log).Save(ctx, owner, snap, scalars)
	if errors.Is(err, reconcile.ErrScalarUpdate) {
		return err
	}
	printReport(report)
	if err != nil {
		return fmt.Errorf("%d relation change(s) failed", len(report.Failures()))
	}
	return nil
}

func updateEstado(ctx context.Context, c *client.Client, owner reconcile.Owner, estado string) error {
	switch owner.Kind {
	case domain.OwnerCapacitacion:
		t, err := c.Capacitacion(ctx, owner.ID)
		if err != nil {
			return err
		}
		t.Estado = estado
		return c.UpdateCapacitacion(ctx, t)
	default:
		p, err := c.Proyecto(ctx, owner.ID)
		if err != nil {
			return err
		}
		p.Estado = estado
		return c.UpdateProyecto(ctx, p)
	}
}

func printReport(r *reconcile.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RELACION\tASIGNADOS\tREMOVIDOS\tFALLIDOS")
	for _, kind := range domain.RelationKinds {
		kr, ok := r.Kinds[kind]
		if !ok {
			continue
		}
		failed := make([]string, 0, len(kr.Failures))
		for _, f := range kr.Failures {
			failed = append(failed, fmt.Sprintf("%s %d", f.Action, f.ID))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", kind, joinIDs(kr.Assigned), joinIDs(kr.Removed), strings.Join(failed, ", "))
	}
	_ = w.Flush()
	for _, f := range r.Failures() {
		fmt.Fprintln(os.Stderr, "  ", f.Error())
	}
}

// optionalIDs is a flag.Value that remembers whether it was given at all, so
// an empty list clears a relation while an absent flag leaves it alone.
type optionalIDs struct {
	set bool
	ids []int64
}

func (o *optionalIDs) String() string { return joinIDs(o.ids) }

func (o *optionalIDs) Set(v string) error {
	o.set = true
	o.ids = nil
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid id %q", part)
		}
		o.ids = append(o.ids, id)
	}
	return nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
