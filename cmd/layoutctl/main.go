// layoutctl cliente de operador: sesión, layouts, WIP y localización contra la API.
//
// Uso:
//
//	layoutctl login <usuario> <password>
//	layoutctl logout | whoami | layouts
//	layoutctl create <nombre> [ancho alto]
//	layoutctl open <layout-id>
//	layoutctl wip <código>...
//	layoutctl locate -item <id> | -container <id>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/Eddiexian/AI-Pr/internal/client/app"
	"github.com/Eddiexian/AI-Pr/internal/client/model"
	"github.com/Eddiexian/AI-Pr/internal/client/remote"
	"github.com/Eddiexian/AI-Pr/pkg/config"
	"github.com/Eddiexian/AI-Pr/pkg/logger"
)

var (
	errUsage        = errors.New("uso inválido")
	errNotLoggedIn  = errors.New("no hay sesión activa, ejecute: layoutctl login <usuario> <password>")
	errInvalidLogin = errors.New("usuario o contraseña incorrectos")
	errNoMatch      = errors.New("sin resultado")
	errForbidden    = errors.New("se requiere rol maintainer o superior")
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(2)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := app.NewFromConfig(cfg.Client, log)
	err = run(ctx, a, os.Args[1:], os.Stdout)
	a.Wait()
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, err)
		usage(os.Stderr)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `uso: layoutctl <comando> [argumentos]

  login <usuario> <password>
  logout
  whoami
  layouts
  create <nombre> [ancho alto]
  open <layout-id>
  wip <código>...
  locate -item <id> | -container <id>
`)
}

func run(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		if len(rest) != 2 {
			return fmt.Errorf("%w: login <usuario> <password>", errUsage)
		}
		ok, err := a.Login(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		if !ok {
			return errInvalidLogin
		}
		p, _ := a.Session.Principal()
		fmt.Fprintf(out, "sesión iniciada: %s (%s)\n", p.Username, p.Role)
		return nil
	case "logout":
		a.Logout()
		fmt.Fprintln(out, "sesión cerrada")
		return nil
	case "help", "-h", "--help":
		usage(out)
		return nil
	}

	// El resto de comandos revalida la sesión persistida.
	if err := a.Init(ctx); err != nil && !errors.Is(err, remote.ErrUnauthorized) {
		return err
	}
	if !a.Session.Authenticated() {
		return errNotLoggedIn
	}

	switch cmd {
	case "whoami":
		p, _ := a.Session.Principal()
		fmt.Fprintf(out, "%s\t%s\n", p.Username, p.Role)
		return nil
	case "layouts":
		return listLayouts(ctx, a, out)
	case "create":
		return createLayout(ctx, a, rest, out)
	case "open":
		if len(rest) != 1 {
			return fmt.Errorf("%w: open <layout-id>", errUsage)
		}
		return openLayout(ctx, a, rest[0], out)
	case "wip":
		return showWIP(ctx, a, rest, out)
	case "locate":
		return locate(ctx, a, rest, out)
	}
	return fmt.Errorf("%w: comando desconocido %q", errUsage, cmd)
}

func listLayouts(ctx context.Context, a *app.App, out io.Writer) error {
	list, err := a.Directory.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tTAMAÑO\tPISO\tÁREA")
	for _, l := range list {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%s\t%s\n", l.ID, l.Name, l.Width, l.Height, l.Floor, l.Area)
	}
	return tw.Flush()
}

func createLayout(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	draft, err := parseDraft(args)
	if err != nil {
		return err
	}
	if !a.Session.HasRole(model.RoleMaintainer) {
		return errForbidden
	}
	l, err := a.Directory.Create(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "layout creado: %s\n", l.ID)
	return nil
}

// parseDraft interpreta <nombre> [ancho alto].
func parseDraft(args []string) (model.LayoutDraft, error) {
	if len(args) != 1 && len(args) != 3 {
		return model.LayoutDraft{}, fmt.Errorf("%w: create <nombre> [ancho alto]", errUsage)
	}
	draft := model.LayoutDraft{Name: strings.TrimSpace(args[0])}
	if draft.Name == "" {
		return model.LayoutDraft{}, fmt.Errorf("%w: nombre vacío", errUsage)
	}
	if len(args) == 3 {
		w, errW := strconv.Atoi(args[1])
		h, errH := strconv.Atoi(args[2])
		if errW != nil || errH != nil || w <= 0 || h <= 0 {
			return model.LayoutDraft{}, fmt.Errorf("%w: ancho y alto deben ser enteros positivos", errUsage)
		}
		draft.Width, draft.Height = w, h
	}
	return draft, nil
}

func openLayout(ctx context.Context, a *app.App, id string, out io.Writer) error {
	detail, err := a.Open(ctx, id)
	if err != nil {
		return err
	}
	a.Wait()
	counts := a.Overlay.Counts()
	cassettes := a.Overlay.CassetteCounts()

	fmt.Fprintf(out, "%s (%dx%d) %s %s\n", detail.Name, detail.Width, detail.Height, detail.Floor, detail.Area)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIPO\tCÓDIGO\tX\tY\tW\tH\tCONTEO\tCASSETTES")
	for _, c := range detail.Components {
		code := c.CodeOrEmpty()
		count, cst := "", ""
		if c.Type == model.ComponentBin && code != "" {
			count = strconv.Itoa(counts[code])
			cst = strconv.Itoa(cassettes[code])
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%g\t%g\t%s\t%s\n", c.ID, c.Type, code, c.X, c.Y, c.Width, c.Height, count, cst)
	}
	return tw.Flush()
}

func showWIP(ctx context.Context, a *app.App, codes []string, out io.Writer) error {
	if len(codes) == 0 {
		return fmt.Errorf("%w: wip <código>...", errUsage)
	}
	wip, err := a.Overlay.FetchWipData(ctx, codes)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BIN\tCONTENEDOR\tPOS\tWORK-ITEM\tMODELO\tGRADO\tETAPA\tOPERADOR")
	for code, containers := range wip {
		if len(containers) == 0 {
			fmt.Fprintf(tw, "%s\t-\t\t\t\t\t\t\n", code)
			continue
		}
		for _, c := range containers {
			for _, u := range c.Units {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n", code, c.ContainerID, c.Position, u.WorkItemID, u.Model, u.Grade, u.Stage, u.OperatorID)
			}
		}
	}
	return tw.Flush()
}

func locate(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("locate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	item := fs.String("item", "", "id de work-item")
	container := fs.String("container", "", "id de contenedor")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if (*item == "") == (*container == "") {
		return fmt.Errorf("%w: locate -item <id> | -container <id>", errUsage)
	}
	loc := a.Locate(ctx, model.LocateQuery{WorkItemID: *item, ContainerID: *container})
	if !loc.Found() {
		return errNoMatch
	}
	fmt.Fprintf(out, "bin=%s contenedor=%s", loc.BinCode, loc.ContainerID)
	if loc.WorkItemID != "" {
		fmt.Fprintf(out, " work-item=%s", loc.WorkItemID)
	}
	fmt.Fprintln(out)
	return nil
}
