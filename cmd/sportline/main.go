package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/usernamenul1/sportline"
	"github.com/usernamenul1/sportline/pkg/auth"
	"github.com/usernamenul1/sportline/pkg/config"
	"github.com/usernamenul1/sportline/pkg/events"
	"github.com/usernamenul1/sportline/pkg/logger"
)

const usage = `Usage: sportline <command> [flags]

Commands:
  login     -u <username> -p <password>
  register  -u <username> -e <email> -p <password> [-n <full name>]
  whoami
  logout
  events    [-search <text>] [-location <text>] [-page <n>] [-limit <n>]
  signup    -event <id>
  orders
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var cfg sportline.Config
	config.MustLoad(&cfg)

	level := slog.LevelWarn
	if os.Getenv("SPORTLINE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	log := logger.New(
		logger.WithFormat(logger.FormatText),
		logger.WithOutput(os.Stderr),
		logger.WithLevel(level),
	)

	client, err := sportline.New(cfg,
		sportline.WithLogger(log),
		sportline.WithRedirect(func() {
			fmt.Fprintln(os.Stderr, "session expired, please log in again")
		}),
	)
	if err != nil {
		log.Error("failed to initialize client", logger.Error(err))
		os.Exit(1)
	}

	ctx := context.Background()
	client.Sessions.Restore(ctx)

	if err := run(ctx, client, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *sportline.Client, command string, args []string) error {
	switch command {
	case "login":
		return runLogin(ctx, client, args)
	case "register":
		return runRegister(ctx, client, args)
	case "whoami":
		return runWhoami(client)
	case "logout":
		client.Sessions.Logout()
		fmt.Println("logged out")
		return nil
	case "events":
		return runEvents(ctx, client, args)
	case "signup":
		return runSignup(ctx, client, args)
	case "orders":
		return runOrders(ctx, client)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runLogin(ctx context.Context, client *sportline.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	_ = fs.Parse(args)

	result := client.Sessions.Login(ctx, *username, *password)
	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}

	snap := client.Sessions.Snapshot()
	fmt.Printf("logged in as %s\n", snap.User.Username)
	return nil
}

func runRegister(ctx context.Context, client *sportline.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email")
	password := fs.String("p", "", "password")
	fullName := fs.String("n", "", "full name")
	_ = fs.Parse(args)

	result := client.Sessions.Register(ctx, auth.RegisterRequest{
		Username: *username,
		Email:    *email,
		Password: *password,
		FullName: *fullName,
	})
	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}

	fmt.Println("account created, you can now log in")
	return nil
}

func runWhoami(client *sportline.Client) error {
	snap := client.Sessions.Snapshot()
	if !snap.Authenticated {
		return fmt.Errorf("not logged in")
	}
	fmt.Printf("%s <%s>\n", snap.User.Username, snap.User.Email)
	return nil
}

func runEvents(ctx context.Context, client *sportline.Client, args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	search := fs.String("search", "", "search keyword")
	location := fs.String("location", "", "location filter")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "events per page")
	_ = fs.Parse(args)

	result, err := client.Events.List(ctx, events.ListParams{
		Search:   *search,
		Location: *location,
		Page:     *page,
		Limit:    *limit,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tTIME\tSIGNED UP")
	for _, e := range result.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d/%d\n",
			e.ID, e.Title, e.Location, e.EventTime.Format("2006-01-02 15:04"), e.RegisteredCount, e.Capacity)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("page %d of %d (%d events)\n", result.Page, result.Pages, result.Total)
	return nil
}

func runSignup(ctx context.Context, client *sportline.Client, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	eventID := fs.Int64("event", 0, "event id")
	_ = fs.Parse(args)

	order, err := client.Orders.Place(ctx, *eventID)
	if err != nil {
		return err
	}
	fmt.Printf("signed up for %q (order %d)\n", order.Event.Title, order.ID)
	return nil
}

func runOrders(ctx context.Context, client *sportline.Client) error {
	list, err := client.Orders.Mine(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEVENT\tSTATUS\tPLACED")
	for _, o := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			o.ID, o.Event.Title, o.Status, o.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}
