// Command taskctl is a terminal client for the task manager API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"task_manager/internal/client"

	flag "github.com/spf13/pflag"
)

const usage = `usage: taskctl [--api URL] <command> [flags]

commands:
  register  --username U --email E --password P
  login     --email E --password P
  logout
  list      [--status S] [--priority P] [--sort createdAt|date|priority]
  add       --title T [--description D] [--priority P] [--status S] [--due YYYY-MM-DD]
  update    <id> [--title T] [--description D] [--priority P] [--status S] [--due YYYY-MM-DD]
  delete    <id>
  stats
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, client.ErrNotAuthenticated) {
			fmt.Fprintln(os.Stderr, "not logged in: run `taskctl login`")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskctl-session.json"
	}
	return filepath.Join(home, ".taskctl", "session.json")
}

func run(args []string, out io.Writer) error {
	global := flag.NewFlagSet("taskctl", flag.ContinueOnError)
	global.SetInterspersed(false)
	apiURL := global.String("api", envOr("TASKCTL_API", "http://localhost:5000/api"), "API base URL")
	sessionPath := global.String("session", defaultSessionPath(), "session file")
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	if err := global.Parse(args); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return errors.New("missing command")
	}

	sess, err := client.NewSession(client.FileStore{Path: *sessionPath})
	if err != nil {
		return err
	}
	c := client.New(*apiURL, sess, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "register":
		return cmdRegister(ctx, c, cmdArgs, out)
	case "login":
		return cmdLogin(ctx, c, cmdArgs, out)
	case "logout":
		if err := c.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(out, "logged out")
		return nil
	case "list":
		return cmdList(ctx, c, cmdArgs, out)
	case "add":
		return cmdAdd(ctx, c, cmdArgs, out)
	case "update":
		return cmdUpdate(ctx, c, cmdArgs, out)
	case "delete":
		return cmdDelete(ctx, c, cmdArgs, out)
	case "stats":
		return cmdStats(ctx, c, out)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func cmdRegister(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.StringP("username", "u", "", "username")
	email := fs.StringP("email", "e", "", "email")
	password := fs.StringP("password", "p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.Register(ctx, *username, *email, *password); err != nil {
		return err
	}
	fmt.Fprintln(out, "registered; now run `taskctl login`")
	return nil
}

func cmdLogin(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.StringP("email", "e", "", "email")
	password := fs.StringP("password", "p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	data, err := c.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "logged in as %s\n", data.Username)
	return nil
}

// taskFlags registers the flags shared by add and update.
func taskFlags(fs *flag.FlagSet) *client.TaskInput {
	in := &client.TaskInput{}
	fs.StringVarP(&in.Title, "title", "t", "", "title")
	fs.StringVarP(&in.Description, "description", "d", "", "description")
	fs.StringVarP(&in.Priority, "priority", "p", "", "Low, Medium or High")
	fs.StringVarP(&in.Status, "status", "s", "", "Todo, In Progress or Completed")
	fs.StringVar(&in.DueDate, "due", "", "due date (YYYY-MM-DD or RFC3339)")
	return in
}

func cmdList(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	var opts client.ListOptions
	fs.StringVarP(&opts.Status, "status", "s", "", "status filter")
	fs.StringVarP(&opts.Priority, "priority", "p", "", "priority filter")
	fs.StringVar(&opts.SortBy, "sort", "", "createdAt, date or priority")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tasks, err := c.ListTasks(ctx, opts)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRIORITY\tSTATUS\tDUE")
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Priority, t.Status, due)
	}
	return tw.Flush()
}

func cmdAdd(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	in := taskFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	t, err := c.CreateTask(ctx, *in)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created %s\n", t.ID)
	return nil
}

func cmdUpdate(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	in := taskFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("update needs exactly one task id")
	}
	t, err := c.UpdateTask(ctx, fs.Arg(0), *in)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "updated %s (%s, %s)\n", t.ID, t.Status, t.Priority)
	return nil
}

func cmdDelete(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("delete needs exactly one task id")
	}
	if err := c.DeleteTask(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(out, "deleted", args[0])
	return nil
}

func cmdStats(ctx context.Context, c *client.Client, out io.Writer) error {
	st, err := c.UserStats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "total %d, completed %d, pending %d, completion %.2f%%\n",
		st.TotalTasks, st.CompletedTasks, st.PendingTasks, st.CompletionRate)

	days, err := c.Productivity(ctx)
	if err != nil {
		return err
	}
	for _, d := range days {
		fmt.Fprintf(out, "  %s  %d\n", d.Date, d.Completed)
	}
	return nil
}
