package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hufschlaeger.net/task-records/internal/domain/records"
)

// taskFlags sind die Formularfelder für create und update
type taskFlags struct {
	title       string
	description string
	priority    string
	dueDate     string
	status      string
	category    int
	order       int
	completed   bool
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Titel")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Beschreibung")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "Priorität: Low, Medium, High")
	cmd.Flags().StringVar(&f.dueDate, "due", "", "Fälligkeit (z.B. 2024-05-01 oder 2024-05-01T09:30); leer löscht beim Update")
	cmd.Flags().StringVar(&f.status, "status", "", "Status: pending, completed")
	cmd.Flags().IntVarP(&f.category, "category", "c", 0, "Kategorie-ID")
	cmd.Flags().IntVar(&f.order, "order", 0, "Position in der Liste")
	cmd.Flags().BoolVar(&f.completed, "completed", false, "Als erledigt markieren")
}

// input übernimmt nur Flags, die tatsächlich gesetzt wurden
func (f *taskFlags) input(cmd *cobra.Command) (records.TaskInput, error) {
	var in records.TaskInput
	changed := cmd.Flags().Changed

	if changed("title") {
		in.Title = records.Ptr(f.title)
	}
	if changed("description") {
		in.Description = records.Ptr(f.description)
	}
	if changed("priority") {
		p, err := records.ParsePriority(f.priority)
		if err != nil {
			return in, err
		}
		in.Priority = records.Ptr(p)
	}
	if changed("due") {
		in.DueDate = records.Ptr(f.dueDate)
	}
	if changed("status") {
		s, err := records.ParseStatus(f.status)
		if err != nil {
			return in, err
		}
		in.Status = records.Ptr(s)
	}
	if changed("category") {
		in.Category = records.Ptr(records.LookupID(f.category))
	}
	if changed("order") {
		in.Order = records.Ptr(f.order)
	}
	if changed("completed") {
		in.Completed = records.Ptr(f.completed)
	}
	return in, nil
}

func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("ungültige Task-ID %q", arg)
	}
	return id, nil
}

func (a *app) tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "tasks",
		Aliases:           []string{"task"},
		Short:             "Tasks anzeigen und bearbeiten",
		PersistentPreRunE: a.preRun,
	}

	cmd.AddCommand(
		a.tasksListCmd(),
		a.tasksGetCmd(),
		a.tasksCreateCmd(),
		a.tasksUpdateCmd(),
		a.tasksDeleteCmd(),
		a.tasksToggleCmd(),
		a.tasksReorderCmd(),
	)
	return cmd
}

func (a *app) tasksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Alle Tasks, neueste zuerst",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.taskRepo().GetAll(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Tasks(list)
		},
	}
}

func (a *app) tasksGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Einen Task anzeigen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			task, err := a.taskRepo().GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("%w (id %d)", records.ErrNotFound, id)
			}
			return a.printer.Task(task)
		},
	}
}

func (a *app) tasksCreateCmd() *cobra.Command {
	var flags taskFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Einen Task anlegen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input(cmd)
			if err != nil {
				return err
			}
			task, err := a.taskRepo().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			a.notifier().Success("Task created successfully")
			return a.printer.Task(task)
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *app) tasksUpdateCmd() *cobra.Command {
	var flags taskFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Einen Task ändern; nur angegebene Felder werden geschrieben",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			in, err := flags.input(cmd)
			if err != nil {
				return err
			}
			task, err := a.taskRepo().Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			a.notifier().Success("Task updated successfully")
			return a.printer.Task(task)
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) tasksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Einen Task löschen",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			deleted, err := a.taskRepo().Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if a.printer.Structured() {
				return a.printer.Value(map[string]bool{"deleted": deleted})
			}
			if deleted {
				fmt.Fprintf(a.out, "🗑️  Task %d gelöscht\n", id)
			} else {
				fmt.Fprintf(a.out, "⚠️  Task %d nicht gelöscht\n", id)
			}
			return nil
		},
	}
}

func (a *app) tasksToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Erledigt-Status umschalten",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			task, err := a.taskRepo().ToggleComplete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printer.Task(task)
		},
	}
}

func (a *app) tasksReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Reihenfolge setzen: die erste ID bekommt Position 1",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := make([]records.Task, 0, len(args))
			for _, arg := range args {
				id, err := parseTaskID(arg)
				if err != nil {
					return err
				}
				list = append(list, records.Task{ID: id})
			}

			if _, err := a.taskRepo().ReorderTasks(cmd.Context(), list); err != nil {
				return err
			}
			if a.printer.Structured() {
				return a.printer.Value(args)
			}
			fmt.Fprintf(a.out, "🔀 %d Tasks neu sortiert\n", len(list))
			return nil
		},
	}
}
