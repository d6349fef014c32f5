// taskcli is a small command-line consumer of the task API, built on the
// same client package the tests exercise.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	_ "github.com/joho/godotenv/autoload"

	"github.com/dhamidullin/ds-test/internal/client"
	"github.com/dhamidullin/ds-test/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var apiBase string

	root := &cobra.Command{
		Use:          "taskcli",
		Short:        "Manage tasks over the task API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", "", "API base URL (defaults to API_BASE_URL)")

	newClient := func() (*client.Client, error) {
		base := apiBase
		if base == "" {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			base = cfg.APIBaseURL
		}
		return client.New(base, nil), nil
	}

	root.AddCommand(newListCmd(newClient))
	root.AddCommand(newGetCmd(newClient))
	root.AddCommand(newCreateCmd(newClient))
	root.AddCommand(newUpdateCmd(newClient))
	root.AddCommand(newDeleteCmd(newClient))
	return root
}

type clientFactory func() (*client.Client, error)

func newListCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			tasks, err := c.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tasks {
				printTask(cmd, t)
			}
			return nil
		},
	}
}

func newGetCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			task, err := c.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			printTask(cmd, task)
			return nil
		},
	}
}

func newCreateCmd(newClient clientFactory) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			task, err := c.CreateTask(cmd.Context(), client.TaskCreation{
				Title:       args[0],
				Description: description,
			})
			if err != nil {
				return err
			}
			printTask(cmd, task)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	return cmd
}

func newUpdateCmd(newClient clientFactory) *cobra.Command {
	var (
		title       string
		description string
		completed   bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update task fields; only supplied flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var update client.TaskUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("completed") {
				update.Completed = &completed
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			task, err := c.UpdateTask(cmd.Context(), id, update)
			if err != nil {
				return err
			}
			printTask(cmd, task)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().BoolVarP(&completed, "completed", "c", false, "completed state")
	return cmd
}

func newDeleteCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.DeleteTask(cmd.Context(), id); err != nil {
				return err
			}
			cmd.Printf("Task %d deleted\n", id)
			return nil
		},
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return uint(id), nil
}

func printTask(cmd *cobra.Command, t client.Task) {
	status := " "
	if t.Completed {
		status = "x"
	}
	cmd.Printf("[%s] #%d %s", status, t.ID, t.Title)
	if t.Description != "" {
		cmd.Printf(" - %s", t.Description)
	}
	cmd.Println()
}
