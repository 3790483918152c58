// ABOUTME: CLI commands for post operations against the saved API address.
// ABOUTME: Provides load, add, delete, search and sort, printing the rendered posts.
package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/controller"
	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/render"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "List all posts",
	Args:  cobra.NoArgs,
	RunE:  runLoad,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a post",
	Long:  "Create a post, then list all posts.",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Long: `Delete a post by id.

Only the results of a search are redisplayed after a delete. Pass --title or
--content to search first; the remaining matches are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find posts by title or content",
	Args:  cobra.NoArgs,
	RunE:  runSearch,
}

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "List posts in order",
	Args:  cobra.NoArgs,
	RunE:  runSort,
}

// Flags
var (
	htmlOutput    bool
	addTitle      string
	addContent    string
	searchTitle   string
	searchContent string
	sortField     string
	sortDirection string
)

func init() {
	for _, c := range []*cobra.Command{loadCmd, addCmd, deleteCmd, searchCmd, sortCmd} {
		c.Flags().BoolVar(&htmlOutput, "html", false, "Print the rendered page markup instead of a table")
		rootCmd.AddCommand(c)
	}

	addCmd.Flags().StringVar(&addTitle, "title", "", "Post title")
	addCmd.Flags().StringVar(&addContent, "content", "", "Post content")

	for _, c := range []*cobra.Command{searchCmd, deleteCmd} {
		c.Flags().StringVar(&searchTitle, "title", "", "Text to find in titles")
		c.Flags().StringVar(&searchContent, "content", "", "Text to find in content")
	}

	sortCmd.Flags().StringVar(&sortField, "field", string(models.SortByTitle), "Sort field: title or content")
	sortCmd.Flags().StringVar(&sortDirection, "direction", string(models.SortAscending), "Sort direction: asc or desc")
}

func runLoad(cmd *cobra.Command, args []string) error {
	return runPostAction(cmd, nil, func(c *controller.Controller) controller.Action {
		return c.Load()
	})
}

func runAdd(cmd *cobra.Command, args []string) error {
	fields := map[render.Field]string{
		render.FieldPostTitle:   addTitle,
		render.FieldPostContent: addContent,
	}
	return runPostAction(cmd, fields, func(c *controller.Controller) controller.Action {
		return c.Add()
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid post id %q: %w", args[0], err)
	}

	fields := map[render.Field]string{
		render.FieldSearchTitle:   searchTitle,
		render.FieldSearchContent: searchContent,
	}
	searchFirst := searchTitle != "" || searchContent != ""

	return runPostAction(cmd, fields, func(c *controller.Controller) controller.Action {
		if !searchFirst {
			return c.Delete(id)
		}
		return thenDelete(c, c.Search(), id)
	})
}

// thenDelete runs first and, if it succeeds, follows it with a delete of id.
func thenDelete(c *controller.Controller, first controller.Action, id int64) controller.Action {
	return func(ctx context.Context) controller.Completion {
		complete := first(ctx)
		return func() (controller.Action, error) {
			if _, err := complete(); err != nil {
				return nil, err
			}
			return c.Delete(id), nil
		}
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	fields := map[render.Field]string{
		render.FieldSearchTitle:   searchTitle,
		render.FieldSearchContent: searchContent,
	}
	return runPostAction(cmd, fields, func(c *controller.Controller) controller.Action {
		return c.Search()
	})
}

func runSort(cmd *cobra.Command, args []string) error {
	fields := map[render.Field]string{
		render.FieldSortField:     sortField,
		render.FieldSortDirection: sortDirection,
	}
	return runPostAction(cmd, fields, func(c *controller.Controller) controller.Action {
		return c.Sort()
	})
}

// runPostAction fills a restored headless page, runs the built action and
// prints what was rendered.
func runPostAction(cmd *cobra.Command, fields map[render.Field]string, build func(*controller.Controller) controller.Action) error {
	doc := restoredDocument()
	if _, ok := globalStore.Saved(); !ok {
		return fmt.Errorf("no API base URL saved; pass --base-url or run 'postboard config set-base-url'")
	}
	for f, v := range fields {
		doc.SetValue(f, v)
	}

	ctrl := newController(doc, globalLogger)
	if err := controller.Run(cmd.Context(), build(ctrl)); err != nil {
		return err
	}
	return printPage(cmd.OutOrStdout(), doc, htmlOutput)
}
