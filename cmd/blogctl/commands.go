package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/debemdeboas/mdblog/internal/editor"
	"github.com/debemdeboas/mdblog/internal/model"
	"github.com/debemdeboas/mdblog/internal/render"
	"github.com/debemdeboas/mdblog/internal/util"
)

func newListCmd(a *app) *cobra.Command {
	var search, tag string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List posts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.dispatch(cmd.Context(), editor.Search(search)); err != nil {
				return err
			}
			res, err := a.dispatch(cmd.Context(), editor.FilterTag(tag))
			if err != nil {
				return err
			}
			printList(a.out, res.List)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive text to look for in title, excerpt and body")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only posts carrying this tag")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var publish bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a markdown file as a post",
		Long: `Import a markdown file as a new post. The title is the first level one
heading, or the file name. A leading %%% TOML block may set title, tags
and draft.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			body, frontMatter := util.SplitFrontMatter(data)
			res, err := a.dispatch(cmd.Context(), editor.Import(filepath.Base(args[0]), string(body)).Confirm())
			if err != nil {
				return err
			}

			fields := editor.Fields{Title: res.Session.Title, Buffer: res.Session.Buffer}
			if frontMatter != nil {
				if frontMatter.Title != "" {
					fields.Title = frontMatter.Title
				}
				fields.Tags = model.JoinTags(frontMatter.Tags)
				if !cmd.Flags().Changed("publish") {
					publish = !frontMatter.Draft
				}
			}

			save := editor.SaveDraft()
			if publish {
				save = editor.Publish()
			}
			save.Fields = &fields
			res, err = a.dispatch(cmd.Context(), save)
			if err != nil {
				return err
			}
			if err := problem(res); err != nil {
				return err
			}

			status := "draft"
			if publish {
				status = "published"
			}
			fmt.Fprintf(a.out, "Imported %s as %s (id %s)\n",
				titleStyle.Render(fmt.Sprintf("%q", fields.Title)), status, res.Session.CurrentID)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&publish, "publish", "p", false, "publish instead of saving a draft")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a post as a markdown file",
		Long:  `Export a post body. Without --output it is written to stdout; a directory receives a file named after the title.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := loadPost(cmd, a, args[0])
			if err != nil {
				return err
			}

			res, err := a.dispatch(cmd.Context(), editor.Export())
			if err != nil {
				return err
			}
			if err := problem(res); err != nil {
				return err
			}
			d := res.Download

			if output == "" {
				_, err := io.WriteString(a.out, d.Content)
				return err
			}
			path := output
			if info, err := os.Stat(output); err == nil && info.IsDir() {
				path = filepath.Join(output, d.FileName)
			}
			if err := os.WriteFile(path, []byte(d.Content), 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(a.out, "Exported post %s to %s\n", id, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file or directory to write to")
	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	var syntaxTheme string
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render markdown to sanitized HTML",
		Long:  `Render a markdown file, or stdin when no file or "-" is given, the same way the editor preview does.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read markdown: %w", err)
			}

			if syntaxTheme == "" {
				syntaxTheme = a.controller.Snapshot().Theme.SyntaxTheme
			}
			fmt.Fprintln(a.out, render.New().Render(string(data), syntaxTheme))
			return nil
		},
	}
	cmd.Flags().StringVar(&syntaxTheme, "syntax-theme", "", "chroma style for code blocks (default from the saved theme)")
	return cmd
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParsePostID(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q: %w", args[0], err)
			}
			res, err := a.dispatch(cmd.Context(), editor.Delete(id))
			if err != nil {
				return err
			}
			if res.NeedsConfirm != "" {
				fmt.Fprintln(a.out, "Cancelled.")
				return nil
			}
			if len(res.Notices) == 0 {
				return fmt.Errorf("post %s not found", id)
			}
			return problem(res)
		},
	}
}

// loadPost loads the post named by arg into the editor session.
func loadPost(cmd *cobra.Command, a *app, arg string) (model.PostID, error) {
	id, err := model.ParsePostID(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q: %w", arg, err)
	}
	res, err := a.dispatch(cmd.Context(), editor.Load(id))
	if err != nil {
		return 0, err
	}
	if res.Session.CurrentID != id {
		return 0, fmt.Errorf("post %s not found", id)
	}
	return id, nil
}
