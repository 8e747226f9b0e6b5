package cli

import (
	"fmt"
	"io"

	"github.com/deepinsight/backend/internal/console"
	"github.com/deepinsight/backend/pkg/client"
	"github.com/spf13/cobra"
)

// postPageSize matches the public board.
const postPageSize = 10

func newPostsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Browse and manage board posts",
	}

	cmd.AddCommand(newPostsListCmd(a))
	cmd.AddCommand(newPostsRecentCmd(a))
	cmd.AddCommand(newPostsGetCmd(a))
	cmd.AddCommand(newPostsCreateCmd(a))
	cmd.AddCommand(newPostsUpdateCmd(a))
	cmd.AddCommand(newPostsDeleteCmd(a))

	return cmd
}

// ---------- posts list ----------

func newPostsListCmd(a *app) *cobra.Command {
	var (
		req client.PageRequest
		all bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List published posts, or every post with --all",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			var page *client.Page[client.Post]
			if all {
				s, err := session(cmd.Context(), c)
				if err != nil {
					return err
				}
				page, err = c.FetchAllPosts(cmd.Context(), s, req)
				if err != nil {
					return err
				}
			} else if page, err = c.FetchPosts(cmd.Context(), req); err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), page, func(w io.Writer) {
				printPosts(w, page.Content)
				fmt.Fprintf(w, "\npage %d/%d, %d posts\n", page.Number+1, max(page.TotalPages, 1), page.TotalElements)
			})
		},
	}

	cmd.Flags().IntVar(&req.Page, "page", 0, "zero-origin page index")
	cmd.Flags().IntVar(&req.Size, "size", postPageSize, "page size")
	cmd.Flags().StringVar(&req.Category, "category", "", "NOTICE or RECRUIT")
	cmd.Flags().BoolVar(&all, "all", false, "include drafts (admin)")

	return cmd
}

func newPostsRecentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List the latest published posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			posts, err := c.FetchRecentPosts(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), posts, func(w io.Writer) {
				printPosts(w, posts)
			})
		},
	}
}

func printPosts(w io.Writer, posts []client.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts.")
		return
	}
	fmt.Fprintf(w, "%-36s %-8s %-9s %-6s %-16s %s\n", "ID", "CATEGORY", "PUBLISHED", "VIEWS", "CREATED", "TITLE")
	for _, p := range posts {
		fmt.Fprintf(w, "%-36s %-8s %-9s %-6d %-16s %s\n", p.ID, p.Category, yesNo(p.Published), p.Views, ago(p.CreatedAt), truncate(p.Title, 40))
	}
}

// ---------- posts get ----------

func newPostsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one post (counts as a view)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			detail := console.NewDetailView(c.FetchPostByID)
			if err := detail.Open(cmd.Context(), args[0]); err != nil {
				return err
			}
			p := detail.State().Post
			return a.render(cmd.OutOrStdout(), p, func(w io.Writer) {
				fmt.Fprintf(w, "%s\n\n", p.Title)
				fmt.Fprintf(w, "%-10s %s\n", "ID", p.ID)
				fmt.Fprintf(w, "%-10s %s\n", "AUTHOR", p.Author)
				fmt.Fprintf(w, "%-10s %s\n", "CATEGORY", p.Category)
				fmt.Fprintf(w, "%-10s %d\n", "VIEWS", p.Views)
				fmt.Fprintf(w, "%-10s %s\n", "CREATED", console.FormatTime(p.CreatedAt))
				fmt.Fprintf(w, "%-10s %s\n", "UPDATED", console.FormatTime(p.UpdatedAt))
				if p.ImageURL != "" {
					fmt.Fprintf(w, "%-10s %s\n", "IMAGE", p.ImageURL)
				}
				fmt.Fprintf(w, "\n%s\n", p.Content)
			})
		},
	}
}

// ---------- posts create / update ----------

type postFlags struct {
	in        client.PostInput
	published bool
}

func (f *postFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.in.Title, "title", "", "Post title (required)")
	cmd.Flags().StringVar(&f.in.Content, "content", "", "Post body (required)")
	cmd.Flags().StringVar(&f.in.Author, "author", client.DefaultAuthor, "Author")
	cmd.Flags().StringVar(&f.in.Category, "category", client.CategoryNotice, "NOTICE or RECRUIT")
	cmd.Flags().StringVar(&f.in.ImageURL, "image", "", "Image URL, e.g. from 'insightctl upload'")
	cmd.Flags().BoolVar(&f.published, "published", true, "Publish the post")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("content")
}

// input returns the post form; Published is set only when the flag was
// given or on create.
func (f *postFlags) input(cmd *cobra.Command, create bool) client.PostInput {
	in := f.in
	if create || cmd.Flags().Changed("published") {
		published := f.published
		in.Published = &published
	}
	return in
}

func newPostsCreateCmd(a *app) *cobra.Command {
	var f postFlags

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a post",
		Example: `  insightctl posts create --title "채용 공고" --content "..." --category RECRUIT`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			s, err := session(cmd.Context(), c)
			if err != nil {
				return err
			}
			p, err := c.CreatePost(cmd.Context(), s, f.input(cmd, true))
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), p, func(w io.Writer) {
				fmt.Fprintf(w, "Created post %s\n", p.ID)
			})
		},
	}
	f.register(cmd)

	return cmd
}

func newPostsUpdateCmd(a *app) *cobra.Command {
	var f postFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace the editable fields of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			s, err := session(cmd.Context(), c)
			if err != nil {
				return err
			}
			p, err := c.UpdatePost(cmd.Context(), s, args[0], f.input(cmd, false))
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), p, func(w io.Writer) {
				fmt.Fprintf(w, "Updated post %s\n", p.ID)
			})
		},
	}
	f.register(cmd)

	return cmd
}

// ---------- posts delete ----------

func newPostsDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a post",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, console.DeletePrompt) {
				return console.ErrCancelled
			}
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			s, err := session(cmd.Context(), c)
			if err != nil {
				return err
			}
			if err := c.DeletePost(cmd.Context(), s, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted post %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}
