package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/deepinsight/backend/internal/console"
	"github.com/deepinsight/backend/internal/model"
	"github.com/deepinsight/backend/pkg/client"
	"github.com/spf13/cobra"
)

func newInquiriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inquiries",
		Aliases: []string{"inq"},
		Short:   "Review customer inquiries (admin)",
	}

	cmd.AddCommand(newInquiriesListCmd(a))
	cmd.AddCommand(newInquiriesStatusCmd(a))

	return cmd
}

func newInquiriesListCmd(a *app) *cobra.Command {
	var req client.InquiryPageRequest

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List inquiries, newest first",
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
			page, err := c.FetchInquiries(cmd.Context(), s, req)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), page, func(w io.Writer) {
				printInquiries(w, page.Content)
				fmt.Fprintf(w, "\npage %d/%d, %d inquiries\n", page.Number+1, max(page.TotalPages, 1), page.TotalElements)
			})
		},
	}

	cmd.Flags().IntVar(&req.Page, "page", 0, "zero-origin page index")
	cmd.Flags().IntVar(&req.Size, "size", console.AdminPageSize, "page size")
	cmd.Flags().StringVar(&req.Status, "status", "", "pending, in_progress, completed or all")

	return cmd
}

func printInquiries(w io.Writer, inquiries []client.Inquiry) {
	if len(inquiries) == 0 {
		fmt.Fprintln(w, "No inquiries.")
		return
	}
	fmt.Fprintf(w, "%-36s %-12s %-16s %-24s %-20s %s\n", "ID", "STATUS", "RECEIVED", "SERVICES", "NAME", "EMAIL")
	for _, q := range inquiries {
		fmt.Fprintf(w, "%-36s %-12s %-16s %-24s %-20s %s\n",
			q.ID, q.Status, ago(q.CreatedAt), truncate(strings.Join(q.ServiceTypes, ","), 24), truncate(q.Name, 20), q.Email)
	}
}

func newInquiriesStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move an inquiry to pending, in_progress or completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			s, err := session(cmd.Context(), c)
			if err != nil {
				return err
			}
			inq, err := c.UpdateInquiryStatus(cmd.Context(), s, args[0], args[1])
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), inq, func(w io.Writer) {
				fmt.Fprintf(w, "Inquiry %s is now %s\n", inq.ID, inq.Status)
			})
		},
	}
}

// ---------- submit ----------

func newSubmitCmd(a *app) *cobra.Command {
	var (
		fields   console.InquiryFields
		services []string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send an inquiry through the public form",
		Example: `  insightctl submit --name Kim --email kim@example.com --message hello --service DEVOPS
  insightctl submit --name Kim --email kim@example.com --message hello --service DEVOPS,MLOPS`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range services {
				if !model.IsServiceType(s) {
					return fmt.Errorf("unknown service %q (want one of %s)", s, strings.Join(model.ServiceTypes, ", "))
				}
			}
			c, err := a.client(cmd)
			if err != nil {
				return err
			}

			form := console.NewInquiryForm(c)
			form.SetFields(fields)
			for _, s := range services {
				if !form.IsSelected(s) {
					form.Toggle(s)
				}
			}
			if !form.Valid() {
				return errors.New("--name, --email, --message and at least one --service are required")
			}
			if err := form.Submit(cmd.Context()); err != nil {
				return err
			}
			inq := form.State().Submitted
			return a.render(cmd.OutOrStdout(), inq, func(w io.Writer) {
				fmt.Fprintf(w, "Inquiry %s received (status %s)\n", inq.ID, inq.Status)
			})
		},
	}

	cmd.Flags().StringVar(&fields.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&fields.Email, "email", "", "Contact email")
	cmd.Flags().StringVar(&fields.Company, "company", "", "Company")
	cmd.Flags().StringVar(&fields.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&fields.Message, "message", "", "What you need")
	cmd.Flags().StringSliceVar(&services, "service", nil, "Service type, repeatable: "+serviceHelp())

	return cmd
}

func serviceHelp() string {
	parts := make([]string, 0, len(model.ServiceTypes))
	for _, t := range model.ServiceTypes {
		parts = append(parts, fmt.Sprintf("%s (%s)", t, model.ServiceTypeLabel(t)))
	}
	return strings.Join(parts, ", ")
}
