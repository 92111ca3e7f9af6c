package cli

import (
	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-adp-console/internal/dto"
)

func (con *console) faqCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faq",
		Short: "Browse and manage the FAQ",
	}
	cmd.AddCommand(
		con.faqListCommand(),
		con.faqGetCommand(),
		con.faqCategoriesCommand(),
		con.faqCreateCommand(),
		con.faqUpdateCommand(),
		con.faqDeleteCommand(),
		con.faqBulkCommand(),
	)
	return cmd
}

func (con *console) faqListCommand() *cobra.Command {
	var filter dto.FAQFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List FAQs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			help := con.app.Registry.Help
			if err := help.FetchFAQs(cmd.Context(), filter); err != nil {
				return err
			}
			return printJSON(cmd, help.Snapshot().FAQs)
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "all", "category filter")
	cmd.Flags().StringVar(&filter.Search, "search", "", "search text")
	return cmd
}

func (con *console) faqGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get FAQ_ID",
		Short: "Show one FAQ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			help := con.app.Registry.Help
			if err := help.FetchFAQ(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, help.Snapshot().CurrentFAQ)
		},
	}
}

func (con *console) faqCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List FAQ categories with counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			help := con.app.Registry.Help
			if err := help.FetchCategories(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd, help.Snapshot().Categories)
		},
	}
}

func bindFAQInput(cmd *cobra.Command, input *dto.FAQInput) {
	cmd.Flags().StringVar(&input.Question, "question", "", "question text")
	cmd.Flags().StringVar(&input.Answer, "answer", "", "answer text")
	cmd.Flags().StringVar(&input.Category, "category", "", "category")
	cmd.Flags().IntVar(&input.Order, "order", 0, "display order")
	cmd.Flags().StringSliceVar(&input.Tags, "tag", nil, "tag (repeatable)")
	cmd.Flags().Bool("active", true, "whether the FAQ is shown")
}

func faqActive(cmd *cobra.Command, input *dto.FAQInput) {
	if !cmd.Flags().Changed("active") {
		return
	}
	active, err := cmd.Flags().GetBool("active")
	if err == nil {
		input.IsActive = &active
	}
}

func (con *console) faqCreateCommand() *cobra.Command {
	var input dto.FAQInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a FAQ",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			faqActive(cmd, &input)
			faq, err := con.app.Registry.Help.CreateFAQ(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(cmd, faq)
		},
	}
	bindFAQInput(cmd, &input)
	return cmd
}

func (con *console) faqUpdateCommand() *cobra.Command {
	var input dto.FAQInput
	cmd := &cobra.Command{
		Use:   "update FAQ_ID",
		Short: "Replace a FAQ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			faqActive(cmd, &input)
			faq, err := con.app.Registry.Help.UpdateFAQ(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			return printJSON(cmd, faq)
		},
	}
	bindFAQInput(cmd, &input)
	return cmd
}

func (con *console) faqDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete FAQ_ID",
		Short: "Delete a FAQ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := con.app.Registry.Help.DeleteFAQ(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"deleted": args[0]})
		},
	}
}

func (con *console) faqBulkCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Create FAQs from a JSON array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows []dto.FAQInput
			if err := readJSONFile(cmd, file, &rows); err != nil {
				return err
			}
			created, err := con.app.Registry.Help.BulkCreateFAQs(cmd.Context(), rows)
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file, or - for stdin")
	return cmd
}

func (con *console) supportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "support",
		Short: "Support contact details and requests",
	}

	info := &cobra.Command{
		Use:   "info",
		Short: "Show support contact details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			help := con.app.Registry.Help
			if err := help.FetchSupportInfo(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd, help.Snapshot().SupportInfo)
		},
	}

	var input dto.ContactRequest
	contact := &cobra.Command{
		Use:   "contact",
		Short: "Open a support ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ticket, err := con.app.Registry.Help.ContactSupport(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(cmd, ticket)
		},
	}
	contact.Flags().StringVar(&input.Name, "name", "", "your name")
	contact.Flags().StringVar(&input.Email, "email", "", "reply-to email")
	contact.Flags().StringVar(&input.Subject, "subject", "", "subject")
	contact.Flags().StringVar(&input.Message, "message", "", "message body")
	contact.Flags().StringVar(&input.Category, "category", "", "ticket category")

	cmd.AddCommand(info, contact)
	return cmd
}
