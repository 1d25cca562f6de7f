package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/client"
)

// NewReviewsCmd creates the reviews command group
func NewReviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reviews",
		Aliases: []string{"review"},
		Short:   "Read and write service reviews",
	}

	cmd.AddCommand(Require(&cobra.Command{
		Use:     "ls <service-id>",
		Aliases: []string{"list"},
		Short:   "List the reviews of a service",
		Args:    cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			reviews, err := env.Client.ListReviews(ctx, client.ID(args[0]))
			if err != nil {
				return err
			}
			return env.Printer.Reviews(reviews)
		}),
	}, access.Public))

	var review client.ReviewRequest
	add := &cobra.Command{
		Use:     "add <service-id>",
		Short:   "Review a service",
		Example: `  salon reviews add 3 --rating 5 --comment "Great cut"`,
		Args:    cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			review.ServiceID = client.ID(args[0])
			return runAddReview(ctx, env, env.Client, review)
		}),
	}
	add.Flags().IntVar(&review.Rating, "rating", 0, "Rating from 1 to 5")
	add.Flags().StringVar(&review.Comment, "comment", "", "Optional comment")
	_ = add.MarkFlagRequired("rating")
	cmd.AddCommand(Require(add, access.Customer))

	return cmd
}

func runAddReview(ctx context.Context, env *Env, api reviewsAPI, review client.ReviewRequest) error {
	if err := api.CreateReview(ctx, review); err != nil {
		return err
	}
	return env.Printer.Success("Review added")
}
