package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"quiz-progress-service/internal/config"
	"quiz-progress-service/internal/domain"
)

// NewCompleteCmd records a finished quiz for a user and prints the updated stats.
func NewCompleteCmd(configPath *string) *cobra.Command {
	var (
		user, quizID, lang string
		score, total       int
	)
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Record a quiz completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withComponents(cmd, *configPath, func(ctx context.Context, c *components) error {
				outcome := domain.QuizOutcome{QuizID: quizID, Score: score, TotalQuestions: total}
				stats, err := c.service.CompleteQuiz(ctx, user, outcome)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), c.views.Render(stats, langOr(lang, c.cfg)))
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id")
	cmd.Flags().StringVar(&quizID, "quiz", "", "quiz id")
	cmd.Flags().IntVar(&score, "score", 0, "correct answers")
	cmd.Flags().IntVar(&total, "total", 0, "questions in the quiz")
	cmd.Flags().StringVar(&lang, "lang", "", "display language")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("quiz")
	_ = cmd.MarkFlagRequired("total")
	return cmd
}

// NewStatsCmd prints the localized stats view for a user.
func NewStatsCmd(configPath *string) *cobra.Command {
	var user, lang string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a user's statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withComponents(cmd, *configPath, func(ctx context.Context, c *components) error {
				if _, err := c.service.Record(ctx, user); err != nil {
					return err
				}
				stats := c.service.Stats(ctx, user)
				return printJSON(cmd.OutOrStdout(), c.views.Render(stats, langOr(lang, c.cfg)))
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id")
	cmd.Flags().StringVar(&lang, "lang", "", "display language")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// NewShareCmd prints the share intent URL for a user's results.
func NewShareCmd(configPath *string) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a share link for a user's results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withComponents(cmd, *configPath, func(ctx context.Context, c *components) error {
				if user == "" {
					return domain.ErrUserRequired
				}
				payload := c.shares.Build(c.service.ShareStats(ctx, user), c.cfg.Share.TargetURL)
				dispatcher := c.dispatcher(cmd.OutOrStdout())
				dispatcher.Dispatch(payload)
				dispatcher.Wait()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func withComponents(cmd *cobra.Command, configPath string, fn func(context.Context, *components) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, commandTimeout)
	defer cancel()

	c, err := buildComponents(ctx, cfg, newLogger(false))
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx, c)
}

func langOr(lang string, cfg config.Config) string {
	if lang != "" {
		return lang
	}
	return cfg.Locale.Default
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
