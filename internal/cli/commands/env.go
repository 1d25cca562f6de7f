package commands

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/auth"
	"github.com/salonbook/salon/internal/cli/client"
	"github.com/salonbook/salon/internal/cli/print"
	"github.com/salonbook/salon/internal/cli/prompt"
	"github.com/salonbook/salon/internal/config"
)

// AccessAnnotation is the cobra annotation carrying a command's access level
const AccessAnnotation = "salon/access"

// Env is everything a command needs for one invocation. It is built by the
// root command after the access gate has passed.
type Env struct {
	Config  *config.Config
	Session *auth.Session
	Client  *client.Client
	Printer *print.Printer
	Prompt  prompt.Prompter
	Logger  zerolog.Logger
	Now     func() time.Time
}

// Claims returns the session's claims, or the zero value when unauthenticated
func (e *Env) Claims() access.Claims {
	return e.Session.Claims().OrEmpty()
}

type envKey struct{}

// WithEnv stores env in ctx
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// EnvFrom returns the Env stored on the command's context
func EnvFrom(cmd *cobra.Command) (*Env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New("command environment not initialized")
	}
	env, ok := ctx.Value(envKey{}).(*Env)
	if !ok {
		return nil, errors.New("command environment not initialized")
	}
	return env, nil
}

// Require marks cmd as needing at least level
func Require(cmd *cobra.Command, level access.Access) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[AccessAnnotation] = level.String()
	return cmd
}

// RequiredAccess returns the access level of cmd, inherited from the
// nearest annotated ancestor. Unannotated commands are public.
func RequiredAccess(cmd *cobra.Command) (access.Access, error) {
	for c := cmd; c != nil; c = c.Parent() {
		if level, ok := c.Annotations[AccessAnnotation]; ok {
			return access.ParseAccess(level)
		}
	}
	return access.Public, nil
}

// run adapts a command body to cobra's RunE
func run(fn func(ctx context.Context, env *Env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := EnvFrom(cmd)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), env, args)
	}
}
