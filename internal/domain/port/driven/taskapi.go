package driven

import (
	"context"

	"github.com/ericfisherdev/taskdeck/internal/domain/model"
)

// TaskAPI defines the driven port for the remote task API. Every call goes
// through the gateway adapter, which attaches the stored bearer credential
// and observes authorization failures centrally.
type TaskAPI interface {
	// Login exchanges credentials for a bearer token. The gateway does not
	// store the token; that is the session service's job.
	Login(ctx context.Context, input model.LoginInput) (*model.AuthPayload, error)

	// Register creates a new account. Registration does not authenticate;
	// callers chain a Login afterwards.
	Register(ctx context.Context, input model.RegisterInput) (*model.User, error)

	ListProjects(ctx context.Context, includeArchived bool) ([]model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	CreateProject(ctx context.Context, draft model.ProjectDraft) (*model.Project, error)
	UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error)
	DeleteProject(ctx context.Context, id string) error

	ListTodos(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error)
	GetTodo(ctx context.Context, id string) (*model.Todo, error)
	CreateTodo(ctx context.Context, draft model.TodoDraft) (*model.Todo, error)
	UpdateTodo(ctx context.Context, id string, patch model.TodoPatch) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id string) error

	ListTags(ctx context.Context) ([]model.Tag, error)
	GetTag(ctx context.Context, id string) (*model.Tag, error)
	CreateTag(ctx context.Context, draft model.TagDraft) (*model.Tag, error)
	UpdateTag(ctx context.Context, id string, patch model.TagPatch) (*model.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}
