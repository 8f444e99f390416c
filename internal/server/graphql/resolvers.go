package graphql

import (
	"context"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/dmitrijs2005/uptask/internal/logging"
	"github.com/dmitrijs2005/uptask/internal/server/auth"
	"github.com/dmitrijs2005/uptask/internal/server/models"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
}

type ProjectService interface {
	List(ctx context.Context, owner auth.Identity) ([]*models.Project, error)
	Create(ctx context.Context, owner auth.Identity, name string) (*models.Project, error)
	Update(ctx context.Context, owner auth.Identity, id, name string) (*models.Project, error)
	Delete(ctx context.Context, owner auth.Identity, id string) error
}

type TaskService interface {
	List(ctx context.Context, owner auth.Identity, projectID string) ([]*models.Task, error)
	Create(ctx context.Context, owner auth.Identity, name, projectID string) (*models.Task, error)
	Update(ctx context.Context, owner auth.Identity, id string, upd models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, owner auth.Identity, id string) error
}

type ExportService interface {
	ExportProject(ctx context.Context, owner auth.Identity, id string) (string, error)
}

// Resolvers implements every field of the schema on top of the services.
type Resolvers struct {
	users    UserService
	projects ProjectService
	tasks    TaskService
	exports  ExportService
	logger   logging.Logger
}

func NewResolvers(l logging.Logger, us UserService, ps ProjectService, ts TaskService, es ExportService) *Resolvers {
	return &Resolvers{
		users:    us,
		projects: ps,
		tasks:    ts,
		exports:  es,
		logger:   l.With("module", "graphql"),
	}
}

// requireIdentity is the single entry check of every operation that acts on
// behalf of a user.
func requireIdentity(p graphql.ResolveParams) (auth.Identity, error) {
	identity, ok := auth.IdentityFromContext(p.Context)
	if !ok {
		return auth.Identity{}, errUnauthenticated
	}
	return identity, nil
}

func inputArg(p graphql.ResolveParams) map[string]interface{} {
	m, _ := p.Args["input"].(map[string]interface{})
	return m
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringArg(p graphql.ResolveParams, key string) string {
	s, _ := p.Args[key].(string)
	return s
}

func projectView(p *models.Project) map[string]interface{} {
	return map[string]interface{}{
		"id":      p.ID,
		"nombre":  p.Name,
		"creador": p.OwnerID,
	}
}

func taskView(t *models.Task) map[string]interface{} {
	return map[string]interface{}{
		"id":       t.ID,
		"nombre":   t.Name,
		"proyecto": t.ProjectID,
		"estado":   t.Completed,
		"creado":   t.CreatedAt.UTC().Format(time.RFC3339),
		"creador":  t.OwnerID,
	}
}

func (r *Resolvers) listProjects(p graphql.ResolveParams) (interface{}, error) {
	who, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}
	projects, err := r.projects.List(p.Context, who)
	if err != nil {
		return nil, r.toAPIError(p.Context, "listProjects", err)
	}
	out := make([]map[string]interface{}, 0, len(projects))
	for _, pr := range projects {
		out = append(out, projectView(pr))
	}
	return out, nil
}

func (r *Resolvers) listTasks(p graphql.ResolveParams) (interface{}, error) {
	who, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}
	tasks, err := r.tasks.List(p.Context, who, stringField(inputArg(p), "proyecto"))
	if err != nil {
		return nil, r.toAPIError(p.Context, "listTasks", err)
	}
	out := make([]map[string]interface{}, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskView(t))
	}
	return out, nil
}

func (r *Resolvers) register(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p)
	_, err := r.users.Register(p.Context, stringField(in, "nombre"), stringField(in, "email"), stringField(in, "password"))
	if err != nil {
		return nil, r.toAPIError(p.Context, "register", err)
	}
	return MsgUserCreated, nil
}

func (r *Resolvers) authenticate(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p)
	token, err := r.users.Authenticate(p.Context, stringField(in, "email"), stringField(in, "password"))
	if err != nil {
		return nil, r.toAPIError(p.Context, "authenticate", err)
	}
	return map[string]interface{}{"token": token}, nil
}

func (r *Resolvers) createProject(p graphql.ResolveParams) (interface{}, error) {
	who, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}
	pr, err := r.projects.Create(p.Context, who, stringField(inputArg(p), "nombre"))
	if err != nil {
		return nil, r.toAPIError(p.Context, "createProject", err)
	}
	return projectView(pr), nil
}

func (r *Resolvers) updateProject(p graphql.ResolveParams) (interface{}, error) {
	who, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}
	pr, err := r.projects.Update(p.Context, who, stringArg(p, "id"), stringField(inputArg(p), "nombre"))
	if err != nil {
		return nil, r.toAPIError(p.Context, "updateProject", err)
	}
	return projectView(pr), nil
}

func (r *Resolvers) deleteProject(p graphql.ResolveParams) (interface{}, error) {
	who, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}
	if err := r.projects.Delete(p.Context, who, stringArg(p, "id")); err != nil {
		return nil, r.toAPIError(p.Context, "deleteProject", err)
	}
	return MsgProjectDeleted, nil
}

func (r *Resolvers) createTask(p graphql.ResolveParams) (interface{}, error) {
	who, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}
	in := inputArg(p)
	t, err := r.tasks.Create(p.Context, who, stringField(in, "nombre"), stringField(in, "proyecto"))
	if err != nil {
		return nil, r.toAPIError(p.Context, "createTask", err)
	}
	return taskView(t), nil
}

func (r *Resolvers) updateTask(p graphql.ResolveParams) (interface{}, error) {
	who, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}

	in := inputArg(p)
	var upd models.TaskUpdate
	if v, ok := in["nombre"].(string); ok {
		upd.Name = &v
	}
	if v, ok := in["proyecto"].(string); ok {
		upd.ProjectID = &v
	}
	if v, ok := p.Args["estado"].(bool); ok {
		upd.Completed = &v
	}

	t, err := r.tasks.Update(p.Context, who, stringArg(p, "id"), upd)
	if err != nil {
		return nil, r.toAPIError(p.Context, "updateTask", err)
	}
	return taskView(t), nil
}

// deleteTask accepts an input argument for compatibility and ignores it.
func (r *Resolvers) deleteTask(p graphql.ResolveParams) (interface{}, error) {
	who, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}
	if err := r.tasks.Delete(p.Context, who, stringArg(p, "id")); err != nil {
		return nil, r.toAPIError(p.Context, "deleteTask", err)
	}
	return MsgTaskDeleted, nil
}

func (r *Resolvers) exportProject(p graphql.ResolveParams) (interface{}, error) {
	who, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}
	url, err := r.exports.ExportProject(p.Context, who, stringArg(p, "id"))
	if err != nil {
		return nil, r.toAPIError(p.Context, "exportProject", err)
	}
	return url, nil
}
