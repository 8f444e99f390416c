// Package graphql exposes the project and task API as a GraphQL schema served
// over HTTP.
package graphql

import (
	"github.com/graphql-go/graphql"
)

const aliasDeprecation = "Use the English operation name."

var tokenType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Token",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var projectType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Proyecto",
	Fields: graphql.Fields{
		"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"nombre":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"creador": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
	},
})

var taskType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Tarea",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"nombre":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"proyecto": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"estado":   &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"creado": &graphql.Field{
			Type:        graphql.NewNonNull(graphql.String),
			Description: "Creation time, RFC 3339.",
		},
		"creador": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
	},
})

var userInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UsuarioInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"nombre":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var authInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "AutenticarInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var projectInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProyectoInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"nombre": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var taskInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TareaInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"nombre":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"proyecto": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var projectIDInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProyectoIDInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"proyecto": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

func idArg() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
}

// withAliases adds a deprecated copy of fields[name] under each alias.
func withAliases(fields graphql.Fields, aliases map[string]string) graphql.Fields {
	for alias, name := range aliases {
		f := *fields[name]
		f.DeprecationReason = aliasDeprecation
		fields[alias] = &f
	}
	return fields
}

// NewSchema builds the schema with r resolving every field.
func NewSchema(r *Resolvers) (graphql.Schema, error) {
	queries := graphql.Fields{
		"listProjects": &graphql.Field{
			Type:    graphql.NewList(projectType),
			Resolve: r.listProjects,
		},
		"listTasks": &graphql.Field{
			Type:    graphql.NewList(taskType),
			Args:    graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(projectIDInput)}},
			Resolve: r.listTasks,
		},
	}

	mutations := graphql.Fields{
		"register": &graphql.Field{
			Type:    graphql.String,
			Args:    graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(userInput)}},
			Resolve: r.register,
		},
		"authenticate": &graphql.Field{
			Type:    tokenType,
			Args:    graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(authInput)}},
			Resolve: r.authenticate,
		},
		"createProject": &graphql.Field{
			Type:    projectType,
			Args:    graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(projectInput)}},
			Resolve: r.createProject,
		},
		"updateProject": &graphql.Field{
			Type: projectType,
			Args: graphql.FieldConfigArgument{
				"id":    idArg(),
				"input": {Type: graphql.NewNonNull(projectInput)},
			},
			Resolve: r.updateProject,
		},
		"deleteProject": &graphql.Field{
			Type:    graphql.String,
			Args:    graphql.FieldConfigArgument{"id": idArg()},
			Resolve: r.deleteProject,
		},
		"createTask": &graphql.Field{
			Type:    taskType,
			Args:    graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(taskInput)}},
			Resolve: r.createTask,
		},
		"updateTask": &graphql.Field{
			Type: taskType,
			Args: graphql.FieldConfigArgument{
				"id":     idArg(),
				"input":  {Type: taskInput},
				"estado": {Type: graphql.Boolean},
			},
			Resolve: r.updateTask,
		},
		"deleteTask": &graphql.Field{
			Type: graphql.String,
			Args: graphql.FieldConfigArgument{
				"id":    idArg(),
				"input": {Type: taskInput},
			},
			Resolve: r.deleteTask,
		},
		"exportProject": &graphql.Field{
			Type:        graphql.String,
			Description: "Uploads a JSON snapshot of the project and returns a temporary download URL.",
			Args:        graphql.FieldConfigArgument{"id": idArg()},
			Resolve:     r.exportProject,
		},
	}

	withAliases(queries, map[string]string{
		"obtenerProyectos": "listProjects",
		"obtenerTareas":    "listTasks",
	})
	withAliases(mutations, map[string]string{
		"crearUsuario":       "register",
		"autenticarUsuario":  "authenticate",
		"nuevoProyecto":      "createProject",
		"actualizarProyecto": "updateProject",
		"eliminarProyecto":   "deleteProject",
		"nuevaTarea":         "createTask",
		"actualizarTarea":    "updateTask",
		"eliminarTarea":      "deleteTask",
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: queries}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{Name: "Mutation", Fields: mutations}),
	})
}
