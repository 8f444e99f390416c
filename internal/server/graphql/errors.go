package graphql

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/uptask/internal/common"
	"github.com/dmitrijs2005/uptask/internal/server/services"
)

// Values of extensions.code in error responses.
const (
	CodeDuplicateIdentity = "DUPLICATE_IDENTITY"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidCredential = "INVALID_CREDENTIAL"
	CodeForbidden         = "FORBIDDEN"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeBadUserInput      = "BAD_USER_INPUT"
	CodeInternal          = "INTERNAL"
)

// User-visible messages.
const (
	MsgDuplicateIdentity = "El usuario ya está registrado"
	MsgUserNotFound      = "El usuario no existe"
	MsgProjectNotFound   = "Proyecto no encontrado"
	MsgTaskNotFound      = "Tarea no encontrada"
	MsgInvalidCredential = "Password incorrecto"
	MsgForbidden         = "No tienes las credenciales para editar"
	MsgUnauthenticated   = "Usuario no autenticado"
	MsgInternal          = "Error interno del servidor"

	MsgUserCreated    = "Usuario Creado Correctamente..."
	MsgProjectDeleted = "Proyecto Eliminado."
	MsgTaskDeleted    = "Tarea Eliminada."
)

// apiError is what a resolver returns to the client. graphql-go copies
// Extensions into the formatted error.
type apiError struct {
	message string
	code    string
	cause   error
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) Unwrap() error { return e.cause }

func (e *apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func (e *apiError) Code() string { return e.code }

var errUnauthenticated = &apiError{message: MsgUnauthenticated, code: CodeUnauthenticated, cause: common.ErrorUnauthenticated}

type errorMapping struct {
	target  error
	message string
	code    string
}

// Specific kinds come before the generic ones they wrap.
var errorMappings = []errorMapping{
	{services.ErrNameRequired, "El nombre es obligatorio", CodeBadUserInput},
	{services.ErrEmailRequired, "El email es obligatorio", CodeBadUserInput},
	{services.ErrPasswordRequired, "El password es obligatorio", CodeBadUserInput},
	{services.ErrPasswordTooLong, "El password es demasiado largo", CodeBadUserInput},
	{services.ErrProjectRequired, "El proyecto es obligatorio", CodeBadUserInput},
	{common.ErrorAlreadyExists, MsgDuplicateIdentity, CodeDuplicateIdentity},
	{services.ErrUserNotFound, MsgUserNotFound, CodeNotFound},
	{services.ErrProjectNotFound, MsgProjectNotFound, CodeNotFound},
	{services.ErrTaskNotFound, MsgTaskNotFound, CodeNotFound},
	{common.ErrorInvalidCredentials, MsgInvalidCredential, CodeInvalidCredential},
	{common.ErrorForbidden, MsgForbidden, CodeForbidden},
	{common.ErrorUnauthenticated, MsgUnauthenticated, CodeUnauthenticated},
}

// toAPIError maps a service error to its client form. Anything unknown is
// logged with its cause and reported as an internal error.
func (r *Resolvers) toAPIError(ctx context.Context, op string, err error) error {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return &apiError{message: m.message, code: m.code, cause: err}
		}
	}
	r.logger.Error(ctx, "resolver failed", "operation", op, "error", err)
	return &apiError{message: MsgInternal, code: CodeInternal, cause: err}
}
