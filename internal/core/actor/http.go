package actor

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/myapi/internal/platform/apperr"
	requestutil "github.com/taibuivan/myapi/internal/platform/request"
	"github.com/taibuivan/myapi/internal/platform/respond"
)

// Handler serves the actor routes on top of a [Service].
type Handler struct {
	service *Service
}

// NewHandler constructs an actor HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a sub-router meant to be mounted under a prefix such as /actors.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createActor)
	router.Get("/", handler.listActors)
	router.Get("/{actor_id}", handler.getActor)
	router.Patch("/{actor_id}", handler.updateActor)
	router.Delete("/{actor_id}", handler.deleteActor)

	return router
}

func (handler *Handler) createActor(writer http.ResponseWriter, request *http.Request) {
	var input CreateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := handler.service.CreateActor(request.Context(), input)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}
	respond.OK(writer, actor)
}

func (handler *Handler) listActors(writer http.ResponseWriter, request *http.Request) {
	actors, err := handler.service.ListActors(request.Context())
	if err != nil {
		handler.fail(writer, request, err)
		return
	}
	respond.OK(writer, actors)
}

func (handler *Handler) getActor(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.IntParam(request, FieldActorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := handler.service.GetActor(request.Context(), actorID)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}
	respond.OK(writer, actor)
}

func (handler *Handler) updateActor(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.IntParam(request, FieldActorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := handler.service.UpdateActor(request.Context(), actorID, input)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}
	respond.OK(writer, actor)
}

func (handler *Handler) deleteActor(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.IntParam(request, FieldActorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteActor(request.Context(), actorID); err != nil {
		handler.fail(writer, request, err)
		return
	}
	respond.OK(writer, DeleteResponse{ActorID: actorID})
}

// fail renders a missing actor as 404 and defers everything else to respond.Error.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error) {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		err = apperr.NotFoundMessage(notFound.Error())
	}
	respond.Error(writer, request, err)
}
