package handler

import (
	"net/http"

	"dsc/core"
	"dsc/handler/rest"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Server server
type Server struct {
	engine  core.EngineService
	sandbox core.SandboxService
	events  core.EventStore
}

// New new server function
func New(
	engine core.EngineService,
	sandbox core.SandboxService,
	events core.EventStore,
) Server {
	return Server{
		engine:  engine,
		sandbox: sandbox,
		events:  events,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Mount("/", rest.Handle(s.engine, s.sandbox, s.events))
	return r
}
