package rest

import (
	"net/http"

	"dsc/core"
	"dsc/handler/render"
	"dsc/handler/views"

	"github.com/spf13/cast"
)

func eventsHandler(events core.EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if events == nil {
			render.JSON(w, []*views.Event{})
			return
		}

		ctx := r.Context()
		query := r.URL.Query()
		from := cast.ToInt64(query.Get("from"))
		limit := cast.ToInt(query.Get("limit"))

		var (
			list []*core.Event
			err  error
		)

		if user := query.Get("user"); user != "" {
			list, err = events.ListByUser(ctx, user, from, limit)
		} else {
			list, err = events.List(ctx, from, limit)
		}

		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.NewEvents(list))
	}
}
