package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/sam/pkg/logging"
	"github.com/Jacobbrewer1/sam/pkg/request"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// commandController picks the processor for a slash command. A nil processor with a nil error means the
// controller has already responded to the interaction.
type commandController func(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error)

// commandProcessor is the processor for slash commands and buttons.
type commandProcessor func(a IApp, i *discordgo.InteractionCreate) error

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(handler Controller, a IApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				cw.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(cw).Encode(request.NewMessage(request.ErrInternalServer.Error())); err != nil {
					a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Log().Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path
			}
		} else {
			path = r.URL.Path
		}

		defer func() {
			// The status code is only known once the handler has returned.
			HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// interactionHandler routes slash commands to their controllers and buttons to their processors.
func interactionHandler(a IApp, controllers map[string]commandController, buttons map[string]commandProcessor) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			name := i.ApplicationCommandData().Name
			a.Log().Debug("Handling slash command", slog.String("command", name))

			controller, ok := controllers[name]
			if !ok {
				a.Log().Error("No controller found for command", slog.String("command", name))
				respondWithError(a, i)
				return
			}

			processor, err := controller(a, i)
			if err != nil {
				a.Log().Error("Error getting processor for command",
					slog.String("command", name),
					slog.String(logging.KeyError, err.Error()))
				respondWithError(a, i)
				return
			} else if processor == nil {
				return
			}

			runProcessor(a, i, name, processor)
		case discordgo.InteractionMessageComponent:
			customID := i.MessageComponentData().CustomID
			a.Log().Debug("Handling button", slog.String("button", customID))

			processor, ok := buttons[customID]
			if !ok {
				a.Log().Error("No processor found for button", slog.String("button", customID))
				respondWithError(a, i)
				return
			}

			runProcessor(a, i, customID, processor)
		}
	}
}

func runProcessor(a IApp, i *discordgo.InteractionCreate, name string, processor commandProcessor) {
	t := prometheus.NewTimer(DiscordCommandDuration.WithLabelValues(name))
	defer t.ObserveDuration()

	if err := processor(a, i); err != nil {
		a.Log().Error("Error processing interaction",
			slog.String("command", name),
			slog.String(logging.KeyError, err.Error()))
		respondWithError(a, i)
	}
}

func respondWithError(a IApp, i *discordgo.InteractionCreate) {
	if err := respondError(a, i); err != nil {
		a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
	}
}
