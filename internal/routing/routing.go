package routing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"nlu-router/internal/dialog"
	"nlu-router/internal/model"
	"nlu-router/internal/recognizer"
)

// SetRouting registers the recognizer on host and, when activate is set, takes over
// route disambiguation. Answers scoring above threshold are dispatched directly.
func (d *Decider) SetRouting(host Host, activate bool, threshold float64) {
	host.Recognizer(intentRecognizer{uc: d.uc})
	if !activate {
		return
	}

	hostName := host.Name()
	host.OnDisambiguateRoute(func(ctx context.Context, s *dialog.Session, routes []dialog.RouteResult) error {
		_, err := d.Route(ctx, s, routes, hostName, threshold)
		return err
	})
}

// Route decides what to do with a turn and reports the action taken.
func (d *Decider) Route(ctx context.Context, s *dialog.Session, routes []dialog.RouteResult, hostName string, threshold float64) (Action, error) {
	ctx, span := d.tracer.Start(ctx, "routing.route")
	defer span.End()

	action, err := d.route(ctx, s, routes, hostName, threshold)
	span.SetAttributes(attribute.String("action", action.String()))
	if err != nil {
		span.RecordError(err)
	}
	d.metrics.RoutingActionsTotal.WithLabelValues(action.String()).Inc()
	return action, err
}

func (d *Decider) route(ctx context.Context, s *dialog.Session, routes []dialog.RouteResult, hostName string, threshold float64) (Action, error) {
	if d.hooks.OnBeginRouting != nil && d.hooks.OnBeginRouting(ctx, s, routes) == Abort {
		return ActionAborted, nil
	}

	if s.Text() == "" {
		if d.hooks.OnNoTextRouting != nil && d.hooks.OnNoTextRouting(ctx, s) == Abort {
			return ActionAborted, nil
		}
		return ActionDefaultRoute, defaultRoute(ctx, s, routes, hostName)
	}

	res := d.recognize(ctx, s.Turn())
	if res.Score > threshold && res.Answer != "" {
		if d.hooks.OnRecognizedRouting != nil && d.hooks.OnRecognizedRouting(ctx, s, res) == Abort {
			return ActionAborted, nil
		}
		if name, ok := strings.CutPrefix(res.Answer, DialogAnswerPrefix); ok {
			return ActionBeganDialog, s.BeginDialog(ctx, name, nil)
		}
		return ActionSentAnswer, s.Send(ctx, res.Answer)
	}

	if d.hooks.OnUnrecognizedRouting != nil && d.hooks.OnUnrecognizedRouting(ctx, s, res) == Abort {
		return ActionAborted, nil
	}
	return ActionDefaultRoute, defaultRoute(ctx, s, routes, hostName)
}

// recognize treats an unavailable recognizer as an unrecognized turn.
func (d *Decider) recognize(ctx context.Context, turn model.Turn) recognizer.Result {
	rec, err := d.uc.Recognize(ctx, turn)
	if err != nil {
		d.l.Warnf(ctx, "%s: %v", LogPrefixRoute, err)
		return recognizer.NeutralResult()
	}
	return rec.Result
}

func defaultRoute(ctx context.Context, s *dialog.Session, routes []dialog.RouteResult, hostName string) error {
	if best, ok := dialog.BestRouteResult(routes, s.DialogStack(), hostName); ok {
		return s.SelectRoute(ctx, best)
	}
	return s.RouteToActiveDialog(ctx)
}

// intentRecognizer fills the host's recognizer slot.
type intentRecognizer struct {
	uc recognizer.UseCase
}

func (r intentRecognizer) Recognize(ctx context.Context, turn model.Turn) (recognizer.Result, error) {
	rec, err := r.uc.Recognize(ctx, turn)
	if err != nil {
		return recognizer.Result{}, err
	}
	return rec.Result, nil
}
