package dialog

import (
	"context"
	"fmt"

	"nlu-router/internal/model"
)

// Dispatch routes one inbound turn and stores the resulting dialog stack.
func (b *Bot) Dispatch(ctx context.Context, turn model.Turn) error {
	key := turn.Address.Key()
	stack, _ := b.stacks.Get(key)
	turn.DialogStack = cloneStack(stack)

	s := newSession(b, turn)
	s.intent = b.recognize(ctx, s.Turn())

	routes := b.findRoutes(ctx, s)

	b.mu.RLock()
	override := b.disambiguate
	b.mu.RUnlock()

	var err error
	if override != nil {
		err = override(ctx, s, routes)
	} else {
		err = b.defaultDisambiguate(ctx, s, routes)
	}

	b.stacks.Add(key, cloneStack(s.stack))

	if err != nil {
		b.l.Errorf(ctx, "%s: %s: %v", LogPrefixDispatch, key, err)
		return fmt.Errorf("%s: %w", LogPrefixDispatch, err)
	}
	return nil
}

func (b *Bot) defaultDisambiguate(ctx context.Context, s *Session, routes []RouteResult) error {
	if best, ok := BestRouteResult(routes, s.stack, b.opts.Name); ok {
		return s.SelectRoute(ctx, best)
	}
	return s.RouteToActiveDialog(ctx)
}

func (b *Bot) findRoutes(ctx context.Context, s *Session) []RouteResult {
	var routes []RouteResult

	if n := len(s.stack); n > 0 {
		top := s.stack[n-1]
		if d, ok := b.lookup(top.ID); ok {
			score := ActiveDialogScore
			if sc, ok := d.(Scorer); ok {
				score = sc.Score(ctx, s)
			}
			routes = append(routes, RouteResult{
				Score:       score,
				RouteType:   RouteTypeActiveDialog,
				LibraryName: libraryOf(top.ID),
				DialogID:    top.ID,
				StackIndex:  n - 1,
			})
		}
	}

	b.mu.RLock()
	triggers := append([]trigger(nil), b.triggers...)
	b.mu.RUnlock()

	for _, t := range triggers {
		score := t.match(s)
		if score <= 0 {
			continue
		}

		if t.opts.Scope == "" {
			routes = append(routes, RouteResult{
				Score:       score,
				RouteType:   RouteTypeGlobalAction,
				LibraryName: libraryOf(t.dialogID),
				DialogID:    t.dialogID,
			})
			continue
		}

		for i := len(s.stack) - 1; i >= 0; i-- {
			if s.stack[i].ID == t.opts.Scope {
				routes = append(routes, RouteResult{
					Score:       score,
					RouteType:   RouteTypeStackAction,
					LibraryName: libraryOf(t.opts.Scope),
					DialogID:    t.dialogID,
					StackIndex:  i,
				})
				break
			}
		}
	}

	return routes
}

func (t trigger) match(s *Session) float64 {
	if t.opts.Pattern != nil && t.opts.Pattern.MatchString(s.Text()) {
		return 1.0
	}
	if t.opts.Intent != "" && s.intent.Intent == t.opts.Intent {
		return s.intent.Score
	}
	return 0
}
