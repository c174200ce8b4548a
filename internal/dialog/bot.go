package dialog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"nlu-router/internal/model"
	"nlu-router/internal/recognizer"
	"nlu-router/pkg/log"
)

// Bot is a minimal chat host: a dialog registry, recognizers, triggers and a
// per-conversation dialog stack.
type Bot struct {
	opts   Options
	sender Sender
	l      log.Logger

	mu           sync.RWMutex
	dialogs      map[string]Dialog
	recognizers  []IntentRecognizer
	triggers     []trigger
	disambiguate DisambiguateFunc

	stacks *expirable.LRU[string, []model.DialogFrame]
}

// New creates a Bot with the built-in prompt dialogs registered.
func New(sender Sender, l log.Logger, opts Options) (*Bot, error) {
	if sender == nil {
		return nil, ErrNilSender
	}
	opts = opts.withDefaults()

	b := &Bot{
		opts:    opts,
		sender:  sender,
		l:       l,
		dialogs: make(map[string]Dialog),
		stacks:  expirable.NewLRU[string, []model.DialogFrame](opts.StateSize, nil, opts.StateTTL),
	}
	b.dialogs[PromptTextDialogID] = promptText{}
	return b, nil
}

// Name is the library name of dialogs registered on this bot.
func (b *Bot) Name() string {
	return b.opts.Name
}

// Dialog registers d under id. Unqualified ids belong to the bot's library.
func (b *Bot) Dialog(id string, d Dialog) error {
	full := b.qualify(id)

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.dialogs[full]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDialog, full)
	}
	b.dialogs[full] = d
	return nil
}

// Recognizer adds r to the recognizers run on every turn.
func (b *Bot) Recognizer(r IntentRecognizer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recognizers = append(b.recognizers, r)
}

// OnDisambiguateRoute overrides how the bot picks among candidate routes.
func (b *Bot) OnDisambiguateRoute(fn DisambiguateFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disambiguate = fn
}

// Trigger begins dialogID when a turn matches opts.
func (b *Bot) Trigger(dialogID string, opts TriggerOptions) error {
	if opts.Intent == "" && opts.Pattern == nil {
		return ErrInvalidTrigger
	}
	if opts.Scope != "" {
		opts.Scope = b.qualify(opts.Scope)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.triggers = append(b.triggers, trigger{dialogID: b.qualify(dialogID), opts: opts})
	return nil
}

// Stack returns a copy of the stored dialog stack for a conversation.
func (b *Bot) Stack(addr model.Address) []model.DialogFrame {
	stack, _ := b.stacks.Get(addr.Key())
	return cloneStack(stack)
}

func (b *Bot) lookup(id string) (Dialog, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	d, ok := b.dialogs[b.qualify(id)]
	return d, ok
}

func (b *Bot) qualify(id string) string {
	if strings.Contains(id, ":") {
		return id
	}
	return b.opts.Name + ":" + id
}

func libraryOf(id string) string {
	lib, _, _ := strings.Cut(id, ":")
	return lib
}

func cloneStack(stack []model.DialogFrame) []model.DialogFrame {
	if len(stack) == 0 {
		return nil
	}
	out := make([]model.DialogFrame, len(stack))
	for i, f := range stack {
		out[i] = model.DialogFrame{ID: f.ID}
		if f.State != nil {
			out[i].State = make(map[string]any, len(f.State))
			for k, v := range f.State {
				out[i].State[k] = v
			}
		}
	}
	return out
}

// recognize runs every recognizer and keeps the highest scoring result.
func (b *Bot) recognize(ctx context.Context, turn model.Turn) recognizer.Result {
	b.mu.RLock()
	recognizers := append([]IntentRecognizer(nil), b.recognizers...)
	b.mu.RUnlock()

	best := recognizer.NeutralResult()
	for _, r := range recognizers {
		res, err := r.Recognize(ctx, turn)
		if err != nil {
			b.l.Warnf(ctx, "%s: %v", LogPrefixRecognize, err)
			continue
		}
		if res.Score > best.Score {
			best = res
		}
	}
	return best
}
