package session

// MountState is the per-mount reconciliation state of a protected view.
type MountState string

const (
	// MountChecking is entered on mount. The view shows a neutral loading
	// indicator while in this state, never protected content.
	MountChecking MountState = "checking"
	// MountAuthorized means both signals passed: durable token present and
	// an identity in the Store.
	MountAuthorized MountState = "authorized"
	// MountRedirecting means at least one signal was missing. Terminal for
	// this mount; the navigation to sign-in happens exactly once.
	MountRedirecting MountState = "redirecting"
)

// BootstrapHook observes state transitions, e.g. to trigger the navigation
// when the bootstrap lands in MountRedirecting.
type BootstrapHook func(from, to MountState)

// Bootstrap reconciles durable token presence with the in-memory session
// when a protected view mounts. A bare durable token is necessary but not
// sufficient: the identity must already be in the Store, and it is never
// auto-repopulated from the token alone.
type Bootstrap struct {
	tokens TokenStore
	store  SessionReader
	state  MountState
	hooks  []BootstrapHook
	logger Logger
}

type BootstrapOption func(*Bootstrap)

// WithBootstrapHook registers a transition observer.
func WithBootstrapHook(hook BootstrapHook) BootstrapOption {
	return func(b *Bootstrap) {
		if hook != nil {
			b.hooks = append(b.hooks, hook)
		}
	}
}

// WithBootstrapLogger overrides the default logger.
func WithBootstrapLogger(logger Logger) BootstrapOption {
	return func(b *Bootstrap) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBootstrap returns a Bootstrap in MountChecking, the state a protected
// view is in between mounting and resolution.
func NewBootstrap(tokens TokenStore, store SessionReader, opts ...BootstrapOption) *Bootstrap {
	b := &Bootstrap{
		tokens: tokens,
		store:  store,
		state:  MountChecking,
		logger: defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// State returns the current mount state.
func (b *Bootstrap) State() MountState {
	return b.state
}

// Resolve runs the single transition out of MountChecking:
// MountAuthorized iff the durable token and the Store identity are both
// present, MountRedirecting otherwise. Both terminal states are sticky;
// calling Resolve again returns the settled state unchanged.
func (b *Bootstrap) Resolve() MountState {
	if b.state != MountChecking {
		return b.state
	}

	_, tokenPresent := b.tokens.Get()
	identityPresent := b.store.IsAuthenticated()

	next := MountRedirecting
	if tokenPresent && identityPresent {
		next = MountAuthorized
	}

	from := b.state
	b.state = next

	if next == MountRedirecting {
		b.logger.Debug("bootstrap redirecting",
			"token_present", tokenPresent,
			"identity_present", identityPresent,
		)
	}

	for _, hook := range b.hooks {
		hook(from, next)
	}

	return b.state
}
