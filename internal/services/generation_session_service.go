package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"tasweeq/internal/events"
	"tasweeq/internal/llm/client"
	"tasweeq/internal/models"
)

// ContentGenerator performs one generation round trip.
type ContentGenerator interface {
	Generate(ctx context.Context, input models.GenerationInput) (*models.GenerationOutput, error)
}

// CredentialGate reports whether a usable API key is selected.
type CredentialGate interface {
	KeyReady() bool
}

// DraftStore remembers the last submitted form.
type DraftStore interface {
	SaveDraft(input models.GenerationInput) error
}

// ResolutionPolicy decides what happens when an older generation resolves
// after a newer one was submitted.
type ResolutionPolicy int

const (
	// LatestSubmissionWins drops results whose ticket is not the latest issued.
	LatestSubmissionWins ResolutionPolicy = iota
	// LastResolvedWins applies every result in arrival order, so a slow stale
	// call can overwrite a newer one.
	LastResolvedWins
)

type GenerationSessionOptions struct {
	Gate     CredentialGate
	Drafts   DraftStore
	Policy   ResolutionPolicy
	Logger   *zerolog.Logger
	Observer func(models.SessionState)
}

type GenerationSessionService interface {
	Startup(ctx context.Context)
	Submit(input models.GenerationInput) (uint64, error)
	State() models.SessionState
	RefreshCredential() bool
	SetGenerator(g ContentGenerator)
	Wait()
}

type generationSessionService struct {
	ctx      context.Context
	gate     CredentialGate
	drafts   DraftStore
	policy   ResolutionPolicy
	observer func(models.SessionState)
	logger   zerolog.Logger

	mu        sync.Mutex
	generator ContentGenerator
	state     models.SessionState
	keyReady  bool
	issued    uint64

	// emitMu keeps published states in the order they were applied.
	emitMu   sync.Mutex
	inflight sync.WaitGroup
}

func NewGenerationSessionService(generator ContentGenerator, opts GenerationSessionOptions) GenerationSessionService {
	s := &generationSessionService{
		ctx:       context.Background(),
		gate:      opts.Gate,
		drafts:    opts.Drafts,
		policy:    opts.Policy,
		observer:  opts.Observer,
		logger:    zerolog.Nop(),
		generator: generator,
		state:     models.Idle(),
		keyReady:  opts.Gate == nil,
	}
	if opts.Logger != nil {
		s.logger = opts.Logger.With().Str("component", "session").Logger()
	}
	return s
}

// Startup stores the app context and checks the credential gate once.
func (s *generationSessionService) Startup(ctx context.Context) {
	s.mu.Lock()
	if ctx != nil {
		s.ctx = ctx
	}
	if s.gate != nil {
		s.keyReady = s.gate.KeyReady()
	}
	ready := s.keyReady
	s.mu.Unlock()

	if !ready {
		s.logger.Info().Msg("no api key selected; generation is gated")
		s.emit(events.CredentialRequired, events.NewCredentialRequired(UserMessage(models.ErrorKindAuthentication)))
	}
}

// Submit validates input and starts a generation. Invalid input or a closed
// credential gate is reported to the caller without touching the state.
// The returned ticket identifies the submission in later states.
func (s *generationSessionService) Submit(input models.GenerationInput) (uint64, error) {
	if err := input.Validate(); err != nil {
		s.logger.Debug().Err(err).Msg("submission rejected")
		return 0, err
	}

	s.mu.Lock()
	if !s.keyReady {
		s.mu.Unlock()
		s.emit(events.CredentialRequired, events.NewCredentialRequired(UserMessage(models.ErrorKindAuthentication)))
		return 0, ErrCredentialRequired
	}
	s.issued++
	ticket := s.issued
	generator := s.generator
	ctx := s.ctx
	s.state = models.Loading(ticket)
	s.inflight.Add(1)
	s.publishLocked()

	s.logger.Info().Uint64("ticket", ticket).Str("product", input.Name).Msg("generation started")

	if s.drafts != nil {
		if err := s.drafts.SaveDraft(input); err != nil {
			s.logger.Warn().Err(err).Msg("failed to save form draft")
		}
	}

	go s.run(ctx, ticket, generator, input)
	return ticket, nil
}

func (s *generationSessionService) run(ctx context.Context, ticket uint64, generator ContentGenerator, input models.GenerationInput) {
	defer s.inflight.Done()

	var (
		out *models.GenerationOutput
		err error
	)
	if generator == nil {
		err = client.ErrMissingCredential
	} else {
		out, err = generator.Generate(ctx, input)
	}
	if err == nil && out == nil {
		err = client.ErrMalformedResponse
	}
	s.resolve(ticket, out, err)
}

func (s *generationSessionService) resolve(ticket uint64, out *models.GenerationOutput, err error) {
	s.mu.Lock()
	if s.policy == LatestSubmissionWins && ticket != s.issued {
		latest := s.issued
		s.mu.Unlock()
		s.logger.Debug().Uint64("ticket", ticket).Uint64("latest", latest).Msg("discarding stale generation result")
		return
	}

	credentialLost := false
	if err != nil {
		kind := Classify(err)
		s.state = models.Failed(ticket, kind, UserMessage(kind))
		if kind == models.ErrorKindAuthentication && s.gate != nil {
			s.keyReady = false
			credentialLost = true
		}
		s.logger.Error().Err(err).Uint64("ticket", ticket).Str("kind", string(kind)).Msg("generation failed")
	} else {
		s.state = models.Succeeded(ticket, out)
		s.logger.Info().Uint64("ticket", ticket).Msg("generation succeeded")
	}
	s.publishLocked()

	if credentialLost {
		s.emit(events.CredentialRequired, events.NewCredentialRequired(UserMessage(models.ErrorKindAuthentication)))
	}
}

// publishLocked must be called with mu held; it releases mu and pushes the
// current state while still holding emitMu so publications keep their order.
func (s *generationSessionService) publishLocked() {
	snapshot := s.snapshotLocked()
	ctx := s.ctx
	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	events.Emit(ctx, events.SessionStateChanged, events.NewStateEvent(snapshot))
	if s.observer != nil {
		s.observer(snapshot)
	}
}

func (s *generationSessionService) emit(name string, evt events.SessionEvent) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	events.Emit(ctx, name, evt)
}

func (s *generationSessionService) snapshotLocked() models.SessionState {
	st := s.state
	st.KeyRequired = !s.keyReady
	return st
}

func (s *generationSessionService) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// RefreshCredential re-checks the gate, typically after the user picked a key.
func (s *generationSessionService) RefreshCredential() bool {
	s.mu.Lock()
	if s.gate != nil {
		s.keyReady = s.gate.KeyReady()
	}
	ready := s.keyReady
	s.publishLocked()
	return ready
}

func (s *generationSessionService) SetGenerator(g ContentGenerator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generator = g
}

// Wait blocks until every started generation has resolved.
func (s *generationSessionService) Wait() {
	s.inflight.Wait()
}
