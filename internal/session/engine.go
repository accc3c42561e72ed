package session

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/fretsense/fretsense/internal/cadence"
	"github.com/fretsense/fretsense/internal/notes"
	"github.com/fretsense/fretsense/internal/tuning"
)

// Engine is the tuning session state machine. It is single-threaded: all
// mutation happens inside Update, which must be called from one goroutine.
// Snapshot is safe to call from other goroutines.
type Engine struct {
	params   Params
	analyzer *tuning.Analyzer
	tiers    *cadence.Table

	buttons    Buttons
	source     FrequencySource
	audio      Audio
	modeSwitch ModeSwitch

	state           State
	mode            Mode
	sessionID       uuid.UUID
	targetString    int
	targetFrequency float64
	stateEntryMs    int64
	weakSignals     int
	lastBeepMs      int64
	beepIntervalMs  int64
	beepDurationMs  int64
	lastResult      tuning.Result
	hasResult       bool
	inTuneAnnounced bool

	mu       sync.RWMutex
	snapshot Snapshot
}

// Snapshot is a read-only copy of the session for presentation layers.
type Snapshot struct {
	SessionID       string         `json:"session_id,omitempty"`
	State           State          `json:"state"`
	Mode            Mode           `json:"mode,omitempty"`
	TargetString    int            `json:"target_string"`
	TargetFrequency float64        `json:"target_frequency"`
	WeakSignals     int            `json:"weak_signals"`
	Result          *tuning.Result `json:"result,omitempty"`
}

// New creates an Engine in the Idle state.
func New(params Params, buttons Buttons, source FrequencySource, audio Audio, modeSwitch ModeSwitch) *Engine {
	params = params.withDefaults()
	e := &Engine{
		params:     params,
		analyzer:   tuning.NewAnalyzer(params.ToleranceCents),
		tiers:      cadence.NewTable(params.Tiers),
		buttons:    buttons,
		source:     source,
		audio:      audio,
		modeSwitch: modeSwitch,
		state:      StateIdle,
	}
	e.publishSnapshot()
	return e
}

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Mode returns the mode read at session entry.
func (e *Engine) Mode() Mode { return e.mode }

// TargetString returns the selected string, or 0 outside a session.
func (e *Engine) TargetString() int { return e.targetString }

// LastResult returns the most recent analysis and whether one exists.
func (e *Engine) LastResult() (tuning.Result, bool) {
	return e.lastResult, e.hasResult
}

// Snapshot returns a copy of the current session for concurrent readers.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// Update advances the state machine by one poll. The host supplies a
// monotonically increasing millisecond clock; every wait is expressed as
// staying in the current state until enough time has passed. The cancel
// check runs after the active state's own logic, so a release observed in
// the same poll as a timed transition still wins that poll.
func (e *Engine) Update(nowMs int64) {
	switch e.state {
	case StateIdle:
		e.updateIdle(nowMs)
	case StatePlayingReference:
		e.updatePlayingReference(nowMs)
	case StateWaitingReadyBeep:
		e.updateWaitingReadyBeep(nowMs)
	case StateListening:
		e.updateListening(nowMs)
	case StateProvidingFeedback:
		e.updateProvidingFeedback(nowMs)
	case StateErrorRecovery:
		e.updateErrorRecovery(nowMs)
	default:
		log.Printf("session: invalid state %q, resetting to idle", e.state)
		e.reset()
	}

	if e.state != StateIdle && !e.buttons.IsHeld(e.targetString) {
		log.Printf("session %s: button released, returning to idle", e.sessionID)
		e.audio.SetAmplifierEnabled(false)
		e.reset()
	}

	e.publishSnapshot()
}

func (e *Engine) updateIdle(nowMs int64) {
	event, ok := e.buttons.PollEvent()
	if !ok || !event.Pressed {
		return
	}
	if event.String < 1 || event.String > 6 {
		log.Printf("session: ignoring invalid button id %d", event.String)
		return
	}

	e.sessionID = uuid.New()
	e.targetString = event.String
	e.targetFrequency = notes.StringFrequency(event.String)
	e.hasResult = false
	e.inTuneAnnounced = false
	e.audio.SetAmplifierEnabled(true)
	e.mode = e.modeSwitch.Mode()

	log.Printf("session %s: string %d (%s) selected, target %.2f Hz, mode %s",
		e.sessionID, e.targetString, notes.StringNote(e.targetString), e.targetFrequency, e.mode)

	if e.params.VerboseCues {
		PlayStringIdentifier(e.audio, e.targetString)
	}

	if e.mode == ModePlayTone {
		e.enterState(StatePlayingReference, nowMs)
		e.audio.PlayTone(e.targetFrequency, e.params.ReferenceToneMs)
	} else {
		e.enterState(StateWaitingReadyBeep, nowMs)
		e.audio.PlayBeep(e.params.ReadyBeepHz, e.params.ReadyBeepMs)
	}
}

func (e *Engine) updatePlayingReference(nowMs int64) {
	if nowMs-e.stateEntryMs >= e.params.ReferenceToneMs {
		e.enterState(StateWaitingReadyBeep, nowMs)
		e.audio.PlayBeep(e.params.ReadyBeepHz, e.params.ReadyBeepMs)
	}
}

func (e *Engine) updateWaitingReadyBeep(nowMs int64) {
	if nowMs-e.stateEntryMs >= e.params.ReadyBeepMs {
		e.enterState(StateListening, nowMs)
	}
}

func (e *Engine) updateListening(nowMs int64) {
	freq := e.source.DetectedFrequency()
	if freq > 0 {
		result := e.analyzer.ForString(freq, e.targetString)
		e.setResult(result)
		e.beepIntervalMs, e.beepDurationMs = e.tiers.Lookup(result.CentsOffset)
		// Arm the cadence so the first beep fires on the next poll.
		e.lastBeepMs = nowMs - e.beepIntervalMs
		e.weakSignals = 0
		if e.params.VerboseCues && result.Direction != tuning.DirectionInTune {
			PlayCentsIndicator(e.audio, result.CentsOffset)
			PlayDirectionCue(e.audio, result.Direction)
		}
		e.enterState(StateProvidingFeedback, nowMs)
		return
	}

	e.weakSignals++
	if e.weakSignals >= e.params.MaxWeakSignals {
		log.Printf("session %s: %d consecutive weak signals", e.sessionID, e.weakSignals)
		e.enterState(StateErrorRecovery, nowMs)
		return
	}
	if nowMs-e.stateEntryMs >= e.params.ListenTimeoutMs {
		log.Printf("session %s: timed out waiting for signal", e.sessionID)
		e.enterState(StateErrorRecovery, nowMs)
	}
}

func (e *Engine) updateProvidingFeedback(nowMs int64) {
	if cadence.ShouldBeep(nowMs, e.lastBeepMs, e.beepIntervalMs) {
		e.audio.PlayBeep(e.params.BeepFrequencyHz, e.beepDurationMs)
		e.lastBeepMs = nowMs
	}

	freq := e.source.DetectedFrequency()
	if freq > 0 {
		previous := tuning.DirectionUnknown
		if e.hasResult {
			previous = e.lastResult.Direction
		}
		result := e.analyzer.ForString(freq, e.targetString)
		e.setResult(result)
		e.beepIntervalMs, e.beepDurationMs = e.tiers.Lookup(result.CentsOffset)
		e.weakSignals = 0

		if result.Direction == tuning.DirectionInTune {
			if e.params.AnnounceInTune && !e.inTuneAnnounced {
				e.inTuneAnnounced = true
				PlayInTuneChime(e.audio)
			}
		} else {
			// Re-arm so drifting out and back in announces again.
			e.inTuneAnnounced = false
			if e.params.VerboseCues && result.Direction != previous {
				PlayDirectionCue(e.audio, result.Direction)
			}
		}
		return
	}

	e.weakSignals++
	if e.weakSignals >= e.params.MaxWeakSignals {
		log.Printf("session %s: signal lost, listening again", e.sessionID)
		e.enterState(StateListening, nowMs)
	}
}

func (e *Engine) updateErrorRecovery(nowMs int64) {
	if nowMs-e.stateEntryMs >= e.params.RecoveryDelayMs {
		log.Printf("session %s: recovered, listening again", e.sessionID)
		e.enterState(StateListening, nowMs)
	}
}

// enterState records the transition and runs per-state entry work.
func (e *Engine) enterState(state State, nowMs int64) {
	e.state = state
	e.stateEntryMs = nowMs
	switch state {
	case StateListening:
		e.weakSignals = 0
	case StateErrorRecovery:
		// Warn once per entry, never once per poll.
		e.audio.EmitWarningCue()
	}
}

// reset returns the engine to Idle and clears all session fields.
func (e *Engine) reset() {
	e.state = StateIdle
	e.mode = ""
	e.sessionID = uuid.Nil
	e.targetString = 0
	e.targetFrequency = 0
	e.stateEntryMs = 0
	e.weakSignals = 0
	e.lastBeepMs = 0
	e.beepIntervalMs = 0
	e.beepDurationMs = 0
	e.hasResult = false
	e.inTuneAnnounced = false
}

func (e *Engine) setResult(result tuning.Result) {
	e.lastResult = result
	e.hasResult = true
}

func (e *Engine) publishSnapshot() {
	snapshot := Snapshot{
		State:           e.state,
		Mode:            e.mode,
		TargetString:    e.targetString,
		TargetFrequency: e.targetFrequency,
		WeakSignals:     e.weakSignals,
	}
	if e.sessionID != uuid.Nil {
		snapshot.SessionID = e.sessionID.String()
	}
	if e.hasResult {
		result := e.lastResult
		snapshot.Result = &result
	}

	e.mu.Lock()
	e.snapshot = snapshot
	e.mu.Unlock()
}
