package session

import "github.com/fretsense/fretsense/internal/tuning"

// Accessibility cues. These are short synthesized patterns the device uses
// instead of recorded speech; backends sequence overlapping calls as they
// see fit.

const (
	identifierBeepHz = 800
	identifierBeepMs = 100

	cueLowHz  = 400
	cueHighHz = 600
	cueToneMs = 150
)

// PlayStringIdentifier plays N short beeps for string N so the user can
// confirm the selection without sight.
func PlayStringIdentifier(audio Audio, stringNumber int) {
	if stringNumber < 1 || stringNumber > 6 {
		return
	}
	for i := 0; i < stringNumber; i++ {
		audio.PlayBeep(identifierBeepHz, identifierBeepMs)
	}
}

// PlayCentsIndicator plays a coarse how-far-off pattern: the lower the beeps
// and the more of them, the further the string is from its target.
func PlayCentsIndicator(audio Audio, centsOffset float64) {
	magnitude := centsOffset
	if magnitude < 0 {
		magnitude = -magnitude
	}
	switch {
	case magnitude < 5:
		audio.PlayTone(1000, 200)
	case magnitude < 15:
		audio.PlayBeep(600, 100)
	case magnitude < 25:
		audio.PlayBeep(500, 100)
		audio.PlayBeep(500, 100)
	default:
		audio.PlayBeep(400, 100)
		audio.PlayBeep(400, 100)
		audio.PlayBeep(400, 100)
	}
}

// PlayDirectionCue plays a rising tone pair for tune-up, a falling pair for
// tune-down, and the in-tune chime otherwise.
func PlayDirectionCue(audio Audio, direction tuning.Direction) {
	switch direction {
	case tuning.DirectionUp:
		audio.PlayTone(cueLowHz, cueToneMs)
		audio.PlayTone(cueHighHz, cueToneMs)
	case tuning.DirectionDown:
		audio.PlayTone(cueHighHz, cueToneMs)
		audio.PlayTone(cueLowHz, cueToneMs)
	case tuning.DirectionInTune:
		PlayInTuneChime(audio)
	}
}

// PlayInTuneChime plays an ascending C5 E5 G5 confirmation.
func PlayInTuneChime(audio Audio) {
	audio.PlayTone(523.25, 100)
	audio.PlayTone(659.26, 100)
	audio.PlayTone(783.99, 200)
}
