package tts

import (
	"bufio"
	"fmt"
	"math"
	"strings"

	"github.com/genricoloni/courtside/internal/domain"
	"golang.org/x/text/language"
)

// SynthCommand represents a speech synthesizer command line
type SynthCommand struct {
	Name   string
	Binary string
	// Args builds the arguments that speak one utterance
	Args func(u domain.Utterance) []string
	// ListVoices are the arguments printing the voice table, nil if unsupported
	ListVoices []string
}

var (
	// Ordered list of synthesizers to try (highest priority first)
	synthCommands = []SynthCommand{
		{Name: "espeak-ng", Binary: "espeak-ng", Args: espeakArgs, ListVoices: []string{"--voices"}},
		{Name: "espeak", Binary: "espeak", Args: espeakArgs, ListVoices: []string{"--voices"}},
		// speech-dispatcher client; -w blocks until the message is spoken
		{Name: "spd-say", Binary: "spd-say", Args: spdSayArgs},
	}
)

// espeakArgs maps utterance parameters onto espeak scales:
// rate on 175 words per minute, pitch on 0-99 around 50, amplitude on 0-200 around 100
func espeakArgs(u domain.Utterance) []string {
	args := []string{
		"-s", fmt.Sprint(scale(u.Rate, 175, 80, 450)),
		"-p", fmt.Sprint(scale(u.Pitch, 50, 0, 99)),
		"-a", fmt.Sprint(scale(u.Volume, 100, 0, 200)),
	}
	if u.Voice != nil && u.Voice.Lang != "" {
		args = append(args, "-v", strings.ToLower(u.Voice.Lang))
	}
	return append(args, "--", u.Text)
}

// spdSayArgs maps utterance parameters onto the -100..100 speech-dispatcher scales
func spdSayArgs(u domain.Utterance) []string {
	args := []string{
		"-w",
		"-r", fmt.Sprint(offset(u.Rate)),
		"-p", fmt.Sprint(offset(u.Pitch)),
		"-i", fmt.Sprint(offset(u.Volume)),
	}
	if u.Voice != nil && u.Voice.Lang != "" {
		args = append(args, "-l", strings.ToLower(u.Voice.Lang))
	}
	return append(args, "--", u.Text)
}

// scale multiplies base by factor (1 means default) and clamps the result
func scale(factor float64, base, lo, hi int) int {
	if factor <= 0 || math.IsNaN(factor) {
		factor = 1
	}
	v := int(math.Round(factor * float64(base)))
	return min(max(v, lo), hi)
}

// offset turns a factor around 1 into a -100..100 adjustment
func offset(factor float64) int {
	if factor <= 0 || math.IsNaN(factor) {
		factor = 1
	}
	v := int(math.Round((factor - 1) * 100))
	return min(max(v, -100), 100)
}

// parseVoices reads the table printed by espeak --voices:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  en-gb          --/M       English_(Great_Britain) gmw/en           (en 2)
//
// Language tags are normalised to BCP 47 case and the gender is folded into the
// name, e.g. "English_(Great_Britain) Male" / "en-GB".
func parseVoices(output string) []domain.Voice {
	var voices []domain.Voice

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}

		name := fields[3]
		gender := fields[2]
		if i := strings.LastIndex(gender, "/"); i >= 0 {
			gender = gender[i+1:]
		}
		switch gender {
		case "M":
			name += " Male"
		case "F":
			name += " Female"
		}

		voices = append(voices, domain.Voice{Name: name, Lang: normalizeLang(fields[1])})
	}
	return voices
}

// normalizeLang canonicalises the tag case ("en-gb" -> "en-GB"); tags that are not
// valid BCP 47 (espeak has a few, e.g. "en-us-nyc") are kept as printed
func normalizeLang(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return t.String()
}
